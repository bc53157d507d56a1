// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package bitstream

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriteBitsMSBFirst(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)
	w.WriteBits(0x08, 4)
	w.WriteBits(0x07, 3)
	w.WriteBits(0x05, 3)
	w.WriteBits(0x15, 6)
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0x8f, 0x55}) {
		t.Fatalf("got % x", buf.Bytes())
	}
}

func TestFlushPadsWithZeros(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)
	w.WriteBit(1)
	w.WriteBit(0)
	w.WriteBit(1)
	if buf.Len() != 0 {
		t.Fatalf("partial byte written early: % x", buf.Bytes())
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0xa0}) {
		t.Fatalf("got % x", buf.Bytes())
	}
	if w.Len() != 1 {
		t.Fatalf("Len() = %d", w.Len())
	}
	// flushing on a boundary adds nothing
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 1 {
		t.Fatalf("got % x", buf.Bytes())
	}
}

func TestWriteBitsIgnoresHighBits(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)
	w.WriteBits(0xff0f, 4)
	w.WriteBits(0, 4)
	w.Flush()
	if !bytes.Equal(buf.Bytes(), []byte{0xf0}) {
		t.Fatalf("got % x", buf.Bytes())
	}
}

func TestWriteBitOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewWriter(bytes.NewBuffer(nil)).WriteBit(2)
}

func TestRoundTrip(t *testing.T) {
	type field struct {
		v uint64
		n uint8
	}
	fields := []field{
		{1, 1}, {0x2a, 6}, {0x41, 8}, {0x7fffffffffffffff, 63},
		{0, 1}, {0xdeadbeef, 32}, {3, 2}, {0xffffffffffffffff, 64},
	}
	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)
	for _, f := range fields {
		w.WriteBits(f.v, f.n)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	r := NewReader(bytes.NewReader(buf.Bytes()))
	for i, f := range fields {
		v, err := r.ReadBits(f.n)
		if err != nil {
			t.Fatal(i, err)
		}
		if v != f.v {
			t.Fatalf("field %d: got %#x want %#x", i, v, f.v)
		}
	}
}

func TestReadPastEnd(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x80}))
	b, err := r.ReadBit()
	if err != nil || b != 1 {
		t.Fatalf("got %d, %v", b, err)
	}
	if _, err := r.ReadBits(7); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadBit(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	r = NewReader(bytes.NewReader([]byte{0x01, 0x02}))
	if _, err := r.ReadBits(32); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

type failingWriter struct{}

var errSink = errors.New("sink failed")

func (failingWriter) Write(p []byte) (int, error) { return 0, errSink }

func TestStickyError(t *testing.T) {
	w := NewWriter(failingWriter{})
	for i := 0; i < 8*4096+8; i++ {
		w.WriteBit(1)
	}
	if err := w.Flush(); !errors.Is(err, errSink) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if !errors.Is(w.Err(), errSink) {
		t.Fatalf("Err() = %v", w.Err())
	}
}
