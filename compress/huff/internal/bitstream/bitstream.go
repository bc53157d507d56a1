// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package bitstream provides the bit-granular reader and writer used by the
// huff file format. Bits are packed most-significant-bit first and fields
// are never aligned to byte boundaries, except by an explicit Flush.
package bitstream

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// ErrTruncated is returned when the source ends before a requested bit.
var ErrTruncated = errors.New("huff: truncated stream")

// Writer packs bits into bytes and hands complete bytes to a buffered sink.
// The first write error is sticky: it is reported by Flush and Err and all
// later writes are dropped.
type Writer struct {
	err  error
	bw   *bufio.Writer
	w    *bitio.Writer
	bits int64 // bits accepted so far, padding included
}

// NewWriter returns a Writer on top of under. If under is already a
// *bufio.Writer it is used directly.
func NewWriter(under io.Writer) *Writer {
	bw, ok := under.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(under)
	}
	return &Writer{bw: bw, w: bitio.NewWriter(bw)}
}

// WriteBit writes a single bit. b must be 0 or 1.
func (w *Writer) WriteBit(b uint8) {
	if b > 1 {
		panic(fmt.Sprintf("bitstream: bit value %d out of range", b))
	}
	if w.err != nil {
		return
	}
	w.err = w.w.WriteBool(b == 1)
	w.bits++
}

// WriteBits writes the low n bits of value, most significant first.
// n must be in [1, 64].
func (w *Writer) WriteBits(value uint64, n uint8) {
	if n == 0 || n > 64 {
		panic(fmt.Sprintf("bitstream: bit count %d out of range", n))
	}
	if w.err != nil {
		return
	}
	if n < 64 {
		value &= 1<<n - 1
	}
	w.err = w.w.WriteBits(value, n)
	w.bits += int64(n)
}

// WriteByte writes eight bits. It is not aligned to a byte boundary.
func (w *Writer) WriteByte(c byte) error {
	w.WriteBits(uint64(c), 8)
	return w.err
}

// Flush pads the pending byte with zero bits and flushes the sink.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	skipped, err := w.w.Align()
	if err != nil {
		w.err = err
		return err
	}
	w.bits += int64(skipped)
	w.err = w.bw.Flush()
	return w.err
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}

// Len returns the number of bytes produced so far, counting a pending
// partial byte as a whole one.
func (w *Writer) Len() int64 {
	return (w.bits + 7) / 8
}

// Reader is the mirror of Writer.
type Reader struct {
	r *bitio.Reader
}

// NewReader returns a Reader pulling bytes from under.
func NewReader(under io.Reader) *Reader {
	return &Reader{r: bitio.NewReader(under)}
}

// ReadBit returns the next bit as 0 or 1.
func (r *Reader) ReadBit() (uint8, error) {
	b, err := r.r.ReadBool()
	if err != nil {
		return 0, translate(err)
	}
	if b {
		return 1, nil
	}
	return 0, nil
}

// ReadBits reads n bits, most significant first. n must be in [1, 64].
func (r *Reader) ReadBits(n uint8) (uint64, error) {
	if n == 0 || n > 64 {
		panic(fmt.Sprintf("bitstream: bit count %d out of range", n))
	}
	v, err := r.r.ReadBits(n)
	if err != nil {
		return 0, translate(err)
	}
	return v, nil
}

// ReadByte reads eight bits.
func (r *Reader) ReadByte() (byte, error) {
	v, err := r.ReadBits(8)
	return byte(v), err
}

func translate(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncated
	}
	return err
}
