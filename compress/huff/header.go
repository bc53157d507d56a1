// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huff

import (
	"fmt"
	"io"

	"github.com/intel/fasthuff/compress/huff/internal/bitstream"
	"github.com/intel/fasthuff/compress/huff/internal/huffman"
)

// Header field widths in bits.
const (
	symbolBits  = 8
	codeLenBits = 6
	sizeBits    = 32
)

// Code is one entry of the code table stored in the header.
type Code = huffman.Code

// Header is the parsed prefix of an encoded file.
type Header struct {
	Codes []Code // in file order
	Size  uint32 // original length in bytes
}

func writeHeader(w *bitstream.Writer, h *Header) error {
	if len(h.Codes) == 0 || len(h.Codes) > 256 {
		return fmt.Errorf("%w: %d symbols", ErrUnrepresentable, len(h.Codes))
	}
	for i := 0; i < len(Magic); i++ {
		w.WriteByte(Magic[i])
	}
	w.WriteByte(byte(len(h.Codes) - 1))
	for _, c := range h.Codes {
		if c.Len == 0 || c.Len > MaxCodeLen {
			return fmt.Errorf("%w: code length %d", ErrUnrepresentable, c.Len)
		}
		w.WriteBits(uint64(c.Symbol), symbolBits)
		w.WriteBits(uint64(c.Len), codeLenBits)
		w.WriteBits(c.Bits, c.Len)
	}
	w.WriteBits(uint64(h.Size), sizeBits)
	return w.Err()
}

func readHeader(r *bitstream.Reader) (*Header, error) {
	for i := 0; i < len(Magic); i++ {
		c, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if c != Magic[i] {
			return nil, ErrFormatMismatch
		}
	}
	n, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	h := &Header{Codes: make([]Code, int(n)+1)}
	for i := range h.Codes {
		c := &h.Codes[i]
		sym, err := r.ReadBits(symbolBits)
		if err != nil {
			return nil, err
		}
		length, err := r.ReadBits(codeLenBits)
		if err != nil {
			return nil, err
		}
		if length == 0 {
			return nil, fmt.Errorf("%w: zero code length for symbol %#02x", ErrCorruptStream, sym)
		}
		bits, err := r.ReadBits(uint8(length))
		if err != nil {
			return nil, err
		}
		c.Symbol, c.Len, c.Bits = byte(sym), uint8(length), bits
	}
	size, err := r.ReadBits(sizeBits)
	if err != nil {
		return nil, err
	}
	h.Size = uint32(size)
	return h, nil
}

// ReadHeader parses the header at the start of an encoded stream.
func ReadHeader(r io.Reader) (*Header, error) {
	h, err := readHeader(bitstream.NewReader(r))
	if err != nil {
		return nil, ioError("read header", err)
	}
	return h, nil
}
