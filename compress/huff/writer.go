// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huff

import (
	"fmt"
	"io"

	"github.com/intel/fasthuff/compress/huff/internal/bitstream"
	"github.com/intel/fasthuff/compress/huff/internal/huffman"
)

// Encoder compresses whole inputs into the huff format.
// The zero value is ready to use.
type Encoder struct {
	// Workers bounds the goroutines used to count symbol frequencies.
	// Values below 2 count on the calling goroutine. The encoded output
	// does not depend on it.
	Workers int
}

// Encode compresses data with a default Encoder.
func Encode(w io.Writer, data []byte) error {
	var e Encoder
	_, err := e.Encode(w, data)
	return err
}

// Encode writes the encoded form of data to w and returns the number of
// bytes written. data must hold between 1 and MaxSize bytes.
func (e *Encoder) Encode(w io.Writer, data []byte) (int64, error) {
	if len(data) == 0 {
		return 0, huffman.ErrEmpty
	}
	if uint64(len(data)) > MaxSize {
		return 0, fmt.Errorf("%w: %d bytes exceed the size field", ErrUnrepresentable, len(data))
	}
	hist, err := huffman.CountBytes(data, e.Workers)
	if err != nil {
		return 0, err
	}
	table, err := buildTable(hist)
	if err != nil {
		return 0, err
	}

	bw := bitstream.NewWriter(w)
	err = writeHeader(bw, &Header{Codes: table.Codes(), Size: uint32(len(data))})
	if err != nil {
		return bw.Len(), ioError("write header", err)
	}
	for _, b := range data {
		c, _ := table.Lookup(b)
		bw.WriteBits(c.Bits, c.Len)
	}
	if err := bw.Flush(); err != nil {
		return bw.Len(), ioError("write body", err)
	}
	return bw.Len(), nil
}

// buildTable derives the code table the encoder uses for hist.
func buildTable(hist *huffman.Histogram) (*huffman.Table, error) {
	root, err := huffman.BuildTree(hist)
	if err != nil {
		return nil, err
	}
	return huffman.NewTable(root)
}
