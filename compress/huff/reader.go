// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huff

import (
	"bufio"
	"fmt"
	"io"

	"github.com/intel/fasthuff/compress/huff/internal/bitstream"
	"github.com/intel/fasthuff/compress/huff/internal/huffman"
)

// Decode reads an encoded stream from r and writes the original bytes to w.
// It stops after the number of bytes declared in the header; anything after
// the last code is ignored. It returns the number of bytes written.
func Decode(w io.Writer, r io.Reader) (int64, error) {
	br := bitstream.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return 0, ioError("read header", err)
	}
	table, err := huffman.NewDecodeTable(h.Codes)
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	var n int64
	for n < int64(h.Size) {
		sym, err := decodeSymbol(br, table)
		if err != nil {
			return n, ioError("read body", fmt.Errorf("symbol %d of %d: %w", n, h.Size, err))
		}
		if err := bw.WriteByte(sym); err != nil {
			return n, ioError("write output", err)
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, ioError("write output", err)
	}
	return n, nil
}

// decodeSymbol walks the trie one bit at a time. The trie is at most
// MaxCodeLen deep, so a sequence that matches nothing fails within that
// many bits.
func decodeSymbol(br *bitstream.Reader, table *huffman.DecodeTable) (byte, error) {
	node := table.Root()
	for {
		bit, err := br.ReadBit()
		if err != nil {
			return 0, err
		}
		next, sym, ok, err := table.Step(node, bit)
		if err != nil {
			return 0, err
		}
		if ok {
			return sym, nil
		}
		node = next
	}
}
