// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package huff implements a static, single-pass Huffman file format.
//
// An encoded file is self-describing: it starts with the magic literal
// "HUFFMAN", followed by the code table, the original size and the packed
// codes of every input byte. All fields after the magic are bit-packed,
// most significant bit first, without alignment:
//
//	| Field         | Bits                       |
//	| ------------- | -------------------------- |
//	| Magic         | 7 x 8                      |
//	| Symbols - 1   | 8                          |
//	| Symbol        | 8        (once per symbol) |
//	| Code length   | 6        (once per symbol) |
//	| Code          | length   (once per symbol) |
//	| Original size | 32, big endian             |
//	| Body          | one code per input byte    |
//	| Padding       | zero bits to a byte border |
//
// Symbols are listed in ascending byte order and the code tree is built
// with a fixed tie-break, so encoding the same input twice produces
// identical files.
package huff

import (
	"errors"
	"fmt"
	"math"

	"github.com/intel/fasthuff/compress/huff/internal/bitstream"
	"github.com/intel/fasthuff/compress/huff/internal/huffman"
)

// Magic is the literal every encoded file starts with.
const Magic = "HUFFMAN"

// MaxSize is the largest input the 32-bit size field can describe.
const MaxSize = math.MaxUint32

// MaxCodeLen is the longest code the 6-bit length field can carry.
const MaxCodeLen = huffman.MaxCodeLen

// Errors returned by the encoder and decoder. Use errors.Is to test for
// them; returned errors usually carry more context.
var (
	// ErrIO wraps failures of the underlying files, readers and writers.
	ErrIO = errors.New("huff: i/o failure")
	// ErrFormatMismatch means the input does not start with Magic.
	ErrFormatMismatch = errors.New("huff: magic literal not found")
	// ErrTruncatedStream means the input ended inside a field or code.
	ErrTruncatedStream = bitstream.ErrTruncated
	// ErrUnrepresentable covers empty input, input larger than MaxSize and
	// codes longer than MaxCodeLen.
	ErrUnrepresentable = huffman.ErrUnrepresentable
	// ErrCorruptStream means the code table is not a prefix code or the
	// body holds a bit sequence no code matches.
	ErrCorruptStream = huffman.ErrCorrupt
)

// ioError tags err with ErrIO unless it already is one of the codec errors.
func ioError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrIO),
		errors.Is(err, ErrFormatMismatch),
		errors.Is(err, ErrTruncatedStream),
		errors.Is(err, ErrUnrepresentable),
		errors.Is(err, ErrCorruptStream):
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}
