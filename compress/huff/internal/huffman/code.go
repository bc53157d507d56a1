// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"fmt"
	"strings"
)

// MaxCodeLen is the longest code the 6-bit length field can carry.
const MaxCodeLen = 63

// ErrCodeTooLong is returned when a symbol would need more than MaxCodeLen bits.
var ErrCodeTooLong = fmt.Errorf("%w: code longer than %d bits", ErrUnrepresentable, MaxCodeLen)

// Code is the prefix code of one symbol. Bits holds the code right-aligned,
// its first bit at position Len-1.
type Code struct {
	Symbol byte
	Bits   uint64
	Len    uint8
}

func (c Code) String() string {
	return fmt.Sprintf("%#02x:%0*b", c.Symbol, int(c.Len), c.Bits)
}

// Table maps each present symbol to its code.
type Table struct {
	codes [256]Code // Len == 0 marks an absent symbol
	n     int
}

// NewTable derives the code table from a tree built by BuildTree. Every
// zero branch appends a 0 bit and every one branch a 1 bit. A lone leaf
// gets the one-bit code 0.
func NewTable(root *Node) (*Table, error) {
	t := &Table{}
	if root.IsLeaf() {
		t.set(Code{Symbol: root.Symbol, Bits: 0, Len: 1})
		return t, nil
	}
	if err := t.walk(root, 0, 0); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) walk(n *Node, bits uint64, depth int) error {
	if n.IsLeaf() {
		if depth > MaxCodeLen {
			return fmt.Errorf("%w: symbol %#02x", ErrCodeTooLong, n.Symbol)
		}
		t.set(Code{Symbol: n.Symbol, Bits: bits, Len: uint8(depth)})
		return nil
	}
	// bits holds at most 64 levels
	if depth >= 64 {
		return ErrCodeTooLong
	}
	if err := t.walk(n.Zero, bits<<1, depth+1); err != nil {
		return err
	}
	return t.walk(n.One, bits<<1|1, depth+1)
}

func (t *Table) set(c Code) {
	if t.codes[c.Symbol].Len == 0 {
		t.n++
	}
	t.codes[c.Symbol] = c
}

// Lookup returns the code of symbol b.
func (t *Table) Lookup(b byte) (Code, bool) {
	c := t.codes[b]
	return c, c.Len != 0
}

// Len returns the number of symbols in the table.
func (t *Table) Len() int {
	return t.n
}

// Codes returns the codes in ascending symbol order.
func (t *Table) Codes() []Code {
	codes := make([]Code, 0, t.n)
	for _, c := range t.codes {
		if c.Len != 0 {
			codes = append(codes, c)
		}
	}
	return codes
}

func (t *Table) String() string {
	var sb strings.Builder
	for i, c := range t.Codes() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}

// IsPrefixFree reports whether no code in codes is a prefix of another.
func IsPrefixFree(codes []Code) bool {
	for i, a := range codes {
		for j, b := range codes {
			if i == j || a.Len > b.Len {
				continue
			}
			if b.Bits>>(b.Len-a.Len) == a.Bits {
				return false
			}
		}
	}
	return true
}
