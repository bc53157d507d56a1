// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"errors"
	"fmt"
)

// ErrCorrupt is returned for tables that are not prefix codes and for bit
// sequences no code matches.
var ErrCorrupt = errors.New("huff: corrupt stream")

const noChild = 0

// decNode is a trie vertex. Index 0 is the root, which is never a child,
// so 0 doubles as the "no child" marker.
type decNode struct {
	child  [2]int32
	leaf   bool
	symbol byte
}

// DecodeTable resolves codes bit by bit with a binary trie kept in a
// single slice.
type DecodeTable struct {
	nodes []decNode
}

// NewDecodeTable builds the trie for codes. It fails if a code has an
// invalid length, repeats another code or is a prefix of one.
func NewDecodeTable(codes []Code) (*DecodeTable, error) {
	d := &DecodeTable{nodes: make([]decNode, 1, 2*len(codes))}
	for _, c := range codes {
		if err := d.insert(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *DecodeTable) insert(c Code) error {
	if c.Len == 0 || c.Len > MaxCodeLen {
		return fmt.Errorf("%w: code length %d for symbol %#02x", ErrCorrupt, c.Len, c.Symbol)
	}
	cur := int32(0)
	for i := int(c.Len) - 1; i >= 0; i-- {
		if d.nodes[cur].leaf {
			return fmt.Errorf("%w: code %v extends another code", ErrCorrupt, c)
		}
		bit := (c.Bits >> uint(i)) & 1
		next := d.nodes[cur].child[bit]
		if next == noChild {
			next = int32(len(d.nodes))
			d.nodes = append(d.nodes, decNode{})
			d.nodes[cur].child[bit] = next
		}
		cur = next
	}
	n := &d.nodes[cur]
	if n.leaf || n.child[0] != noChild || n.child[1] != noChild {
		return fmt.Errorf("%w: code %v is a prefix of another code", ErrCorrupt, c)
	}
	n.leaf = true
	n.symbol = c.Symbol
	return nil
}

// Root is the node every symbol starts from.
func (d *DecodeTable) Root() int32 {
	return 0
}

// Step follows bit from node. When the result is a leaf, ok is true and
// sym holds the decoded symbol; decoding of the next symbol restarts at
// Root. A bit without a matching branch is ErrCorrupt.
func (d *DecodeTable) Step(node int32, bit uint8) (next int32, sym byte, ok bool, err error) {
	next = d.nodes[node].child[bit&1]
	if next == noChild {
		return 0, 0, false, ErrCorrupt
	}
	n := &d.nodes[next]
	if n.leaf {
		return 0, n.symbol, true, nil
	}
	return next, 0, false, nil
}
