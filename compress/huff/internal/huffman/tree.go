// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"container/heap"
	"errors"
	"fmt"
)

var (
	// ErrUnrepresentable is the parent of every error caused by an input
	// the file format cannot describe.
	ErrUnrepresentable = errors.New("huff: unrepresentable input")
	// ErrEmpty is returned for a histogram without symbols.
	ErrEmpty = fmt.Errorf("%w: empty input", ErrUnrepresentable)
)

// Node is a vertex of the prefix tree. Leaves have no children; internal
// nodes have both, and their Count is the sum of the children's counts.
type Node struct {
	Count  uint64
	Symbol byte // leaves only
	Zero   *Node
	One    *Node

	// order breaks ties between equal counts: leaves use their symbol,
	// internal nodes 256, 257, ... in creation order.
	order int
}

// IsLeaf reports whether n carries a symbol.
func (n *Node) IsLeaf() bool {
	return n.Zero == nil
}

// BuildTree builds the prefix tree for h by repeatedly merging the two
// lightest nodes. The first node taken becomes the zero branch.
// A histogram with a single symbol yields a lone leaf.
func BuildTree(h *Histogram) (*Node, error) {
	q := make(nodeHeap, 0, 256)
	for i, c := range h {
		if c != 0 {
			q = append(q, &Node{Count: c, Symbol: byte(i), order: i})
		}
	}
	if len(q) == 0 {
		return nil, ErrEmpty
	}
	heap.Init(&q)
	next := len(h)
	for q.Len() > 1 {
		a := heap.Pop(&q).(*Node)
		b := heap.Pop(&q).(*Node)
		heap.Push(&q, &Node{
			Count: a.Count + b.Count,
			Zero:  a,
			One:   b,
			order: next,
		})
		next++
	}
	return q[0], nil
}

// Heap of tree nodes, a priority queue used during tree building.
type nodeHeap []*Node

func (q nodeHeap) Len() int { return len(q) }
func (q nodeHeap) Less(i, j int) bool {
	if q[i].Count != q[j].Count {
		return q[i].Count < q[j].Count
	}
	return q[i].order < q[j].order
}
func (q nodeHeap) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeHeap) Push(x any) {
	*q = append(*q, x.(*Node))
}

func (q *nodeHeap) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}
