// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"golang.org/x/sync/errgroup"
)

// ErrOverflow is returned when a symbol count would not fit in 64 bits.
var ErrOverflow = fmt.Errorf("%w: symbol count overflow", ErrUnrepresentable)

// minChunk keeps tiny inputs on a single goroutine.
const minChunk = 64 * 1024

// Histogram holds the occurrence count of every byte value.
// A zero count means the symbol is absent.
type Histogram [256]uint64

// Add counts every byte of p.
func (h *Histogram) Add(p []byte) error {
	for _, b := range p {
		if h[b] == math.MaxUint64 {
			return ErrOverflow
		}
		h[b]++
	}
	return nil
}

// Merge adds the counts of o into h.
func (h *Histogram) Merge(o *Histogram) error {
	for i, v := range o {
		if h[i] > math.MaxUint64-v {
			return ErrOverflow
		}
		h[i] += v
	}
	return nil
}

// Total returns the number of counted bytes.
func (h *Histogram) Total() (n uint64) {
	for _, v := range h {
		n += v
	}
	return
}

// Symbols returns the number of distinct byte values present.
func (h *Histogram) Symbols() (n int) {
	for _, v := range h {
		if v != 0 {
			n++
		}
	}
	return
}

// Count reads r to the end and returns its histogram.
func Count(r io.Reader) (*Histogram, error) {
	h := new(Histogram)
	br := bufio.NewReader(r)
	for {
		buf, err := br.Peek(br.Size())
		if len(buf) > 0 {
			if aerr := h.Add(buf); aerr != nil {
				return nil, aerr
			}
			br.Discard(len(buf))
		}
		if err == io.EOF {
			return h, nil
		}
		if err != nil && err != bufio.ErrBufferFull {
			return nil, err
		}
	}
}

// CountBytes returns the histogram of data. With workers > 1 the input is
// split into chunks that are counted concurrently and merged; the result is
// the same for any worker count.
func CountBytes(data []byte, workers int) (*Histogram, error) {
	if workers <= 1 || len(data) < 2*minChunk {
		h := new(Histogram)
		return h, h.Add(data)
	}
	chunk := (len(data) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}
	parts := make([]Histogram, (len(data)+chunk-1)/chunk)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range parts {
		i := i
		lo := i * chunk
		hi := lo + chunk
		if hi > len(data) {
			hi = len(data)
		}
		g.Go(func() error {
			return parts[i].Add(data[lo:hi])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	h := new(Histogram)
	for i := range parts {
		if err := h.Merge(&parts[i]); err != nil {
			return nil, err
		}
	}
	return h, nil
}
