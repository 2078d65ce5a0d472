// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import (
	"github.com/dsnet/blocksort/bzip2/internal/rotsort"
	"github.com/dsnet/blocksort/internal"
)

// The Burrows-Wheeler Transform implementation used here sorts all cyclic
// rotations of the block directly with a multi-key quicksort (see rotsort).
// Unlike a suffix array approach, no duplicated copy of the input is needed
// since rotations wrap around on their own.
//
// The inverse transform uses the LF-mapping: the k-th occurrence of a byte in
// the last column is the same byte of the input as the k-th occurrence of that
// byte in the first column. The first column is simply the sorted block, and
// can be derived from the last column by counting sort.
//
// References:
//	http://www.hpl.hp.com/techreports/Compaq-DEC/SRC-RR-124.pdf
//	https://www.quora.com/How-can-I-optimize-burrows-wheeler-transform-and-inverse-transform-to-work-in-O-n-time-O-n-space
type burrowsWheelerTransform struct {
	buf   []byte
	order []int

	// Inverse transform tables.
	shortcut []int
	first    []byte
}

// Encode replaces buf with the last column of its sorted rotations and
// returns the primary index. The empty block has primary index 0.
func (bwt *burrowsWheelerTransform) Encode(buf []byte) (ptr int) {
	n := len(buf)
	checkBlockSize(n)
	if n == 0 {
		return 0
	}

	// Step 1: Make a private copy of the block for the sorter to borrow.
	bwt.buf = append(bwt.buf[:0], buf...)
	if cap(bwt.order) < n {
		bwt.order = make([]int, n)
	}
	t, order := bwt.buf, bwt.order[:n]

	// Step 2: Sort all rotations. Rotations are only referred to by offset.
	rotsort.Sort(t, order)

	// Step 3: Each row of the last column holds the byte preceding its
	// rotation. The row of rotation 0 is the primary index.
	for k, h := range order {
		if h == 0 {
			ptr = k
			h = n
		}
		buf[k] = t[h-1]
	}
	return ptr
}

// Decode replaces buf, the last column of a transformed block, with the
// original block. The ptr must be the value returned by Encode.
func (bwt *burrowsWheelerTransform) Decode(buf []byte, ptr int) {
	n := len(buf)
	checkBlockSize(n)
	if n == 0 {
		return
	}
	if ptr < 0 || ptr >= n {
		panic("primary index out of range")
	}

	// Step 1: Histogram of the last column.
	hist := Histogram(buf)

	// Step 2: Rank of every byte among prior occurrences of the same value.
	if cap(bwt.shortcut) < n {
		bwt.shortcut = make([]int, n)
	}
	shortcut := bwt.shortcut[:n]
	var seen [256]int
	for i, b := range buf {
		shortcut[i] = seen[b]
		seen[b]++
	}

	// Step 3: The first column is the sorted last column.
	bwt.first = countSort(bwt.first[:0], buf, &hist)

	// Step 4: Where each byte value begins in the first column.
	var start [256]int
	distinct := numDistinct(&hist)
	for i, b := range bwt.first {
		if i == 0 || b != bwt.first[i-1] {
			start[b] = i
			if distinct--; distinct == 0 {
				break // All byte values seen
			}
		}
	}

	// Step 5: Walk the LF-mapping. Every step moves one byte backwards in the
	// original block, so the output is filled from the end.
	bwt.buf = append(bwt.buf[:0], buf...)
	last := bwt.buf
	idx := ptr
	for i := n - 1; i >= 0; i-- {
		b := last[idx]
		buf[i] = b
		idx = start[b] + shortcut[idx]
	}
}

func numDistinct(hist *[256]int) (n int) {
	for _, c := range hist {
		if c > 0 {
			n++
		}
	}
	return n
}

func checkBlockSize(n int) {
	if uint64(n) > internal.MaxBlockSize {
		panic("block exceeds 32-bit index space")
	}
}

// EncodeBWT computes the Burrows-Wheeler transform of block. It returns the
// last column of the sorted rotation matrix and the row index of the
// unrotated block. The block itself is not modified.
func EncodeBWT(block []byte) (lastCol []byte, ptr int) {
	var bwt burrowsWheelerTransform
	lastCol = append([]byte{}, block...)
	ptr = bwt.Encode(lastCol)
	return lastCol, ptr
}

// DecodeBWT inverts EncodeBWT. It panics if ptr is not a valid row index
// for a non-empty lastCol.
func DecodeBWT(lastCol []byte, ptr int) []byte {
	var bwt burrowsWheelerTransform
	block := append([]byte{}, lastCol...)
	bwt.Decode(block, ptr)
	return block
}

// Histogram counts the occurrences of each byte value in data.
func Histogram(data []byte) (hist [256]int) {
	for _, b := range data {
		hist[b]++
	}
	return hist
}

// CountSort returns a sorted copy of data, where hist must be the histogram
// of data. It runs in O(len(data) + 256).
func CountSort(data []byte, hist *[256]int) []byte {
	return countSort(make([]byte, 0, len(data)), data, hist)
}

// countSort appends the sorted bytes described by hist to dst. Since only
// byte identity matters, it writes each value's run directly rather than
// placing the elements of data one by one.
func countSort(dst, data []byte, hist *[256]int) []byte {
	if cap(dst)-len(dst) < len(data) {
		dst = append(make([]byte, 0, len(dst)+len(data)), dst...)
	}
	out := dst[len(dst) : len(dst)+len(data)]
	var pos int
	for b, c := range hist {
		fill(out[pos:pos+c], byte(b))
		pos += c
	}
	return dst[:len(dst)+len(data)]
}
