// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build gofuzz

// This file exists to export internal implementation details for fuzz testing.

package bzip2

import "github.com/dsnet/blocksort/bzip2/internal/rotsort"

func ForwardBWT(buf []byte) (ptr int) {
	var bwt burrowsWheelerTransform
	return bwt.Encode(buf)
}

func ReverseBWT(buf []byte, ptr int) {
	var bwt burrowsWheelerTransform
	bwt.Decode(buf, ptr)
}

// NaiveBWT computes the last column with the reference rotation sorter.
// Rows of identical rotations may hold any of their offsets, so only the
// column is comparable with ForwardBWT, not the pointer.
func NaiveBWT(buf []byte) []byte {
	order := make([]int, len(buf))
	rotsort.SortNaive(buf, order)
	out := make([]byte, len(buf))
	for k, h := range order {
		out[k] = buf[(h+len(buf)-1)%len(buf)]
	}
	return out
}

// SetBlockSize overrides the RLE1 capacity of each block.
func SetBlockSize(zw *Writer, n int) {
	zw.blkSize = n
	zw.Reset(zw.bw)
}

func CRC(buf []byte) uint32 { return updateCRC(0, buf) }
