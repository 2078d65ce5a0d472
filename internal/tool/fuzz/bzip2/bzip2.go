// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build gofuzz

package bzip2

import (
	"bytes"
	"io/ioutil"

	"github.com/dsnet/blocksort/bzip2"
	"github.com/dsnet/blocksort/internal/errors"
)

func Fuzz(data []byte) int {
	testStages(data)
	for _, n := range []int{1, 5, 64, 1 << 12} {
		testBlocks(data, n)
	}
	if testDecoder(data) {
		return 1 // Favor inputs that decode
	}
	return 0
}

// testStages checks that every transform is inverted by its counterpart.
func testStages(data []byte) {
	rle := bzip2.EncodeRLE1(data)
	if !bytes.Equal(bzip2.DecodeRLE1(rle), data) {
		panic("mismatching RLE1 bytes")
	}
	b, err := ioutil.ReadAll(bzip2.NewRunLengthDecoder(rle))
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(b, data) {
		panic("mismatching streaming RLE1 bytes")
	}

	if !bytes.Equal(bzip2.DecodeMTF(bzip2.EncodeMTF(data)), data) {
		panic("mismatching MTF bytes")
	}

	buf := append([]byte(nil), data...)
	ptr := bzip2.ForwardBWT(buf)
	if len(data) <= 1<<12 && !bytes.Equal(buf, bzip2.NaiveBWT(data)) {
		panic("mismatching BWT against reference sorter")
	}
	bzip2.ReverseBWT(buf, ptr)
	if !bytes.Equal(buf, data) {
		panic("mismatching BWT bytes")
	}
}

// testBlocks round-trips data through a Writer and Reader using blocks of
// at most blkSize bytes.
func testBlocks(data []byte, blkSize int) {
	var bl bzip2.BlockList
	zw, err := bzip2.NewWriter(&bl, nil)
	if err != nil {
		panic(err)
	}
	bzip2.SetBlockSize(zw, blkSize)
	if n, err := zw.Write(data); n != len(data) || err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	for _, blk := range bl.Blocks {
		if len(blk.Symbols) > blkSize {
			panic("block exceeds capacity")
		}
	}

	zr, err := bzip2.NewReader(&bl, nil)
	if err != nil {
		panic(err)
	}
	b, err := ioutil.ReadAll(zr)
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(b, data) {
		panic("mismatching bytes")
	}
	if zr.Checksum() != bzip2.CRC(data) || zw.Checksum() != zr.Checksum() {
		panic("mismatching checksum")
	}
}

// testDecoder treats data as an arbitrary block. The Reader must either
// reject it as corrupted or decode it without panicking.
func testDecoder(data []byte) bool {
	var ptr int
	if len(data) > 0 {
		ptr = int(data[0]) % len(data)
	}
	blk := bzip2.Block{Symbols: data, Ptr: ptr}

	// The checksum is unknown, so decode once to learn it. The whole block
	// is emitted before its checksum is verified.
	zr, _ := bzip2.NewReader(&bzip2.BlockList{Blocks: []bzip2.Block{blk}}, nil)
	b, err := ioutil.ReadAll(zr)
	if err != nil && !errors.IsCorrupted(err) {
		panic(err)
	}
	blk.CRC = bzip2.CRC(b)

	zr, _ = bzip2.NewReader(&bzip2.BlockList{Blocks: []bzip2.Block{blk}}, nil)
	b2, err := ioutil.ReadAll(zr)
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(b, b2) {
		panic("mismatching bytes")
	}
	return len(b) > 0
}
