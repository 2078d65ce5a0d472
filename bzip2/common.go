// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bzip2 implements the block-sorting transforms of the BZip2 format.
//
// The compression direction applies, in order, the first run-length encoding
// (RLE1), the Burrows-Wheeler transform (BWT), and the move-to-front
// transform (MTF). Each stage is exposed on its own together with its
// inverse. The Writer and Reader chain all three over a stream of bounded
// blocks. Entropy coding and the bzip2 container format are not provided.
package bzip2

import (
	"fmt"
	"hash/crc32"

	"github.com/dsnet/blocksort/internal"
	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/golib/hashutil"
)

// There does not exist a formal specification of the BZip2 format. As such,
// much of this work is derived by either reverse engineering the original C
// source code or using secondary sources.
//
// References:
//	http://bzip.org/
//	https://github.com/bzip2/bzip2
//	https://en.wikipedia.org/wiki/Bzip2

const (
	BestSpeed          = 1
	BestCompression    = 9
	DefaultCompression = 9
)

const (
	blockSize = 100000 // Bytes of RLE1 output per compression level
	maxRunLen = 255    // Longest run described by a single RLE1 unit
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "bzip2", Msg: fmt.Sprintf(f, a...)}
}

func panicf(c int, f string, a ...interface{}) {
	errors.Panic(errorf(c, f, a...))
}

// errWrap converts a lower-level errors.Error to be one from this package.
// The replaceCode passed in will be used to replace the code for any errors
// with the errors.Invalid code.
//
// For the Reader, set this to errors.Corrupted.
// For the Writer, set this to errors.Internal.
func errWrap(err error, replaceCode int) error {
	if cerr, ok := err.(errors.Error); ok {
		if errors.IsInvalid(cerr) {
			cerr.Code = replaceCode
		}
		err = errorf(cerr.Code, "%s", cerr.Msg)
	}
	return err
}

var errClosed = errorf(errors.Closed, "")

// updateCRC returns the result of adding the bytes in buf to the crc.
func updateCRC(crc uint32, buf []byte) uint32 {
	// The CRC-32 computation in bzip2 treats bytes as having bits in big-endian
	// order. That is, the MSB is read before the LSB. Thus, we can use the
	// standard library version of CRC-32 IEEE with some minor adjustments.
	crc = internal.ReverseUint32(crc)
	var arr [4096]byte
	for len(buf) > 0 {
		cnt := copy(arr[:], buf)
		buf = buf[cnt:]
		for i, b := range arr[:cnt] {
			arr[i] = internal.ReverseLUT[b]
		}
		crc = crc32.Update(crc, crc32.IEEETable, arr[:cnt])
	}
	return internal.ReverseUint32(crc)
}

// combineCRC combines two CRC-32 checksums together, where len2 is the number
// of bytes covered by crc2.
func combineCRC(crc1, crc2 uint32, len2 int64) uint32 {
	if len2 == 0 {
		return crc1
	}
	crc1 = internal.ReverseUint32(crc1)
	crc2 = internal.ReverseUint32(crc2)
	crc := hashutil.CombineCRC32(crc32.IEEE, crc1, crc2, len2)
	return internal.ReverseUint32(crc)
}

// crc accumulates the bzip2 CRC-32 of all bytes of a single block.
type crc struct {
	val uint32
	cnt int64
}

func (c *crc) update(buf []byte) {
	c.val = updateCRC(c.val, buf)
	c.cnt += int64(len(buf))
}
