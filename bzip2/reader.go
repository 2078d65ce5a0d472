// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import (
	"io"

	"github.com/dsnet/blocksort/internal/errors"
)

type ReaderConfig struct {
	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Reader is an io.ReadCloser that pulls blocks from a BlockReader and emits
// the bytes they were produced from.
type Reader struct {
	InputOffset  int64 // Total number of symbols read from blocks
	OutputOffset int64 // Total number of bytes emitted from Read
	NumBlocks    int64 // Number of blocks read

	br  BlockReader
	err error

	buf     []byte // Inverted block, consumed by rld
	rld     RunLengthDecoder
	bwt     burrowsWheelerTransform
	inBlock bool   // Whether rld holds a block being read
	wantCRC uint32 // CRC recorded for the current block
	blkCRC  crc    // CRC of the bytes emitted for the current block
	sum     uint32 // CRC of the bytes of all verified blocks
}

// NewReader returns a Reader pulling blocks from br. The conf may be nil.
func NewReader(br BlockReader, conf *ReaderConfig) (*Reader, error) {
	zr := new(Reader)
	zr.Reset(br)
	return zr, nil
}

// Reset discards the Reader's state and makes it equivalent to the result
// of a call to NewReader, but reading from br instead.
func (zr *Reader) Reset(br BlockReader) error {
	*zr = Reader{
		br:  br,
		buf: zr.buf[:0],
		bwt: zr.bwt,
	}
	return nil
}

// Checksum reports the bzip2 CRC-32 of all bytes of fully read blocks.
// Once Read returns io.EOF, this is the checksum of the entire output.
func (zr *Reader) Checksum() uint32 { return zr.sum }

func (zr *Reader) Read(buf []byte) (int, error) {
	for {
		if zr.err != nil {
			return 0, zr.err
		}
		if len(buf) == 0 {
			return 0, nil
		}

		n, err := zr.rld.Read(buf)
		if n > 0 {
			zr.blkCRC.update(buf[:n])
			zr.OutputOffset += int64(n)
			return n, nil
		}
		if err != io.EOF {
			// The decoder only comes up short at the end of its block.
			zr.err = errorf(errors.Internal, "RLE1 decoder stalled: %v", err)
			continue
		}
		zr.err = zr.nextBlock()
	}
}

// Close ends the stream. It does not close the BlockReader.
func (zr *Reader) Close() error {
	if zr.err == errClosed {
		return nil
	}
	if zr.err != nil && zr.err != io.EOF {
		return zr.err
	}
	zr.err = errClosed
	zr.br = nil // Release reference to underlying BlockReader
	return nil
}

// nextBlock verifies the block just read and loads the next one.
// It returns io.EOF once the BlockReader is exhausted.
func (zr *Reader) nextBlock() (err error) {
	defer errors.Recover(&err)

	if zr.inBlock {
		if zr.blkCRC.val != zr.wantCRC {
			panicf(errors.Corrupted, "mismatching block checksum: got %08x, want %08x", zr.blkCRC.val, zr.wantCRC)
		}
		zr.sum = combineCRC(zr.sum, zr.blkCRC.val, zr.blkCRC.cnt)
		zr.inBlock = false
	}

	blk, err := zr.br.ReadBlock()
	if err == io.EOF {
		return io.EOF
	}
	if err != nil {
		return errWrap(err, errors.Corrupted)
	}

	n := len(blk.Symbols)
	if n > BestCompression*blockSize {
		panicf(errors.Corrupted, "block size exceeds maximum: %d", n)
	}
	if blk.Ptr < 0 || blk.Ptr >= n && n > 0 || blk.Ptr > 0 && n == 0 {
		panicf(errors.Corrupted, "primary index out of range: %d", blk.Ptr)
	}

	zr.buf = append(zr.buf[:0], blk.Symbols...)
	decodeBlock(&zr.bwt, zr.buf, blk.Ptr)
	zr.rld.Init(zr.buf)
	zr.wantCRC = blk.CRC
	zr.blkCRC = crc{}
	zr.inBlock = true
	zr.InputOffset += int64(n)
	zr.NumBlocks++
	return nil
}
