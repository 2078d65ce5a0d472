// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import "github.com/dsnet/blocksort/internal/errors"

type WriterConfig struct {
	// Level selects the block capacity as Level*100000 bytes of RLE1 output.
	// It must be within BestSpeed..BestCompression, or zero for the default.
	Level int

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Writer is an io.WriteCloser that splits its input into blocks and hands
// every transformed block to a BlockWriter.
type Writer struct {
	InputOffset  int64 // Total number of bytes accepted by Write
	OutputOffset int64 // Total number of symbols passed to the BlockWriter
	NumBlocks    int64 // Number of blocks passed to the BlockWriter

	bw      BlockWriter
	blkSize int // Capacity of the RLE1 output of a block
	err     error

	rle    RunLengthEncoder
	bwt    burrowsWheelerTransform
	blk    Block
	blkCRC crc    // CRC of the input bytes in the current block
	sum    uint32 // CRC of the input bytes of all flushed blocks
}

func NewWriter(bw BlockWriter, conf *WriterConfig) (*Writer, error) {
	lvl := DefaultCompression
	if conf != nil && conf.Level != 0 {
		lvl = conf.Level
	}
	if lvl < BestSpeed || lvl > BestCompression {
		return nil, errorf(errors.Invalid, "compression level: %d", lvl)
	}
	zw := &Writer{blkSize: lvl * blockSize}
	zw.Reset(bw)
	return zw, nil
}

// Reset discards the Writer's state and makes it equivalent to the result
// of a call to NewWriter with the same configuration, but writing to bw.
func (zw *Writer) Reset(bw BlockWriter) error {
	buf := zw.rle.buf
	if cap(buf) != zw.blkSize {
		buf = make([]byte, 0, zw.blkSize)
	}
	*zw = Writer{
		bw:      bw,
		blkSize: zw.blkSize,
		bwt:     zw.bwt,
	}
	zw.rle.Init(buf)
	return nil
}

// Checksum reports the bzip2 CRC-32 of all bytes in blocks flushed so far.
// After Close, this is the checksum of the entire input.
func (zw *Writer) Checksum() uint32 { return zw.sum }

func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}

	var cnt int
	for len(buf) > 0 {
		n, err := zw.rle.Write(buf)
		zw.blkCRC.update(buf[:n])
		zw.InputOffset += int64(n)
		buf = buf[n:]
		cnt += n
		if err == ErrBlockFull {
			if zw.err = zw.flush(); zw.err != nil {
				return cnt, zw.err
			}
		}
	}
	return cnt, nil
}

// Close flushes the last block. It does not close the BlockWriter.
func (zw *Writer) Close() error {
	if zw.err == errClosed {
		return nil
	}
	if zw.err != nil {
		return zw.err
	}
	if zw.err = zw.flush(); zw.err != nil {
		return zw.err
	}
	zw.err = errClosed
	return nil
}

// flush transforms the pending RLE1 block and writes it out.
// Nothing is written if no input is pending.
func (zw *Writer) flush() error {
	buf := zw.rle.Finish()
	if len(buf) == 0 {
		return nil
	}

	zw.blk = Block{Ptr: encodeBlock(&zw.bwt, buf), Symbols: buf, CRC: zw.blkCRC.val}
	if err := zw.bw.WriteBlock(&zw.blk); err != nil {
		return errWrap(err, errors.Internal)
	}
	zw.sum = combineCRC(zw.sum, zw.blkCRC.val, zw.blkCRC.cnt)
	zw.OutputOffset += int64(len(buf))
	zw.NumBlocks++

	zw.blk.Symbols = nil
	zw.blkCRC = crc{}
	zw.rle.Reset()
	return nil
}
