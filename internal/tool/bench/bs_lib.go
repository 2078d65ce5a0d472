// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/dsnet/blocksort/bzip2"
	"github.com/dsnet/blocksort/internal/errors"
)

func init() {
	for ft, be := range backends {
		be := be
		RegisterEncoder(ft, "bs",
			func(w io.Writer, lvl int) io.WriteCloser {
				return newBlockSortWriter(be.enc(w, lvl), lvl)
			})
		RegisterDecoder(ft, "bs",
			func(r io.Reader) io.ReadCloser {
				return newBlockSortReader(be.dec(r))
			})
	}
}

// Blocks are framed as the uvarint symbol count, the uvarint primary index,
// the big-endian CRC-32, and then the symbols themselves.
const maxFrameHeader = 2*binary.MaxVarintLen64 + 4

// maxFrameSymbols is the largest block a Writer ever produces.
const maxFrameSymbols = bzip2.BestCompression * 100000

var errFrame = errors.Error{Code: errors.Corrupted, Pkg: "bench", Msg: "invalid block frame"}

type frameWriter struct {
	w   io.Writer
	hdr [maxFrameHeader]byte
}

func (fw *frameWriter) WriteBlock(blk *bzip2.Block) error {
	n := binary.PutUvarint(fw.hdr[:], uint64(len(blk.Symbols)))
	n += binary.PutUvarint(fw.hdr[n:], uint64(blk.Ptr))
	binary.BigEndian.PutUint32(fw.hdr[n:], blk.CRC)
	if _, err := fw.w.Write(fw.hdr[:n+4]); err != nil {
		return err
	}
	_, err := fw.w.Write(blk.Symbols)
	return err
}

type frameReader struct {
	r   *bufio.Reader
	blk bzip2.Block
}

func (fr *frameReader) ReadBlock() (*bzip2.Block, error) {
	cnt, err := binary.ReadUvarint(fr.r)
	if err != nil {
		return nil, err // io.EOF only if no frame was started
	}
	ptr, err := binary.ReadUvarint(fr.r)
	if err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	if cnt > maxFrameSymbols || ptr > cnt {
		return nil, errFrame
	}
	var crc [4]byte
	if _, err := io.ReadFull(fr.r, crc[:]); err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	if cap(fr.blk.Symbols) < int(cnt) {
		fr.blk.Symbols = make([]byte, cnt)
	}
	fr.blk.Symbols = fr.blk.Symbols[:cnt]
	if _, err := io.ReadFull(fr.r, fr.blk.Symbols); err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	fr.blk.Ptr = int(ptr)
	fr.blk.CRC = binary.BigEndian.Uint32(crc[:])
	return &fr.blk, nil
}

// blockSortWriter block-sorts its input and compresses the framed blocks
// with a back-end encoder.
type blockSortWriter struct {
	zw *bzip2.Writer
	be io.WriteCloser
}

// blockLevel maps a back-end compression level onto the block size levels,
// which have a narrower range.
func blockLevel(lvl int) int {
	if lvl < bzip2.BestSpeed {
		return bzip2.BestSpeed
	}
	if lvl > bzip2.BestCompression {
		return bzip2.BestCompression
	}
	return lvl
}

func newBlockSortWriter(be io.WriteCloser, lvl int) io.WriteCloser {
	zw, err := bzip2.NewWriter(&frameWriter{w: be}, &bzip2.WriterConfig{Level: blockLevel(lvl)})
	if err != nil {
		panic(err)
	}
	return &blockSortWriter{zw, be}
}

func (bw *blockSortWriter) Write(buf []byte) (int, error) { return bw.zw.Write(buf) }

func (bw *blockSortWriter) Close() error {
	if err := bw.zw.Close(); err != nil {
		return err
	}
	return bw.be.Close()
}

type blockSortReader struct {
	zr *bzip2.Reader
	be io.ReadCloser
}

func newBlockSortReader(be io.ReadCloser) io.ReadCloser {
	zr, err := bzip2.NewReader(&frameReader{r: bufio.NewReader(be)}, nil)
	if err != nil {
		panic(err)
	}
	return &blockSortReader{zr, be}
}

func (br *blockSortReader) Read(buf []byte) (int, error) { return br.zr.Read(buf) }

func (br *blockSortReader) Close() error {
	if err := br.zr.Close(); err != nil {
		return err
	}
	return br.be.Close()
}
