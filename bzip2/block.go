// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import "io"

// Block is a single transformed block. It holds everything the inverse
// transforms need to reproduce the original bytes, and is what a subsequent
// entropy coding stage would consume.
type Block struct {
	Symbols []byte // MTF indexes of the BWT of the RLE1 encoded block
	Ptr     int    // BWT primary index
	CRC     uint32 // bzip2 CRC-32 of the bytes the block decodes to
}

// BlockWriter consumes blocks produced by a Writer.
//
// The Block and its Symbols are only valid for the duration of the call.
// Implementations must copy anything they retain.
type BlockWriter interface {
	WriteBlock(*Block) error
}

// BlockReader supplies blocks to a Reader. ReadBlock returns io.EOF once
// there are no more blocks.
type BlockReader interface {
	ReadBlock() (*Block, error)
}

// BlockList is an in-memory sequence of blocks. It implements both
// BlockWriter and BlockReader, reading back blocks in the order written.
type BlockList struct {
	Blocks []Block
	idx    int
}

// WriteBlock appends a copy of blk.
func (bl *BlockList) WriteBlock(blk *Block) error {
	b := *blk
	b.Symbols = append([]byte(nil), blk.Symbols...)
	bl.Blocks = append(bl.Blocks, b)
	return nil
}

// ReadBlock returns the next unread block.
func (bl *BlockList) ReadBlock() (*Block, error) {
	if bl.idx >= len(bl.Blocks) {
		return nil, io.EOF
	}
	bl.idx++
	return &bl.Blocks[bl.idx-1], nil
}

// Rewind makes the next ReadBlock start again from the first block.
func (bl *BlockList) Rewind() { bl.idx = 0 }

// encodeBlock transforms an RLE1 encoded block in place into MTF symbols and
// returns the BWT primary index.
func encodeBlock(bwt *burrowsWheelerTransform, buf []byte) (ptr int) {
	ptr = bwt.Encode(buf)
	NewMTFEncoder().Encode(buf)
	return ptr
}

// decodeBlock reverses encodeBlock in place.
func decodeBlock(bwt *burrowsWheelerTransform, buf []byte, ptr int) {
	NewMTFDecoder().Decode(buf)
	bwt.Decode(buf, ptr)
}
