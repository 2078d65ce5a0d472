// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"math"

	"github.com/dsnet/blocksort/bzip2"
	"github.com/dsnet/blocksort/internal/errors"
)

// Stages lists the transforms of the pipeline in the order a block passes
// through them, each followed by its inverse.
var Stages = []string{"rle1", "unrle1", "bwt", "unbwt", "mtf", "unmtf"}

// Stats lists the statistics reported of the sorted blocks.
var Stats = []string{"blocks", "bwt-H0", "mtf-H0", "mtf-zeros"}

var errStage = errors.Error{Code: errors.Invalid, Pkg: "bench", Msg: "unknown stage or statistic"}

// sortedBlock is one block of the pipeline, kept in every intermediate form.
type sortedBlock struct {
	rle []byte // RLE1 output
	bwt []byte // Last column of the sorted rotations of rle
	ptr int
	mtf []byte // MTF indexes of bwt
}

// sortBlocks splits input into blocks the way a Writer at the given level
// does, and derives the other forms of each.
func sortBlocks(input []byte, lvl int) ([]sortedBlock, error) {
	var bl bzip2.BlockList
	zw, err := bzip2.NewWriter(&bl, &bzip2.WriterConfig{Level: blockLevel(lvl)})
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(input); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	blks := make([]sortedBlock, len(bl.Blocks))
	for i, blk := range bl.Blocks {
		blks[i] = sortedBlock{
			rle: bzip2.DecodeBWT(blk.Symbols, blk.Ptr),
			bwt: blk.Symbols,
			ptr: blk.Ptr,
			mtf: bzip2.EncodeMTF(blk.Symbols),
		}
	}
	return blks, nil
}

// StageRate is a Measure of the throughput in MB/s of a single stage,
// relative to the number of bytes the stage consumes.
func StageRate(input []byte, lvl int, stage string) (float64, error) {
	var run func(b sortedBlock) int
	switch stage {
	case "rle1":
		return benchmarkRate(func() (int, error) {
			bzip2.EncodeRLE1(input)
			return len(input), nil
		})
	case "unrle1":
		run = func(b sortedBlock) int { bzip2.DecodeRLE1(b.rle); return len(b.rle) }
	case "bwt":
		run = func(b sortedBlock) int { bzip2.EncodeBWT(b.rle); return len(b.rle) }
	case "unbwt":
		run = func(b sortedBlock) int { bzip2.DecodeBWT(b.bwt, b.ptr); return len(b.bwt) }
	case "mtf":
		run = func(b sortedBlock) int { bzip2.EncodeMTF(b.bwt); return len(b.bwt) }
	case "unmtf":
		run = func(b sortedBlock) int { bzip2.DecodeMTF(b.mtf); return len(b.mtf) }
	default:
		return 0, errStage
	}

	blks, err := sortBlocks(input, lvl)
	if err != nil {
		return 0, err
	}
	return benchmarkRate(func() (int, error) {
		var n int
		for _, b := range blks {
			n += run(b)
		}
		return n, nil
	})
}

// SymbolStats is a Measure of the sorted blocks. The statistics are:
//	blocks:    number of blocks
//	bwt-H0:    order-0 entropy of the BWT output in bits per symbol
//	mtf-H0:    order-0 entropy of the MTF output in bits per symbol
//	mtf-zeros: percentage of MTF output that is zero
//
// The per-symbol values are over all blocks combined. Block-sorting pays off
// when mtf-H0 is well below the entropy of the input itself.
func SymbolStats(input []byte, lvl int, stat string) (float64, error) {
	var weigh func(b sortedBlock) float64
	switch stat {
	case "blocks":
	case "bwt-H0":
		weigh = func(b sortedBlock) float64 { return entropy(b.bwt) * float64(len(b.bwt)) }
	case "mtf-H0":
		weigh = func(b sortedBlock) float64 { return entropy(b.mtf) * float64(len(b.mtf)) }
	case "mtf-zeros":
		weigh = func(b sortedBlock) float64 { return 100 * float64(bzip2.Histogram(b.mtf)[0]) }
	default:
		return 0, errStage
	}

	blks, err := sortBlocks(input, lvl)
	if err != nil {
		return 0, err
	}
	if weigh == nil {
		return float64(len(blks)), nil
	}
	var sum float64
	var total int
	for _, b := range blks {
		sum += weigh(b)
		total += len(b.bwt)
	}
	if total == 0 {
		return math.NaN(), nil
	}
	return sum / float64(total), nil
}

// entropy returns the order-0 Shannon entropy of data in bits per symbol.
func entropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	var h float64
	hist := bzip2.Histogram(data)
	for _, c := range hist {
		if c > 0 {
			p := float64(c) / float64(len(data))
			h -= p * math.Log2(p)
		}
	}
	return h
}
