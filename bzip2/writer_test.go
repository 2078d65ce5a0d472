// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import (
	"io"
	"runtime"
	"testing"

	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/blocksort/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestWriterConfig(t *testing.T) {
	for _, lvl := range []int{-1, 10, 100} {
		_, err := NewWriter(new(BlockList), &WriterConfig{Level: lvl})
		assert.True(t, errors.IsInvalid(err), "level %d, got %v", lvl, err)
	}
	for _, lvl := range []int{0, BestSpeed, 5, BestCompression} {
		zw, err := NewWriter(new(BlockList), &WriterConfig{Level: lvl})
		if assert.NoError(t, err, "level %d", lvl) && lvl > 0 {
			assert.Equal(t, lvl*blockSize, zw.blkSize)
		}
	}
	zw, err := NewWriter(new(BlockList), nil)
	assert.NoError(t, err)
	assert.Equal(t, DefaultCompression*blockSize, zw.blkSize)
}

func TestWriterBlocks(t *testing.T) {
	var bl BlockList
	zw, err := NewWriter(&bl, &WriterConfig{Level: BestSpeed})
	assert.NoError(t, err)
	encodeBlocks(t, zw, testutil.NewRand(0).Bytes(250000))

	assert.Equal(t, int64(3), zw.NumBlocks)
	assert.Equal(t, int64(250000), zw.InputOffset)
	for _, blk := range bl.Blocks {
		assert.True(t, len(blk.Symbols) <= BestSpeed*blockSize)
		assert.True(t, blk.Ptr >= 0 && blk.Ptr < len(blk.Symbols))
	}
}

func TestWriterEmpty(t *testing.T) {
	var bl BlockList
	zw, _ := NewWriter(&bl, nil)
	assert.NoError(t, zw.Close())
	assert.Empty(t, bl.Blocks)
	assert.Equal(t, uint32(0), zw.Checksum())
}

func TestWriterClose(t *testing.T) {
	var bl BlockList
	zw, _ := NewWriter(&bl, nil)
	_, err := zw.Write([]byte("Hello, world!"))
	assert.NoError(t, err)
	assert.NoError(t, zw.Close())
	assert.NoError(t, zw.Close())
	assert.Len(t, bl.Blocks, 1)

	_, err = zw.Write([]byte("more"))
	assert.True(t, errors.IsClosed(err), "got %v", err)

	// Reset makes the Writer usable again.
	assert.NoError(t, zw.Reset(&bl))
	_, err = zw.Write([]byte("more"))
	assert.NoError(t, err)
	assert.NoError(t, zw.Close())
	assert.Len(t, bl.Blocks, 2)
}

type failWriter struct{ err error }

func (fw failWriter) WriteBlock(*Block) error { return fw.err }

func TestWriterBlockError(t *testing.T) {
	zw, _ := NewWriter(failWriter{io.ErrShortWrite}, nil)
	_, err := zw.Write([]byte("Hello, world!"))
	assert.NoError(t, err)
	assert.Equal(t, io.ErrShortWrite, zw.Close())

	// The error is persistent.
	_, err = zw.Write([]byte("more"))
	assert.Equal(t, io.ErrShortWrite, err)

	zw, _ = NewWriter(failWriter{errorf(errors.Invalid, "bad block")}, nil)
	zw.Write([]byte("Hello, world!"))
	assert.True(t, errors.IsInternal(zw.Close()))
}

func benchmarkEncode(b *testing.B, input []byte, level int) {
	b.StopTimer()
	b.SetBytes(int64(len(input)))
	zw, err := NewWriter(nil, &WriterConfig{Level: level})
	if err != nil {
		b.Fatalf("unexpected error: %v", err)
	}
	runtime.GC()
	b.ReportAllocs()
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		zw.Reset(new(BlockList))
		if _, err := zw.Write(input); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
		if err := zw.Close(); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkEncodeTwain1e5(b *testing.B) {
	benchmarkEncode(b, testutil.MustLoadFile(twain, 1e5), BestSpeed)
}
func BenchmarkEncodeTwain1e6(b *testing.B) {
	benchmarkEncode(b, testutil.MustLoadFile(twain, 1e6), DefaultCompression)
}
func BenchmarkEncodeRandom1e6(b *testing.B) {
	benchmarkEncode(b, testutil.NewRand(0).Bytes(1e6), DefaultCompression)
}
