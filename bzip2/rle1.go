// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import (
	"io"

	"github.com/dsnet/blocksort/internal/errors"
)

// The first RLE stage of bzip2 replaces every sequence of 4..255 duplicated
// bytes by only the first 4 bytes, and a single byte representing the repeat
// length minus 4. Runs shorter than 4 are left as literals. Like the C bzip2
// implementation, a run of 4 or more is always terminated with a count, even
// when the count is zero, and runs longer than 255 are split into several
// independent units.
//
// For example, if the input was:
//	input:  "AAAAAAABBBBCCCD"
//
// Then the output will be:
//	output: "AAAA\x03BBBB\x00CCCD"
//
// The decoder scans 4-byte windows. Four equal bytes are followed by a count
// unless the window sits at the very end of the stream, in which case they
// are literals. Otherwise only the equal prefix of the window is emitted.

// ErrBlockFull is returned by RunLengthEncoder.Write when the encoded output
// has reached its capacity and no further input can be accepted.
//
// It is a flow-control sentinel rather than a failure, which is why it
// carries no meaningful error code. Writer.Write compares against it by
// identity to decide when to flush a block, so it must never be wrapped.
var ErrBlockFull = errorf(errors.Unknown, "RLE1 block is full")

// EncodeRLE1 run-length encodes all of data.
func EncodeRLE1(data []byte) []byte {
	// Four input bytes never expand to more than five output bytes.
	out := make([]byte, 0, len(data)+len(data)/4+1)
	for i := 0; i < len(data); {
		val, cnt := data[i], 1
		for cnt < maxRunLen && i+cnt < len(data) && data[i+cnt] == val {
			cnt++
		}
		out = appendRun(out, val, cnt)
		i += cnt
	}
	return out
}

// DecodeRLE1 reverses EncodeRLE1.
//
// The input is assumed to be the output of an RLE1 encoder; malformed input
// does not cause an error but decodes to unspecified output.
func DecodeRLE1(buf []byte) []byte {
	var n int
	for i := 0; i < len(buf); {
		_, cnt, adv := scanRun(buf, i)
		n += cnt
		i += adv
	}

	out := make([]byte, n)
	var j int
	for i := 0; i < len(buf); {
		val, cnt, adv := scanRun(buf, i)
		fill(out[j:j+cnt], val)
		j += cnt
		i += adv
	}
	return out
}

// appendRun appends the RLE1 unit for cnt copies of val, where cnt is at most
// maxRunLen.
func appendRun(buf []byte, val byte, cnt int) []byte {
	for i := 0; i < cnt && i < 4; i++ {
		buf = append(buf, val)
	}
	if cnt >= 4 {
		buf = append(buf, byte(cnt-4))
	}
	return buf
}

// encodedLen reports the size of the RLE1 unit for a run of cnt bytes.
func encodedLen(cnt int) int {
	if cnt < 4 {
		return cnt
	}
	return 5
}

// scanRun decodes the unit starting at buf[i]. It reports the byte value,
// the number of copies it expands to, and the number of encoded bytes it
// occupies.
func scanRun(buf []byte, i int) (val byte, cnt, adv int) {
	val = buf[i]
	if i+4 >= len(buf) {
		return val, 1, 1 // Trailing bytes are always literals
	}
	cnt = 1
	for cnt < 4 && buf[i+cnt] == val {
		cnt++
	}
	if cnt == 4 {
		return val, 4 + int(buf[i+4]), 5
	}
	return val, cnt, cnt
}

func fill(buf []byte, val byte) {
	for i := range buf {
		buf[i] = val
	}
}

// RunLengthEncoder is a bounded, incremental RLE1 encoder. Input may be
// supplied across many calls; the encoded output never grows beyond the
// capacity set at creation, which allows arbitrarily large input to be split
// into fixed capacity blocks.
//
// The most recent run is held back until it is known to be complete. It is
// only ever extended when its encoded form would still fit, so Finish never
// exceeds the capacity.
type RunLengthEncoder struct {
	buf     []byte // Completed units; cap(buf) is the block capacity
	lastVal byte   // Byte of the pending run
	lastCnt int    // Length of the pending run
}

// NewRunLengthEncoder returns an encoder whose output holds at most maxSize
// bytes.
func NewRunLengthEncoder(maxSize int) *RunLengthEncoder {
	rle := new(RunLengthEncoder)
	rle.Init(make([]byte, 0, maxSize))
	return rle
}

// Init resets the encoder to write into buf, using cap(buf) as the capacity.
func (rle *RunLengthEncoder) Init(buf []byte) {
	*rle = RunLengthEncoder{buf: buf[:0]}
}

// Reset discards all state while keeping the output buffer.
func (rle *RunLengthEncoder) Reset() { rle.Init(rle.buf) }

// Write encodes as much of buf as fits. It returns the number of input bytes
// consumed, and ErrBlockFull if not all of buf could be consumed.
func (rle *RunLengthEncoder) Write(buf []byte) (int, error) {
	for i, b := range buf {
		if rle.lastCnt > 0 && (b != rle.lastVal || rle.lastCnt == maxRunLen) {
			rle.flush()
		}
		if len(rle.buf)+encodedLen(rle.lastCnt+1) > cap(rle.buf) {
			return i, ErrBlockFull
		}
		rle.lastVal = b
		rle.lastCnt++
	}
	return len(buf), nil
}

// Encode is like Write, but only reports the number of bytes consumed.
func (rle *RunLengthEncoder) Encode(data []byte) int {
	n, _ := rle.Write(data)
	return n
}

// Len reports the size the encoded output would have if Finish were called.
func (rle *RunLengthEncoder) Len() int {
	return len(rle.buf) + encodedLen(rle.lastCnt)
}

// Finish flushes the pending run and returns the encoded block.
// The returned slice aliases the encoder's buffer until the next Init.
func (rle *RunLengthEncoder) Finish() []byte {
	rle.flush()
	return rle.buf
}

func (rle *RunLengthEncoder) flush() {
	if rle.lastCnt > 0 {
		rle.buf = appendRun(rle.buf, rle.lastVal, rle.lastCnt)
		rle.lastCnt = 0
	}
}

// RunLengthDecoder is an io.Reader that incrementally decodes an RLE1 block.
// It produces exactly the output of DecodeRLE1.
type RunLengthDecoder struct {
	buf     []byte
	idx     int
	lastVal byte
	lastCnt int // Number of copies of lastVal yet to be read
}

// NewRunLengthDecoder returns a decoder reading the encoded block buf.
func NewRunLengthDecoder(buf []byte) *RunLengthDecoder {
	rld := new(RunLengthDecoder)
	rld.Init(buf)
	return rld
}

// Init resets the decoder to read from buf.
func (rld *RunLengthDecoder) Init(buf []byte) {
	*rld = RunLengthDecoder{buf: buf}
}

func (rld *RunLengthDecoder) Read(buf []byte) (int, error) {
	var cnt int
	for cnt < len(buf) {
		if rld.lastCnt == 0 {
			if rld.idx >= len(rld.buf) {
				return cnt, io.EOF
			}
			var adv int
			rld.lastVal, rld.lastCnt, adv = scanRun(rld.buf, rld.idx)
			rld.idx += adv
		}
		n := len(buf) - cnt
		if n > rld.lastCnt {
			n = rld.lastCnt
		}
		fill(buf[cnt:cnt+n], rld.lastVal)
		cnt += n
		rld.lastCnt -= n
	}
	return cnt, nil
}
