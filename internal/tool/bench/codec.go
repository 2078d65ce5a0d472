// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bufio"
	"bytes"
	"io"
	"io/ioutil"
	"runtime"
	"testing"

	"github.com/dsnet/blocksort/internal/errors"
)

var errNoCodec = errors.Error{Code: errors.Invalid, Pkg: "bench", Msg: "codec not registered"}

// EncodeRate measures the throughput in MB/s of the encoder of each codec.
func EncodeRate(format int) Measure {
	return func(input []byte, lvl int, codec string) (float64, error) {
		enc := Encoders[format][codec]
		if enc == nil {
			return 0, errNoCodec
		}
		return benchmarkRate(func() (int, error) {
			return len(input), compress(ioutil.Discard, input, enc, lvl)
		})
	}
}

// DecodeRate measures the throughput in MB/s of the decoder of each codec,
// relative to its output. Codecs produce incompatible streams, so the input
// of each decoder is compressed by the encoder of the same codec.
func DecodeRate(format int) Measure {
	return func(input []byte, lvl int, codec string) (float64, error) {
		enc, dec := Encoders[format][codec], Decoders[format][codec]
		if enc == nil || dec == nil {
			return 0, errNoCodec
		}
		var buf bytes.Buffer
		if err := compress(&buf, input, enc, lvl); err != nil {
			return 0, err
		}
		output := buf.Bytes()
		return benchmarkRate(func() (int, error) {
			rd := dec(bufio.NewReader(bytes.NewReader(output)))
			n, err := io.Copy(ioutil.Discard, rd)
			if cerr := rd.Close(); err == nil {
				err = cerr
			}
			return int(n), err
		})
	}
}

// CompressRatio measures the ratio of input size to compressed size.
func CompressRatio(format int) Measure {
	return func(input []byte, lvl int, codec string) (float64, error) {
		enc := Encoders[format][codec]
		if enc == nil {
			return 0, errNoCodec
		}
		var buf bytes.Buffer
		if err := compress(&buf, input, enc, lvl); err != nil {
			return 0, err
		}
		return float64(len(input)) / float64(buf.Len()), nil
	}
}

func compress(w io.Writer, input []byte, enc Encoder, lvl int) error {
	wr := enc(w, lvl)
	_, err := io.Copy(wr, bytes.NewReader(input))
	if cerr := wr.Close(); err == nil {
		err = cerr
	}
	return err
}

// benchmarkRate repeatedly runs fn, which reports the number of bytes it
// processed, and returns the throughput in MB/s.
func benchmarkRate(fn func() (int, error)) (float64, error) {
	var ferr error
	result := testing.Benchmark(func(b *testing.B) {
		runtime.GC()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			n, err := fn()
			if err != nil {
				ferr = err
				b.SkipNow()
			}
			b.SetBytes(int64(n))
		}
	})
	if ferr != nil {
		return 0, ferr
	}
	if result.N == 0 || result.T <= 0 {
		return 0, errors.Error{Code: errors.Internal, Pkg: "bench", Msg: "no iterations measured"}
	}
	us := float64(result.T.Nanoseconds()) / 1e3
	return float64(result.Bytes*int64(result.N)) / us, nil
}
