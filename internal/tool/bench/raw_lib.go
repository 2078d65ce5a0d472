// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"
	"io/ioutil"

	"github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz"
)

// backend constructs the streams of a general purpose compressor.
type backend struct {
	enc Encoder
	dec Decoder
}

var backends = map[int]backend{
	FormatFlate: {newFlateWriter, newFlateReader},
	FormatXZ:    {newXZWriter, newXZReader},
}

func init() {
	for ft, be := range backends {
		RegisterEncoder(ft, "raw", be.enc)
		RegisterDecoder(ft, "raw", be.dec)
	}
}

func newFlateWriter(w io.Writer, lvl int) io.WriteCloser {
	zw, err := flate.NewWriter(w, lvl)
	if err != nil {
		panic(err)
	}
	return zw
}

func newFlateReader(r io.Reader) io.ReadCloser {
	return flate.NewReader(r)
}

// The xz format has no notion of levels; the level is ignored.
func newXZWriter(w io.Writer, lvl int) io.WriteCloser {
	zw, err := xz.NewWriter(w)
	if err != nil {
		panic(err)
	}
	return zw
}

func newXZReader(r io.Reader) io.ReadCloser {
	zr, err := xz.NewReader(r)
	if err != nil {
		panic(err)
	}
	return ioutil.NopCloser(zr)
}
