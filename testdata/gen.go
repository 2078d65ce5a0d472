// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build ignore

// Generates runs.bin and skewed.bin.
//
// The runs.bin file is made of byte runs of widely varying length, many of
// them longer than a single RLE1 unit can describe. The skewed.bin file draws
// from a small, unevenly weighted alphabet, which yields the long shared
// rotation prefixes that stress the rotation sorter.
package main

import "io/ioutil"
import "math/rand"

const size = 1 << 18

func main() {
	r := rand.New(rand.NewSource(0))

	runLen := func() (l int) {
		p := r.Float32()
		switch {
		case p <= 0.40: // 1..4
			l = 1 + r.Int()%4
		case p <= 0.70: // 4..16
			l = 4 + r.Int()%12
		case p <= 0.90: // 16..256
			l = 16 + r.Int()%240
		case p <= 1.0: // 256..1024
			l = 256 + r.Int()%768
		}
		return l
	}

	var b []byte
	for len(b) < size {
		c, l := byte(r.Int()), runLen()
		for i := 0; i < l; i++ {
			b = append(b, c)
		}
	}
	write("runs.bin", b[:size])

	alphabet := []byte("eeeeeeetttttaaaaoooinsrh \n")
	b = b[:0]
	for len(b) < size {
		b = append(b, alphabet[r.Int()%len(alphabet)])
	}
	write("skewed.bin", b)
}

func write(name string, b []byte) {
	if err := ioutil.WriteFile(name, b, 0664); err != nil {
		panic(err)
	}
}
