// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// Rand implements a deterministic pseudo-random number generator.
// This differs from the math.Rand in that the exact output will be consistent
// across different versions of Go.
type Rand struct {
	cipher.Block
	blk [aes.BlockSize]byte
}

func NewRand(seed int) *Rand {
	var key [aes.BlockSize]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	r, _ := aes.NewCipher(key[:])
	return &Rand{Block: r}
}

func (r *Rand) Int() (x int) {
	r.Encrypt(r.blk[:], r.blk[:])
	x |= int(r.blk[0]) << 0
	x |= int(r.blk[1]) << 8
	x |= int(r.blk[2]) << 16
	x |= int(r.blk[3]) << 24
	return x
}

func (r *Rand) Intn(n int) int {
	return r.Int() % n
}

func (r *Rand) Bytes(n int) []byte {
	b := make([]byte, n)
	bb := b
	for len(bb) > 0 {
		r.Encrypt(r.blk[:], r.blk[:])
		cnt := copy(bb, r.blk[:])
		bb = bb[cnt:]
	}
	return b
}

// Alphabet returns n random bytes drawn from the first k byte values.
// Small alphabets produce the shared prefixes that block sorting thrives on.
func (r *Rand) Alphabet(n, k int) []byte {
	b := r.Bytes(n)
	for i := range b {
		b[i] = byte(int(b[i]) % k)
	}
	return b
}

// Runs returns n bytes made of runs of random length in [1, maxRun] over
// the first k byte values. Adjacent runs may share a byte value.
func (r *Rand) Runs(n, k, maxRun int) []byte {
	b := make([]byte, 0, n)
	for len(b) < n {
		c := byte(r.Intn(k))
		for m := 1 + r.Intn(maxRun); m > 0 && len(b) < n; m-- {
			b = append(b, c)
		}
	}
	return b
}
