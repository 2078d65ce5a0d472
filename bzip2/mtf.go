// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import "github.com/dsnet/blocksort/internal"

// The move-to-front transform replaces every byte with its current position
// in a table of all 256 byte values, then moves that byte to the front of the
// table. Recently used bytes thus map to small indexes, which turns the
// clustered output of the BWT into a stream dominated by zeros.
//
// For example, if the input was:
//	vals: "bananaaa"
//
// Then the output will be:
//	idxs: []uint8{98, 98, 110, 1, 1, 1, 0, 0}
//
// The table of a fresh encoder or decoder is the identity permutation.
// The table is state; an instance continues where the last call left off.

type mtfTable [256]uint8

func newMTFTable() (t mtfTable) {
	for i := range t {
		t[i] = uint8(i)
	}
	return t
}

// moveToFront moves the byte at position idx to the front and returns it.
func (t *mtfTable) moveToFront(idx uint8) uint8 {
	val, i := t[idx], int(idx)
	if i > 0 {
		copy(t[1:i+1], t[:i])
		t[0] = val
	}
	return val
}

// checkPermutation panics if the table lost or duplicated a byte value.
func (t *mtfTable) checkPermutation() {
	var seen [256]bool
	for _, v := range t {
		if seen[v] {
			panic("move-to-front table is not a permutation")
		}
		seen[v] = true
	}
}

// MTFEncoder is the forward move-to-front transform.
type MTFEncoder struct{ table mtfTable }

// NewMTFEncoder returns an encoder starting from the identity table.
func NewMTFEncoder() *MTFEncoder {
	return &MTFEncoder{table: newMTFTable()}
}

// EncodeByte returns the position of val and moves it to the front.
func (m *MTFEncoder) EncodeByte(val byte) uint8 {
	if m.table[0] == val {
		return 0
	}
	var idx uint8 = 1
	for m.table[idx] != val {
		idx++
	}
	m.table.moveToFront(idx)
	return idx
}

// Encode transforms vals in place.
func (m *MTFEncoder) Encode(vals []byte) {
	for i, v := range vals {
		vals[i] = m.EncodeByte(v)
	}
	if internal.Debug {
		m.table.checkPermutation()
	}
}

// MTFDecoder is the inverse move-to-front transform.
type MTFDecoder struct{ table mtfTable }

// NewMTFDecoder returns a decoder starting from the identity table.
func NewMTFDecoder() *MTFDecoder {
	return &MTFDecoder{table: newMTFTable()}
}

// DecodeByte returns the byte at position idx and moves it to the front.
func (m *MTFDecoder) DecodeByte(idx uint8) byte {
	return m.table.moveToFront(idx)
}

// Decode transforms idxs in place.
func (m *MTFDecoder) Decode(idxs []byte) {
	for i, idx := range idxs {
		idxs[i] = m.DecodeByte(idx)
	}
	if internal.Debug {
		m.table.checkPermutation()
	}
}

// EncodeMTF returns the move-to-front transform of vals using a fresh table.
func EncodeMTF(vals []byte) []byte {
	idxs := append([]byte{}, vals...)
	NewMTFEncoder().Encode(idxs)
	return idxs
}

// DecodeMTF inverts EncodeMTF.
func DecodeMTF(idxs []byte) []byte {
	vals := append([]byte{}, idxs...)
	NewMTFDecoder().Decode(vals)
	return vals
}
