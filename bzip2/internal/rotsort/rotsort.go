// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package rotsort sorts the cyclic rotations of a block.
package rotsort

// The production sorter is a ternary (multi-key) quicksort by Bentley and
// Sedgewick, specialized to cyclic keys. Each rotation is identified only by
// its starting offset into the block; the key of rotation h at depth d is
// t[(h+d) mod n]. Partitioning three ways at a single depth collapses long
// runs of equal bytes into the middle partition in one pass, which is then
// sorted one depth deeper.
//
// Two cases would make the multi-key quicksort quadratic. A periodic block
// has groups of identical rotations that never split, so the sort depth is
// bounded by the smallest period of the block rather than its length: rows
// of a block with period p are identical exactly when their offsets agree
// modulo p, and otherwise differ within p bytes. A block that is nearly
// periodic has long but finite shared prefixes; once the quicksort has spent
// its work budget, the block is sorted again from scratch by prefix doubling,
// which is O(n log n) regardless of the input. The C bzip2 implementation
// makes the same trade with its fallbackSort.
//
// References:
//	https://www.cs.princeton.edu/~rs/strings/paper.pdf
//	http://www.hpl.hp.com/techreports/Compaq-DEC/SRC-RR-124.pdf

import "github.com/dsnet/blocksort/internal"

// Partitions smaller than this are finished with insertion sort.
const insertionThreshold = 10

// Key inspections per byte the quicksort may spend before falling back to
// prefix doubling.
const budgetFactor = 64

// Sort computes the sorted order of all cyclic rotations of t and places the
// rotation offsets in order. Both t and order must be the same length.
//
// The block t is only read, and must not be modified while Sort runs.
// Rotations that are equal as cyclic strings (only possible when t is
// periodic) are placed in an unspecified relative order.
func Sort(t []byte, order []int) {
	if len(order) != len(t) {
		panic("mismatching sizes")
	}
	if uint64(len(t)) > internal.MaxBlockSize {
		panic("block exceeds 32-bit index space")
	}
	for i := range order {
		order[i] = i
	}
	if len(t) < 2 {
		return
	}
	s := sorter{t: t, n: len(t), p: period(t), budget: budgetFactor * len(t)}
	if !s.multikey(order, 0) {
		s.doublingSort(order)
	}

	if internal.Debug {
		for i := 1; i < len(order); i++ {
			if s.compare(order[i-1], order[i], 0) > 0 {
				panic("rotations out of order")
			}
		}
	}
}

// period returns the smallest p dividing len(t) such that t is t[:p]
// repeated, using the failure function of Knuth-Morris-Pratt.
// The block must not be empty.
func period(t []byte) int {
	n := len(t)
	fail := make([]int, n) // Longest proper border of t[:i+1]
	var k int
	for i := 1; i < n; i++ {
		for k > 0 && t[i] != t[k] {
			k = fail[k-1]
		}
		if t[i] == t[k] {
			k++
		}
		fail[i] = k
	}
	if p := n - fail[n-1]; n%p == 0 {
		return p
	}
	return n
}

type span struct{ lo, hi int }

type sorter struct {
	t      []byte
	n      int    // Block length
	p      int    // Depth after which rotations compare equal; divides n
	budget int    // Remaining key inspections; only enforced by multikey
	work   []span // Pending partitions shared across all depths
}

// key reports the byte of rotation h at depth d. Both h and d are below n.
func (s *sorter) key(h, d int) byte {
	i := h + d
	if i >= s.n {
		i -= s.n
	}
	return s.t[i]
}

// multikey sorts a, all of whose rotations share their first d bytes.
// It reports false, leaving a in an arbitrary order, if the work budget ran
// out.
//
// The less and greater partitions stay at depth d and are pushed onto the
// work-list. Only the equal partition recurses, and every level of that
// recursion increases d, so the call depth never exceeds p.
func (s *sorter) multikey(a []int, d int) bool {
	if d >= s.p {
		return true // Every rotation in a is identical
	}
	base := len(s.work)
	s.work = append(s.work, span{0, len(a)})
	for len(s.work) > base {
		if s.budget < 0 {
			s.work = s.work[:base]
			return false
		}
		w := s.work[len(s.work)-1]
		s.work = s.work[:len(s.work)-1]

		x := a[w.lo:w.hi]
		if len(x) < 2 {
			continue
		}
		if len(x) < insertionThreshold {
			s.insertionSort(x, d)
			continue
		}

		lt, gt := s.partition(x, d)
		s.budget -= len(x)
		if gt-lt > 1 && d+1 < s.p {
			if !s.multikey(x[lt:gt], d+1) {
				s.work = s.work[:base]
				return false
			}
		}
		s.work = append(s.work, span{w.lo, w.lo + lt}, span{w.lo + gt, w.hi})
	}
	return true
}

// partition reorders a into three groups by their key at depth d relative to
// a median-of-three pivot: a[:lt] < pivot, a[lt:gt] == pivot, a[gt:] > pivot.
// The middle group is never empty.
func (s *sorter) partition(a []int, d int) (lt, gt int) {
	v := s.median3(a, d)
	i := 0
	lt, gt = 0, len(a)
	for i < gt {
		switch k := s.key(a[i], d); {
		case k < v:
			a[lt], a[i] = a[i], a[lt]
			lt++
			i++
		case k > v:
			gt--
			a[i], a[gt] = a[gt], a[i]
		default:
			i++
		}
	}
	return lt, gt
}

func (s *sorter) median3(a []int, d int) byte {
	x := s.key(a[0], d)
	y := s.key(a[len(a)/2], d)
	z := s.key(a[len(a)-1], d)
	if x > y {
		x, y = y, x
	}
	if y > z {
		y = z
	}
	if x > y {
		y = x
	}
	return y
}

// insertionSort sorts a by comparing rotations lazily from depth d onward.
func (s *sorter) insertionSort(a []int, d int) {
	for i := 1; i < len(a); i++ {
		h := a[i]
		j := i
		for ; j > 0 && s.compare(a[j-1], h, d) > 0; j-- {
			a[j] = a[j-1]
		}
		a[j] = h
	}
}

func (s *sorter) compare(a, b, d int) int {
	d0 := d
	for ; d < s.p; d++ {
		ka, kb := s.key(a, d), s.key(b, d)
		if ka != kb {
			s.budget -= d - d0 + 1
			if ka < kb {
				return -1
			}
			return +1
		}
	}
	s.budget -= d - d0
	return 0
}

// Compare compares the rotations of t starting at offsets a and b over one
// full cycle. The result is -1, 0, or +1.
func Compare(t []byte, a, b int) int {
	s := sorter{t: t, n: len(t), p: len(t)}
	return s.compare(a, b, 0)
}

// doublingSort sorts all rotations by prefix doubling. After the round for
// step h, rotations are ranked into classes by their first 2h bytes. A
// rotation's pair of classes for the next round is (class of i, class of
// i+h), and since order is already sorted by class, shifting every entry
// back by h yields the order by the second key for free. One stable counting
// sort by the first key then finishes the round.
func (s *sorter) doublingSort(order []int) {
	n := s.n
	cls := make([]int, n)
	buf := make([]int, n)
	cnt := make([]int, 256)

	// Classes of the first byte.
	for _, b := range s.t {
		cnt[b]++
	}
	for i := 1; i < len(cnt); i++ {
		cnt[i] += cnt[i-1]
	}
	for i := n - 1; i >= 0; i-- {
		cnt[s.t[i]]--
		order[cnt[s.t[i]]] = i
	}
	numCls := 1
	for i := 1; i < n; i++ {
		if s.t[order[i]] != s.t[order[i-1]] {
			numCls++
		}
		cls[order[i]] = numCls - 1
	}

	if cap(cnt) < n {
		cnt = make([]int, n)
	}
	for h := 1; h < s.p && numCls < n; h *= 2 {
		for i, v := range order {
			if v -= h; v < 0 {
				v += n
			}
			buf[i] = v
		}

		cnt = cnt[:numCls]
		for i := range cnt {
			cnt[i] = 0
		}
		for _, v := range buf {
			cnt[cls[v]]++
		}
		for i := 1; i < len(cnt); i++ {
			cnt[i] += cnt[i-1]
		}
		for i := n - 1; i >= 0; i-- {
			v := buf[i]
			cnt[cls[v]]--
			order[cnt[cls[v]]] = v
		}

		// The second key order in buf is consumed, so buf takes the new
		// classes.
		next := buf
		next[order[0]] = 0
		numCls = 1
		for i := 1; i < n; i++ {
			a, b := order[i-1], order[i]
			if cls[a] != cls[b] || cls[(a+h)%n] != cls[(b+h)%n] {
				numCls++
			}
			next[b] = numCls - 1
		}
		cls, buf = next, cls
	}
}
