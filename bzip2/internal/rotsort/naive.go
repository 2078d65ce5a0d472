// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package rotsort

import "sort"

// SortNaive computes the same rotation order as Sort using a general purpose
// comparison sort where every comparison walks a full cycle. It is quadratic
// on repetitive input and exists only as a reference for testing.
func SortNaive(t []byte, order []int) {
	if len(order) != len(t) {
		panic("mismatching sizes")
	}
	for i := range order {
		order[i] = i
	}
	sort.Sort(&naiveSort{sorter{t: t, n: len(t), p: len(t)}, order})
}

type naiveSort struct {
	s     sorter
	order []int
}

func (ns *naiveSort) Len() int      { return len(ns.order) }
func (ns *naiveSort) Swap(i, j int) { ns.order[i], ns.order[j] = ns.order[j], ns.order[i] }
func (ns *naiveSort) Less(i, j int) bool {
	return ns.s.compare(ns.order[i], ns.order[j], 0) < 0
}
