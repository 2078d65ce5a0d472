// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !gofuzz
// +build !gofuzz

package internal

// Debug enables self-checks that are too slow for normal use: the rotation
// sorter verifies its output order and the MTF coders verify that their
// tables remain permutations. Fuzzing builds turn it on.
const Debug = false
