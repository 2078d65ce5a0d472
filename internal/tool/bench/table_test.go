// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/dsnet/blocksort/internal/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestCases(t *testing.T) {
	got := Cases([]string{"a", "b"}, []int{1, 9}, []int{1e3})
	want := []Case{
		{"a", 1, 1e3}, {"a", 9, 1e3},
		{"b", 1, 1e3}, {"b", 9, 1e3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatching cases (-want +got):\n%s", diff)
	}
}

func TestTableRun(t *testing.T) {
	var calls int
	measure := func(input []byte, lvl int, col string) (float64, error) {
		if col == "bad" {
			return 0, errors.Error{Code: errors.Internal, Pkg: "bench", Msg: "failed"}
		}
		return float64(lvl * len(input)), nil
	}
	cases := []Case{
		{File: twain, Level: 2, Size: 1e3},
		{File: "missing.txt", Level: 1, Size: 1e3},
	}

	tbl := &Table{Columns: []string{"good", "bad"}}
	tbl.Run(cases, measure, func() { calls++ })
	assert.Equal(t, 4, calls)
	assert.Len(t, tbl.Rows, 2)
	assert.Equal(t, "twain.txt:2:1e3", tbl.Rows[0])
	assert.Equal(t, 2e3, tbl.Cells[0][0])
	assert.True(t, math.IsNaN(tbl.Cells[0][1]))
	assert.True(t, math.IsNaN(tbl.Cells[1][0]))
	assert.True(t, math.IsNaN(tbl.Cells[1][1]))
}

func TestTableFormat(t *testing.T) {
	var vectors = []struct {
		table Table
		want  []string
	}{{
		table: Table{
			Title:   "benchmark",
			Unit:    "MB/s",
			Deltas:  true,
			Columns: []string{"raw", "bs"},
			Rows:    []string{"twain.txt:1:1e3"},
			Cells:   [][]float64{{2, 3}},
		},
		want: []string{
			"\tbenchmark            raw MB/s      bs MB/s  delta",
			"\ttwain.txt:1:1e3          2.00         3.00  1.50x",
		},
	}, {
		table: Table{
			Title:   "stats",
			Columns: []string{"a", "b"},
			Rows:    []string{"x", "y"},
			Cells:   [][]float64{{1, math.NaN()}, {12.5, 0}},
		},
		want: []string{
			"\tstats          a         b",
			"\tx           1.00",
			"\ty          12.50      0.00",
		},
	}}

	for i, v := range vectors {
		var buf bytes.Buffer
		if err := v.table.Format(&buf); err != nil {
			t.Fatalf("test %d, unexpected Format error: %v", i, err)
		}
		got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		if diff := cmp.Diff(v.want, got); diff != "" {
			t.Errorf("test %d, mismatching output (-want +got):\n%s", i, diff)
		}
	}
}
