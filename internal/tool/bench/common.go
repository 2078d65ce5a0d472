// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench measures the block-sorting transforms, both on their own and
// in front of general purpose compressors.
//
// Every test produces a Table, with one row per Case and one column per
// codec, stage, or statistic. The codec tests compare each back-end
// compressor ("raw") against the same compressor fed with block-sorted
// input ("bs"). The stage test times each transform of the pipeline in
// isolation, and the statistics test reports how compressible the sorted
// blocks are.
package bench

import (
	"fmt"
	"io"
	"math"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/dsnet/blocksort/internal/testutil"
	"github.com/dsnet/golib/strconv"
)

// Formats name the back-end compressor of the codec tests.
const (
	FormatFlate = iota
	FormatXZ
)

const (
	TestEncodeRate = iota
	TestDecodeRate
	TestCompressRatio
	TestStageRate
	TestSymbolStats
)

type Encoder func(io.Writer, int) io.WriteCloser
type Decoder func(io.Reader) io.ReadCloser

var (
	Encoders = make(map[int]map[string]Encoder)
	Decoders = make(map[int]map[string]Decoder)

	// List of search paths for test files.
	Paths []string
)

func RegisterEncoder(format int, name string, enc Encoder) {
	if Encoders[format] == nil {
		Encoders[format] = make(map[string]Encoder)
	}
	Encoders[format][name] = enc
}

func RegisterDecoder(format int, name string, dec Decoder) {
	if Decoders[format] == nil {
		Decoders[format] = make(map[string]Decoder)
	}
	Decoders[format][name] = dec
}

// Case is a single input of a benchmark.
type Case struct {
	File  string
	Level int
	Size  int // The file is truncated or repeated to this length
}

// Cases returns the cross product of files, levels, and sizes.
func Cases(files []string, levels, sizes []int) []Case {
	var cs []Case
	for _, f := range files {
		for _, l := range levels {
			for _, n := range sizes {
				cs = append(cs, Case{File: f, Level: l, Size: n})
			}
		}
	}
	return cs
}

// Load reads the input of the case, searching Paths for relative files.
func (c Case) Load() ([]byte, error) {
	return testutil.LoadFile(getPath(c.File), c.Size)
}

// Measure computes one cell of a Table for the given input, level, and
// column name.
type Measure func(input []byte, lvl int, col string) (float64, error)

// Table holds the values of a Measure over a set of cases.
// Cells that could not be measured are NaN.
type Table struct {
	Title   string
	Unit    string // Suffix of every value
	Deltas  bool   // Report each column relative to the first one
	Columns []string
	Rows    []string
	Cells   [][]float64
}

// Run measures every column for every case, appending one row per case.
// If non-nil, tick is called before every cell.
func (t *Table) Run(cases []Case, m Measure, tick func()) {
	for _, c := range cases {
		input, err := c.Load()
		row := make([]float64, len(t.Columns))
		for j, col := range t.Columns {
			if tick != nil {
				tick()
			}
			row[j] = math.NaN()
			if err != nil {
				continue
			}
			if v, err := m(input, c.Level, col); err == nil {
				row[j] = v
			}
		}
		t.Rows = append(t.Rows, getName(c.File, c.Level, len(input)))
		t.Cells = append(t.Cells, row)
	}
}

// Format writes the table as aligned text columns.
func (t *Table) Format(w io.Writer) error {
	header := []string{t.Title}
	for j, col := range t.Columns {
		if t.Unit != "" {
			col += " " + t.Unit
		}
		header = append(header, col)
		if t.hasDelta(j) {
			header = append(header, "delta")
		}
	}
	lines := [][]string{header}
	for i, name := range t.Rows {
		line := []string{name}
		for j, v := range t.Cells[i] {
			line = append(line, formatValue(v, "%.2f"))
			if t.hasDelta(j) {
				line = append(line, formatValue(v/t.Cells[i][0], "%.2fx"))
			}
		}
		lines = append(lines, line)
	}

	widths := make([]int, len(header))
	for _, line := range lines {
		for k, s := range line {
			if widths[k] < len(s) {
				widths[k] = len(s)
			}
		}
	}
	for _, line := range lines {
		var sb strings.Builder
		sb.WriteString("\t")
		for k, s := range line {
			pad := widths[k] - len(s)
			switch {
			case k == 0:
				sb.WriteString(s + strings.Repeat(" ", pad))
			case header[k] == "delta":
				sb.WriteString(strings.Repeat(" ", 2+pad) + s)
			default:
				sb.WriteString(strings.Repeat(" ", 6+pad) + s)
			}
		}
		if _, err := io.WriteString(w, strings.TrimRight(sb.String(), " ")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// The first column is the baseline and gets no delta of its own.
func (t *Table) hasDelta(col int) bool { return t.Deltas && col > 0 }

func formatValue(v float64, f string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return fmt.Sprintf(f, v)
}

func getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

var reExp = regexp.MustCompile(`\.0*e\+0*`)

func getName(f string, l, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9:
		sn = reExp.ReplaceAllString(fmt.Sprintf("%e", float64(n)), "e")
	default:
		s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%d:%s", path.Base(f), l, sn)
}
