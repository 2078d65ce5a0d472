// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build ignore

// Benchmark tool for the block-sorting transforms.
//
// Example usage:
//	$ go build -o benchmark main.go
//	$ ./benchmark \
//		-tests   stages,stats,ratio \
//		-formats fl,xz              \
//		-files   twain.txt          \
//		-levels  1,9                \
//		-sizes   1e5,1e6
//
// The "stages" test reports the throughput of every transform alone, and
// "stats" reports the entropy of the sorted blocks before and after MTF.
// Those do not depend on the format. The remaining tests compare each
// back-end compressor alone ("raw") against block-sorting first ("bs").
package main

import (
	"flag"
	"fmt"
	"go/build"
	"io/ioutil"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/dsnet/blocksort/internal/tool/bench"
	"github.com/dsnet/golib/strconv"
)

// By default, the benchmark tool will look for test data in this "package".
const testPkg = "github.com/dsnet/blocksort/testdata"

var formats = map[string]int{
	"fl": bench.FormatFlate,
	"xz": bench.FormatXZ,
}

type test struct {
	id    int
	title string
	unit  string
}

var tests = map[string]test{
	"encRate": {bench.TestEncodeRate, "encode", "MB/s"},
	"decRate": {bench.TestDecodeRate, "decode", "MB/s"},
	"ratio":   {bench.TestCompressRatio, "ratio", "x"},
	"stages":  {bench.TestStageRate, "stage", "MB/s"},
	"stats":   {bench.TestSymbolStats, "stats", ""},
}

func defaultPath() string {
	pkg, err := build.Import(testPkg, "", build.FindOnly)
	if err != nil {
		return ""
	}
	return pkg.Dir
}

func defaultFiles(dir string) string {
	fis, err := ioutil.ReadDir(dir)
	if err != nil {
		return ""
	}
	var s []string
	for _, fi := range fis {
		if !fi.IsDir() && !strings.HasSuffix(fi.Name(), ".go") {
			s = append(s, fi.Name())
		}
	}
	return strings.Join(s, ",")
}

var sep = regexp.MustCompile("[,:]")

func parseInts(list, what string) []int {
	var vs []int
	for _, s := range sep.Split(list, -1) {
		v, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil {
			log.Fatalf("invalid %s: %q", what, s)
		}
		vs = append(vs, int(v))
	}
	return vs
}

func main() {
	path := defaultPath()
	fTests := flag.String("tests", "stages,stats,encRate,decRate,ratio", "List of benchmark tests")
	fFormats := flag.String("formats", "fl,xz", "List of back-end formats for the codec tests")
	fCodecs := flag.String("codecs", "raw,bs", "List of codecs; the first is the baseline of the deltas")
	fPaths := flag.String("paths", path, "List of paths to search for test files")
	fFiles := flag.String("files", defaultFiles(path), "List of input files")
	fLevels := flag.String("levels", "1,6,9", "List of compression levels")
	fSizes := flag.String("sizes", "1e4,1e5,1e6", "List of input sizes")
	flag.Parse()

	bench.Paths = sep.Split(*fPaths, -1)
	codecs := sep.Split(*fCodecs, -1)
	cases := bench.Cases(sep.Split(*fFiles, -1), parseInts(*fLevels, "level"), parseInts(*fSizes, "size"))

	start := time.Now()
	for _, name := range sep.Split(*fTests, -1) {
		tt, ok := tests[name]
		if !ok {
			log.Fatalf("invalid test: %q", name)
		}
		switch tt.id {
		case bench.TestStageRate:
			run(name, &bench.Table{Title: tt.title, Unit: tt.unit, Columns: bench.Stages}, cases, bench.StageRate)
		case bench.TestSymbolStats:
			run(name, &bench.Table{Title: tt.title, Columns: bench.Stats}, cases, bench.SymbolStats)
		default:
			for _, fn := range sep.Split(*fFormats, -1) {
				ft, ok := formats[fn]
				if !ok {
					log.Fatalf("invalid format: %q", fn)
				}
				var m bench.Measure
				switch tt.id {
				case bench.TestEncodeRate:
					m = bench.EncodeRate(ft)
				case bench.TestDecodeRate:
					m = bench.DecodeRate(ft)
				case bench.TestCompressRatio:
					m = bench.CompressRatio(ft)
				}
				tbl := &bench.Table{Title: tt.title, Unit: tt.unit, Deltas: true, Columns: codecs}
				run(fn+":"+name, tbl, cases, m)
			}
		}
	}
	fmt.Printf("RUNTIME: %v\n", time.Since(start))
}

func run(name string, tbl *bench.Table, cases []bench.Case, m bench.Measure) {
	fmt.Printf("BENCHMARK: %s\n", name)
	var cnt int
	total := len(cases) * len(tbl.Columns)
	tbl.Run(cases, m, func() {
		fmt.Printf("\t[%6.2f%%] %d of %d\r", 100*float64(cnt)/float64(total), cnt, total)
		cnt++
	})
	if err := tbl.Format(os.Stdout); err != nil {
		log.Fatal(err)
	}
	fmt.Println()
}
