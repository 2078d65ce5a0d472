// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import (
	"bytes"
	"io"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/dsnet/blocksort/internal/testutil"
)

func TestRLE1(t *testing.T) {
	var vectors = []struct {
		input  string
		output string
	}{{
		input:  "",
		output: "",
	}, {
		input:  "abc",
		output: "abc",
	}, {
		input:  "aaaaaaaa",
		output: "aaaa\x04",
	}, {
		input:  "aaaa",
		output: "aaaa\x00",
	}, {
		input:  "AAAAAAABBBBCCCD",
		output: "AAAA\x03BBBB\x00CCCD",
	}, {
		input:  strings.Repeat("a", 255),
		output: "aaaa\xfb",
	}, {
		input:  strings.Repeat("a", 256),
		output: "aaaa\xfba",
	}, {
		input:  strings.Repeat("a", 259),
		output: "aaaa\xfbaaaa\x00",
	}, {
		input:  strings.Repeat("a", 500),
		output: "aaaa\xfbaaaa\xf1",
	}, {
		input:  "aaabbbcccddddddeeefgghiiijkllmmmmmmmmnnoo",
		output: "aaabbbcccdddd\x02eeefgghiiijkllmmmm\x04nnoo",
	}}

	for i, v := range vectors {
		output := string(EncodeRLE1([]byte(v.input)))
		if output != v.output {
			t.Errorf("test %d, output mismatch:\ngot  %q\nwant %q", i, output, v.output)
		}
		input := string(DecodeRLE1([]byte(v.output)))
		if input != v.input {
			t.Errorf("test %d, input mismatch:\ngot  %q\nwant %q", i, input, v.input)
		}
	}
}

func TestRunLengthEncoder(t *testing.T) {
	var vectors = []struct {
		size   int
		input  string
		output string
		done   bool
	}{{
		size:   0,
		input:  "",
		output: "",
	}, {
		size:   0,
		input:  "a",
		output: "",
		done:   true,
	}, {
		size:   6,
		input:  "abc",
		output: "abc",
	}, {
		size:   6,
		input:  "abcccc",
		output: "abccc",
		done:   true,
	}, {
		size:   7,
		input:  "abcccc",
		output: "abcccc\x00",
	}, {
		size:   14,
		input:  "aaaabbbbcccc",
		output: "aaaa\x00bbbb\x00ccc",
		done:   true,
	}, {
		size:   15,
		input:  "aaaabbbbcccc",
		output: "aaaa\x00bbbb\x00cccc\x00",
	}, {
		size:   16,
		input:  strings.Repeat("a", 4),
		output: "aaaa\x00",
	}, {
		size:   16,
		input:  strings.Repeat("a", 255),
		output: "aaaa\xfb",
	}, {
		size:   16,
		input:  strings.Repeat("a", 256),
		output: "aaaa\xfba",
	}, {
		size:   16,
		input:  strings.Repeat("a", 259),
		output: "aaaa\xfbaaaa\x00",
	}, {
		size:   16,
		input:  strings.Repeat("a", 500),
		output: "aaaa\xfbaaaa\xf1",
	}, {
		size:   64,
		input:  "aaabbbcccddddddeeefgghiiijkllmmmmmmmmnnoo",
		output: "aaabbbcccdddd\x02eeefgghiiijkllmmmm\x04nnoo",
	}}

	for i, v := range vectors {
		rle := NewRunLengthEncoder(v.size)
		input := []byte(v.input)
		var done bool
		for len(input) > 0 {
			chunk := input
			if len(chunk) > 3 {
				chunk = chunk[:3]
			}
			n, err := rle.Write(chunk)
			input = input[n:]
			if err == ErrBlockFull {
				done = true
				break
			}
			if err != nil {
				t.Fatalf("test %d, unexpected error: %v", i, err)
			}
		}
		if n := rle.Len(); n > v.size {
			t.Errorf("test %d, length exceeds capacity: %d > %d", i, n, v.size)
		}
		output := string(rle.Finish())

		if output != v.output {
			t.Errorf("test %d, output mismatch:\ngot  %q\nwant %q", i, output, v.output)
		}
		if done != v.done {
			t.Errorf("test %d, done mismatch: got %v want %v", i, done, v.done)
		}
	}
}

// A full encoder reports the sentinel itself, never a copy or a wrapped
// error, so callers can compare by identity.
func TestRunLengthEncoderFull(t *testing.T) {
	rle := NewRunLengthEncoder(4)
	n, err := rle.Write([]byte("abcdef"))
	if n != 4 || err != ErrBlockFull {
		t.Fatalf("Write() = (%d, %v), want (4, ErrBlockFull)", n, err)
	}
	n, err = rle.Write([]byte("g"))
	if n != 0 || err != ErrBlockFull {
		t.Fatalf("Write() = (%d, %v), want (0, ErrBlockFull)", n, err)
	}
	if got := string(rle.Finish()); got != "abcd" {
		t.Errorf("Finish() = %q, want %q", got, "abcd")
	}
}

func TestRunLengthDecoder(t *testing.T) {
	var vectors = []struct {
		input  string
		output string
	}{{
		input:  "",
		output: "",
	}, {
		input:  "abc",
		output: "abc",
	}, {
		input:  "aaaa", // Trailing window has no room for a count
		output: "aaaa",
	}, {
		input:  "xaaaa",
		output: "xaaaa",
	}, {
		input:  "baaaa\x00aaaa",
		output: "baaaaaaaa",
	}, {
		input:  "abcccc\x00",
		output: "abcccc",
	}, {
		input:  "aaaa\x00bbbb\x00ccc",
		output: "aaaabbbbccc",
	}, {
		input:  "aaaa\x00bbbb\x00cccc\x00",
		output: "aaaabbbbcccc",
	}, {
		input:  "aaaa\x00aaaa\x00aaaa\x00",
		output: "aaaaaaaaaaaa",
	}, {
		input:  "aaaa\xffaaaa\xffaaaa\xff",
		output: strings.Repeat("a", 259*3),
	}, {
		input:  "bbbaaaa\xffaaaa\xffaaaa\xff",
		output: "bbb" + strings.Repeat("a", 259*3),
	}, {
		input:  "aaaa\x00",
		output: strings.Repeat("a", 4),
	}, {
		input:  "aaaa\xfb",
		output: strings.Repeat("a", 255),
	}, {
		input:  "aaaa\xfba",
		output: strings.Repeat("a", 256),
	}, {
		input:  "aaaa\xfbaaaa\x00",
		output: strings.Repeat("a", 259),
	}, {
		input:  "aaaa\xfbaaaa\xf1",
		output: strings.Repeat("a", 500),
	}, {
		input:  "aaabbbcccdddd\x02eeefgghiiijkllmmmm\x04nnoo",
		output: "aaabbbcccddddddeeefgghiiijkllmmmmmmmmnnoo",
	}}

	buf := make([]byte, 3)
	for i, v := range vectors {
		rld := NewRunLengthDecoder([]byte(v.input))
		wr := new(bytes.Buffer)
		if _, err := io.CopyBuffer(wr, struct{ io.Reader }{rld}, buf); err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
		}
		output := wr.String()
		if output != v.output {
			t.Errorf("test %d, output mismatch:\ngot  %q\nwant %q", i, output, v.output)
		}
		if output := string(DecodeRLE1([]byte(v.input))); output != v.output {
			t.Errorf("test %d, one-shot output mismatch:\ngot  %q\nwant %q", i, output, v.output)
		}
	}
}

func rleInputs() [][]byte {
	r := testutil.NewRand(1)
	return [][]byte{
		[]byte("a"),
		[]byte("Hello, world!"),
		make([]byte, 1000),
		r.Bytes(4096),
		r.Runs(1<<14, 2, 8),
		r.Runs(1<<14, 4, 300),
		r.Runs(1<<14, 256, 600),
		testutil.Periodic("aaaab", 1000),
		testutil.Periodic("\x00\x00\x00\x00\x00", 1000),
	}
}

func TestRLE1RoundTrip(t *testing.T) {
	for i, input := range rleInputs() {
		enc := EncodeRLE1(input)
		if output := DecodeRLE1(enc); !bytes.Equal(output, input) {
			t.Errorf("test %d, round-trip mismatch", i)
		}

		// The streaming encoder with ample room matches the one-shot encoder.
		rle := NewRunLengthEncoder(len(input) * 2)
		if n := rle.Encode(input); n != len(input) {
			t.Errorf("test %d, consumed mismatch: got %d, want %d", i, n, len(input))
		}
		if output := rle.Finish(); !bytes.Equal(output, enc) {
			t.Errorf("test %d, streaming output mismatch", i)
		}

		output, err := ioutil.ReadAll(NewRunLengthDecoder(enc))
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
		}
		if !bytes.Equal(output, input) {
			t.Errorf("test %d, streaming decode mismatch", i)
		}
	}
}

func TestRunLengthEncoderBlocks(t *testing.T) {
	for i, input := range rleInputs() {
		for _, size := range []int{5, 6, 7, 64, 1000} {
			rle := NewRunLengthEncoder(size)
			var output []byte
			for rem := input; len(rem) > 0; {
				n := rle.Encode(rem)
				rem = rem[n:]
				blk := rle.Finish()
				if len(blk) > size {
					t.Errorf("test %d:%d, block too large: %d", i, size, len(blk))
				}
				if n == 0 && len(rem) > 0 && len(blk) == 0 {
					t.Fatalf("test %d:%d, no progress", i, size)
				}

				// Every block decodes to exactly the input it consumed.
				output = append(output, DecodeRLE1(blk)...)
				rle.Reset()
			}
			if !bytes.Equal(output, input) {
				t.Errorf("test %d:%d, blocked round-trip mismatch", i, size)
			}
		}
	}
}

func BenchmarkEncodeRLE1(b *testing.B) {
	input := testutil.NewRand(0).Runs(1e6, 16, 8)
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		EncodeRLE1(input)
	}
}

func BenchmarkDecodeRLE1(b *testing.B) {
	input := testutil.NewRand(0).Runs(1e6, 16, 8)
	enc := EncodeRLE1(input)
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DecodeRLE1(enc)
	}
}
