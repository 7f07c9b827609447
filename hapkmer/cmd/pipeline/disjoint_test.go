// Copyright © 2024 The hapkmer Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package pipeline

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisjoint(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		file := filepath.Join(dir, name)
		if err := os.WriteFile(file, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return file
	}

	a := write("a.txt", "AAAAA\t3\nCCCCC\t4\nGGGGG\t5\n")
	b := write("b.txt", "TTTTT\t3\nACGTA\t7\n")
	c := write("c.txt", "CCCCC\t9\nGGGGG\t2\nTTTTT\t3")
	empty := write("empty.txt", "")

	tests := []struct {
		a, b string
		want int
	}{
		{a, b, 0},
		{a, c, 2},
		{c, a, 2},
		{b, c, 1},
		{a, a, 3},
		{a, empty, 0},
		{empty, a, 0},
	}
	for i, tt := range tests {
		n, err := Disjoint(tt.a, tt.b, 2)
		if err != nil {
			t.Fatalf("case %d: unexpected error: %s", i, err)
		}
		if n != tt.want {
			t.Errorf("case %d: got %d shared k-mers, want %d", i, n, tt.want)
		}
	}

	if _, err := Disjoint(a, filepath.Join(dir, "missing.txt"), 1); err == nil {
		t.Errorf("error expected for missing file")
	}
}

func TestCompressFile(t *testing.T) {
	for name, content := range map[string]string{
		"kmers": strings.Repeat("ACGTACGTACGTACGTACGTA\t12\n", 1000),
		"empty": "",
	} {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "hapA_only_kmers.txt")
			if err := os.WriteFile(file, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}

			out, err := compressFile(file, 4)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if out != file+".gz" {
				t.Errorf("unexpected output: %s", out)
			}
			if _, err := os.Stat(file); !os.IsNotExist(err) {
				t.Errorf("input file should be removed")
			}

			fh, err := os.Open(out)
			if err != nil {
				t.Fatal(err)
			}
			defer fh.Close()
			gr, err := gzip.NewReader(fh)
			if err != nil {
				t.Fatalf("invalid gzip file: %s", err)
			}
			var sb strings.Builder
			buf := make([]byte, 4096)
			for {
				n, err := gr.Read(buf)
				sb.Write(buf[:n])
				if err != nil {
					break
				}
			}
			if sb.String() != content {
				t.Errorf("content changed after compression")
			}
		})
	}
}
