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

package cmd

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/trio-binning/hapkmer/hapkmer/cmd/kmc"
	"github.com/trio-binning/hapkmer/hapkmer/cmd/pipeline"
)

func touch(t *testing.T, files ...string) {
	t.Helper()
	for _, file := range files {
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(file, []byte(">r\nACGT\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestGetReadFiles(t *testing.T) {
	dir := t.TempDir()
	pattern := regexp.MustCompile("(?i)" + defaultFileRegexp)

	a1 := filepath.Join(dir, "a1.fq.gz")
	a2 := filepath.Join(dir, "a2.fastq")
	lib := filepath.Join(dir, "libB")
	b1 := filepath.Join(lib, "run1", "b1.FA")
	b2 := filepath.Join(lib, "b2.fna.gz")
	touch(t, a1, a2, b1, b2, filepath.Join(lib, "README.md"))

	files, err := getReadFiles(a1+", "+a2+",", pattern, 2)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !reflect.DeepEqual(files, []string{a1, a2}) {
		t.Errorf("unexpected files: %v", files)
	}

	files, err = getReadFiles(lib+","+a1, pattern, 2)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if want := []string{b2, b1, a1}; !reflect.DeepEqual(files, want) {
		t.Errorf("got %v, want %v", files, want)
	}

	if _, err = getReadFiles(a1+","+filepath.Join(dir, "missing.fq"), pattern, 1); err == nil {
		t.Errorf("error expected for missing file")
	}
	if _, err = getReadFiles(" , ", pattern, 1); err == nil {
		t.Errorf("error expected for empty list")
	}
	empty := filepath.Join(dir, "empty")
	os.Mkdir(empty, 0755)
	if _, err = getReadFiles(empty, pattern, 1); err == nil {
		t.Errorf("error expected for directory without sequence files")
	}
}

func TestWriteSummaryTable(t *testing.T) {
	summary := &pipeline.Summary{
		K:         21,
		AutoRange: true,
		Libraries: []*pipeline.LibraryResult{
			{Name: "A", Database: "out/haplotypeA", MinCount: 4, MaxCount: 10, UniqueKmers: 1234567, Output: "out/hapA_only_kmers.txt"},
			{Name: "B", Database: "out/haplotypeB", MinCount: 5, MaxCount: 12, UniqueKmers: 89, Output: "out/hapB_only_kmers.txt"},
		},
	}

	var buf bytes.Buffer
	writeSummaryTable(&buf, summary)
	out := buf.String()

	for _, s := range []string{"haplotype", "unique-kmers", "1,234,567", "[4,10]", "[5,12]", "out/hapB_only_kmers.txt"} {
		if !strings.Contains(out, s) {
			t.Errorf("%q not found in table:\n%s", s, out)
		}
	}
}

func TestExitStatus(t *testing.T) {
	notFound := errors.Wrap(&kmc.BinaryNotFoundError{Binary: "kmc_tools", Err: exec.ErrNotFound}, "subtract")
	msg, status := exitStatus(notFound)
	if status != 1 {
		t.Errorf("missing binary: got exit status %d, want 1", status)
	}
	if !strings.Contains(msg, "kmc_tools") || !strings.Contains(msg, "--path-to-kmc") {
		t.Errorf("unexpected message: %s", msg)
	}

	failed := &kmc.ProcessError{Command: []string{"kmc", "-k21"}, Err: errors.New("exit status 2")}
	msg, status = exitStatus(failed)
	if status != -1 {
		t.Errorf("failed process: got exit status %d, want -1", status)
	}
	if msg != failed.Error() {
		t.Errorf("got message %q, want %q", msg, failed.Error())
	}
}

func TestLogFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "run.log")

	opt := &Options{LogFile: file}
	var err error
	if opt.logfh, err = addLogFile(file); err != nil {
		t.Fatal(err)
	}
	log.Info("counting k-mers in haplotype A")
	opt.Close()
	opt.Close()
	defer InitLogger(os.Stderr)

	if opt.logfh != nil {
		t.Errorf("log file not closed")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "counting k-mers in haplotype A") {
		t.Errorf("message not written to log file: %q", data)
	}
}
