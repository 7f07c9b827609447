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

package kmc

import (
	"bytes"
	"compress/gzip"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pkg/errors"
)

func TestCountLines(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"\n", 1},
		{"AAAA\t3\n", 1},
		{"AAAA\t3\nCCCC\t4\n", 2},
		{"AAAA\t3\nCCCC\t4", 2},
	}
	for i, tt := range tests {
		file := filepath.Join(dir, "dump.txt")
		if err := os.WriteFile(file, []byte(tt.content), 0644); err != nil {
			t.Fatal(err)
		}
		n, err := CountLines(file)
		if err != nil {
			t.Fatalf("case %d: unexpected error: %s", i, err)
		}
		if n != tt.want {
			t.Errorf("case %d: got %d, want %d", i, n, tt.want)
		}
	}

	// large and gzipped
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	line := []byte("ACGTACGTACGTACGTACGTA\t12\n")
	for i := 0; i < 10000; i++ {
		gw.Write(line)
	}
	gw.Close()
	file := filepath.Join(dir, "dump.txt.gz")
	if err := os.WriteFile(file, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	n, err := CountLines(file)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if n != 10000 {
		t.Errorf("got %d, want 10000", n)
	}

	if _, err = CountLines(filepath.Join(dir, "missing.txt")); err == nil {
		t.Errorf("error expected for missing file")
	}
}

func TestTempFile(t *testing.T) {
	dir := t.TempDir()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		file, err := TempFile(dir, "test-")
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if seen[file] {
			t.Fatalf("duplicated temporary file: %s", file)
		}
		seen[file] = true
		if filepath.Dir(file) != dir {
			t.Errorf("temporary file not in %s: %s", dir, file)
		}
		info, err := os.Stat(file)
		if err != nil || info.Size() != 0 {
			t.Errorf("empty temporary file expected: %s", file)
		}
	}

	if _, err := TempFile(filepath.Join(dir, "missing"), "test-"); err == nil {
		t.Errorf("error expected for missing directory")
	}
}

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not found")
	}

	var stdout, stderr bytes.Buffer
	r := &ExecRunner{Stdout: &stdout, Stderr: &stderr}

	if err = r.Run(sh, "-c", "echo out; echo err >&2"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if stdout.String() != "out\n" || stderr.String() != "err\n" {
		t.Errorf("unexpected outputs: %q, %q", stdout.String(), stderr.String())
	}

	err = r.Run(sh, "-c", "exit 3")
	var failed *ProcessError
	if !errors.As(err, &failed) {
		t.Fatalf("ProcessError expected, got %T: %v", err, err)
	}
	if len(failed.Command) != 3 || failed.Command[0] != sh {
		t.Errorf("unexpected command: %v", failed.Command)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Errorf("exit status 3 expected: %v", err)
	}

	var notFound *BinaryNotFoundError
	for _, name := range []string{"hapkmer-no-such-kmc", filepath.Join(t.TempDir(), "kmc")} {
		err = r.Run(name, "-k21")
		if !errors.As(err, &notFound) {
			t.Errorf("BinaryNotFoundError expected for %s, got %T: %v", name, err, err)
		} else if notFound.Binary != name {
			t.Errorf("unexpected binary: %s", notFound.Binary)
		}
	}
}

func TestExecRunnerRelativePath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "bin"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bin", "kmc"), []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err = os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	t.Setenv("PATH", "bin")

	err = (&ExecRunner{}).Run("kmc", "-k21")
	var notFound *BinaryNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("BinaryNotFoundError expected, got %T: %v", err, err)
	}
	if !errors.Is(err, exec.ErrDot) {
		t.Errorf("exec.ErrDot expected: %v", err)
	}
}
