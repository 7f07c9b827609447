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

// Suffixes of the programs shipped with kmc, they are expected to share
// the prefix of the kmc binary, e.g., /opt/kmc/bin/kmc_tools.
const (
	SuffixTools = "_tools"
	SuffixDump  = "_dump"
)

// Tool invokes kmc and its companions through a Runner.
type Tool struct {
	Runner Runner

	// Path of the kmc binary, "kmc" for searching in PATH.
	Path string

	// InputFormat is passed to kmc with -f if not empty,
	// e.g., "a" for FASTA, "q" for FASTQ, "m" for multi-FASTA.
	InputFormat string
}

// New returns a Tool running kmc binaries with prefix path.
func New(path string, runner Runner) *Tool {
	if path == "" {
		path = "kmc"
	}
	if runner == nil {
		runner = &ExecRunner{}
	}
	return &Tool{Runner: runner, Path: path}
}

func (t *Tool) kmc() string   { return t.Path }
func (t *Tool) tools() string { return t.Path + SuffixTools }
func (t *Tool) dump() string  { return t.Path + SuffixDump }

func (t *Tool) run(cmd []string) error {
	return t.Runner.Run(cmd[0], cmd[1:]...)
}
