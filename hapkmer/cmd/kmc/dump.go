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
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
)

// DumpCmd returns the command dumping k-mers of db with counts in [min, max].
func (t *Tool) DumpCmd(db, out string, min, max int) []string {
	return []string{t.dump(), fmt.Sprintf("-ci%d", min), fmt.Sprintf("-cx%d", max), db, out}
}

// Dump writes k-mers of db with counts in [min, max] to the text file out,
// one k-mer and its count per line, and returns the number of k-mers.
func (t *Tool) Dump(db, out string, min, max int) (int, error) {
	if err := t.run(t.DumpCmd(db, out, min, max)); err != nil {
		return 0, err
	}
	return CountLines(out)
}

// CountLines counts lines in a (gzipped) text file.
// The last line does not need to end with a line break.
func CountLines(file string) (int, error) {
	info, err := os.Stat(file)
	if err != nil {
		return 0, errors.Wrap(err, file)
	}
	if info.Size() == 0 {
		return 0, nil
	}

	infh, err := xopen.Ropen(file)
	if err != nil {
		return 0, errors.Wrap(err, file)
	}
	defer infh.Close()

	buf := make([]byte, 1<<16)
	var n, m int
	var last byte
	var empty = true
	for {
		m, err = infh.Read(buf)
		if m > 0 {
			n += bytes.Count(buf[:m], []byte{'\n'})
			last = buf[m-1]
			empty = false
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, errors.Wrap(err, file)
		}
	}
	if !empty && last != '\n' {
		n++
	}
	return n, nil
}
