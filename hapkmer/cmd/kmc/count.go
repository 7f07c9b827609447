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
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
)

// prefix of temporary files listing input files
const fileListPrefix = "hapkmer-files-"

// CountCmd returns the command counting k-mers of files listed in listFile.
func (t *Tool) CountCmd(listFile, db string, k, threads int, scratchDir string) []string {
	cmd := []string{t.kmc(), fmt.Sprintf("-k%d", k), fmt.Sprintf("-t%d", threads)}
	if t.InputFormat != "" {
		cmd = append(cmd, "-f"+t.InputFormat)
	}
	return append(cmd, "@"+listFile, db, scratchDir)
}

// Count counts k-mers in FASTA/Q files (optionally gzipped) into
// the database db. The list of input files is passed to kmc with
// a temporary file in scratchDir, which is always removed before returning.
func (t *Tool) Count(files []string, db string, k, threads int, scratchDir string) (err error) {
	if len(files) == 0 {
		return errors.New("kmc: no input files given")
	}
	if k <= 0 {
		return errors.Errorf("kmc: invalid k-mer size: %d", k)
	}
	if threads <= 0 {
		threads = 1
	}

	listFile, err := writeFileList(files, scratchDir)
	if err != nil {
		return err
	}
	defer func() {
		if e := os.Remove(listFile); e != nil && err == nil {
			err = errors.Wrap(e, "remove temporary file")
		}
	}()

	return t.run(t.CountCmd(listFile, db, k, threads, scratchDir))
}

// writeFileList writes one file path per line into a new temporary file.
func writeFileList(files []string, dir string) (string, error) {
	listFile, err := TempFile(dir, fileListPrefix)
	if err != nil {
		return "", err
	}

	outfh, err := xopen.Wopen(listFile)
	if err != nil {
		os.Remove(listFile)
		return "", errors.Wrap(err, listFile)
	}
	for _, file := range files {
		fmt.Fprintln(outfh, file)
	}
	if err = outfh.Close(); err != nil {
		os.Remove(listFile)
		return "", errors.Wrap(err, listFile)
	}
	return listFile, nil
}
