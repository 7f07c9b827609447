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
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/breader"
	"github.com/zeebo/xxh3"
)

// ChunkSize is the number of lines of a k-mer file parsed in one chunk.
var ChunkSize = 10000

// Disjoint counts k-mers present in both k-mer files, which are
// plain or gzipped text files with a k-mer in the first tab-delimited column
// of each line, as written by kmc_dump.
//
// K-mers of fileA are kept as 64-bit xxh3 hashes, hash collisions are ignored.
func Disjoint(fileA, fileB string, threads int) (int, error) {
	if threads < 1 {
		threads = 1
	}

	hashes := make(map[uint64]struct{}, 1<<16)
	err := eachKmerHash(fileA, threads, func(h uint64) {
		hashes[h] = struct{}{}
	})
	if err != nil {
		return 0, err
	}

	var shared int
	err = eachKmerHash(fileB, threads, func(h uint64) {
		if _, ok := hashes[h]; ok {
			shared++
		}
	})
	if err != nil {
		return 0, err
	}
	return shared, nil
}

func eachKmerHash(file string, threads int, fn func(uint64)) error {
	info, err := os.Stat(file)
	if err != nil {
		return errors.Wrap(err, file)
	}
	if info.Size() == 0 {
		return nil
	}

	parse := func(line string) (interface{}, bool, error) {
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return nil, false, nil
		}
		if i := strings.IndexByte(line, '\t'); i >= 0 {
			line = line[:i]
		}
		return xxh3.HashString(line), true, nil
	}

	reader, err := breader.NewBufferedReader(file, threads, ChunkSize, parse)
	if err != nil {
		return errors.Wrap(err, file)
	}

	var firstErr error
	var data interface{}
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			if firstErr == nil {
				firstErr = chunk.Err
			}
			continue
		}
		for _, data = range chunk.Data {
			fn(data.(uint64))
		}
	}
	return errors.Wrap(firstErr, file)
}
