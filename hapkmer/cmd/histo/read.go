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

package histo

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/breader"
)

// ChunkSize is the number of lines parsed in one chunk.
var ChunkSize = 1000

// ReadFile parses a two-column histogram file (coverage and count,
// separated by white spaces), as exported by "kmc_tools transform histogram".
// Blank lines and lines starting with "#" are ignored.
// Gzipped files are also supported.
func ReadFile(file string) (Histogram, error) {
	// parsing errors are carried with the data, so that all chunks are consumed
	fn := func(line string) (interface{}, bool, error) {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			return nil, false, nil
		}
		b, err := parseBin(line)
		return parsedBin{b, err}, true, nil
	}

	reader, err := breader.NewBufferedReader(file, 2, ChunkSize, fn)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}

	h := make(Histogram, 0, 1024)
	var firstErr error
	var data interface{}
	var p parsedBin
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			if firstErr == nil {
				firstErr = chunk.Err
			}
			continue
		}
		for _, data = range chunk.Data {
			p = data.(parsedBin)
			if p.err != nil {
				if firstErr == nil {
					firstErr = p.err
				}
				continue
			}
			h = append(h, p.bin)
		}
	}
	if firstErr != nil {
		return nil, errors.Wrap(firstErr, file)
	}

	if err = h.Check(); err != nil {
		return nil, errors.Wrap(err, file)
	}
	return h, nil
}

type parsedBin struct {
	bin Bin
	err error
}

func parseBin(line string) (Bin, error) {
	items := strings.Fields(line)
	if len(items) != 2 {
		return Bin{}, errors.Errorf("two columns expected in histogram line: %s", line)
	}
	coverage, err := strconv.Atoi(items[0])
	if err != nil {
		return Bin{}, errors.Errorf("invalid coverage in histogram line: %s", line)
	}
	count, err := strconv.Atoi(items[1])
	if err != nil {
		return Bin{}, errors.Errorf("invalid count in histogram line: %s", line)
	}
	return Bin{Coverage: coverage, Count: count}, nil
}
