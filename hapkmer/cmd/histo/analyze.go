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
	"errors"
	"fmt"
)

// MinSpan is the smallest distance between the two boundaries of a range
// that is not reported as low-confidence.
const MinSpan = 5

// the bin of coverage 2 never triggers a boundary, its count is only recorded.
const skippedCoverage = 2

// ErrRangeNotFound means the histogram has no local minimum,
// or the counts never drop below the one at the minimum.
var ErrRangeNotFound = errors.New("histo: min and max counts not found in histogram")

// Range is the inclusive range of k-mer counts considered genuine.
type Range struct {
	Min int
	Max int

	// LowConfidence is set when Max-Min < MinSpan,
	// which usually means the sequencing depth is too low.
	LowConfidence bool
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.Min, r.Max)
}

// Analyze scans the histogram in order of increasing coverage.
//
// The lower bound is the first local minimum, i.e., the bin before the first
// one whose count exceeds its predecessor's. The upper bound is the first
// following coverage whose count drops below the count at the lower bound.
// The first bin only provides a count to compare with.
func Analyze(h Histogram) (Range, error) {
	var r Range
	var foundMin, foundMax bool
	var minCount int // count at r.Min

	var last int
	var hasLast bool
	for _, b := range h {
		if hasLast && b.Coverage != skippedCoverage {
			if !foundMin {
				if b.Count > last {
					r.Min = b.Coverage - 1
					minCount = last
					foundMin = true
				}
			} else if b.Count < minCount {
				r.Max = b.Coverage
				foundMax = true
				break
			}
		}

		last = b.Count
		hasLast = true
	}

	if !foundMin || !foundMax {
		return Range{}, ErrRangeNotFound
	}

	r.LowConfidence = r.Max-r.Min < MinSpan
	return r, nil
}
