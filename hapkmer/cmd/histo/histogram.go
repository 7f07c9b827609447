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

// Package histo picks, from a k-mer count histogram, the range of counts
// that most likely comes from the sequenced genome itself rather than from
// sequencing errors (low counts) or repeats (high counts).
package histo

import "fmt"

// Bin is one row of a k-mer count histogram:
// Count distinct k-mers occur exactly Coverage times.
type Bin struct {
	Coverage int
	Count    int
}

// Histogram is a list of bins ordered by strictly increasing coverage.
type Histogram []Bin

// Check makes sure values are non-negative and coverages strictly increase.
func (h Histogram) Check() error {
	for i, b := range h {
		if b.Coverage < 0 || b.Count < 0 {
			return fmt.Errorf("negative value in histogram row %d: %d %d", i+1, b.Coverage, b.Count)
		}
		if i > 0 && b.Coverage <= h[i-1].Coverage {
			return fmt.Errorf("coverage not strictly increasing in histogram row %d: %d after %d",
				i+1, b.Coverage, h[i-1].Coverage)
		}
	}
	return nil
}

// Distinct returns the number of distinct k-mers in the histogram.
func (h Histogram) Distinct() int {
	var n int
	for _, b := range h {
		n += b.Count
	}
	return n
}
