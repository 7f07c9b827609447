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
	"fmt"
	"strings"
)

// AnalysisError is returned when no count range can be derived from
// the histogram of a database. Command reproduces the histogram.
type AnalysisError struct {
	Command   []string
	Histogram string
	Err       error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("could not find min and max counts in histogram. "+
		"Try running the following command yourself and manually choosing cutoffs: %s",
		strings.Join(e.Command, " "))
}

func (e *AnalysisError) Unwrap() error { return e.Err }
