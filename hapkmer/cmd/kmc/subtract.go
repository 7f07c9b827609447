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

// SuffixOnly is appended to the path of a database to name the database
// of its k-mers absent from another one.
const SuffixOnly = "_only"

// SubtractCmd returns the command creating a database of k-mers in a but not in b.
func (t *Tool) SubtractCmd(a, b, out string) []string {
	return []string{t.tools(), "simple", a, b, "kmers_subtract", out}
}

// Subtract creates a database of k-mers present in a but absent from b,
// and returns its path, i.e., a + "_only". Counts are kept as they are in a.
func (t *Tool) Subtract(a, b string) (string, error) {
	out := a + SuffixOnly
	if err := t.run(t.SubtractCmd(a, b, out)); err != nil {
		return "", err
	}
	return out, nil
}
