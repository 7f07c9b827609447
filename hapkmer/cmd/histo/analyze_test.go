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
	"testing"
)

func fromCounts(counts ...int) Histogram {
	h := make(Histogram, len(counts))
	for i, c := range counts {
		h[i] = Bin{Coverage: i + 1, Count: c}
	}
	return h
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name string
		h    Histogram
		want Range
	}{
		{
			name: "typical",
			//               1     2    3    4    5    6    7    8    9   10   11   12   13  14
			h:    fromCounts(9000, 800, 300, 120, 90, 150, 400, 600, 450, 200, 110, 80, 40, 10),
			want: Range{Min: 5, Max: 12},
		},
		{
			name: "narrow",
			h:    fromCounts(50, 5, 3, 10, 20, 10, 1),
			want: Range{Min: 3, Max: 7, LowConfidence: true},
		},
		{
			name: "exactly min span",
			h:    fromCounts(100, 60, 40, 20, 30, 40, 30, 25, 19),
			want: Range{Min: 4, Max: 9},
		},
		{
			name: "first bin only seeds",
			h:    Histogram{{3, 10}, {4, 5}, {5, 8}, {6, 9}, {7, 8}, {8, 7}, {9, 6}, {10, 4}},
			want: Range{Min: 4, Max: 10},
		},
		{
			name: "zero coverage row",
			h:    Histogram{{0, 7}, {1, 9}, {3, 8}, {4, 7}, {5, 6}, {6, 5}, {7, 4}, {8, 3}},
			want: Range{Min: 0, Max: 5},
		},
		{
			name: "rise at coverage 3 compares with coverage 2",
			h:    fromCounts(100, 10, 50, 60, 40, 30, 20, 15, 12, 9),
			want: Range{Min: 2, Max: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Analyze(tt.h)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != tt.want {
				t.Errorf("got %v (low: %v), want %v (low: %v)", got, got.LowConfidence, tt.want, tt.want.LowConfidence)
			}
		})
	}
}

// the bin of coverage 2 never triggers a boundary, whatever its count.
func TestAnalyzeSkipsCoverage2(t *testing.T) {
	base := []int{1000, 0, 400, 200, 100, 150, 300, 250, 120, 90, 60}
	want := Range{Min: 5, Max: 10}

	for _, c2 := range []int{401, 999, 5000, 1 << 20} {
		counts := append([]int(nil), base...)
		counts[1] = c2
		got, err := Analyze(fromCounts(counts...))
		if err != nil {
			t.Fatalf("count at coverage 2 = %d: unexpected error: %s", c2, err)
		}
		if got != want {
			t.Errorf("count at coverage 2 = %d: got %v, want %v", c2, got, want)
		}
	}

	// an increase at coverage 2 alone is not a local minimum
	got, err := Analyze(fromCounts(10, 2000, 1000, 500, 600, 700, 800, 700, 600, 400))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if want := (Range{Min: 4, Max: 10}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// neither can a drop at coverage 2 end the range
	got, err = Analyze(Histogram{{0, 10}, {1, 20}, {2, 1}, {3, 15}, {4, 12}, {5, 11}, {6, 9}})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if want := (Range{Min: 0, Max: 6}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAnalyzeNotFound(t *testing.T) {
	tests := []struct {
		name string
		h    Histogram
	}{
		{"empty", nil},
		{"single bin", fromCounts(10)},
		{"monotonically decreasing", fromCounts(1000, 500, 250, 125, 60, 30, 15, 7, 3, 1)},
		{"never drops below trough", fromCounts(1000, 500, 100, 50, 200, 300, 200, 100, 60, 50)},
		{"flat", fromCounts(5, 5, 5, 5, 5, 5)},
		{"only rise at coverage 2", Histogram{{1, 10}, {2, 20}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Analyze(tt.h)
			if !errors.Is(err, ErrRangeNotFound) {
				t.Errorf("ErrRangeNotFound expected, got range %v and error %v", r, err)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	if err := fromCounts(3, 2, 1).Check(); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	if err := (Histogram{{1, 3}, {1, 2}}).Check(); err == nil {
		t.Errorf("duplicated coverage should be rejected")
	}
	if err := (Histogram{{2, 3}, {1, 2}}).Check(); err == nil {
		t.Errorf("decreasing coverage should be rejected")
	}
	if err := (Histogram{{1, -3}}).Check(); err == nil {
		t.Errorf("negative count should be rejected")
	}
}
