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

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// SummaryFile is the name of the file recording a run, in the output directory.
const SummaryFile = "hapkmer.yml"

// LibraryResult records the processing of one library.
type LibraryResult struct {
	Name     string   `yaml:"name"`
	Files    []string `yaml:"files"`
	Database string   `yaml:"database"`

	MinCount      int  `yaml:"min-count"`
	MaxCount      int  `yaml:"max-count"`
	LowConfidence bool `yaml:"low-confidence,omitempty"`
	// Histogram is the histogram file kept for manual inspection.
	Histogram string `yaml:"histogram,omitempty"`

	UniqueDatabase string `yaml:"unique-database"`
	Output         string `yaml:"output"`
	UniqueKmers    int    `yaml:"unique-kmers"`
}

// Summary records a run.
type Summary struct {
	K         int              `yaml:"k"`
	AutoRange bool             `yaml:"auto-range"`
	Verified  bool             `yaml:"verified"`
	Libraries []*LibraryResult `yaml:"libraries"`

	File string `yaml:"-"`
}

// WriteTo writes the summary in YAML.
func (s *Summary) WriteTo(file string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "fail to marshal run summary")
	}
	if err = os.WriteFile(file, data, 0644); err != nil {
		return errors.Wrap(err, "fail to write run summary")
	}
	return nil
}

// SummaryFromFile reads a summary written by WriteTo.
func SummaryFromFile(file string) (*Summary, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "fail to read run summary")
	}
	s := &Summary{}
	if err = yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, "fail to unmarshal run summary: %s", file)
	}
	s.File = file
	return s, nil
}
