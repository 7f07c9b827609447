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

// Package pipeline finds k-mers unique to each of two short-read libraries
// (e.g., the two parental haplotypes in trio binning), by driving kmc.
//
// For each library, k-mers are counted and a range of genuine k-mer counts
// is chosen from the count histogram (or given by the caller). K-mers of
// one library absent from the other are then dumped within that range.
// Stages run one after another, and the first failure aborts the run.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/trio-binning/hapkmer/hapkmer/cmd/histo"
	"github.com/trio-binning/hapkmer/hapkmer/cmd/kmc"
)

// LibraryNames are the labels of the two libraries.
var LibraryNames = [2]string{"A", "B"}

// prefix of temporary histogram files
const histogramPrefix = "hapkmer-histo-"

// DatabaseName returns the name of the k-mer database of a library.
func DatabaseName(name string) string { return "haplotype" + name }

// OutputName returns the name of the file of k-mers unique to a library.
func OutputName(name string) string { return "hap" + name + "_only_kmers.txt" }

// Config holds the parameters of a run.
type Config struct {
	// Libraries are the lists of input FASTA/Q files of library A and B.
	Libraries [2][]string

	K       int
	Threads int

	// The range of counts is detected from the histogram
	// only if both values are 0, otherwise they are used as they are.
	CountLower int
	CountUpper int

	OutDir     string
	ScratchDir string

	Compress bool // gzip the outputs
	KeepTmp  bool // keep histogram files
	Verify   bool // check that the outputs share no k-mers
}

// AutoRange tells if count ranges are computed from histograms.
func (c *Config) AutoRange() bool {
	return c.CountLower == 0 && c.CountUpper == 0
}

// Check checks the values of the config.
func (c *Config) Check() error {
	if c.K <= 0 {
		return fmt.Errorf("invalid k-mer size: %d", c.K)
	}
	if c.Threads <= 0 {
		return fmt.Errorf("invalid number of threads: %d", c.Threads)
	}
	for i, files := range c.Libraries {
		if len(files) == 0 {
			return fmt.Errorf("no input files for haplotype %s", LibraryNames[i])
		}
	}
	if c.OutDir == "" {
		c.OutDir = "."
	}
	if c.ScratchDir == "" {
		c.ScratchDir = "."
	}
	return nil
}

// Run finds k-mers unique to each library. The order of stages is:
//
//	count(A), range(A), count(B), range(B),
//	subtract(A-B), dump(A), subtract(B-A), dump(B), report.
func Run(cfg Config, tool *kmc.Tool, rep Reporter) (*Summary, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	if rep == nil {
		rep = NopReporter{}
	}

	summary := &Summary{K: cfg.K, AutoRange: cfg.AutoRange()}

	for i, name := range LibraryNames {
		lib := &LibraryResult{
			Name:     name,
			Files:    cfg.Libraries[i],
			Database: filepath.Join(cfg.OutDir, DatabaseName(name)),
		}

		rep.Phase(fmt.Sprintf("Counting k-mers in haplotype %s...", name))
		err := tool.Count(lib.Files, lib.Database, cfg.K, cfg.Threads, cfg.ScratchDir)
		if err != nil {
			return nil, err
		}

		if cfg.AutoRange() {
			rep.Phase("Computing and analyzing histogram...")
			r, histogram, err := analyzeHistogram(tool, lib.Database, &cfg, rep)
			if err != nil {
				return nil, err
			}
			lib.MinCount, lib.MaxCount = r.Min, r.Max
			lib.LowConfidence = r.LowConfidence
			lib.Histogram = histogram
		} else {
			lib.MinCount, lib.MaxCount = cfg.CountLower, cfg.CountUpper
		}
		rep.Phase(fmt.Sprintf("Using counts in range [%d,%d].", lib.MinCount, lib.MaxCount))

		summary.Libraries = append(summary.Libraries, lib)
	}

	a, b := summary.Libraries[0], summary.Libraries[1]
	for _, pair := range [][2]*LibraryResult{{a, b}, {b, a}} {
		lib, other := pair[0], pair[1]

		rep.Phase(fmt.Sprintf("Finding k-mers unique to haplotype %s...", lib.Name))
		db, err := tool.Subtract(lib.Database, other.Database)
		if err != nil {
			return nil, err
		}
		lib.UniqueDatabase = db

		rep.Phase(fmt.Sprintf("Dumping k-mers unique to haplotype %s...", lib.Name))
		lib.Output = filepath.Join(cfg.OutDir, OutputName(lib.Name))
		lib.UniqueKmers, err = tool.Dump(db, lib.Output, lib.MinCount, lib.MaxCount)
		if err != nil {
			return nil, err
		}

		if cfg.Compress {
			if lib.Output, err = compressFile(lib.Output, cfg.Threads); err != nil {
				return nil, err
			}
		}
	}

	if cfg.Verify {
		rep.Phase("Checking k-mers of the two haplotypes are disjoint...")
		shared, err := Disjoint(a.Output, b.Output, cfg.Threads)
		if err != nil {
			return nil, err
		}
		if shared > 0 {
			return nil, errors.Errorf("%d k-mers found in both %s and %s", shared, a.Output, b.Output)
		}
		summary.Verified = true
	}

	for _, lib := range summary.Libraries {
		rep.Result(fmt.Sprintf("# of unique k-mers in haplotype %s: %d", lib.Name, lib.UniqueKmers))
	}

	summary.File = filepath.Join(cfg.OutDir, SummaryFile)
	if err := summary.WriteTo(summary.File); err != nil {
		return nil, err
	}
	return summary, nil
}

// analyzeHistogram exports the histogram of db into a temporary file and
// derives the range of counts. The histogram file is removed unless the
// range is low-confidence, no range is found, or cfg.KeepTmp is set.
// The path of a kept file is returned.
func analyzeHistogram(tool *kmc.Tool, db string, cfg *Config, rep Reporter) (histo.Range, string, error) {
	var r histo.Range
	file, err := kmc.TempFile(cfg.ScratchDir, histogramPrefix)
	if err != nil {
		return r, "", err
	}

	cmd := tool.HistogramCmd(db, file)
	if err = tool.Histogram(db, file); err != nil {
		os.Remove(file)
		return r, "", err
	}

	h, err := histo.ReadFile(file)
	if err != nil {
		os.Remove(file)
		return r, "", err
	}

	r, err = histo.Analyze(h)
	if err != nil {
		return r, "", &histo.AnalysisError{Command: cmd, Histogram: file, Err: err}
	}

	if r.LowConfidence {
		rep.Warning(fmt.Sprintf("min and max coverage not very far apart. "+
			"This may be a result of coverage being too low. "+
			`Try taking a look at the histogram in "%s" yourself.`, file))
		return r, file, nil
	}
	if cfg.KeepTmp {
		return r, file, nil
	}

	if err = os.Remove(file); err != nil {
		return r, "", errors.Wrap(err, "remove temporary histogram file")
	}
	return r, "", nil
}
