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

package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/trio-binning/hapkmer/hapkmer/cmd/histo"
)

var histoCmd = &cobra.Command{
	Use:   "histo",
	Short: "Choose the range of k-mer counts from histogram files",
	Long: `Choose the range of k-mer counts from histogram files

Input is a two-column histogram (k-mer count and the number of k-mers with
that count), e.g., generated by "kmc_tools transform <db> histogram <file>",
or kept by hapkmer for a low-confidence range.

The lower bound is the first local minimum (the bin of count 2 never
counts as one), the upper bound is the first following count whose frequency
is smaller than the one at the lower bound.

Output columns:

    file,            histogram file
    min,             minimal k-mer count
    max,             maximal k-mer count
    low-confidence,  max - min < 5, the sequencing depth may be too low
    kmers,           the number of distinct k-mers in the histogram

`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		defer opt.Close()

		outFile := getFlagString(cmd, "out-file")
		noHeaderRow := getFlagBool(cmd, "no-header-row")

		outfh, gw, w, err := outStream(outFile, strings.HasSuffix(strings.ToLower(outFile), ".gz"), -1)
		checkError(err)
		defer func() {
			outfh.Flush()
			if gw != nil {
				gw.Close()
			}
			w.Close()
		}()

		if !noHeaderRow {
			fmt.Fprintf(outfh, "file\tmin\tmax\tlow-confidence\tkmers\n")
		}

		var nFailed int
		for _, file := range args {
			h, err := histo.ReadFile(file)
			checkError(err)

			r, err := histo.Analyze(h)
			if err != nil {
				if errors.Is(err, histo.ErrRangeNotFound) {
					log.Warningf("could not find min and max counts in histogram: %s", file)
					nFailed++
					continue
				}
				checkError(err)
			}
			if r.LowConfidence && opt.Verbose {
				log.Warningf("min and max coverage not very far apart: %s", file)
			}

			fmt.Fprintf(outfh, "%s\t%d\t%d\t%v\t%d\n", file, r.Min, r.Max, r.LowConfidence, h.Distinct())
		}

		if nFailed > 0 {
			outfh.Flush()
			checkError(fmt.Errorf("no range found in %d histogram file(s)", nFailed))
		}
	},
}

func init() {
	RootCmd.AddCommand(histoCmd)

	histoCmd.Flags().StringP("out-file", "o", "-", `out file, supports a ".gz" suffix ("-" for stdout)`)
	histoCmd.Flags().BoolP("no-header-row", "H", false, "do not print header row")
}
