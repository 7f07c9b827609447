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
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "hapkmer [flags] <reads of A> <reads of B>",
	Short: "Find k-mers unique to each of two short-read libraries",
	Long: fmt.Sprintf(`
    Program: hapkmer (k-mers unique to haplotypes)
    Version: v%s

hapkmer finds k-mers unique to each of two short-read libraries, e.g., the
two parental haplotypes in trio binning, with the k-mer counter KMC.

Steps for each library:
  1. Counting k-mers with kmc.
  2. Choosing the range of k-mer counts of genuine k-mers, from the first
     local minimum of the count histogram (sequencing errors below it), to
     the count where the frequency drops below the one at the minimum
     (repeats above it). Or using the range given by -l/-u.
  3. Subtracting k-mers of the other library with kmc_tools.
  4. Dumping k-mers within the range with kmc_dump.

Input:
  Two comma-separated lists of FASTA/Q files (gzipped or not), one for each
  library. Directories in the lists are replaced by sequence files in them,
  matched by -r/--file-regexp.

Output (in -o/--outpath):
  haplotypeA, haplotypeB                  k-mer databases
  haplotypeA_only, haplotypeB_only        databases of unique k-mers
  hapA_only_kmers.txt, hapB_only_kmers.txt unique k-mers and their counts
  %s                              record of the run

Attention:
  1. kmc_tools and kmc_dump should be in the same directory as kmc.
  2. The range is detected automatically only if both -l/--count_lower and
     -u/--count_upper are 0, otherwise both values are used as they are.
  3. When the detected range is narrow, the histogram file is kept in the
     scratch directory for manual inspection.

`, VERSION, "hapkmer.yml"),
	Args: cobra.ExactArgs(2),
	Run:  runFind,
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(-1)
	}
}

func init() {
	RootCmd.PersistentFlags().IntP("threads", "p", 1, "number of threads to use in kmc")
	RootCmd.PersistentFlags().BoolP("quiet", "q", false, "do not print any verbose information")
	RootCmd.PersistentFlags().StringP("log", "", "", "log file")

	RootCmd.Flags().IntP("kmer-size", "k", 0, "k-mer size")
	RootCmd.Flags().IntP("count_lower", "l", 0, "minimal k-mer count, 0 for automatic detection when -u/--count_upper is also 0")
	RootCmd.Flags().IntP("count_upper", "u", 0, "maximal k-mer count, 0 for automatic detection when -l/--count_lower is also 0")
	RootCmd.Flags().StringP("path-to-kmc", "", "kmc", "path to the kmc binary, in case it's not in PATH")
	RootCmd.Flags().StringP("outpath", "o", ".", "directory to write output databases and k-mers to")
	RootCmd.Flags().StringP("scratch-dir", "s", ".", "directory for large temporary files")
	RootCmd.Flags().StringP("input-format", "f", "", `input format passed to kmc with -f: "a" (FASTA), "q" (FASTQ), "m" (multi-line FASTA), "bam", default: kmc's default`)
	RootCmd.Flags().StringP("file-regexp", "r", defaultFileRegexp, "regular expression for matching sequence files in directories, case ignored")
	RootCmd.Flags().BoolP("compress", "z", false, "gzip the files of unique k-mers")
	RootCmd.Flags().BoolP("keep-tmp", "", false, "keep histogram files in the scratch directory")
	RootCmd.Flags().BoolP("verify", "", false, "check that the two outputs share no k-mers")

	RootCmd.MarkFlagRequired("kmer-size")
}
