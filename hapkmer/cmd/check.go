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

	"github.com/spf13/cobra"
	"github.com/trio-binning/hapkmer/hapkmer/cmd/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check <k-mers of A> <k-mers of B>",
	Short: "Check that two k-mer files share no k-mers",
	Long: `Check that two k-mer files share no k-mers

Inputs are k-mer files dumped by kmc_dump (plain or gzipped), i.e.,
one k-mer and its count per line. The number of shared k-mers is printed,
and a non-zero exit status is returned if any.

`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		defer opt.Close()

		shared, err := pipeline.Disjoint(args[0], args[1], opt.NumCPUs)
		checkError(err)

		fmt.Printf("%d\n", shared)
		if shared > 0 {
			checkError(fmt.Errorf("%d k-mers found in both %s and %s", shared, args[0], args[1]))
		}
		if opt.Verbose {
			log.Infof("no shared k-mers")
		}
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
