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
	"io"
	"os"
	"regexp"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	prettytable "github.com/tatsushid/go-prettytable"
	"github.com/trio-binning/hapkmer/hapkmer/cmd/kmc"
	"github.com/trio-binning/hapkmer/hapkmer/cmd/pipeline"
)

var inputFormats = map[string]bool{"": true, "a": true, "q": true, "m": true, "bam": true, "kmc": true}

func runFind(cmd *cobra.Command, args []string) {
	opt := getOptions(cmd)
	defer opt.Close()

	timeStart := time.Now()
	defer func() {
		if opt.Verbose {
			log.Infof("elapsed time: %s", time.Since(timeStart))
		}
	}()

	// ---------------------------------------------------------------
	// flags

	k := getFlagPositiveInt(cmd, "kmer-size")
	lower := getFlagInt(cmd, "count_lower")
	upper := getFlagInt(cmd, "count_upper")

	kmcPath := getFlagPath(cmd, "path-to-kmc")
	outDir := getFlagPath(cmd, "outpath")
	scratchDir := getFlagPath(cmd, "scratch-dir")

	format := getFlagString(cmd, "input-format")
	if !inputFormats[format] {
		checkError(fmt.Errorf(`invalid value of flag -f/--input-format: %s, available: "a", "q", "m", "bam", "kmc"`, format))
	}

	reFile := getFlagString(cmd, "file-regexp")
	pattern, err := regexp.Compile("(?i)" + reFile)
	if err != nil {
		checkError(fmt.Errorf("fail to compile regular expression: %s", reFile))
	}

	// ---------------------------------------------------------------
	// input files

	if opt.Verbose {
		log.Info("checking input files ...")
	}
	var libraries [2][]string
	for i, list := range args {
		libraries[i], err = getReadFiles(list, pattern, opt.NumCPUs)
		checkError(err)
		if opt.Verbose {
			log.Infof("%d input file(s) given for haplotype %s", len(libraries[i]), pipeline.LibraryNames[i])
		}
	}

	checkError(makeDir(outDir))
	checkError(makeDir(scratchDir))

	cfg := pipeline.Config{
		Libraries:  libraries,
		K:          k,
		Threads:    opt.NumCPUs,
		CountLower: lower,
		CountUpper: upper,
		OutDir:     outDir,
		ScratchDir: scratchDir,
		Compress:   getFlagBool(cmd, "compress"),
		KeepTmp:    getFlagBool(cmd, "keep-tmp"),
		Verify:     getFlagBool(cmd, "verify"),
	}

	if opt.Verbose {
		log.Infof("-------------------- [main parameters] --------------------")
		log.Infof("k: %d", k)
		if cfg.AutoRange() {
			log.Infof("k-mer count range: automatic detection")
		} else {
			log.Infof("k-mer count range: [%d,%d]", lower, upper)
		}
		log.Infof("kmc: %s", kmcPath)
		log.Infof("threads: %d", opt.NumCPUs)
		log.Infof("output directory: %s", outDir)
		log.Infof("scratch directory: %s", scratchDir)
		log.Infof("-------------------- [main parameters] --------------------")
	}

	// ---------------------------------------------------------------

	tool := kmc.New(kmcPath, &kmc.ExecRunner{})
	tool.InputFormat = format

	summary, err := pipeline.Run(cfg, tool, logReporter{verbose: opt.Verbose})
	checkError(err)

	if opt.Verbose {
		writeSummaryTable(os.Stderr, summary)
		log.Infof("run summary saved to %s", summary.File)
	}
}

func writeSummaryTable(w io.Writer, summary *pipeline.Summary) {
	tbl, err := prettytable.NewTable([]prettytable.Column{
		{Header: "haplotype"},
		{Header: "database"},
		{Header: "range", AlignRight: true},
		{Header: "auto", AlignRight: true},
		{Header: "unique-kmers", AlignRight: true},
		{Header: "output"},
	}...)
	checkError(err)
	tbl.Separator = "  "

	for _, lib := range summary.Libraries {
		tbl.AddRow(
			lib.Name,
			lib.Database,
			fmt.Sprintf("[%d,%d]", lib.MinCount, lib.MaxCount),
			boolStr("yes", "no", summary.AutoRange),
			humanize.Comma(int64(lib.UniqueKmers)),
			lib.Output,
		)
	}
	w.Write(tbl.Bytes())
}

func boolStr(t, f string, v bool) string {
	if v {
		return t
	}
	return f
}
