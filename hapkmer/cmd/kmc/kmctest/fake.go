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

// Package kmctest provides a stand-in of kmc, kmc_tools and kmc_dump
// for tests, so no real binaries are needed.
//
// A database is a text file (the database path plus ".kmc_suf") with one
// k-mer and its count per line, sorted by k-mer. K-mers are not
// canonicalized, and the histogram covers counts from 1 to the maximum
// count, including empty bins, like kmc_tools does.
package kmctest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/xopen"
	"github.com/trio-binning/hapkmer/hapkmer/cmd/kmc"
)

// DBSuffix is the suffix of the file storing a database.
const DBSuffix = ".kmc_suf"

// Fake emulates kmc programs with the prefix Prefix.
type Fake struct {
	Prefix string

	// Calls records all invocations, including failed ones.
	Calls [][]string

	// FileLists records the content of file lists passed to kmc,
	// they are read during the invocation.
	FileLists [][]string

	// ListFilePaths records the paths of file lists passed to kmc.
	ListFilePaths []string

	// Missing programs fail with *kmc.BinaryNotFoundError.
	Missing map[string]bool

	// Failing programs fail with *kmc.ProcessError.
	Failing map[string]bool
}

// New returns a Fake for programs kmc, kmc_tools and kmc_dump with the prefix.
func New(prefix string) *Fake {
	seq.ValidateSeq = false
	return &Fake{
		Prefix:  prefix,
		Missing: make(map[string]bool),
		Failing: make(map[string]bool),
	}
}

// Run implements kmc.Runner.
func (f *Fake) Run(name string, args ...string) error {
	cmd := append([]string{name}, args...)
	f.Calls = append(f.Calls, cmd)

	if f.Missing[name] {
		return &kmc.BinaryNotFoundError{Binary: name, Err: exec.ErrNotFound}
	}
	if f.Failing[name] {
		return &kmc.ProcessError{Command: cmd, Err: errors.New("exit status 1")}
	}

	var err error
	switch name {
	case f.Prefix:
		err = f.count(args)
	case f.Prefix + kmc.SuffixTools:
		err = f.tools(args)
	case f.Prefix + kmc.SuffixDump:
		err = f.dump(args)
	default:
		return &kmc.BinaryNotFoundError{Binary: name, Err: exec.ErrNotFound}
	}
	if err != nil {
		return &kmc.ProcessError{Command: cmd, Err: err}
	}
	return nil
}

// Called returns the number of invocations of a program.
func (f *Fake) Called(name string) int {
	var n int
	for _, cmd := range f.Calls {
		if cmd[0] == name {
			n++
		}
	}
	return n
}

// kmc -k<k> -t<threads> [-f<format>] @<list> <db> <scratch>
func (f *Fake) count(args []string) error {
	var k int
	var err error
	positional := make([]string, 0, 3)
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "-k"):
			if k, err = strconv.Atoi(arg[2:]); err != nil || k <= 0 {
				return errors.Errorf("invalid k: %s", arg)
			}
		case strings.HasPrefix(arg, "-t"), strings.HasPrefix(arg, "-f"):
		case strings.HasPrefix(arg, "-"):
			return errors.Errorf("unknown option: %s", arg)
		default:
			positional = append(positional, arg)
		}
	}
	if k == 0 || len(positional) != 3 || !strings.HasPrefix(positional[0], "@") {
		return errors.Errorf("invalid arguments: %s", strings.Join(args, " "))
	}
	listFile, db := positional[0][1:], positional[1]

	files, err := readLines(listFile)
	if err != nil {
		return err
	}
	f.ListFilePaths = append(f.ListFilePaths, listFile)
	f.FileLists = append(f.FileLists, files)

	counts := make(map[string]int, 1024)
	for _, file := range files {
		if err = countFile(file, k, counts); err != nil {
			return err
		}
	}
	return WriteDB(db, counts)
}

// kmc_tools transform <db> histogram <out>
// kmc_tools simple <a> <b> kmers_subtract <out>
func (f *Fake) tools(args []string) error {
	if len(args) == 4 && args[0] == "transform" && args[2] == "histogram" {
		counts, err := ReadDB(args[1])
		if err != nil {
			return err
		}
		return writeHistogram(args[3], counts)
	}

	if len(args) == 5 && args[0] == "simple" && args[3] == "kmers_subtract" {
		a, err := ReadDB(args[1])
		if err != nil {
			return err
		}
		b, err := ReadDB(args[2])
		if err != nil {
			return err
		}
		for kmer := range b {
			delete(a, kmer)
		}
		return WriteDB(args[4], a)
	}

	return errors.Errorf("unsupported arguments: %s", strings.Join(args, " "))
}

// kmc_dump -ci<min> -cx<max> <db> <out>
func (f *Fake) dump(args []string) error {
	if len(args) != 4 || !strings.HasPrefix(args[0], "-ci") || !strings.HasPrefix(args[1], "-cx") {
		return errors.Errorf("unsupported arguments: %s", strings.Join(args, " "))
	}
	min, err := strconv.Atoi(args[0][3:])
	if err != nil {
		return err
	}
	max, err := strconv.Atoi(args[1][3:])
	if err != nil {
		return err
	}
	counts, err := ReadDB(args[2])
	if err != nil {
		return err
	}

	selected := make(map[string]int, len(counts))
	for kmer, c := range counts {
		if c >= min && c <= max {
			selected[kmer] = c
		}
	}
	return writeCounts(args[3], selected)
}

// WriteDB writes a database of k-mer counts.
func WriteDB(db string, counts map[string]int) error {
	if err := os.WriteFile(db+".kmc_pre", nil, 0644); err != nil {
		return err
	}
	return writeCounts(db+DBSuffix, counts)
}

// ReadDB reads a database written by WriteDB.
func ReadDB(db string) (map[string]int, error) {
	lines, err := readLines(db + DBSuffix)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(lines))
	for _, line := range lines {
		items := strings.Split(line, "\t")
		if len(items) != 2 {
			return nil, errors.Errorf("invalid database line: %s", line)
		}
		c, err := strconv.Atoi(items[1])
		if err != nil {
			return nil, errors.Errorf("invalid database line: %s", line)
		}
		counts[items[0]] = c
	}
	return counts, nil
}

func writeCounts(file string, counts map[string]int) error {
	kmers := make([]string, 0, len(counts))
	for kmer := range counts {
		kmers = append(kmers, kmer)
	}
	sort.Strings(kmers)

	outfh, err := xopen.Wopen(file)
	if err != nil {
		return err
	}
	for _, kmer := range kmers {
		fmt.Fprintf(outfh, "%s\t%d\n", kmer, counts[kmer])
	}
	return outfh.Close()
}

func writeHistogram(file string, counts map[string]int) error {
	var max int
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	bins := make([]int, max+1)
	for _, c := range counts {
		bins[c]++
	}

	outfh, err := xopen.Wopen(file)
	if err != nil {
		return err
	}
	for c := 1; c <= max; c++ {
		fmt.Fprintf(outfh, "%d\t%d\n", c, bins[c])
	}
	return outfh.Close()
}

// readLines returns non-empty lines of a plain or gzipped file.
func readLines(file string) ([]string, error) {
	lines := make([]string, 0, 64)

	infh, err := xopen.Ropen(file)
	if err == xopen.ErrNoContent {
		return lines, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	defer infh.Close()

	var line string
	for {
		line, err = infh.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, file)
		}
	}
	return lines, nil
}

// countFile counts k-mers in a FASTA or FASTQ file, k-mers with bases
// other than A, C, G, T are skipped.
func countFile(file string, k int, counts map[string]int) error {
	info, err := os.Stat(file)
	if err != nil {
		return errors.Wrap(err, file)
	}
	if info.Size() == 0 {
		return nil
	}

	fastxReader, err := fastx.NewDefaultReader(file)
	if err != nil {
		return errors.Wrap(err, file)
	}

	var record *fastx.Record
	for {
		record, err = fastxReader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return errors.Wrap(err, file)
		}
		countSeq(bytes.ToUpper(record.Seq.Seq), k, counts)
	}
	return nil
}

func countSeq(s []byte, k int, counts map[string]int) {
	var j int
LOOP:
	for i := 0; i+k <= len(s); i++ {
		for j = i; j < i+k; j++ {
			switch s[j] {
			case 'A', 'C', 'G', 'T':
			default:
				continue LOOP
			}
		}
		counts[string(s[i:i+k])]++
	}
}
