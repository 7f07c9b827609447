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
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/iafan/cwalk"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/shenwei356/go-logging"
	"github.com/shenwei356/util/cliutil"
	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"
)

const defaultFileRegexp = `\.(f[aq](st[aq])?|fna)(\.gz)?$`

// Options contains the global flags
type Options struct {
	NumCPUs int
	Verbose bool

	LogFile string
	logfh   *os.File
}

// Close closes the log file, if any, and logs to stderr only.
func (opt *Options) Close() {
	if opt.logfh == nil {
		return
	}
	logging.SetBackend(stderrBackend)
	if err := opt.logfh.Close(); err != nil {
		log.Warningf("fail to close log file %s: %s", opt.LogFile, err)
	}
	opt.logfh = nil
}

func getOptions(cmd *cobra.Command) *Options {
	threads := getFlagPositiveInt(cmd, "threads")

	opt := &Options{
		NumCPUs: threads,
		Verbose: !getFlagBool(cmd, "quiet"),

		LogFile: getFlagString(cmd, "log"),
	}
	if opt.LogFile != "" {
		var err error
		opt.logfh, err = addLogFile(opt.LogFile)
		checkError(err)
	}
	return opt
}

func getFlagString(cmd *cobra.Command, flag string) string {
	return cliutil.GetFlagString(cmd, flag)
}

func getFlagBool(cmd *cobra.Command, flag string) bool {
	value, err := cmd.Flags().GetBool(flag)
	checkError(err)
	return value
}

func getFlagInt(cmd *cobra.Command, flag string) int {
	value, err := cmd.Flags().GetInt(flag)
	checkError(err)
	return value
}

func getFlagPositiveInt(cmd *cobra.Command, flag string) int {
	value := getFlagInt(cmd, flag)
	if value <= 0 {
		checkError(fmt.Errorf("value of flag --%s should be greater than 0", flag))
	}
	return value
}

// getFlagPath returns the value of a flag of a path, with "~" expanded.
func getFlagPath(cmd *cobra.Command, flag string) string {
	path, err := homedir.Expand(getFlagString(cmd, flag))
	checkError(errors.Wrapf(err, "flag --%s", flag))
	return path
}

func makeDir(dir string) error {
	existed, err := pathutil.DirExists(dir)
	if err != nil {
		return errors.Wrap(err, dir)
	}
	if existed {
		return nil
	}
	return os.MkdirAll(dir, 0777)
}

// getReadFiles parses a comma-separated list of sequence files.
// A directory in the list is replaced by the files matching pattern in it.
func getReadFiles(list string, pattern *regexp.Regexp, threads int) ([]string, error) {
	files := make([]string, 0, 8)
	var existed, isDir bool
	var err error
	for _, file := range strings.Split(list, ",") {
		file = strings.TrimSpace(file)
		if file == "" {
			continue
		}
		if file, err = homedir.Expand(file); err != nil {
			return nil, err
		}

		existed, err = pathutil.Exists(file)
		if err != nil {
			return nil, errors.Wrap(err, file)
		}
		if !existed {
			return nil, fmt.Errorf("file not found: %s", file)
		}

		isDir, err = pathutil.IsDir(file)
		if err != nil {
			return nil, errors.Wrap(err, file)
		}
		if !isDir {
			files = append(files, file)
			continue
		}

		_files, err := getFileListFromDir(file, pattern, threads)
		if err != nil {
			return nil, errors.Wrap(err, file)
		}
		if len(_files) == 0 {
			log.Warningf("no sequence files found in directory: %s", file)
			continue
		}
		sort.Strings(_files)
		files = append(files, _files...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no sequence files given in: %s", list)
	}
	return files, nil
}

func getFileListFromDir(path string, pattern *regexp.Regexp, threads int) ([]string, error) {
	files := make([]string, 0, 512)
	ch := make(chan string, threads)
	done := make(chan int)
	go func() {
		for file := range ch {
			files = append(files, file)
		}
		done <- 1
	}()

	cwalk.NumWorkers = threads
	err := cwalk.WalkWithSymlinks(path, func(_path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && pattern.MatchString(info.Name()) {
			ch <- filepath.Join(path, _path)
		}
		return nil
	})
	close(ch)
	<-done
	if err != nil {
		return nil, err
	}

	return files, err
}
