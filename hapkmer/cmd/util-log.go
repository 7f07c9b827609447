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

	"github.com/pkg/errors"
	"github.com/shenwei356/go-logging"
	"github.com/trio-binning/hapkmer/hapkmer/cmd/kmc"
)

var log = logging.MustGetLogger("hapkmer")

var logFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{color}[%{level:.4s}]%{color:reset} %{message}`,
)

var logFileFormat = logging.MustStringFormatter(
	`%{time:2006-01-02 15:04:05.000} [%{level:.4s}] %{message}`,
)

var stderrBackend logging.Backend

// InitLogger sends log records to w, which is usually os.Stderr.
func InitLogger(w io.Writer) {
	stderrBackend = logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), logFormat)
	logging.SetBackend(stderrBackend)
}

// addLogFile also writes log records into file.
func addLogFile(file string) (*os.File, error) {
	fh, err := os.Create(file)
	if err != nil {
		return nil, errors.Wrap(err, "fail to create log file")
	}
	fileBackend := logging.NewBackendFormatter(logging.NewLogBackend(fh, "", 0), logFileFormat)
	if stderrBackend == nil {
		InitLogger(os.Stderr)
	}
	logging.SetBackend(stderrBackend, fileBackend)
	return fh, nil
}

func checkError(err error) {
	if err == nil {
		return
	}
	msg, status := exitStatus(err)
	log.Error(msg)
	os.Exit(status)
}

// exitStatus returns the message and exit status of a fatal error.
// A missing kmc program exits with 1, others with -1.
func exitStatus(err error) (string, int) {
	var notFound *kmc.BinaryNotFoundError
	if errors.As(err, &notFound) {
		return fmt.Sprintf("Cannot execute %s. Make sure kmc is installed and either in "+
			"your PATH or specified by the --path-to-kmc option.", notFound.Binary), 1
	}
	return err.Error(), -1
}

// logReporter reports progress of the pipeline with the logger.
type logReporter struct {
	verbose bool
}

func (r logReporter) Phase(msg string) {
	if r.verbose {
		log.Info(msg)
	}
}

func (r logReporter) Warning(msg string) { log.Warning(msg) }

func (r logReporter) Result(msg string) { log.Notice(msg) }
