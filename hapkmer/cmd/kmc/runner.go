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

// Package kmc runs the k-mer counter KMC and its companion programs
// kmc_tools and kmc_dump as external processes.
//
// All invocations are synchronous: a call returns after the external
// process exits. Multi-threading is delegated to the external programs.
package kmc

import (
	"io"
	"io/fs"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// Runner executes an external program and waits for it to exit.
type Runner interface {
	Run(name string, args ...string) error
}

// ExecRunner runs programs with os/exec.
// Outputs of the child processes are written to Stdout and Stderr,
// which default to os.Stderr, keeping the stdout of hapkmer clean.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run runs a program. A program that can not be found or executed
// results in a *BinaryNotFoundError, any other failure,
// including a non-zero exit status, in a *ProcessError.
func (r *ExecRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stderr
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if notExecutable(err) {
		return &BinaryNotFoundError{Binary: name, Err: err}
	}
	return &ProcessError{Command: append([]string{name}, args...), Err: err}
}

func notExecutable(err error) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) ||
		errors.Is(err, exec.ErrDot) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission)
}
