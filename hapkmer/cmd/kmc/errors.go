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

package kmc

import (
	"fmt"
	"strings"
)

// BinaryNotFoundError means an external program is missing or not executable.
type BinaryNotFoundError struct {
	Binary string
	Err    error
}

func (e *BinaryNotFoundError) Error() string {
	return fmt.Sprintf("cannot execute %s: %s", e.Binary, e.Err)
}

func (e *BinaryNotFoundError) Unwrap() error { return e.Err }

// ProcessError means an external program failed, e.g., exited with
// a non-zero status.
type ProcessError struct {
	Command []string
	Err     error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("command failed: %s: %s", strings.Join(e.Command, " "), e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }
