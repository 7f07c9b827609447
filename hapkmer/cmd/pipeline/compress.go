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

package pipeline

import (
	"io"
	"os"

	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
)

// compressFile gzips file into file.gz and removes file.
func compressFile(file string, threads int) (string, error) {
	out := file + ".gz"

	// an empty dump gives an empty gzip stream
	infh, err := xopen.Ropen(file)
	if err == xopen.ErrNoContent {
		infh = nil
	} else if err != nil {
		return "", errors.Wrap(err, file)
	} else {
		defer infh.Close()
	}

	w, err := os.Create(out)
	if err != nil {
		return "", errors.Wrap(err, out)
	}
	defer w.Close()

	gw, err := gzip.NewWriterLevel(w, gzip.DefaultCompression)
	if err != nil {
		return "", errors.Wrap(err, out)
	}
	if threads < 1 {
		threads = 1
	}
	if err = gw.SetConcurrency(1<<20, threads); err != nil {
		return "", errors.Wrap(err, out)
	}

	if infh != nil {
		if _, err = io.Copy(gw, infh); err != nil {
			return "", errors.Wrap(err, out)
		}
	}
	if err = gw.Close(); err != nil {
		return "", errors.Wrap(err, out)
	}
	if err = w.Close(); err != nil {
		return "", errors.Wrap(err, out)
	}

	if infh != nil {
		infh.Close()
	}
	if err = os.Remove(file); err != nil {
		return "", errors.Wrap(err, file)
	}
	return out, nil
}
