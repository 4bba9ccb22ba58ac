/*
 * read.go, part of gocrystal.
 *
 * Copyright 2026 The gocrystal developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package elec

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//zstd.Decoder doesn't implement io.ReadCloser, so we wrap it together with
//the file it reads from.
type zstdReadCloser struct {
	*zstd.Decoder
	f *os.File
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

type gzipReadCloser struct {
	*gzip.Reader
	f *os.File
}

func (g gzipReadCloser) Close() error {
	if err := g.Reader.Close(); err != nil {
		g.f.Close()
		return err
	}
	return g.f.Close()
}

// openData opens a data file for reading, transparently decompressing .zst
// and .gz, and returns the reader together with the remaining file name, so
// callers can still dispatch on the inner extension.
func openData(filename string) (io.ReadCloser, string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, "", err
	}
	switch {
	case strings.HasSuffix(filename, ".zst"):
		d, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, "", err
		}
		return zstdReadCloser{d, f}, strings.TrimSuffix(filename, ".zst"), nil
	case strings.HasSuffix(filename, ".gz"):
		g, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, "", err
		}
		return gzipReadCloser{g, f}, strings.TrimSuffix(filename, ".gz"), nil
	}
	return f, filename, nil
}

// openJSON is openData plus the check that the payload is the JSON flavor of
// the output; the HDF5 flavor of the same files is not supported.
func openJSON(filename string) (io.ReadCloser, error) {
	r, inner, err := openData(filename)
	if err != nil {
		return nil, fmt.Errorf("elec: %w", err)
	}
	if !strings.HasSuffix(inner, ".json") {
		r.Close()
		return nil, fmt.Errorf("elec: %s: only JSON data files are supported (optionally .gz or .zst compressed)", filename)
	}
	return r, nil
}
