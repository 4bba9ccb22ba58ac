/*
 * export.go, part of gocrystal.
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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// WriteCSV writes the dataset to w, one column per key in insertion order,
// with a header row. The label column, when present, is written last.
func (d *Dataset) WriteCSV(w io.Writer) error {
	if len(d.keys) == 0 {
		return fmt.Errorf("elec.WriteCSV: empty dataset")
	}
	nrows := d.Rows()
	for _, k := range d.keys {
		if len(d.cols[k]) != nrows {
			return fmt.Errorf("elec.WriteCSV: column %s has %d rows, want %d", k, len(d.cols[k]), nrows)
		}
	}
	hasLabels := len(d.labels) > 0
	if hasLabels && len(d.labels) != nrows {
		return fmt.Errorf("elec.WriteCSV: %d labels for %d rows", len(d.labels), nrows)
	}
	cw := csv.NewWriter(w)
	header := append([]string{}, d.keys...)
	if hasLabels {
		header = append(header, "label")
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, 0, len(header))
	for i := 0; i < nrows; i++ {
		row = row[:0]
		for _, k := range d.keys {
			row = append(row, strconv.FormatFloat(d.cols[k][i], 'g', -1, 64))
		}
		if hasLabels {
			row = append(row, d.labels[i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the dataset to the named CSV file, compressing the
// output when the name ends in .zst or .gz.
func (d *Dataset) WriteCSVFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("elec: %w", err)
	}
	var w io.Writer = f
	var finish func() error
	switch {
	case strings.HasSuffix(filename, ".zst"):
		e, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("elec: %w", err)
		}
		w, finish = e, e.Close
	case strings.HasSuffix(filename, ".gz"):
		g := gzip.NewWriter(f)
		w, finish = g, g.Close
	}
	if err := d.WriteCSV(w); err != nil {
		f.Close()
		return err
	}
	if finish != nil {
		if err := finish(); err != nil {
			f.Close()
			return fmt.Errorf("elec: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("elec: %w", err)
	}
	return nil
}
