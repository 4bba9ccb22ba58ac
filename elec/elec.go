/*
 * elec.go, part of gocrystal.
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

/*Package elec reads electronic-structure output files, band structures and
densities of states, and re-slices their orbital projections by atom, element
and orbital, so projected data can be regrouped without re-running the
calculation. Input files are the JSON flavor of the DFT output, possibly
zstd- or gzip-compressed (band.json, dos.json.zst, and so on).

Projected quantities come keyed as "<atom index><orbital>", e.g. "2dxy", with
"-up"/"-down" appended in collinear spin-polarized calculations. The Band and
DOS mode constants select how those keys are regrouped; contributions that
land on the same output key are summed.*/
package elec

import (
	"fmt"
	"strconv"
	"strings"
)

//How projected band contributions are regrouped. Mode 0 ignores the
//projections and keeps only the total band energies.
const (
	BandTotal          = 0
	BandElement        = 1 //sum onto the element of each atom
	BandElementShell   = 2 //element plus s/p/d/f shell
	BandElementOrbital = 3 //element plus full orbital (px, dxy, ...)
	BandAtomShell      = 4 //atom index plus s/p/d/f shell
	BandAtomOrbital    = 5 //atom index plus full orbital (the raw keys)
)

//How projected DOS contributions are regrouped. The numbering is not the
//same as for bands.
const (
	DOSTotal       = 0
	DOSShell       = 1 //s/p/d/f shell, summed over all atoms
	DOSOrbital     = 2 //full orbital, summed over all atoms
	DOSElement     = 3 //sum onto the element of each atom
	DOSAtomShell   = 4 //atom index plus s/p/d/f shell
	DOSAtomOrbital = 5 //atom index plus full orbital (the raw keys)
	DOST2gEg       = 6 //d orbitals regrouped into t2g and eg, per atom
	DOSAtom        = 7 //all orbitals summed per atom
)

// Dataset is an insertion-ordered set of named float64 columns of equal
// length, with one optional string column for k-point labels. It is what both
// readers produce and what the export and plotting layers consume.
type Dataset struct {
	keys   []string
	cols   map[string][]float64
	labels []string
}

func NewDataset() *Dataset {
	return &Dataset{cols: make(map[string][]float64)}
}

// Set inserts or replaces a column, keeping insertion order for new keys.
func (d *Dataset) Set(key string, vals []float64) {
	if _, ok := d.cols[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.cols[key] = vals
}

// Add element-wise adds vals into the column key, creating it if absent.
// This is how contributions regrouped onto the same key accumulate.
func (d *Dataset) Add(key string, vals []float64) error {
	old, ok := d.cols[key]
	if !ok {
		cp := make([]float64, len(vals))
		copy(cp, vals)
		d.Set(key, cp)
		return nil
	}
	if len(old) != len(vals) {
		return fmt.Errorf("elec: column %q has %d rows, cannot add %d", key, len(old), len(vals))
	}
	for i := range old {
		old[i] += vals[i]
	}
	return nil
}

// Keys returns the column names in insertion order.
func (d *Dataset) Keys() []string { return d.keys }

// Col returns the column with the given name, or nil.
func (d *Dataset) Col(key string) []float64 { return d.cols[key] }

// Rows returns the common column length (0 for an empty dataset).
func (d *Dataset) Rows() int {
	if len(d.keys) == 0 {
		return 0
	}
	return len(d.cols[d.keys[0]])
}

// SetLabels attaches the per-row string labels (the high-symmetry k-point
// names; empty where there is none).
func (d *Dataset) SetLabels(labels []string) { d.labels = labels }

// Labels returns the label column, or nil if there is none.
func (d *Dataset) Labels() []string { return d.labels }

// splitAtomOrbital splits a projection key like "12dxy" into the atom index
// and the orbital name.
func splitAtomOrbital(s string) (int, string, error) {
	cut := len(s)
	for i, c := range s {
		if c < '0' || c > '9' {
			cut = i
			break
		}
	}
	if cut == 0 {
		return 0, "", fmt.Errorf("elec: projection key %q has no atom index", s)
	}
	a, err := strconv.Atoi(s[:cut])
	if err != nil {
		return 0, "", fmt.Errorf("elec: projection key %q: %w", s, err)
	}
	return a, s[cut:], nil
}

// splitSpin splits "2dxy-up" into the atom/orbital part and the spin suffix,
// which is empty for non-polarized data.
func splitSpin(key string) (string, string, error) {
	parts := strings.Split(key, "-")
	switch len(parts) {
	case 1:
		return parts[0], "", nil
	case 2:
		return parts[0], parts[1], nil
	}
	return "", "", fmt.Errorf("elec: malformed projection key %q", key)
}

// withSpin appends the spin suffix, when there is one, back onto a regrouped
// key.
func withSpin(key, spin string) string {
	if spin == "" {
		return key
	}
	return key + "-" + spin
}
