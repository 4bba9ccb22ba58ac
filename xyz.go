/*
 * xyz.go, part of gocrystal.
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

package cryst

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// XYZRead reads a plain XYZ file: an atom count, a comment line, then one
// "Symbol x y z" line per atom, in Angstrom. Plain XYZ carries no lattice, so
// the returned structure has a zero cell; most gocrystal operations on it
// other than conversion will refuse to run.
func XYZRead(filename string) (*Crystal, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errDecorate(err, "XYZRead: "+filename)
	}
	defer f.Close()
	M, err := xyzReadFrom(bufio.NewReader(f))
	if err != nil {
		return nil, errDecorate(err, "XYZRead: "+filename)
	}
	return M, nil
}

func xyzReadFrom(r *bufio.Reader) (*Crystal, error) {
	countline, err := r.ReadString('\n')
	if err != nil {
		return nil, CError{msg: "failed to read the atom count line: " + err.Error(), deco: []string{"xyzReadFrom"}}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(countline))
	if err != nil {
		return nil, CError{msg: "malformed atom count line: " + err.Error(), deco: []string{"xyzReadFrom"}}
	}
	if natoms < 1 {
		return nil, CError{msg: fmt.Sprintf("non-positive atom count %d", natoms), deco: []string{"xyzReadFrom"}}
	}
	if _, err := r.ReadString('\n'); err != nil { //comment line
		return nil, CError{msg: "truncated file: " + err.Error(), deco: []string{"xyzReadFrom"}}
	}
	atoms := make([]*Atom, 0, natoms)
	coords := make([]float64, 0, 3*natoms)
	for i := 0; i < natoms; i++ {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, CError{msg: fmt.Sprintf("failed to read atom %d: %s", i, err.Error()), deco: []string{"xyzReadFrom"}}
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, CError{msg: fmt.Sprintf("atom line %d has %d fields, want at least 4", i, len(fields)), deco: []string{"xyzReadFrom"}}
		}
		atoms = append(atoms, NewAtom(fields[0]))
		for j := 1; j <= 3; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, CError{msg: fmt.Sprintf("atom line %d: %s", i, err.Error()), deco: []string{"xyzReadFrom"}}
			}
			coords = append(coords, v)
		}
	}
	return &Crystal{Cell: ZeroCell(), Atoms: atoms, Coords: mat.NewDense(natoms, 3, coords)}, nil
}

// XYZWrite writes the structure to filename in plain XYZ format. The lattice,
// constraints and magnetic moments, if any, are not representable in plain
// XYZ and are dropped silently.
func XYZWrite(filename string, M *Crystal) error {
	f, err := os.Create(filename)
	if err != nil {
		return errDecorate(err, "XYZWrite: "+filename)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d\n\n", M.Len())
	for i, at := range M.Atoms {
		fmt.Fprintf(w, "%s %.6f %.6f %.6f\n", at.Symbol, M.Coords.At(i, 0), M.Coords.At(i, 1), M.Coords.At(i, 2))
	}
	if err := w.Flush(); err != nil {
		return errDecorate(err, "XYZWrite: "+filename)
	}
	return nil
}
