/*
 * rescu.go, part of gocrystal.
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

//Package rescu reads and writes the RESCU flavor of the XYZ format. On top
//of plain XYZ, each atom line may carry a collinear (one value) or
//non-collinear (three values) magnetic moment, and three 0/1 movable flags,
//giving lines of 4, 5, 7, 8 or 10 fields. '#' or '%' start a comment
//anywhere, and the first non-empty line after the atom count is the comment
//line, skipped regardless of content. The format carries no lattice; the
//structures read have a zero cell.
package rescu

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	cryst "github.com/dftdata/gocrystal"
	"gonum.org/v1/gonum/mat"
)

// Read parses a RESCU XYZ file into a Crystal.
func Read(filename string) (*cryst.Crystal, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("rescu.Read: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		for _, c := range []string{"#", "%"} {
			if i := strings.Index(line, c); i >= 0 {
				line = line[:i]
			}
		}
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("rescu.Read: %w", err)
	}
	if len(lines) < 1 {
		return nil, fmt.Errorf("rescu.Read %s: empty file", filename)
	}
	natoms, err := strconv.Atoi(lines[0])
	if err != nil {
		return nil, fmt.Errorf("rescu.Read %s: malformed atom count: %w", filename, err)
	}
	if natoms < 1 {
		return nil, fmt.Errorf("rescu.Read %s: non-positive atom count %d", filename, natoms)
	}

	atoms := make([]*cryst.Atom, 0, natoms)
	coords := make([]float64, 0, 3*natoms)
	//lines[1] is the comment line, skipped whatever it contains, so a
	//comment that happens to split like an atom line is not miscounted.
	var body []string
	if len(lines) > 2 {
		body = lines[2:]
	}
	for _, line := range body {
		fields := strings.Fields(line)
		at, xyz, err := parseAtomLine(fields)
		if err != nil {
			return nil, fmt.Errorf("rescu.Read %s: line %q: %w", filename, line, err)
		}
		atoms = append(atoms, at)
		coords = append(coords, xyz[0], xyz[1], xyz[2])
	}
	if len(atoms) != natoms {
		return nil, fmt.Errorf("rescu.Read %s: inconsistent atom count: declared %d, found %d", filename, natoms, len(atoms))
	}
	M, err := cryst.NewCrystal(cryst.ZeroCell(), atoms, mat.NewDense(natoms, 3, coords))
	if err != nil {
		return nil, fmt.Errorf("rescu.Read %s: %w", filename, err)
	}
	return M, nil
}

// parseAtomLine decodes one atom line by its field count.
func parseAtomLine(fields []string) (*cryst.Atom, [3]float64, error) {
	var xyz [3]float64
	n := len(fields)
	if n != 4 && n != 5 && n != 7 && n != 8 && n != 10 {
		return nil, xyz, fmt.Errorf("an atom line has 4, 5, 7, 8 or 10 fields, got %d", n)
	}
	at := cryst.NewAtom(fields[0])
	vals := make([]float64, 0, n-1)
	for _, s := range fields[1:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, xyz, err
		}
		vals = append(vals, v)
	}
	xyz[0], xyz[1], xyz[2] = vals[0], vals[1], vals[2]
	switch n {
	case 5:
		at.Mag = []float64{vals[3]}
	case 7:
		at.Mag = []float64{vals[3], vals[4], vals[5]}
	case 8:
		at.Mag = []float64{vals[3]}
		setFix(at, vals[4:7])
	case 10:
		at.Mag = []float64{vals[3], vals[4], vals[5]}
		setFix(at, vals[6:9])
	}
	return at, xyz, nil
}

// setFix translates the 0/1 movable flags into constraints: 0 means the
// component is fixed.
func setFix(at *cryst.Atom, movable []float64) {
	for j := 0; j < 3; j++ {
		at.Fix[j] = movable[j] == 0
	}
}

// Write writes the structure to filename in RESCU XYZ format, using the
// narrowest line layout that preserves its moments and constraints. A
// structure with constraints but no moments gets explicit zero moments, as
// the format gives no way to write the movable flags alone.
func Write(filename string, M *cryst.Crystal) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("rescu.Write: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	magShape := M.MagShape()
	hasFix := M.HasFix()
	if magShape == 0 && hasFix {
		magShape = 1 //zero scalar moments to make room for the flags
	}
	fmt.Fprintf(w, "%d\ngenerated by gocrystal\n", M.Len())
	for i, at := range M.Atoms {
		fmt.Fprintf(w, "%s %.6f %.6f %.6f", at.Symbol,
			M.Coords.At(i, 0), M.Coords.At(i, 1), M.Coords.At(i, 2))
		switch magShape {
		case 1:
			var m float64
			if len(at.Mag) >= 1 {
				m = at.Mag[0]
			}
			fmt.Fprintf(w, " %.2f", m)
		case 3:
			var mx, my, mz float64
			switch len(at.Mag) {
			case 3:
				mx, my, mz = at.Mag[0], at.Mag[1], at.Mag[2]
			case 1:
				mz = at.Mag[0]
			}
			fmt.Fprintf(w, " %.2f %.2f %.2f", mx, my, mz)
		}
		if hasFix {
			fmt.Fprintf(w, " %d %d %d", movable(at.Fix[0]), movable(at.Fix[1]), movable(at.Fix[2]))
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("rescu.Write: %w", err)
	}
	return nil
}

func movable(fixed bool) int {
	if fixed {
		return 0
	}
	return 1
}
