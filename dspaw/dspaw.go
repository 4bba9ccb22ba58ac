/*
 * dspaw.go, part of gocrystal.
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

//Package dspaw reads and writes the DS-PAW .as structure format: atom count,
//lattice block with optional per-component constraints, a coordinate-type
//line declaring the extra per-atom columns, and one line per atom holding the
//position plus those columns (positional constraints, scalar or vector
//magnetic moments). '#' starts a comment anywhere in the file.
package dspaw

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	cryst "github.com/dftdata/gocrystal"
	"gonum.org/v1/gonum/mat"
)

//The per-atom column tags a .as coordinate line may declare, and the number
//of fields each consumes.
var columnWidth = map[string]int{
	"Fix":   3,
	"Fix_x": 1,
	"Fix_y": 1,
	"Fix_z": 1,
	"Mag":   1,
	"Mag_x": 1,
	"Mag_y": 1,
	"Mag_z": 1,
}

// Read parses a DS-PAW .as file into a Crystal.
func Read(filename string) (*cryst.Crystal, error) {
	lines, err := readLines(filename)
	if err != nil {
		return nil, err
	}
	if len(lines) < 7 {
		return nil, fmt.Errorf("dspaw.Read %s: file too short (%d content lines)", filename, len(lines))
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(lines[1]))
	if err != nil {
		return nil, fmt.Errorf("dspaw.Read %s: malformed atom count: %w", filename, err)
	}
	if natoms < 1 {
		return nil, fmt.Errorf("dspaw.Read %s: non-positive atom count %d", filename, natoms)
	}
	if len(lines) < 7+natoms {
		return nil, fmt.Errorf("dspaw.Read %s: %d atoms declared but only %d atom lines", filename, natoms, len(lines)-7)
	}

	cell, latfix, err := readLattice(lines)
	if err != nil {
		return nil, fmt.Errorf("dspaw.Read %s: %w", filename, err)
	}

	coordFields := strings.Fields(lines[6])
	coordType := coordFields[0]
	if coordType != "Cartesian" && coordType != "Direct" {
		return nil, fmt.Errorf("dspaw.Read %s: unknown coordinate type %q", filename, coordType)
	}
	tags := coordFields[1:]
	for _, t := range tags {
		if _, ok := columnWidth[t]; !ok {
			return nil, fmt.Errorf("dspaw.Read %s: unknown column tag %q", filename, t)
		}
	}

	atoms := make([]*cryst.Atom, 0, natoms)
	coords := make([]float64, 0, 3*natoms)
	for i := 0; i < natoms; i++ {
		fields := strings.Fields(lines[7+i])
		if len(fields) < 4 {
			return nil, fmt.Errorf("dspaw.Read %s: atom line %d has %d fields, want at least 4", filename, i, len(fields))
		}
		//underscores mark equivalent sites of the same element; the element
		//symbol is the name with them removed
		at := cryst.NewAtom(strings.ReplaceAll(fields[0], "_", ""))
		for j := 1; j <= 3; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, fmt.Errorf("dspaw.Read %s: atom line %d: %w", filename, i, err)
			}
			coords = append(coords, v)
		}
		if err := readColumns(at, tags, fields[4:]); err != nil {
			return nil, fmt.Errorf("dspaw.Read %s: atom line %d: %w", filename, i, err)
		}
		atoms = append(atoms, at)
	}
	M, err := cryst.NewCrystal(cell, atoms, mat.NewDense(natoms, 3, coords))
	if err != nil {
		return nil, fmt.Errorf("dspaw.Read %s: %w", filename, err)
	}
	M.LatFix = latfix
	if coordType == "Direct" {
		f := mat.DenseCopyOf(M.Coords)
		if err := M.SetFracCoords(f); err != nil {
			return nil, fmt.Errorf("dspaw.Read %s: %w", filename, err)
		}
	}
	return M, nil
}

// readLines returns the non-empty lines of the file with comments stripped.
func readLines(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("dspaw.Read: %w", err)
	}
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dspaw.Read: %w", err)
	}
	return lines, nil
}

// readLattice parses the Lattice header and the three vector lines, returning
// the cell and, when the header declares constraints, the 9 lattice-fix
// flags.
func readLattice(lines []string) (*cryst.Cell, []bool, error) {
	header := strings.Fields(lines[2])
	if header[0] != "Lattice" {
		return nil, nil, fmt.Errorf("expected a Lattice block, got %q", lines[2])
	}
	fixInfo := header[1:]
	perRow := 0
	switch {
	case len(fixInfo) == 0:
	case len(fixInfo) == 3 && fixInfo[0] == "Fix_x" && fixInfo[1] == "Fix_y" && fixInfo[2] == "Fix_z":
		perRow = 3
	case len(fixInfo) == 1 && fixInfo[0] == "Fix":
		perRow = 1
	default:
		return nil, nil, fmt.Errorf("malformed lattice fix header %q", lines[2])
	}

	data := make([]float64, 0, 9)
	var latfix []bool
	if perRow > 0 {
		latfix = make([]bool, 0, 9)
	}
	for r := 3; r < 6; r++ {
		fields := strings.Fields(lines[r])
		if len(fields) < 3+perRow {
			return nil, nil, fmt.Errorf("lattice row %q has %d fields, want %d", lines[r], len(fields), 3+perRow)
		}
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("lattice row %q: %w", lines[r], err)
			}
			data = append(data, v)
		}
		switch perRow {
		case 3:
			for j := 3; j < 6; j++ {
				b, err := parseFlag(fields[j])
				if err != nil {
					return nil, nil, err
				}
				latfix = append(latfix, b)
			}
		case 1:
			b, err := parseFlag(fields[3])
			if err != nil {
				return nil, nil, err
			}
			latfix = append(latfix, b, b, b)
		}
	}
	cell, err := cryst.NewCell(data)
	if err != nil {
		return nil, nil, err
	}
	return cell, latfix, nil
}

// readColumns consumes the extra fields of an atom line in the order the
// coordinate-type line declared them.
func readColumns(at *cryst.Atom, tags, fields []string) error {
	pos := 0
	var magvec [3]float64
	hasMagVec := false
	for _, tag := range tags {
		w := columnWidth[tag]
		if pos+w > len(fields) {
			return fmt.Errorf("missing fields for column %s", tag)
		}
		switch tag {
		case "Fix":
			for j := 0; j < 3; j++ {
				b, err := parseFlag(fields[pos+j])
				if err != nil {
					return err
				}
				at.Fix[j] = b
			}
		case "Fix_x", "Fix_y", "Fix_z":
			b, err := parseFlag(fields[pos])
			if err != nil {
				return err
			}
			at.Fix[int(tag[4]-'x')] = b
		case "Mag":
			v, err := strconv.ParseFloat(fields[pos], 64)
			if err != nil {
				return err
			}
			at.Mag = []float64{v}
		case "Mag_x", "Mag_y", "Mag_z":
			v, err := strconv.ParseFloat(fields[pos], 64)
			if err != nil {
				return err
			}
			magvec[int(tag[4]-'x')] = v
			hasMagVec = true
		}
		pos += w
	}
	if hasMagVec {
		at.Mag = []float64{magvec[0], magvec[1], magvec[2]}
	}
	return nil
}

func parseFlag(s string) (bool, error) {
	if strings.HasPrefix(s, "T") {
		return true, nil
	}
	if strings.HasPrefix(s, "F") {
		return false, nil
	}
	return false, fmt.Errorf("malformed T/F flag %q", s)
}

// Write writes the structure to filename in DS-PAW .as format, with cartesian
// coordinates. Lattice constraints, positional constraints and magnetic
// moments are preserved when present.
func Write(filename string, M *cryst.Crystal) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("dspaw.Write: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	fmt.Fprintf(w, "Total number of atoms\n%d\n", M.Len())
	if M.LatFix != nil {
		fmt.Fprintf(w, "Lattice Fix_x Fix_y Fix_z\n")
		for i := 0; i < 3; i++ {
			v := M.Cell.Vec(i)
			fmt.Fprintf(w, "%10.4f %10.4f %10.4f %s %s %s\n", v[0], v[1], v[2],
				flag(M.LatFix[3*i]), flag(M.LatFix[3*i+1]), flag(M.LatFix[3*i+2]))
		}
	} else {
		fmt.Fprintf(w, "Lattice\n")
		for i := 0; i < 3; i++ {
			v := M.Cell.Vec(i)
			fmt.Fprintf(w, "%10.4f %10.4f %10.4f\n", v[0], v[1], v[2])
		}
	}

	hasFix := M.HasFix()
	magShape := M.MagShape()
	keys := "Cartesian"
	if hasFix {
		keys += " Fix_x Fix_y Fix_z"
	}
	switch magShape {
	case 1:
		keys += " Mag"
	case 3:
		keys += " Mag_x Mag_y Mag_z"
	}
	fmt.Fprintln(w, keys)

	for i, at := range M.Atoms {
		fmt.Fprintf(w, "%-2s %10.4f %10.4f %10.4f", at.Symbol,
			M.Coords.At(i, 0), M.Coords.At(i, 1), M.Coords.At(i, 2))
		if hasFix {
			fmt.Fprintf(w, " %s %s %s", flag(at.Fix[0]), flag(at.Fix[1]), flag(at.Fix[2]))
		}
		switch magShape {
		case 1:
			fmt.Fprintf(w, " %7.3f", scalarMag(at))
		case 3:
			mx, my, mz := vectorMag(at)
			fmt.Fprintf(w, " %7.3f %7.3f %7.3f", mx, my, mz)
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("dspaw.Write: %w", err)
	}
	return nil
}

func flag(b bool) string {
	if b {
		return "T"
	}
	return "F"
}

func scalarMag(at *cryst.Atom) float64 {
	if len(at.Mag) >= 1 {
		return at.Mag[0]
	}
	return 0
}

func vectorMag(at *cryst.Atom) (float64, float64, float64) {
	switch len(at.Mag) {
	case 3:
		return at.Mag[0], at.Mag[1], at.Mag[2]
	case 1:
		//a scalar moment in a non-collinear file goes on z
		return 0, 0, at.Mag[0]
	}
	return 0, 0, 0
}
