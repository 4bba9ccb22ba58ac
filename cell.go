/*
 * cell.go, part of gocrystal.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

const rad2deg = 180.0 / math.Pi

// Cell is the lattice of a periodic structure: a 3x3 matrix whose rows are the
// lattice vectors, in Angstrom (or whatever length unit the caller uses
// consistently).
type Cell struct {
	d *mat.Dense
}

// NewCell builds a Cell from 9 float64, row-major.
func NewCell(data []float64) (*Cell, error) {
	if len(data) != 9 {
		return nil, CError{msg: fmt.Sprintf("NewCell: need 9 values, got %d", len(data)), deco: []string{"NewCell"}}
	}
	d := make([]float64, 9)
	copy(d, data)
	return &Cell{d: mat.NewDense(3, 3, d)}, nil
}

// ZeroCell returns a Cell with all entries zero, meaning "no periodicity".
func ZeroCell() *Cell {
	return &Cell{d: mat.NewDense(3, 3, make([]float64, 9))}
}

// CubicCell returns the cell of a cubic lattice with edge a.
func CubicCell(a float64) *Cell {
	c := ZeroCell()
	for i := 0; i < 3; i++ {
		c.d.Set(i, i, a)
	}
	return c
}

// Copy returns a deep copy of the cell.
func (C *Cell) Copy() *Cell {
	r := ZeroCell()
	r.d.Copy(C.d)
	return r
}

func (C *Cell) At(i, j int) float64     { return C.d.At(i, j) }
func (C *Cell) Set(i, j int, v float64) { C.d.Set(i, j, v) }

// Dense returns the underlying gonum matrix. Changes to it are reflected in
// the cell and vice-versa.
func (C *Cell) Dense() *mat.Dense { return C.d }

// Vec returns the ith lattice vector as a newly allocated slice.
func (C *Cell) Vec(i int) []float64 {
	return []float64{C.d.At(i, 0), C.d.At(i, 1), C.d.At(i, 2)}
}

// IsZero returns whether every entry of the cell is, within floating point
// precision, zero. Such a cell carries no periodicity information.
func (C *Cell) IsZero() bool {
	if C == nil || C.d == nil {
		return true
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(C.d.At(i, j)) > appzero {
				return false
			}
		}
	}
	return true
}

// Lengths returns the norms of the three lattice vectors.
func (C *Cell) Lengths() [3]float64 {
	var r [3]float64
	for i := 0; i < 3; i++ {
		r[i] = norm3(C.Vec(i))
	}
	return r
}

// Angles returns the three cell angles in degrees: alpha between vectors b and
// c, beta between a and c, gamma between a and b.
func (C *Cell) Angles() [3]float64 {
	a, b, c := C.Vec(0), C.Vec(1), C.Vec(2)
	return [3]float64{angle3(b, c), angle3(a, c), angle3(a, b)}
}

// Volume returns the (unsigned) volume enclosed by the lattice vectors.
func (C *Cell) Volume() float64 {
	return math.Abs(mat.Det(C.d))
}

// Inverse returns the inverse of the cell matrix. It fails on a degenerate
// lattice.
func (C *Cell) Inverse() (*mat.Dense, error) {
	inv := mat.NewDense(3, 3, nil)
	err := inv.Inverse(C.d)
	if err != nil {
		return nil, CError{msg: "Cell.Inverse: " + err.Error(), deco: []string{"Cell.Inverse"}, kind: ErrNoCell}
	}
	return inv, nil
}

// String prints the cell rows, mostly for debugging.
func (C *Cell) String() string {
	return fmt.Sprintf("[%v %v %v]", C.Vec(0), C.Vec(1), C.Vec(2))
}

/***Small 3-vector helpers. These are "fundamental" functions, so, as
 * elsewhere in the library, they panic instead of returning errors: if
 * something goes wrong here, the program is way-most likely wrong already.***/

func dot3(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func norm3(a []float64) float64 {
	return math.Sqrt(dot3(a, a))
}

//angle between 2 vectors, in degrees.
func angle3(a, b []float64) float64 {
	na, nb := norm3(a), norm3(b)
	if na <= appzero || nb <= appzero {
		panic("angle3: zero-length vector")
	}
	cos := dot3(a, b) / (na * nb)
	//floating point can push |cos| marginally over 1
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * rad2deg
}

func sub3(a, b []float64) []float64 {
	return []float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}
