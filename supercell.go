/*
 * supercell.go, part of gocrystal.
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

// IntMat is an integer 3x3 transformation matrix T mapping a lattice to a
// supercell lattice: supercell = T * cell. Anywhere this library produces an
// IntMat, it is non-singular.
type IntMat struct {
	m [3][3]int
}

// NewIntMat builds an IntMat from 9 ints, row-major.
func NewIntMat(data []int) (*IntMat, error) {
	if len(data) != 9 {
		return nil, CError{msg: fmt.Sprintf("NewIntMat: need 9 values, got %d", len(data)), deco: []string{"NewIntMat"}}
	}
	T := new(IntMat)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			T.m[i][j] = data[3*i+j]
		}
	}
	return T, nil
}

// DiagIntMat returns the diagonal transformation diag(a,b,c).
func DiagIntMat(a, b, c int) *IntMat {
	T := new(IntMat)
	T.m[0][0], T.m[1][1], T.m[2][2] = a, b, c
	return T
}

func (T *IntMat) At(i, j int) int { return T.m[i][j] }
func (T *IntMat) Set(i, j, v int) { T.m[i][j] = v }
func (T *IntMat) Copy() *IntMat   { r := *T; return &r }

// Det returns the determinant. Its absolute value is the number of original
// cells contained in the supercell.
func (T *IntMat) Det() int {
	m := T.m
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Dense returns the matrix as a newly allocated gonum Dense.
func (T *IntMat) Dense() *mat.Dense {
	d := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d.Set(i, j, float64(T.m[i][j]))
		}
	}
	return d
}

func (T *IntMat) String() string {
	return fmt.Sprintf("[%v %v %v]", T.m[0], T.m[1], T.m[2])
}

// Expander is the capability of replicating a structure into a supercell
// given an integer transformation matrix. The supercell search consumes it as
// an interface so tests, and callers with their own structure machinery, can
// plug a different implementation.
type Expander interface {
	Expand(M *Crystal, T *IntMat) (*Crystal, error)
}

// LatticeExpander is the built-in Expander. It enumerates the lattice points
// of the original cell that fall inside the supercell and replicates every
// atom, with its metadata, at each of them, wrapping the result into the new
// cell.
type LatticeExpander struct{}

// Expand builds the supercell T*M.Cell. The transformation must be
// non-singular and the cell non-degenerate. The resulting structure has
// |det T| * M.Len() atoms.
func (LatticeExpander) Expand(M *Crystal, T *IntMat) (*Crystal, error) {
	det := T.Det()
	if det == 0 {
		return nil, CError{msg: "supercell transformation is singular", deco: []string{"LatticeExpander.Expand"}}
	}
	if M.Cell.IsZero() {
		return nil, errKind(ErrNoCell, "LatticeExpander.Expand")
	}
	ncells := det
	if ncells < 0 {
		ncells = -ncells
	}
	newcell := ZeroCell()
	newcell.Dense().Mul(T.Dense(), M.Cell.Dense())

	points, err := latticePoints(T, ncells)
	if err != nil {
		return nil, errDecorate(err, "LatticeExpander.Expand")
	}

	n := M.Len()
	atoms := make([]*Atom, 0, n*ncells)
	coords := mat.NewDense(n*ncells, 3, nil)
	row := 0
	for _, p := range points {
		//cartesian translation of this lattice point
		var t [3]float64
		for j := 0; j < 3; j++ {
			t[j] = float64(p[0])*M.Cell.At(0, j) + float64(p[1])*M.Cell.At(1, j) + float64(p[2])*M.Cell.At(2, j)
		}
		for i := 0; i < n; i++ {
			atoms = append(atoms, M.Atoms[i].Copy())
			for j := 0; j < 3; j++ {
				coords.Set(row, j, M.Coords.At(i, j)+t[j])
			}
			row++
		}
	}
	super := &Crystal{Cell: newcell, Atoms: atoms, Coords: coords}
	if M.LatFix != nil {
		super.LatFix = make([]bool, 9)
		copy(super.LatFix, M.LatFix)
	}
	if err := super.Wrap(); err != nil {
		return nil, errDecorate(err, "LatticeExpander.Expand")
	}
	return super, nil
}

// latticePoints returns the integer translations of the original cell whose
// images fall inside the supercell defined by T. Exactly want points exist;
// anything else means the inclusion test went numerically wrong.
func latticePoints(T *IntMat, want int) ([][3]int, error) {
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(T.Dense()); err != nil {
		return nil, CError{msg: "latticePoints: " + err.Error(), deco: []string{"latticePoints"}}
	}
	//bounding box over the corners of the supercell, which in lattice units
	//are the 2^3 partial sums of the rows of T
	var lo, hi [3]int
	for mask := 0; mask < 8; mask++ {
		var corner [3]int
		for i := 0; i < 3; i++ {
			if mask&(1<<i) != 0 {
				for j := 0; j < 3; j++ {
					corner[j] += T.m[i][j]
				}
			}
		}
		for j := 0; j < 3; j++ {
			if corner[j] < lo[j] {
				lo[j] = corner[j]
			}
			if corner[j] > hi[j] {
				hi[j] = corner[j]
			}
		}
	}
	const eps = 1e-9
	points := make([][3]int, 0, want)
	for a := lo[0] - 1; a <= hi[0]; a++ {
		for b := lo[1] - 1; b <= hi[1]; b++ {
			for c := lo[2] - 1; c <= hi[2]; c++ {
				inside := true
				for j := 0; j < 3; j++ {
					//fractional coordinate of (a,b,c) in the supercell
					s := float64(a)*inv.At(0, j) + float64(b)*inv.At(1, j) + float64(c)*inv.At(2, j)
					if s < -eps || s >= 1-eps {
						inside = false
						break
					}
				}
				if inside {
					points = append(points, [3]int{a, b, c})
				}
			}
		}
	}
	if len(points) != want {
		return nil, CError{msg: fmt.Sprintf("latticePoints: found %d lattice points, want %d", len(points), want), deco: []string{"latticePoints"}}
	}
	return points, nil
}

// Ceil of a/b for positive b, used to size diagonal supercells.
func ceilDiv(a, b float64) int {
	return int(math.Ceil(a / b))
}
