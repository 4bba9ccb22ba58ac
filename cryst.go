/*
 * cryst.go, part of gocrystal.
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

// Atom contains the per-atom data of a crystal structure except for the
// coordinates, which are kept together in a matrix. The magnetic moment Mag
// is nil for a non-magnetic atom, has one element for a collinear moment and
// three for a non-collinear one.
type Atom struct {
	Symbol string
	Mass   float64 //filled from the element tables when the symbol is known.
	Mag    []float64
	Fix    [3]bool //true means the corresponding cartesian component is constrained.
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("attempted to copy a nil atom")
	}
	newat := new(Atom)
	newat.Symbol = A.Symbol
	newat.Mass = A.Mass
	newat.Fix = A.Fix
	if A.Mag != nil {
		newat.Mag = make([]float64, len(A.Mag))
		copy(newat.Mag, A.Mag)
	}
	return newat
}

// NewAtom returns an atom of the given element, with the mass filled in when
// the element is in the tables.
func NewAtom(symbol string) *Atom {
	return &Atom{Symbol: symbol, Mass: symbolMass[symbol]}
}

// Crystal is a periodic structure: a lattice, a set of atoms and their
// cartesian coordinates as an Nx3 matrix, one row per atom. LatFix, when
// non-nil, holds 9 flags constraining the corresponding lattice components
// during relaxation, row-major like the cell itself.
type Crystal struct {
	Cell   *Cell
	Atoms  []*Atom
	Coords *mat.Dense
	LatFix []bool
}

// NewCrystal builds a Crystal and checks that the coordinates match the atoms.
func NewCrystal(cell *Cell, atoms []*Atom, coords *mat.Dense) (*Crystal, error) {
	if cell == nil || atoms == nil || coords == nil {
		return nil, CError{msg: "NewCrystal: nil cell, atoms or coordinates", deco: []string{"NewCrystal"}}
	}
	M := &Crystal{Cell: cell, Atoms: atoms, Coords: coords}
	if err := M.Corrupted(); err != nil {
		return nil, errDecorate(err, "NewCrystal")
	}
	return M, nil
}

// Len returns the number of atoms. It doesn't check for consistency with the
// coordinates, use Corrupted for that.
func (M *Crystal) Len() int { return len(M.Atoms) }

// Copy returns a deep copy of the structure.
func (M *Crystal) Copy() *Crystal {
	r := new(Crystal)
	if M.Cell != nil {
		r.Cell = M.Cell.Copy()
	}
	r.Atoms = make([]*Atom, 0, len(M.Atoms))
	for _, at := range M.Atoms {
		r.Atoms = append(r.Atoms, at.Copy())
	}
	if M.Coords != nil {
		r.Coords = mat.DenseCopyOf(M.Coords)
	}
	if M.LatFix != nil {
		r.LatFix = make([]bool, len(M.LatFix))
		copy(r.LatFix, M.LatFix)
	}
	return r
}

// Corrupted checks whether the structure is corrupted, i.e. the coordinate
// matrix doesn't match the number of atoms, it doesn't have 3 columns, or the
// lattice-fix flags are present with the wrong length.
func (M *Crystal) Corrupted() error {
	r, c := M.Coords.Dims()
	if r != M.Len() || c != 3 {
		return CError{msg: fmt.Sprintf("inconsistent coordinates/atoms: atoms %d, coords %dx%d", M.Len(), r, c), deco: []string{"Crystal.Corrupted"}}
	}
	if M.LatFix != nil && len(M.LatFix) != 9 {
		return CError{msg: fmt.Sprintf("lattice fix flags must have 9 elements, got %d", len(M.LatFix)), deco: []string{"Crystal.Corrupted"}}
	}
	for _, at := range M.Atoms {
		if at.Mag != nil && len(at.Mag) != 1 && len(at.Mag) != 3 {
			return CError{msg: fmt.Sprintf("atom %s: magnetic moment must have 1 or 3 components, got %d", at.Symbol, len(at.Mag)), deco: []string{"Crystal.Corrupted"}}
		}
	}
	return nil
}

// Symbols returns the element symbols of all atoms, in order.
func (M *Crystal) Symbols() []string {
	r := make([]string, M.Len())
	for i, at := range M.Atoms {
		r[i] = at.Symbol
	}
	return r
}

// Mass returns the total mass of the atoms in the cell. Atoms of unknown
// elements count as zero.
func (M *Crystal) Mass() float64 {
	var t float64
	for _, at := range M.Atoms {
		t += at.Mass
	}
	return t
}

// MagShape returns 0 if no atom carries a magnetic moment, 1 if the moments
// are collinear (scalar) and 3 if any is a full vector. Writers use it to pick
// a column layout.
func (M *Crystal) MagShape() int {
	shape := 0
	for _, at := range M.Atoms {
		if len(at.Mag) == 3 {
			return 3
		}
		if len(at.Mag) == 1 {
			shape = 1
		}
	}
	return shape
}

// HasFix returns whether any atom carries a positional constraint.
func (M *Crystal) HasFix() bool {
	for _, at := range M.Atoms {
		if at.Fix[0] || at.Fix[1] || at.Fix[2] {
			return true
		}
	}
	return false
}

// FracCoords returns the coordinates in fractional (lattice) units, as a new
// Nx3 matrix. The structure is not changed.
func (M *Crystal) FracCoords() (*mat.Dense, error) {
	inv, err := M.Cell.Inverse()
	if err != nil {
		return nil, errDecorate(err, "Crystal.FracCoords")
	}
	r, _ := M.Coords.Dims()
	f := mat.NewDense(r, 3, nil)
	f.Mul(M.Coords, inv)
	return f, nil
}

// SetFracCoords replaces the cartesian coordinates with the cartesian image of
// the given fractional coordinates in the current cell.
func (M *Crystal) SetFracCoords(f *mat.Dense) error {
	r, c := f.Dims()
	if r != M.Len() || c != 3 {
		return CError{msg: fmt.Sprintf("fractional coordinates are %dx%d, want %dx3", r, c, M.Len()), deco: []string{"Crystal.SetFracCoords"}}
	}
	M.Coords.Mul(f, M.Cell.Dense())
	return nil
}

// Wrap translates every atom by lattice vectors so its fractional coordinates
// fall in [0,1).
func (M *Crystal) Wrap() error {
	f, err := M.FracCoords()
	if err != nil {
		return errDecorate(err, "Crystal.Wrap")
	}
	r, _ := f.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < 3; j++ {
			v := f.At(i, j) - math.Floor(f.At(i, j))
			//guard against -1e-17 flooring to -1 and leaving us at 1.0 exactly
			if v >= 1 {
				v = 0
			}
			f.Set(i, j, v)
		}
	}
	return M.SetFracCoords(f)
}
