/*
 * supercell_test.go, part of gocrystal.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestIntMatDet(t *testing.T) {
	assert.Equal(t, 1, DiagIntMat(1, 1, 1).Det())
	assert.Equal(t, 6, DiagIntMat(2, 3, 1).Det())
	T, err := NewIntMat([]int{-3, 3, 3, 3, -3, 3, 3, 3, -3})
	require.NoError(t, err)
	assert.Equal(t, 108, T.Det())
	assert.Equal(t, 0, DiagIntMat(1, 1, 0).Det())
}

func TestNewIntMatBadLength(t *testing.T) {
	_, err := NewIntMat([]int{1, 2, 3})
	assert.Error(t, err)
}

// a one-atom simple cubic cell with edge a
func cubicCrystal(t *testing.T, a float64) *Crystal {
	t.Helper()
	M, err := NewCrystal(CubicCell(a), []*Atom{NewAtom("Po")}, mat.NewDense(1, 3, []float64{0, 0, 0}))
	require.NoError(t, err)
	return M
}

func TestExpandDiagonal(t *testing.T) {
	M := cubicCrystal(t, 2.0)
	super, err := LatticeExpander{}.Expand(M, DiagIntMat(2, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, 6, super.Len())
	l := super.Cell.Lengths()
	assert.InDelta(t, 4.0, l[0], 1e-9)
	assert.InDelta(t, 6.0, l[1], 1e-9)
	assert.InDelta(t, 2.0, l[2], 1e-9)
	assert.InDelta(t, 48.0, super.Cell.Volume(), 1e-9)
	//the input is untouched
	assert.Equal(t, 1, M.Len())
	assert.InDelta(t, 8.0, M.Cell.Volume(), 1e-9)
}

func TestExpandShear(t *testing.T) {
	M := cubicCrystal(t, 2.0)
	T, err := NewIntMat([]int{1, 1, 0, 0, 1, 0, 0, 0, 1})
	require.NoError(t, err)
	super, err := LatticeExpander{}.Expand(M, T)
	require.NoError(t, err)
	//determinant one: same number of atoms, same volume, different cell
	assert.Equal(t, 1, super.Len())
	assert.InDelta(t, M.Cell.Volume(), super.Cell.Volume(), 1e-9)
	assert.InDelta(t, 2.0*1.4142135623730951, super.Cell.Lengths()[0], 1e-9)
}

func TestExpandNegativeDeterminant(t *testing.T) {
	M := cubicCrystal(t, 2.0)
	T, err := NewIntMat([]int{0, 1, 0, 1, 0, 0, 0, 0, 1})
	require.NoError(t, err)
	super, err := LatticeExpander{}.Expand(M, T)
	require.NoError(t, err)
	assert.Equal(t, 1, super.Len())
}

func TestExpandSingular(t *testing.T) {
	M := cubicCrystal(t, 2.0)
	_, err := LatticeExpander{}.Expand(M, DiagIntMat(1, 1, 0))
	assert.Error(t, err)
}

func TestExpandKeepsAtomData(t *testing.T) {
	cell := CubicCell(3.0)
	at := NewAtom("Fe")
	at.Mag = []float64{2.2}
	at.Fix = [3]bool{true, false, true}
	M, err := NewCrystal(cell, []*Atom{at}, mat.NewDense(1, 3, []float64{0.5, 0.5, 0.5}))
	require.NoError(t, err)
	super, err := LatticeExpander{}.Expand(M, DiagIntMat(2, 1, 1))
	require.NoError(t, err)
	require.Equal(t, 2, super.Len())
	for _, a := range super.Atoms {
		assert.Equal(t, "Fe", a.Symbol)
		assert.Equal(t, []float64{2.2}, a.Mag)
		assert.Equal(t, [3]bool{true, false, true}, a.Fix)
	}
	//replicas are distinct copies
	super.Atoms[0].Mag[0] = 0
	assert.Equal(t, 2.2, super.Atoms[1].Mag[0])
	assert.Equal(t, 2.2, M.Atoms[0].Mag[0])
}

func TestExpandFCCConventional(t *testing.T) {
	//the primitive fcc cell by [[-1,1,1],[1,-1,1],[1,1,-1]] gives the
	//conventional cubic cell with 4 atoms
	M := fccCu(t)
	T, err := NewIntMat([]int{-1, 1, 1, 1, -1, 1, 1, 1, -1})
	require.NoError(t, err)
	super, err := LatticeExpander{}.Expand(M, T)
	require.NoError(t, err)
	assert.Equal(t, 4, super.Len())
	for _, l := range super.Cell.Lengths() {
		assert.InDelta(t, 3.6, l, 1e-9)
	}
	for _, a := range super.Cell.Angles() {
		assert.InDelta(t, 90.0, a, 1e-9)
	}
}
