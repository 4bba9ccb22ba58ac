/*
 * structio_test.go, part of gocrystal.
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

package structio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	cryst "github.com/dftdata/gocrystal"
)

const asFile = `Total number of atoms
1
Lattice
4.0 0.0 0.0
0.0 4.0 0.0
0.0 0.0 4.0
Cartesian Mag
Ni 0.0 0.0 0.0 0.6
`

func TestReadByExtension(t *testing.T) {
	dir := t.TempDir()
	as := filepath.Join(dir, "in.as")
	require.NoError(t, os.WriteFile(as, []byte(asFile), 0o644))
	M, err := Read(as)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ni"}, M.Symbols())
	assert.Equal(t, 1, M.MagShape())

	xyz := filepath.Join(dir, "in.xyz")
	require.NoError(t, os.WriteFile(xyz, []byte("1\ncomment\nH 0 0 0.5\n"), 0o644))
	N, err := Read(xyz)
	require.NoError(t, err)
	assert.Equal(t, []string{"H"}, N.Symbols())
	assert.True(t, N.Cell.IsZero())
}

func TestReadXYZRescuFallback(t *testing.T) {
	//an xyz file with magnetic moment columns is the RESCU flavor; the plain
	//reader would accept the positions but the dispatcher must keep the moments
	xyz := filepath.Join(t.TempDir(), "in.xyz")
	require.NoError(t, os.WriteFile(xyz, []byte("1\niron\nFe 0 0 0 2.2\n"), 0o644))
	M, err := Read(xyz)
	require.NoError(t, err)
	require.Equal(t, 1, M.Len())
	assert.Equal(t, []float64{2.2}, M.Atoms[0].Mag)
}

func TestReadExplicitFormat(t *testing.T) {
	p := filepath.Join(t.TempDir(), "odd.name")
	require.NoError(t, os.WriteFile(p, []byte("1\ncomment\nHe 0 0 0\n"), 0o644))
	M, err := Read(p, "rescu")
	require.NoError(t, err)
	assert.Equal(t, []string{"He"}, M.Symbols())

	_, err = Read(p)
	assert.ErrorContains(t, err, "unsupported format")
}

func TestWriteDispatch(t *testing.T) {
	at := cryst.NewAtom("Fe")
	at.Mag = []float64{2.2}
	M, err := cryst.NewCrystal(cryst.CubicCell(3), []*cryst.Atom{at}, mat.NewDense(1, 3, nil))
	require.NoError(t, err)

	dir := t.TempDir()
	as := filepath.Join(dir, "out.as")
	require.NoError(t, Write(as, M))
	N, err := Read(as)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.2}, N.Atoms[0].Mag)

	//moments don't fit plain XYZ, so .xyz switches to the RESCU flavor
	xyz := filepath.Join(dir, "out.xyz")
	require.NoError(t, Write(xyz, M))
	N, err = Read(xyz)
	require.NoError(t, err)
	require.Equal(t, 1, N.Len())
	assert.Equal(t, []float64{2.2}, N.Atoms[0].Mag)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"dspaw", "rescu", "xyz"}, Formats())
}
