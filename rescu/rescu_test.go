/*
 * rescu_test.go, part of gocrystal.
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

package rescu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "structure.xyz")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestReadPlain(t *testing.T) {
	M, err := Read(writeTemp(t, `2
water fragment % not really
O 0.0 0.0 0.0
H 0.0 0.0 0.96
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"O", "H"}, M.Symbols())
	assert.True(t, M.Cell.IsZero())
	assert.InDelta(t, 0.96, M.Coords.At(1, 2), 1e-9)
}

func TestReadCollinearWithFlags(t *testing.T) {
	M, err := Read(writeTemp(t, `2
iron chain
Fe 0.0 0.0 0.0  2.2 1 1 0
Fe 0.0 0.0 2.5 -2.2 1 1 1
`))
	require.NoError(t, err)
	require.Equal(t, 2, M.Len())
	assert.Equal(t, []float64{2.2}, M.Atoms[0].Mag)
	//movable 0 means fixed
	assert.Equal(t, [3]bool{false, false, true}, M.Atoms[0].Fix)
	assert.Equal(t, [3]bool{false, false, false}, M.Atoms[1].Fix)
}

func TestReadNonCollinear(t *testing.T) {
	M, err := Read(writeTemp(t, `1
manganese
Mn 1.0 1.0 1.0 0.0 0.5 2.0 0 1 1
`))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.0, 0.5, 2.0}, M.Atoms[0].Mag)
	assert.Equal(t, [3]bool{true, false, false}, M.Atoms[0].Fix)
}

func TestReadCommentLineSkippedUnconditionally(t *testing.T) {
	//a comment that splits like an atom line must not be counted as one
	M, err := Read(writeTemp(t, `1
energy -1.0 2.0 3.0
H 0 0 0.5
`))
	require.NoError(t, err)
	require.Equal(t, 1, M.Len())
	assert.Equal(t, []string{"H"}, M.Symbols())
	assert.InDelta(t, 0.5, M.Coords.At(0, 2), 1e-9)
}

func TestReadCountMismatch(t *testing.T) {
	_, err := Read(writeTemp(t, `3
comment
H 0 0 0
H 0 0 1
`))
	assert.ErrorContains(t, err, "inconsistent atom count")
}

func TestReadNonPositiveCount(t *testing.T) {
	_, err := Read(writeTemp(t, "0\ncomment\n"))
	assert.ErrorContains(t, err, "non-positive atom count")
	_, err = Read(writeTemp(t, "-2\ncomment\n"))
	assert.ErrorContains(t, err, "non-positive atom count")
}

func TestReadBadAtomLine(t *testing.T) {
	_, err := Read(writeTemp(t, `1
comment
H 0 0 0 0 0
`))
	assert.ErrorContains(t, err, "4, 5, 7, 8 or 10 fields")
}

func TestRoundTripCollinear(t *testing.T) {
	M, err := Read(writeTemp(t, `2
iron chain
Fe 0.0 0.0 0.0  2.2 1 1 0
Fe 0.0 0.0 2.5 -2.2 1 1 1
`))
	require.NoError(t, err)
	out := filepath.Join(t.TempDir(), "out.xyz")
	require.NoError(t, Write(out, M))
	N, err := Read(out)
	require.NoError(t, err)
	assert.Equal(t, M.Symbols(), N.Symbols())
	for i := range M.Atoms {
		assert.InDelta(t, M.Atoms[i].Mag[0], N.Atoms[i].Mag[0], 1e-9)
		assert.Equal(t, M.Atoms[i].Fix, N.Atoms[i].Fix)
	}
}

func TestWriteFixWithoutMag(t *testing.T) {
	M, err := Read(writeTemp(t, `1
carbon
C 0 0 0
`))
	require.NoError(t, err)
	M.Atoms[0].Fix = [3]bool{true, true, true}
	out := filepath.Join(t.TempDir(), "out.xyz")
	require.NoError(t, Write(out, M))
	//the flags need a moment column, so a zero scalar moment appears
	N, err := Read(out)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, N.Atoms[0].Mag)
	assert.Equal(t, [3]bool{true, true, true}, N.Atoms[0].Fix)
}
