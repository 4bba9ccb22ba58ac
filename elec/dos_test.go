/*
 * dos_test.go, part of gocrystal.
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

package elec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dosJSON = `{
  "DosInfo": {
    "EFermi": 3.2,
    "Project": true,
    "DosEnergy": [-1, 0, 1],
    "SpinType": "none",
    "Orbit": ["s","dxy","dz2"],
    "Spin1": {
      "Dos": [1, 2, 3],
      "ProjectDos": [
        {"AtomIndex": 1, "OrbitIndex": 1, "Contribution": [0.1, 0.1, 0.1]},
        {"AtomIndex": 1, "OrbitIndex": 2, "Contribution": [0.2, 0.2, 0.2]},
        {"AtomIndex": 1, "OrbitIndex": 3, "Contribution": [0.3, 0.3, 0.3]},
        {"AtomIndex": 2, "OrbitIndex": 2, "Contribution": [0.4, 0.4, 0.4]}
      ]
    }
  },
  "AtomInfo": {"Atoms": [{"Element": "Fe"}, {"Element": "Fe"}]}
}`

const dosCollinearJSON = `{
  "DosInfo": {
    "EFermi": 0.0,
    "Project": false,
    "DosEnergy": [-1, 1],
    "SpinType": "collinear",
    "Spin1": {"Dos": [1, 2]},
    "Spin2": {"Dos": [3, 4]}
  }
}`

func writeDOS(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func TestReadDOSTotal(t *testing.T) {
	dos, err := ReadDOS(writeDOS(t, "dos.json", dosJSON), DOSTotal)
	require.NoError(t, err)
	assert.Equal(t, 3.2, dos.EFermi)
	assert.True(t, dos.Projected)
	d := dos.Dataset
	assert.Equal(t, []string{"energy", "tdos"}, d.Keys())
	assert.Equal(t, []float64{-1, 0, 1}, d.Col("energy"))
	assert.Equal(t, []float64{1, 2, 3}, d.Col("tdos"))
}

func TestReadDOSShell(t *testing.T) {
	dos, err := ReadDOS(writeDOS(t, "dos.json", dosJSON), DOSShell)
	require.NoError(t, err)
	d := dos.Dataset
	assert.Equal(t, []float64{0.1, 0.1, 0.1}, d.Col("s"))
	assert.InDeltaSlice(t, []float64{0.9, 0.9, 0.9}, d.Col("d"), 1e-12)
}

func TestReadDOSOrbital(t *testing.T) {
	dos, err := ReadDOS(writeDOS(t, "dos.json", dosJSON), DOSOrbital)
	require.NoError(t, err)
	d := dos.Dataset
	assert.InDeltaSlice(t, []float64{0.6, 0.6, 0.6}, d.Col("dxy"), 1e-12)
	assert.Equal(t, []float64{0.3, 0.3, 0.3}, d.Col("dz2"))
}

func TestReadDOSElement(t *testing.T) {
	dos, err := ReadDOS(writeDOS(t, "dos.json", dosJSON), DOSElement)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1, 1}, dos.Dataset.Col("Fe"), 1e-12)
}

func TestReadDOSAtomOrbital(t *testing.T) {
	dos, err := ReadDOS(writeDOS(t, "dos.json", dosJSON), DOSAtomOrbital)
	require.NoError(t, err)
	d := dos.Dataset
	assert.Equal(t, []float64{0.2, 0.2, 0.2}, d.Col("1dxy"))
	assert.Equal(t, []float64{0.4, 0.4, 0.4}, d.Col("2dxy"))
}

func TestReadDOST2gEg(t *testing.T) {
	//the s projection belongs to neither group and is dropped
	dos, err := ReadDOS(writeDOS(t, "dos.json", dosJSON), DOST2gEg)
	require.NoError(t, err)
	d := dos.Dataset
	assert.Equal(t, []float64{0.2, 0.2, 0.2}, d.Col("1t2g"))
	assert.Equal(t, []float64{0.3, 0.3, 0.3}, d.Col("1eg"))
	assert.Equal(t, []float64{0.4, 0.4, 0.4}, d.Col("2t2g"))
	assert.Nil(t, d.Col("s"))
	assert.Nil(t, d.Col("1s"))
}

func TestReadDOSAtom(t *testing.T) {
	dos, err := ReadDOS(writeDOS(t, "dos.json", dosJSON), DOSAtom)
	require.NoError(t, err)
	d := dos.Dataset
	assert.InDeltaSlice(t, []float64{0.6, 0.6, 0.6}, d.Col("1"), 1e-12)
	assert.Equal(t, []float64{0.4, 0.4, 0.4}, d.Col("2"))
}

func TestReadDOSCollinear(t *testing.T) {
	//a non-projected file yields only the totals, whatever the mode
	dos, err := ReadDOS(writeDOS(t, "dos.json", dosCollinearJSON), DOSAtomOrbital)
	require.NoError(t, err)
	assert.False(t, dos.Projected)
	d := dos.Dataset
	assert.Equal(t, []string{"energy", "tdos-up", "tdos-down"}, d.Keys())
	assert.Equal(t, []float64{1, 2}, d.Col("tdos-up"))
	assert.Equal(t, []float64{3, 4}, d.Col("tdos-down"))
}

func TestReadDOSZstd(t *testing.T) {
	p := filepath.Join(t.TempDir(), "dos.json.zst")
	f, err := os.Create(p)
	require.NoError(t, err)
	w, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = w.Write([]byte(dosJSON))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	dos, err := ReadDOS(p, DOSTotal)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, dos.Dataset.Col("tdos"))
}

func TestReadDOSErrors(t *testing.T) {
	_, err := ReadDOS(writeDOS(t, "dos.csv", dosJSON), DOSTotal)
	assert.ErrorContains(t, err, "only JSON data files")

	_, err = ReadDOS(writeDOS(t, "dos.json", `{"DosInfo": {}}`), DOSTotal)
	assert.ErrorContains(t, err, "no Spin1 block")

	_, err = ReadDOS(writeDOS(t, "dos.json", `{"DosInfo": {"Spin1": {}}}`), DOSTotal)
	assert.ErrorContains(t, err, "empty energy grid")

	noSpin2 := `{"DosInfo": {"SpinType": "collinear", "DosEnergy": [0], "Spin1": {"Dos": [1]}}}`
	_, err = ReadDOS(writeDOS(t, "dos.json", noSpin2), DOSTotal)
	assert.ErrorContains(t, err, "Spin2")

	_, err = ReadDOS(writeDOS(t, "dos.json", dosJSON), 42)
	assert.ErrorContains(t, err, "mode 42 not supported")
}
