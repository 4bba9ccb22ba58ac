/*
 * band_test.go, part of gocrystal.
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

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//3 k-points, 2 bands. Energies and contributions are flattened with the
//k-point index varying slowest, so band 1 is every other value.
const bandJSON = `{
  "BandInfo": {
    "EFermi": 5.5,
    "IsProject": true,
    "NumberOfKpoints": 3,
    "NumberOfBand": 2,
    "CoordinatesOfKPoints": [0,0,0, 0.5,0,0, 0.5,0.5,0],
    "SymmetryKPoints": ["G","X","M"],
    "SymmetryKPointsIndex": [1,2,3],
    "SpinType": "none",
    "Orbit": ["s","px","dxy"],
    "Spin1": {
      "BandEnergies": [1,4, 2,5, 3,6],
      "ProjectBand": [
        {"AtomIndex": 1, "OrbitIndex": 1, "Contribution": [0.1,0.1, 0.1,0.1, 0.1,0.1]},
        {"AtomIndex": 2, "OrbitIndex": 3, "Contribution": [0.2,0.3, 0.2,0.3, 0.2,0.3]}
      ]
    }
  },
  "AtomInfo": {"Atoms": [{"Element": "Fe"}, {"Element": "Fe"}]}
}`

const bandCollinearJSON = `{
  "BandInfo": {
    "EFermi": 0.0,
    "IsProject": false,
    "NumberOfKpoints": 2,
    "NumberOfBand": 1,
    "CoordinatesOfKPoints": [0,0,0, 0.5,0,0],
    "SymmetryKPoints": ["G","X"],
    "SymmetryKPointsIndex": [1,2],
    "SpinType": "collinear",
    "Spin1": {"BandEnergies": [1,2]},
    "Spin2": {"BandEnergies": [3,4]}
  }
}`

func writeBand(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func TestReadBandTotal(t *testing.T) {
	b, err := ReadBand(writeBand(t, "band.json", bandJSON), BandTotal)
	require.NoError(t, err)
	assert.Equal(t, 5.5, b.EFermi)
	assert.True(t, b.Projected)
	d := b.Dataset
	assert.Equal(t, []string{"kx", "ky", "kz", "dist", "band1", "band2"}, d.Keys())
	assert.Equal(t, []float64{0, 0.5, 0.5}, d.Col("kx"))
	assert.Equal(t, []float64{0, 0, 0.5}, d.Col("ky"))
	assert.InDeltaSlice(t, []float64{0, 0.5, 1.0}, d.Col("dist"), 1e-12)
	assert.Equal(t, []float64{1, 2, 3}, d.Col("band1"))
	assert.Equal(t, []float64{4, 5, 6}, d.Col("band2"))
	assert.Equal(t, []string{"G", "X", "M"}, d.Labels())
}

func TestReadBandProjectedElement(t *testing.T) {
	//both atoms are Fe, so their contributions sum onto one key per band
	b, err := ReadBand(writeBand(t, "band.json", bandJSON), BandElement)
	require.NoError(t, err)
	d := b.Dataset
	assert.InDeltaSlice(t, []float64{0.3, 0.3, 0.3}, d.Col("band1-Fe"), 1e-12)
	assert.InDeltaSlice(t, []float64{0.4, 0.4, 0.4}, d.Col("band2-Fe"), 1e-12)
	assert.Nil(t, d.Col("band1"))
}

func TestReadBandProjectedAtomOrbital(t *testing.T) {
	b, err := ReadBand(writeBand(t, "band.json", bandJSON), BandAtomOrbital)
	require.NoError(t, err)
	d := b.Dataset
	assert.Equal(t, []float64{0.1, 0.1, 0.1}, d.Col("band1-1-s"))
	assert.Equal(t, []float64{0.2, 0.2, 0.2}, d.Col("band1-2-dxy"))
	assert.Equal(t, []float64{0.3, 0.3, 0.3}, d.Col("band2-2-dxy"))
}

func TestReadBandProjectedElementShell(t *testing.T) {
	b, err := ReadBand(writeBand(t, "band.json", bandJSON), BandElementShell)
	require.NoError(t, err)
	d := b.Dataset
	assert.Equal(t, []float64{0.1, 0.1, 0.1}, d.Col("band1-Fe-s"))
	assert.Equal(t, []float64{0.2, 0.2, 0.2}, d.Col("band1-Fe-d"))
}

func TestReadBandCollinear(t *testing.T) {
	b, err := ReadBand(writeBand(t, "band.json", bandCollinearJSON), BandTotal)
	require.NoError(t, err)
	d := b.Dataset
	assert.Equal(t, []float64{1, 2}, d.Col("band1-up"))
	assert.Equal(t, []float64{3, 4}, d.Col("band1-down"))
}

func TestReadBandGzip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "band.json.gz")
	f, err := os.Create(p)
	require.NoError(t, err)
	w := gzip.NewWriter(f)
	_, err = w.Write([]byte(bandJSON))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	b, err := ReadBand(p, BandTotal)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, b.Dataset.Col("band1"))
}

func TestReadBandErrors(t *testing.T) {
	_, err := ReadBand(writeBand(t, "band.h5", bandJSON), BandTotal)
	assert.ErrorContains(t, err, "only JSON data files")

	_, err = ReadBand(writeBand(t, "band.json", `{"BandInfo": {"NumberOfKpoints": 2, "NumberOfBand": 1, "Spin1": {}}}`), BandTotal)
	assert.ErrorContains(t, err, "inconsistent k-point counts")

	_, err = ReadBand(writeBand(t, "band.json", `{"BandInfo": {}}`), BandTotal)
	assert.ErrorContains(t, err, "no Spin1 block")

	noSpin2 := `{"BandInfo": {"SpinType": "collinear", "NumberOfKpoints": 1, "NumberOfBand": 1,
		"CoordinatesOfKPoints": [0,0,0], "Spin1": {"BandEnergies": [1]}}}`
	_, err = ReadBand(writeBand(t, "band.json", noSpin2), BandTotal)
	assert.ErrorContains(t, err, "Spin2")

	_, err = ReadBand(writeBand(t, "band.json", bandJSON), 42)
	assert.ErrorContains(t, err, "mode 42 not supported")
}
