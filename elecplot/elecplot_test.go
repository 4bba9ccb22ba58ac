/*
 * elecplot_test.go, part of gocrystal.
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

package elecplot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dftdata/gocrystal/elec"
)

func dosData() *elec.Dataset {
	d := elec.NewDataset()
	d.Set("energy", []float64{-2, -1, 0, 1, 2})
	d.Set("tdos-up", []float64{1, 2, 3, 2, 1})
	d.Set("tdos-down", []float64{1, 1.5, 2, 1.5, 1})
	return d
}

func bandData() *elec.Dataset {
	d := elec.NewDataset()
	d.Set("kx", []float64{0, 0.5, 0.5})
	d.Set("ky", []float64{0, 0, 0.5})
	d.Set("kz", []float64{0, 0, 0})
	d.Set("dist", []float64{0, 0.5, 1.0})
	d.Set("band1", []float64{-1, -2, -1})
	d.Set("band2", []float64{1, 2, 1})
	d.SetLabels([]string{"G", "X", "M"})
	return d
}

func TestDOSPlot(t *testing.T) {
	p, err := DOS(dosData(), 0.5, nil)
	require.NoError(t, err)
	require.NoError(t, Save(p, nil, filepath.Join(t.TempDir(), "dos.png")))
}

func TestDOSPlotNoEnergy(t *testing.T) {
	_, err := DOS(elec.NewDataset(), 0, nil)
	assert.ErrorContains(t, err, "no energy column")
}

func TestBandPlot(t *testing.T) {
	opts := DefaultOptions()
	opts.Title = "bands"
	opts.Legend = false
	p, err := Band(bandData(), 0.2, opts)
	require.NoError(t, err)
	assert.Equal(t, "bands", p.Title.Text)
	assert.Equal(t, 0.0, p.X.Min)
	assert.Equal(t, 1.0, p.X.Max)
	require.NoError(t, Save(p, opts, filepath.Join(t.TempDir(), "band.svg")))
}

func TestBandPlotNoDist(t *testing.T) {
	_, err := Band(elec.NewDataset(), 0, nil)
	assert.ErrorContains(t, err, "distance column")
}

func TestPathTicks(t *testing.T) {
	ticks := pathTicks([]float64{0, 0.5, 1}, []string{"G", "", "M"})
	require.Len(t, ticks, 2)
	assert.Equal(t, 0.0, ticks[0].Value)
	assert.Equal(t, "G", ticks[0].Label)
	assert.Equal(t, 1.0, ticks[1].Value)
	assert.Equal(t, "M", ticks[1].Label)

	assert.Nil(t, pathTicks([]float64{0, 1}, nil))
}

func TestPairIndex(t *testing.T) {
	keys := []string{"energy", "1d-up", "1d-down", "2d-up", "2d-down"}
	assert.Equal(t, 0, pairIndex(keys, "1d-down", 1))
	assert.Equal(t, 2, pairIndex(keys, "2d-down", 3))
	assert.Equal(t, 5, pairIndex(keys, "tdos", 5))
}
