/*
 * band.go, part of gocrystal.
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
	"encoding/json"
	"fmt"
	"math"
)

// Band is a processed band structure: the k-point path (kx, ky, kz and the
// cumulative path distance "dist" columns), one column per band (and per
// projection group when projected), the high-symmetry labels, and the Fermi
// energy in eV.
type Band struct {
	Dataset   *Dataset
	EFermi    float64
	Projected bool
}

//the on-disk layout of a band output file.
type bandFile struct {
	BandInfo bandInfo `json:"BandInfo"`
	AtomInfo atomInfo `json:"AtomInfo"`
}

type bandInfo struct {
	EFermi               float64    `json:"EFermi"`
	IsProject            bool       `json:"IsProject"`
	NumberOfKpoints      int        `json:"NumberOfKpoints"`
	NumberOfBand         int        `json:"NumberOfBand"`
	CoordinatesOfKPoints []float64  `json:"CoordinatesOfKPoints"`
	SymmetryKPoints      []string   `json:"SymmetryKPoints"`
	SymmetryKPointsIndex []int      `json:"SymmetryKPointsIndex"`
	SpinType             string     `json:"SpinType"`
	Orbit                []string   `json:"Orbit"`
	Spin1                *spinBlock `json:"Spin1"`
	Spin2                *spinBlock `json:"Spin2"`
}

type spinBlock struct {
	BandEnergies []float64    `json:"BandEnergies"`
	ProjectBand  []projection `json:"ProjectBand"`
}

type projection struct {
	AtomIndex    int       `json:"AtomIndex"`
	OrbitIndex   int       `json:"OrbitIndex"`
	Contribution []float64 `json:"Contribution"`
}

type atomInfo struct {
	Atoms []struct {
		Element string `json:"Element"`
	} `json:"Atoms"`
}

// ReadBand reads a band-structure output file (JSON, optionally compressed)
// and regroups any projections according to mode. BandTotal ignores
// projections; on a non-projected file every mode reduces to the total bands.
func ReadBand(filename string, mode int) (*Band, error) {
	r, err := openJSON(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var bf bandFile
	if err := json.NewDecoder(r).Decode(&bf); err != nil {
		return nil, fmt.Errorf("elec.ReadBand %s: %w", filename, err)
	}
	info := &bf.BandInfo
	if info.Spin1 == nil {
		return nil, fmt.Errorf("elec.ReadBand %s: no Spin1 block", filename)
	}
	nkpt, nband := info.NumberOfKpoints, info.NumberOfBand
	if nkpt <= 0 || nband <= 0 || len(info.CoordinatesOfKPoints) != 3*nkpt {
		return nil, fmt.Errorf("elec.ReadBand %s: inconsistent k-point counts", filename)
	}

	d := NewDataset()
	kpath(d, info)

	b := &Band{Dataset: d, EFermi: info.EFermi, Projected: info.IsProject}
	if mode == BandTotal || !info.IsProject {
		if err := totalBands(d, info, nkpt, nband); err != nil {
			return nil, fmt.Errorf("elec.ReadBand %s: %w", filename, err)
		}
		return b, nil
	}

	elements := make([]string, len(bf.AtomInfo.Atoms))
	for i, at := range bf.AtomInfo.Atoms {
		elements[i] = at.Element
	}
	if err := projectedBands(d, info, elements, nkpt, nband, mode); err != nil {
		return nil, fmt.Errorf("elec.ReadBand %s: %w", filename, err)
	}
	return b, nil
}

// kpath fills the kx/ky/kz/dist columns and the high-symmetry labels.
func kpath(d *Dataset, info *bandInfo) {
	nkpt := info.NumberOfKpoints
	kx := make([]float64, nkpt)
	ky := make([]float64, nkpt)
	kz := make([]float64, nkpt)
	dist := make([]float64, nkpt)
	for k := 0; k < nkpt; k++ {
		kx[k] = info.CoordinatesOfKPoints[3*k]
		ky[k] = info.CoordinatesOfKPoints[3*k+1]
		kz[k] = info.CoordinatesOfKPoints[3*k+2]
		if k > 0 {
			dx, dy, dz := kx[k]-kx[k-1], ky[k]-ky[k-1], kz[k]-kz[k-1]
			dist[k] = dist[k-1] + math.Sqrt(dx*dx+dy*dy+dz*dz)
		}
	}
	d.Set("kx", kx)
	d.Set("ky", ky)
	d.Set("kz", kz)
	d.Set("dist", dist)

	labels := make([]string, nkpt)
	for i, idx := range info.SymmetryKPointsIndex {
		if i < len(info.SymmetryKPoints) && idx >= 1 && idx <= nkpt {
			labels[idx-1] = info.SymmetryKPoints[i]
		}
	}
	d.SetLabels(labels)
}

// totalBands adds one column per band, with -up/-down pairs for collinear
// data. Energies come flattened column-major: entry (band, kpoint) sits at
// kpoint*nband+band.
func totalBands(d *Dataset, info *bandInfo, nkpt, nband int) error {
	add := func(block *spinBlock, suffix string) error {
		if len(block.BandEnergies) != nband*nkpt {
			return fmt.Errorf("band energies: have %d values, want %d", len(block.BandEnergies), nband*nkpt)
		}
		for b := 0; b < nband; b++ {
			col := make([]float64, nkpt)
			for k := 0; k < nkpt; k++ {
				col[k] = block.BandEnergies[k*nband+b]
			}
			d.Set(fmt.Sprintf("band%d%s", b+1, suffix), col)
		}
		return nil
	}
	if info.SpinType == "collinear" {
		if info.Spin2 == nil {
			return fmt.Errorf("collinear data without a Spin2 block")
		}
		if err := add(info.Spin1, "-up"); err != nil {
			return err
		}
		return add(info.Spin2, "-down")
	}
	return add(info.Spin1, "")
}

// projectedBands regroups the per-(atom,orbital) contributions by mode into
// per-band columns, summing whatever lands on the same key.
func projectedBands(d *Dataset, info *bandInfo, elements []string, nkpt, nband, mode int) error {
	add := func(block *spinBlock, suffix string) error {
		for _, p := range block.ProjectBand {
			if p.OrbitIndex < 1 || p.OrbitIndex > len(info.Orbit) {
				return fmt.Errorf("projection: orbital index %d out of range", p.OrbitIndex)
			}
			if len(p.Contribution) != nband*nkpt {
				return fmt.Errorf("projection %d%s: have %d values, want %d", p.AtomIndex, info.Orbit[p.OrbitIndex-1], len(p.Contribution), nband*nkpt)
			}
			group, err := bandGroup(p.AtomIndex, info.Orbit[p.OrbitIndex-1], elements, mode)
			if err != nil {
				return err
			}
			for b := 0; b < nband; b++ {
				col := make([]float64, nkpt)
				for k := 0; k < nkpt; k++ {
					col[k] = p.Contribution[k*nband+b]
				}
				key := withSpin(fmt.Sprintf("band%d-%s", b+1, group), suffix)
				if err := d.Add(key, col); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if info.SpinType == "collinear" {
		if info.Spin2 == nil {
			return fmt.Errorf("collinear data without a Spin2 block")
		}
		if err := add(info.Spin1, "up"); err != nil {
			return err
		}
		return add(info.Spin2, "down")
	}
	return add(info.Spin1, "")
}

// bandGroup maps one (atom, orbital) pair to its output group under a band
// projection mode.
func bandGroup(atom int, orbital string, elements []string, mode int) (string, error) {
	element := func() (string, error) {
		if atom < 1 || atom > len(elements) {
			return "", fmt.Errorf("projection: atom index %d out of range for %d elements", atom, len(elements))
		}
		return elements[atom-1], nil
	}
	switch mode {
	case BandElement:
		return element()
	case BandElementShell:
		el, err := element()
		if err != nil {
			return "", err
		}
		return el + "-" + shell(orbital), nil
	case BandElementOrbital:
		el, err := element()
		if err != nil {
			return "", err
		}
		return el + "-" + orbital, nil
	case BandAtomShell:
		return fmt.Sprintf("%d-%s", atom, shell(orbital)), nil
	case BandAtomOrbital:
		return fmt.Sprintf("%d-%s", atom, orbital), nil
	}
	return "", fmt.Errorf("elec: band projection mode %d not supported", mode)
}

// shell reduces an orbital name to its s/p/d/f shell.
func shell(orbital string) string {
	if orbital == "" {
		return ""
	}
	return orbital[:1]
}
