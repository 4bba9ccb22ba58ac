/*
 * dos.go, part of gocrystal.
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
)

// DOS is a processed density of states: the energy grid, the total DOS
// ("tdos", or "tdos-up"/"tdos-down" for collinear data), per-projection-group
// columns when projected, and the Fermi energy in eV.
type DOS struct {
	Dataset   *Dataset
	EFermi    float64
	Projected bool
}

type dosFile struct {
	DosInfo  dosInfo  `json:"DosInfo"`
	AtomInfo atomInfo `json:"AtomInfo"`
}

type dosInfo struct {
	EFermi    float64       `json:"EFermi"`
	Project   bool          `json:"Project"`
	DosEnergy []float64     `json:"DosEnergy"`
	SpinType  string        `json:"SpinType"`
	Orbit     []string      `json:"Orbit"`
	Spin1     *dosSpinBlock `json:"Spin1"`
	Spin2     *dosSpinBlock `json:"Spin2"`
}

type dosSpinBlock struct {
	Dos        []float64    `json:"Dos"`
	ProjectDos []projection `json:"ProjectDos"`
}

// ReadDOS reads a density-of-states output file (JSON, optionally
// compressed) and regroups any projections according to mode. DOSTotal
// ignores projections; a non-projected file yields the total DOS under every
// mode.
func ReadDOS(filename string, mode int) (*DOS, error) {
	r, err := openJSON(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var df dosFile
	if err := json.NewDecoder(r).Decode(&df); err != nil {
		return nil, fmt.Errorf("elec.ReadDOS %s: %w", filename, err)
	}
	info := &df.DosInfo
	if info.Spin1 == nil {
		return nil, fmt.Errorf("elec.ReadDOS %s: no Spin1 block", filename)
	}
	npts := len(info.DosEnergy)
	if npts == 0 {
		return nil, fmt.Errorf("elec.ReadDOS %s: empty energy grid", filename)
	}

	d := NewDataset()
	d.Set("energy", info.DosEnergy)
	res := &DOS{Dataset: d, EFermi: info.EFermi, Projected: info.Project}

	collinear := info.SpinType == "collinear"
	if collinear && info.Spin2 == nil {
		return nil, fmt.Errorf("elec.ReadDOS %s: collinear data without a Spin2 block", filename)
	}
	if collinear {
		d.Set("tdos-up", info.Spin1.Dos)
		d.Set("tdos-down", info.Spin2.Dos)
	} else {
		d.Set("tdos", info.Spin1.Dos)
	}
	if mode == DOSTotal || !info.Project {
		return res, nil
	}

	elements := make([]string, len(df.AtomInfo.Atoms))
	for i, at := range df.AtomInfo.Atoms {
		elements[i] = at.Element
	}
	add := func(block *dosSpinBlock, spin string) error {
		for _, p := range block.ProjectDos {
			if p.OrbitIndex < 1 || p.OrbitIndex > len(info.Orbit) {
				return fmt.Errorf("elec.ReadDOS: orbital index %d out of range", p.OrbitIndex)
			}
			if len(p.Contribution) != npts {
				return fmt.Errorf("elec.ReadDOS: projection %d%s: have %d values, want %d", p.AtomIndex, info.Orbit[p.OrbitIndex-1], len(p.Contribution), npts)
			}
			group, keep, err := dosGroup(p.AtomIndex, info.Orbit[p.OrbitIndex-1], elements, mode)
			if err != nil {
				return err
			}
			if !keep { //e.g. s and p orbitals under the t2g/eg grouping
				continue
			}
			if err := d.Add(withSpin(group, spin), p.Contribution); err != nil {
				return err
			}
		}
		return nil
	}
	if collinear {
		if err := add(info.Spin1, "up"); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		if err := add(info.Spin2, "down"); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	} else if err := add(info.Spin1, ""); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return res, nil
}

//the d orbitals split by crystal-field symmetry
var t2gOrbitals = map[string]bool{"dxy": true, "dxz": true, "dyz": true}
var egOrbitals = map[string]bool{"dz2": true, "dx2y2": true}

// dosGroup maps one (atom, orbital) pair to its output group under a DOS
// projection mode. The second return is false when the pair doesn't belong
// to any group under that mode.
func dosGroup(atom int, orbital string, elements []string, mode int) (string, bool, error) {
	switch mode {
	case DOSShell:
		return shell(orbital), true, nil
	case DOSOrbital:
		return orbital, true, nil
	case DOSElement:
		if atom < 1 || atom > len(elements) {
			return "", false, fmt.Errorf("elec.ReadDOS: atom index %d out of range for %d elements", atom, len(elements))
		}
		return elements[atom-1], true, nil
	case DOSAtomShell:
		return fmt.Sprintf("%d%s", atom, shell(orbital)), true, nil
	case DOSAtomOrbital:
		return fmt.Sprintf("%d%s", atom, orbital), true, nil
	case DOST2gEg:
		if t2gOrbitals[orbital] {
			return fmt.Sprintf("%dt2g", atom), true, nil
		}
		if egOrbitals[orbital] {
			return fmt.Sprintf("%deg", atom), true, nil
		}
		return "", false, nil
	case DOSAtom:
		return fmt.Sprintf("%d", atom), true, nil
	}
	return "", false, fmt.Errorf("elec: DOS projection mode %d not supported", mode)
}
