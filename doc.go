/*
 * doc.go, part of gocrystal.
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

/*Package cryst is the main package of the gocrystal library. It provides cell, atom
and crystal-structure types, facilities for reading and writing some structure file
formats used by DFT codes, and routines to build supercells, including a search for
the minimal supercell whose inscribed cube (or box) satisfies user-given size and
shape constraints.


	**gocrystal capabilities**

    Reads/writes plain XYZ files, plus, via subpackages, the DS-PAW .as format
	(with lattice/atom constraints and magnetic moments) and the RESCU flavor
	of XYZ (with magnetic moments and movable flags).

    Builds supercells from any non-singular integer transformation matrix,
	replicating and wrapping the atoms of the original cell.

    Searches for a minimal near-cubic, or optionally near-orthorhombic,
	supercell of an arbitrary lattice, under constraints on the inscribed box
	size, the number of atoms, and the cell angles (FindOrthogonal).

    Cell geometry: vector lengths, angles, volume, cartesian/fractional
	conversion.

    The elec subpackage reads band-structure and density-of-states output
	files (JSON, also zstd- or gzip-compressed) and re-slices their orbital
	projections by atom, element, and orbital without re-running the
	calculation. The elecplot subpackage draws the results.

All the matrix work is done with gonum (gonum.org/v1/gonum/mat). Lattice
matrices are row-major: the rows of a Cell are the lattice vectors, so a set of
fractional coordinates f maps to cartesian as f*C, not C*f.
*/
package cryst
