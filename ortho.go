/*
 * ortho.go, part of gocrystal.
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
	"math"
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Options holds the constraints for one supercell search. Build it with
// DefaultOptions and adjust with the accessor methods. An Options value must
// not be shared between concurrent searches, as the random source it carries
// is not safe for concurrent use.
type Options struct {
	minAtoms     int
	maxAtoms     int
	minLength    float64
	maxLength    float64
	forceDiag    bool
	force90      bool
	orthorhombic bool
	angleTol     float64
	step         float64
	rng          *rand.Rand
	expander     Expander
}

// DefaultOptions returns an Options with the default constraints: minimum
// inscribed length 15, growth step 0.1, angle tolerance 1e-3 degrees, no atom
// bounds, cubic search.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.minAtoms = 0
	ret.maxAtoms = math.MaxInt
	ret.minLength = 15.0
	ret.maxLength = 0
	ret.angleTol = 1e-3
	ret.step = 0.1
	ret.expander = LatticeExpander{}
	return ret
}

//The accessors return the current value of each option, and set it first if
//a valid value is given.

// MinAtoms is the lower bound on the atom count of the result.
func (o *Options) MinAtoms(n ...int) int {
	if len(n) > 0 && n[0] >= 0 {
		o.minAtoms = n[0]
	}
	return o.minAtoms
}

// MaxAtoms is the upper bound on the atom count of the result. Exceeding it
// during the search is fatal, as growing further cannot recover.
func (o *Options) MaxAtoms(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		o.maxAtoms = n[0]
	}
	return o.maxAtoms
}

// MinLength is the minimum acceptable inscribed edge length of the result.
func (o *Options) MinLength(l ...float64) float64 {
	if len(l) > 0 && l[0] > 0 {
		o.minLength = l[0]
	}
	return o.minLength
}

// MaxLength is the maximum acceptable lattice vector length. Zero means
// unbounded; it is required for the orthorhombic search.
func (o *Options) MaxLength(l ...float64) float64 {
	if len(l) > 0 && l[0] > 0 {
		o.maxLength = l[0]
	}
	return o.maxLength
}

// ForceDiagonal skips the search and builds a diagonal transformation
// directly from MinLength. Atom bounds, MaxLength and the shape flags are
// ignored on this path.
func (o *Options) ForceDiagonal(b ...bool) bool {
	if len(b) > 0 {
		o.forceDiag = b[0]
	}
	return o.forceDiag
}

// Force90Degrees requires the cell angles of the result to deviate from 90
// degrees by less than AngleTolerance.
func (o *Options) Force90Degrees(b ...bool) bool {
	if len(b) > 0 {
		o.force90 = b[0]
	}
	return o.force90
}

// AllowOrthorhombic searches over three independent box edges instead of a
// single cubic edge. MaxLength must be set when this is on.
func (o *Options) AllowOrthorhombic(b ...bool) bool {
	if len(b) > 0 {
		o.orthorhombic = b[0]
	}
	return o.orthorhombic
}

// AngleTolerance is the allowed deviation from 90 degrees, in degrees.
func (o *Options) AngleTolerance(t ...float64) float64 {
	if len(t) > 0 && t[0] > 0 {
		o.angleTol = t[0]
	}
	return o.angleTol
}

// StepSize is the growth increment of the target box per iteration.
func (o *Options) StepSize(s ...float64) float64 {
	if len(s) > 0 && s[0] > 0 {
		o.step = s[0]
	}
	return o.step
}

// Rand is the random source used to break ties in the rounding repair. Tests
// should set a fixed-seed source for reproducibility; when unset, a
// time-seeded one is created on first use.
func (o *Options) Rand(r ...*rand.Rand) *rand.Rand {
	if len(r) > 0 && r[0] != nil {
		o.rng = r[0]
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o.rng
}

// Expander is the supercell-expansion capability used to materialize each
// candidate.
func (o *Options) Expander(e ...Expander) Expander {
	if len(e) > 0 && e[0] != nil {
		o.expander = e[0]
	}
	return o.expander
}

// OrthoFinder searches for a transformation matrix that makes a supercell of
// a given structure nearly cubic, or nearly orthorhombic. The matrix must
// have integer entries, so entries are rounded in a way that keeps the matrix
// non-singular. Vector projections on the resulting supercell measure the
// side of the largest cube (box) that fits inside it, and the target box is
// grown until that side reaches the requested minimum and the atom count
// falls within bounds.
type OrthoFinder struct {
	opts *Options
	T    *IntMat
}

// NewOrthoFinder returns a finder with the given options, or the defaults if
// none are given.
func NewOrthoFinder(opts ...*Options) *OrthoFinder {
	o := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		o = opts[0]
	}
	return &OrthoFinder{opts: o}
}

// Transformation returns the transformation matrix of the last successful
// Apply, or nil if there has not been one.
func (O *OrthoFinder) Transformation() *IntMat { return O.T }

// FindOrthogonal is the convenience entry point: it searches for a minimal
// orthogonal supercell of M with the given options (or the defaults) and
// returns it. The error, if any, is one of the Err* conditions of this
// package.
func FindOrthogonal(M *Crystal, opts ...*Options) (*Crystal, error) {
	r, err := NewOrthoFinder(opts...).Apply(M)
	if err != nil {
		return nil, errDecorate(err, "FindOrthogonal")
	}
	return r, nil
}

// Apply runs the search on M and returns the accepted supercell. On failure
// it returns nil and an error wrapping ErrNoCell, ErrMaxLengthRequired,
// ErrAtomsExceeded, ErrLengthExceeded or ErrNoSupercell; no partial result is
// ever returned.
func (O *OrthoFinder) Apply(M *Crystal) (*Crystal, error) {
	if M == nil || M.Cell.IsZero() {
		return nil, errKind(ErrNoCell, "OrthoFinder.Apply")
	}
	o := O.opts
	if o.orthorhombic && o.maxLength <= 0 {
		return nil, errKind(ErrMaxLengthRequired, "OrthoFinder.Apply")
	}
	if o.forceDiag {
		return O.applyDiagonal(M)
	}
	if !o.orthorhombic {
		return O.applyCubic(M)
	}
	return O.applyOrthorhombic(M)
}

// applyDiagonal scales each lattice vector independently so every edge
// reaches at least MinLength. No search is involved.
func (O *OrthoFinder) applyDiagonal(M *Crystal) (*Crystal, error) {
	lengths := M.Cell.Lengths()
	var scale [3]int
	for i := 0; i < 3; i++ {
		scale[i] = ceilDiv(O.opts.minLength, lengths[i])
		if scale[i] < 1 {
			scale[i] = 1
		}
	}
	T := DiagIntMat(scale[0], scale[1], scale[2])
	super, err := O.opts.Expander().Expand(M, T)
	if err != nil {
		return nil, errDecorate(err, "OrthoFinder.applyDiagonal")
	}
	O.T = T
	return super, nil
}

// applyCubic grows a single cubic target size from MinLength in StepSize
// increments until a candidate passes, or a bound is provably violated. With
// neither MaxAtoms nor MaxLength set the loop is unbounded, just as the
// constraints ask for.
func (O *OrthoFinder) applyCubic(M *Crystal) (*Crystal, error) {
	size := O.opts.minLength
	for {
		c, err := O.possibleSupercell(M, size, size, size)
		if err != nil {
			return nil, errDecorate(err, "OrthoFinder.Apply")
		}
		if O.checkConstraints(c) {
			O.T = c.T
			return c.super, nil
		}
		size += O.opts.step
		if err := O.checkExceptions(c); err != nil {
			return nil, err
		}
	}
}

// applyOrthorhombic enumerates all target boxes with edges in
// [MinLength,MaxLength) and takes them in order of ascending total size, so
// the first passing candidate is near-minimal. The first match wins;
// exhausting the enumeration is a failure.
func (O *OrthoFinder) applyOrthorhombic(M *Crystal) (*Crystal, error) {
	step := O.opts.step
	if O.opts.force90 {
		//trade search resolution for bounded runtime
		step *= 5
	}
	var sizes []float64
	for v := O.opts.minLength; v < O.opts.maxLength; v += step {
		sizes = append(sizes, v)
	}
	type triple struct{ a, b, c float64 }
	triples := make([]triple, 0, len(sizes)*len(sizes)*len(sizes))
	for _, a := range sizes {
		for _, b := range sizes {
			for _, c := range sizes {
				triples = append(triples, triple{a, b, c})
			}
		}
	}
	sort.SliceStable(triples, func(i, j int) bool {
		return triples[i].a+triples[i].b+triples[i].c < triples[j].a+triples[j].b+triples[j].c
	})
	for _, t := range triples {
		c, err := O.possibleSupercell(M, t.a, t.b, t.c)
		if err != nil {
			return nil, errDecorate(err, "OrthoFinder.Apply")
		}
		if O.checkConstraints(c) {
			O.T = c.T
			return c.super, nil
		}
		if err := O.checkExceptions(c); err != nil {
			return nil, err
		}
	}
	return nil, errKind(ErrNoSupercell, "OrthoFinder.Apply")
}

// candidate is one evaluated target box: its transformation, the expanded
// structure, and the six projection-derived lengths measuring the box
// inscribed in the proposed supercell.
type candidate struct {
	lengths [6][]float64
	natoms  int
	super   *Crystal
	T       *IntMat
}

func (c *candidate) minLength() float64 {
	m := norm3(c.lengths[0])
	for _, v := range c.lengths[1:] {
		if n := norm3(v); n < m {
			m = n
		}
	}
	return m
}

func (c *candidate) maxLength() float64 {
	m := norm3(c.lengths[0])
	for _, v := range c.lengths[1:] {
		if n := norm3(v); n > m {
			m = n
		}
	}
	return m
}

// possibleSupercell evaluates the diagonal target box diag(sa,sb,sc): it
// solves for the real transformation taking the lattice to that box, rounds
// it to a non-singular integer matrix, and measures the resulting supercell.
func (O *OrthoFinder) possibleSupercell(M *Crystal, sa, sb, sc float64) (*candidate, error) {
	inv, err := M.Cell.Inverse()
	if err != nil {
		return nil, errDecorate(err, "possibleSupercell")
	}
	target := mat.NewDense(3, 3, nil)
	target.Set(0, 0, sa)
	target.Set(1, 1, sb)
	target.Set(2, 2, sc)
	treal := mat.NewDense(3, 3, nil)
	treal.Mul(target, inv)
	T := roundAndRepair(treal, O.opts.Rand())
	proposed := mat.NewDense(3, 3, nil)
	proposed.Mul(T.Dense(), M.Cell.Dense())

	a := []float64{proposed.At(0, 0), proposed.At(0, 1), proposed.At(0, 2)}
	b := []float64{proposed.At(1, 0), proposed.At(1, 1), proposed.At(1, 2)}
	c := []float64{proposed.At(2, 0), proposed.At(2, 1), proposed.At(2, 2)}
	//the component of each vector orthogonal to its partner, for the three
	//pairs of faces: these are the usable widths of the cell.
	var lengths [6][]float64
	lengths[0] = sub3(c, proj(c, a))
	lengths[1] = sub3(a, proj(a, c))
	lengths[2] = sub3(b, proj(b, a))
	lengths[3] = sub3(a, proj(a, b))
	lengths[4] = sub3(b, proj(b, c))
	lengths[5] = sub3(c, proj(c, b))

	super, err := O.opts.Expander().Expand(M, T)
	if err != nil {
		return nil, errDecorate(err, "possibleSupercell")
	}
	return &candidate{lengths: lengths, natoms: super.Len(), super: super, T: T}, nil
}

// checkConstraints reports whether the candidate satisfies the constraint
// set: smallest inscribed length, atom bounds, and, if requested, near-90
// degree angles.
func (O *OrthoFinder) checkConstraints(c *candidate) bool {
	o := O.opts
	if c.minLength() < o.minLength {
		return false
	}
	if c.natoms < o.minAtoms || c.natoms > o.maxAtoms {
		return false
	}
	if o.force90 {
		for _, ang := range c.super.Cell.Angles() {
			if math.Abs(ang-90) >= o.angleTol {
				return false
			}
		}
	}
	return true
}

// checkExceptions decides, after a failed candidate, whether growing further
// can still work. Passing MaxAtoms, or reaching MaxLength, is fatal.
func (O *OrthoFinder) checkExceptions(c *candidate) error {
	o := O.opts
	if c.natoms > o.maxAtoms {
		return errKind(ErrAtomsExceeded, "OrthoFinder.Apply")
	}
	if o.maxLength > 0 && c.maxLength() >= o.maxLength {
		return errKind(ErrLengthExceeded, "OrthoFinder.Apply")
	}
	return nil
}

// proj returns the orthogonal projection of b onto the direction of a. As a
// fundamental function, it panics on a zero a rather than silently returning
// zero.
func proj(b, a []float64) []float64 {
	den := dot3(a, a)
	if den <= appzero {
		panic("proj: projection onto a zero vector")
	}
	f := dot3(b, a) / den
	return []float64{f * a[0], f * a[1], f * a[2]}
}

// roundAndRepair rounds every entry of m to the nearest integer (ties to
// even), then repairs the rounding wherever it made the matrix trivially
// singular: in each all-zero row, the entry that was largest in magnitude
// before rounding is rounded away from zero instead, with ties broken at
// random; the same is then done for each all-zero column, fixing every tied
// row there. Rows and columns that were already non-zero are never touched.
// The repair keeps the integer matrix as close as possible to the real one
// while guaranteeing non-zero rows and columns.
func roundAndRepair(m *mat.Dense, rng *rand.Rand) *IntMat {
	T := new(IntMat)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			T.m[i][j] = int(math.RoundToEven(m.At(i, j)))
		}
	}
	for i := 0; i < 3; i++ {
		if T.m[i][0] != 0 || T.m[i][1] != 0 || T.m[i][2] != 0 {
			continue
		}
		row := []float64{m.At(i, 0), m.At(i, 1), m.At(i, 2)}
		ties := largestAbs(row)
		j := ties[rng.Intn(len(ties))]
		T.m[i][j] = roundAwayFromZero(row[j])
	}
	for j := 0; j < 3; j++ {
		if T.m[0][j] != 0 || T.m[1][j] != 0 || T.m[2][j] != 0 {
			continue
		}
		col := []float64{m.At(0, j), m.At(1, j), m.At(2, j)}
		for _, i := range largestAbs(col) {
			T.m[i][j] = roundAwayFromZero(col[i])
		}
	}
	return T
}

// largestAbs returns the indices holding the largest absolute value of v,
// which may be more than one on exact ties.
func largestAbs(v []float64) []int {
	max := math.Abs(v[0])
	for _, x := range v[1:] {
		if a := math.Abs(x); a > max {
			max = a
		}
	}
	var idx []int
	for i, x := range v {
		if math.Abs(x) == max {
			idx = append(idx, i)
		}
	}
	return idx
}

// roundAwayFromZero rounds x to the next integer away from 0: -1.2 becomes
// -2, 1.2 becomes 2, and 0 stays 0.
func roundAwayFromZero(x float64) int {
	if x == 0 {
		return 0
	}
	if x > 0 {
		return int(math.Ceil(x))
	}
	return -int(math.Ceil(-x))
}
