/*
 * elecplot.go, part of gocrystal.
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

//Package elecplot draws band structures and densities of states from the
//datasets produced by the elec package. Plots are saved in the formats
//gonum/plot understands from the file extension (png, svg, pdf and others).
package elecplot

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/dftdata/gocrystal/elec"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Options control the appearance of both plot kinds. The zero value is not
// useful, start from DefaultOptions.
type Options struct {
	Title      string
	Width      vg.Length
	Height     vg.Length
	ShiftFermi bool //put the Fermi level at zero energy
	Legend     bool
}

func DefaultOptions() *Options {
	return &Options{
		Width:      15 * vg.Centimeter,
		Height:     10 * vg.Centimeter,
		ShiftFermi: true,
		Legend:     true,
	}
}

// DOS plots a density of states against energy, one curve per column, with
// the Fermi level as a dashed vertical reference. Spin-down columns are drawn
// dashed in the same color as their spin-up partner.
func DOS(d *elec.Dataset, fermi float64, opts *Options) (*plot.Plot, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	energy := d.Col("energy")
	if energy == nil {
		return nil, fmt.Errorf("elecplot.DOS: dataset has no energy column")
	}
	shift := 0.0
	if opts.ShiftFermi {
		shift = fermi
	}
	p := plot.New()
	p.Title.Text = opts.Title
	p.Y.Label.Text = "DOS (states/eV)"
	if opts.ShiftFermi {
		p.X.Label.Text = "E - EF (eV)"
	} else {
		p.X.Label.Text = "E (eV)"
	}
	curves := 0
	for _, k := range d.Keys() {
		if k != "energy" {
			curves++
		}
	}
	ci := 0
	for _, k := range d.Keys() {
		if k == "energy" {
			continue
		}
		l, err := plotter.NewLine(xyPairs(energy, d.Col(k), shift, false))
		if err != nil {
			return nil, fmt.Errorf("elecplot.DOS: %w", err)
		}
		l.LineStyle.Color = curveColor(pairIndex(d.Keys(), k, ci), curves)
		if strings.HasSuffix(k, "-down") {
			l.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
		}
		p.Add(l)
		if opts.Legend {
			p.Legend.Add(k, l)
		}
		ci++
	}
	addFermiLine(p, fermi-shift, true, energy)
	return p, nil
}

// Band plots band energies along the k-path, with high-symmetry points as
// axis ticks and the Fermi level as a dashed horizontal reference.
func Band(d *elec.Dataset, fermi float64, opts *Options) (*plot.Plot, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	dist := d.Col("dist")
	if dist == nil {
		return nil, fmt.Errorf("elecplot.Band: dataset has no k-path distance column")
	}
	shift := 0.0
	if opts.ShiftFermi {
		shift = fermi
	}
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = ""
	if opts.ShiftFermi {
		p.Y.Label.Text = "E - EF (eV)"
	} else {
		p.Y.Label.Text = "E (eV)"
	}
	var bands []string
	for _, k := range d.Keys() {
		switch k {
		case "kx", "ky", "kz", "dist":
			continue
		}
		bands = append(bands, k)
	}
	for i, k := range bands {
		l, err := plotter.NewLine(xyPairs(dist, d.Col(k), shift, true))
		if err != nil {
			return nil, fmt.Errorf("elecplot.Band: %w", err)
		}
		l.LineStyle.Color = curveColor(i, len(bands))
		if strings.HasSuffix(k, "-down") {
			l.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
		}
		p.Add(l)
	}
	if ticks := pathTicks(dist, d.Labels()); ticks != nil {
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
	}
	p.X.Min = dist[0]
	p.X.Max = dist[len(dist)-1]
	addFermiLine(p, fermi-shift, false, dist)
	return p, nil
}

// Save writes the plot to the named file at the size given in opts.
func Save(p *plot.Plot, opts *Options, filename string) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	return p.Save(opts.Width, opts.Height, filename)
}

// xyPairs builds plotter points from parallel slices, shifting y when the
// Fermi level goes to zero. For DOS the shift lands on x instead.
func xyPairs(x, y []float64, shift float64, shiftY bool) plotter.XYs {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		if shiftY {
			pts[i].X = x[i]
			pts[i].Y = y[i] - shift
		} else {
			pts[i].X = x[i] - shift
			pts[i].Y = y[i]
		}
	}
	return pts
}

// pathTicks turns the sparse label column into axis ticks at the distances
// of the high-symmetry points.
func pathTicks(dist []float64, labels []string) []plot.Tick {
	if labels == nil {
		return nil
	}
	var ticks []plot.Tick
	for i, lab := range labels {
		if lab == "" || i >= len(dist) {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: dist[i], Label: lab})
	}
	return ticks
}

func addFermiLine(p *plot.Plot, at float64, vertical bool, span []float64) {
	if len(span) == 0 {
		return
	}
	lo, hi := span[0], span[len(span)-1]
	pts := make(plotter.XYs, 2)
	if vertical {
		//the y extent gets fixed by the other plotters, a tall line works
		pts[0].X, pts[0].Y = at, -1e3
		pts[1].X, pts[1].Y = at, 1e3
	} else {
		pts[0].X, pts[0].Y = lo, at
		pts[1].X, pts[1].Y = hi, at
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return
	}
	l.LineStyle.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	l.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	p.Add(l)
}

// pairIndex gives spin-down curves the color index of their spin-up partner
// so the pair reads as one quantity.
func pairIndex(keys []string, key string, fallback int) int {
	if !strings.HasSuffix(key, "-down") {
		return fallback
	}
	up := strings.TrimSuffix(key, "-down") + "-up"
	ci := 0
	for _, k := range keys {
		if k == "energy" {
			continue
		}
		if k == up {
			return ci
		}
		ci++
	}
	return fallback
}

//takes hue (0-360), v and s (0-1), returns an opaque RGBA color
func hvs2RGB(h, v, s float64) color.RGBA {
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		c := uint8(conversion)
		return color.RGBA{R: c, G: c, B: c, A: 255}
	}
	h = h / 60
	i := math.Floor(h)
	f := h - i
	pp := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = v, t, pp
	case 1:
		r, g, b = q, v, pp
	case 2:
		r, g, b = pp, v, t
	case 3:
		r, g, b = pp, q, v
	case 4:
		r, g, b = t, pp, v
	default: //case 5
		r, g, b = v, pp, q
	}
	return color.RGBA{
		R: uint8(r * conversion),
		G: uint8(g * conversion),
		B: uint8(b * conversion),
		A: 255,
	}
}

// curveColor spreads curve colors over the hue circle, skipping the yellows
// that read badly on white.
func curveColor(key, steps int) color.RGBA {
	if steps < 1 {
		steps = 1
	}
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return hvs2RGB(h, 1.0, 1.0)
}
