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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dftdata/gocrystal/elec"
	"github.com/dftdata/gocrystal/elecplot"
)

var (
	bandOut   string
	bandPlot  string
	bandMode  int
	bandTitle string
)

var bandCmd = &cobra.Command{
	Use:   "band INPUT",
	Short: "Read band structure data, export to CSV or plot",
	Long: `Read a band structure output file (band.json, optionally .zst or
.gz compressed), regroup projections by --mode, and export to CSV (-o) or
plot (--plot).

Projection modes: 0 total, 1 element, 2 element+shell, 3 element+orbital,
4 atom+shell, 5 atom+orbital (default).`,
	Args: cobra.ExactArgs(1),
	RunE: runBand,
}

func init() {
	f := bandCmd.Flags()
	f.StringVarP(&bandOut, "output", "o", "", "output CSV path (.zst/.gz compresses)")
	f.StringVar(&bandPlot, "plot", "", "plot file path (png, svg, pdf)")
	f.IntVar(&bandMode, "mode", elec.BandAtomOrbital, "projection mode")
	f.StringVar(&bandTitle, "title", "", "plot title")
	rootCmd.AddCommand(bandCmd)
}

func runBand(cmd *cobra.Command, args []string) error {
	b, err := elec.ReadBand(args[0], bandMode)
	if err != nil {
		return err
	}
	fmt.Printf("Fermi energy: %.4f eV\n", b.EFermi)
	fmt.Printf("Projected:    %v\n", b.Projected)
	fmt.Printf("Columns:      %d\n", len(b.Dataset.Keys()))
	fmt.Printf("K-points:     %d\n", b.Dataset.Rows())
	if bandOut != "" {
		if err := b.Dataset.WriteCSVFile(bandOut); err != nil {
			return err
		}
		fmt.Printf("Saved to %s\n", bandOut)
	}
	if bandPlot != "" {
		opts := elecplot.DefaultOptions()
		opts.Title = bandTitle
		opts.Legend = false
		p, err := elecplot.Band(b.Dataset, b.EFermi, opts)
		if err != nil {
			return err
		}
		if err := elecplot.Save(p, opts, bandPlot); err != nil {
			return err
		}
		fmt.Printf("Plot saved to %s\n", bandPlot)
	}
	if bandOut == "" && bandPlot == "" {
		log.Warn("no -o/--output or --plot given, nothing written")
	}
	return nil
}
