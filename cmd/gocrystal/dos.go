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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dftdata/gocrystal/elec"
	"github.com/dftdata/gocrystal/elecplot"
)

var (
	dosOut   string
	dosPlot  string
	dosMode  int
	dosTitle string
)

var dosCmd = &cobra.Command{
	Use:   "dos INPUT",
	Short: "Read density of states data, export to CSV or plot",
	Long: `Read a density of states output file (dos.json, optionally .zst or
.gz compressed), regroup projections by --mode, and export to CSV (-o) or
plot (--plot).

Projection modes: 0 total, 1 shell, 2 orbital, 3 element, 4 atom+shell,
5 atom+orbital (default), 6 atom t2g/eg, 7 atom.`,
	Args: cobra.ExactArgs(1),
	RunE: runDOS,
}

func init() {
	f := dosCmd.Flags()
	f.StringVarP(&dosOut, "output", "o", "", "output CSV path (.zst/.gz compresses)")
	f.StringVar(&dosPlot, "plot", "", "plot file path (png, svg, pdf)")
	f.IntVar(&dosMode, "mode", elec.DOSAtomOrbital, "projection mode")
	f.StringVar(&dosTitle, "title", "", "plot title")
	rootCmd.AddCommand(dosCmd)
}

func runDOS(cmd *cobra.Command, args []string) error {
	d, err := elec.ReadDOS(args[0], dosMode)
	if err != nil {
		return err
	}
	fmt.Printf("Fermi energy:  %.4f eV\n", d.EFermi)
	fmt.Printf("Projected:     %v\n", d.Projected)
	fmt.Printf("Columns:       %d\n", len(d.Dataset.Keys()))
	fmt.Printf("Energy points: %d\n", d.Dataset.Rows())
	if dosOut != "" {
		if err := d.Dataset.WriteCSVFile(dosOut); err != nil {
			return err
		}
		fmt.Printf("Saved to %s\n", dosOut)
	}
	if dosPlot != "" {
		opts := elecplot.DefaultOptions()
		opts.Title = dosTitle
		p, err := elecplot.DOS(d.Dataset, d.EFermi, opts)
		if err != nil {
			return err
		}
		if err := elecplot.Save(p, opts, dosPlot); err != nil {
			return err
		}
		fmt.Printf("Plot saved to %s\n", dosPlot)
	}
	if dosOut == "" && dosPlot == "" {
		log.Warn("no -o/--output or --plot given, nothing written")
	}
	return nil
}
