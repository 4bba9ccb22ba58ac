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

package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cryst "github.com/dftdata/gocrystal"
)

var (
	orthoOut        string
	orthoConfigFile string
	orthoMinAtoms   int
	orthoMaxAtoms   int
	orthoMinLength  float64
	orthoMaxLength  float64
	orthoForceDiag  bool
	orthoForce90    bool
	orthoAllowOrtho bool
	orthoAngleTol   float64
	orthoStep       float64
	orthoSeed       int64
	orthoFormat     string
)

// orthoConfig mirrors the search options in a YAML file, so a set of
// search parameters can be kept next to the structures it was tuned for.
// Flags given explicitly on the command line win over the file.
type orthoConfig struct {
	MinAtoms          *int     `yaml:"min_atoms"`
	MaxAtoms          *int     `yaml:"max_atoms"`
	MinLength         *float64 `yaml:"min_length"`
	MaxLength         *float64 `yaml:"max_length"`
	ForceDiagonal     *bool    `yaml:"force_diagonal"`
	Force90Degrees    *bool    `yaml:"force_90_degrees"`
	AllowOrthorhombic *bool    `yaml:"allow_orthorhombic"`
	AngleTolerance    *float64 `yaml:"angle_tolerance"`
	StepSize          *float64 `yaml:"step_size"`
	Seed              *int64   `yaml:"seed"`
}

var orthoCmd = &cobra.Command{
	Use:   "ortho INPUT",
	Short: "Find a near-cubic or orthorhombic supercell",
	Long: `Search for an integer transformation matrix whose supercell is as
close to cubic (or, with --allow-orthorhombic, orthorhombic) as possible,
subject to atom-count and cell-length constraints.`,
	Args: cobra.ExactArgs(1),
	RunE: runOrtho,
}

func init() {
	f := orthoCmd.Flags()
	f.StringVarP(&orthoOut, "output", "o", "orthogonal.as", "output file path")
	f.StringVarP(&orthoConfigFile, "config", "c", "", "YAML file with search options")
	f.IntVar(&orthoMinAtoms, "min-atoms", 0, "minimum number of atoms in the supercell")
	f.IntVar(&orthoMaxAtoms, "max-atoms", 0, "maximum number of atoms in the supercell")
	f.Float64Var(&orthoMinLength, "min-length", 15.0, "minimum cell length in Å")
	f.Float64Var(&orthoMaxLength, "max-length", 0, "maximum cell length in Å")
	f.BoolVar(&orthoForceDiag, "force-diagonal", false, "force a diagonal transformation matrix")
	f.BoolVar(&orthoForce90, "force-90-degrees", false, "require 90° cell angles")
	f.BoolVar(&orthoAllowOrtho, "allow-orthorhombic", false, "allow unequal cell lengths")
	f.Float64Var(&orthoAngleTol, "angle-tolerance", 1e-3, "angle tolerance in degrees")
	f.Float64Var(&orthoStep, "step-size", 0.1, "search step size in Å")
	f.Int64Var(&orthoSeed, "seed", 0, "random seed for reproducible tie-breaks")
	f.StringVar(&orthoFormat, "to", "", "output format (default: by extension)")
	rootCmd.AddCommand(orthoCmd)
}

func orthoOptions(cmd *cobra.Command) (*cryst.Options, error) {
	opts := cryst.DefaultOptions()
	if orthoConfigFile != "" {
		buf, err := os.ReadFile(orthoConfigFile)
		if err != nil {
			return nil, err
		}
		var cfg orthoConfig
		if err := yaml.Unmarshal(buf, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", orthoConfigFile, err)
		}
		if cfg.MinAtoms != nil {
			opts.MinAtoms(*cfg.MinAtoms)
		}
		if cfg.MaxAtoms != nil {
			opts.MaxAtoms(*cfg.MaxAtoms)
		}
		if cfg.MinLength != nil {
			opts.MinLength(*cfg.MinLength)
		}
		if cfg.MaxLength != nil {
			opts.MaxLength(*cfg.MaxLength)
		}
		if cfg.ForceDiagonal != nil {
			opts.ForceDiagonal(*cfg.ForceDiagonal)
		}
		if cfg.Force90Degrees != nil {
			opts.Force90Degrees(*cfg.Force90Degrees)
		}
		if cfg.AllowOrthorhombic != nil {
			opts.AllowOrthorhombic(*cfg.AllowOrthorhombic)
		}
		if cfg.AngleTolerance != nil {
			opts.AngleTolerance(*cfg.AngleTolerance)
		}
		if cfg.StepSize != nil {
			opts.StepSize(*cfg.StepSize)
		}
		if cfg.Seed != nil {
			opts.Rand(rand.New(rand.NewSource(*cfg.Seed)))
		}
	}
	set := cmd.Flags().Changed
	if set("min-atoms") {
		opts.MinAtoms(orthoMinAtoms)
	}
	if set("max-atoms") {
		opts.MaxAtoms(orthoMaxAtoms)
	}
	if set("min-length") {
		opts.MinLength(orthoMinLength)
	}
	if set("max-length") {
		opts.MaxLength(orthoMaxLength)
	}
	if set("force-diagonal") {
		opts.ForceDiagonal(orthoForceDiag)
	}
	if set("force-90-degrees") {
		opts.Force90Degrees(orthoForce90)
	}
	if set("allow-orthorhombic") {
		opts.AllowOrthorhombic(orthoAllowOrtho)
	}
	if set("angle-tolerance") {
		opts.AngleTolerance(orthoAngleTol)
	}
	if set("step-size") {
		opts.StepSize(orthoStep)
	}
	if set("seed") {
		opts.Rand(rand.New(rand.NewSource(orthoSeed)))
	}
	return opts, nil
}

func runOrtho(cmd *cobra.Command, args []string) error {
	M, err := readStructure(args[0], "")
	if err != nil {
		return err
	}
	opts, err := orthoOptions(cmd)
	if err != nil {
		return err
	}
	log.Debugf("searching: min_length=%.2f max_length=%.2f orthorhombic=%v",
		opts.MinLength(), opts.MaxLength(), opts.AllowOrthorhombic())

	finder := cryst.NewOrthoFinder(opts)
	super, err := finder.Apply(M)
	if err != nil {
		return err
	}
	oa := M.Cell.Angles()
	sa := super.Cell.Angles()
	fmt.Printf("Original:  %4d atoms, angles %.1f %.1f %.1f, volume %.2f\n",
		M.Len(), oa[0], oa[1], oa[2], M.Cell.Volume())
	fmt.Printf("Supercell: %4d atoms, angles %.1f %.1f %.1f, volume %.2f\n",
		super.Len(), sa[0], sa[1], sa[2], super.Cell.Volume())
	fmt.Printf("Transformation: %s\n", finder.Transformation())
	if err := writeStructure(orthoOut, super, orthoFormat); err != nil {
		return err
	}
	fmt.Printf("Saved to %s\n", orthoOut)
	return nil
}
