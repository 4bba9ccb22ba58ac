/*
 * info.go, part of gocrystal.
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
)

var infoFormat string

var infoCmd = &cobra.Command{
	Use:   "info INPUT",
	Short: "Display structure information",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().StringVar(&infoFormat, "from", "", "input format (default: by extension)")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	M, err := readStructure(args[0], infoFormat)
	if err != nil {
		return err
	}
	fmt.Printf("File:     %s\n", args[0])
	fmt.Printf("Formula:  %s\n", formula(M))
	fmt.Printf("Atoms:    %d\n", M.Len())
	fmt.Printf("Mass:     %.3f\n", M.Mass())
	if M.Cell.IsZero() {
		fmt.Println("Cell:     unknown")
		return nil
	}
	l := M.Cell.Lengths()
	a := M.Cell.Angles()
	fmt.Printf("Lengths:  %.3f %.3f %.3f\n", l[0], l[1], l[2])
	fmt.Printf("Angles:   %.2f %.2f %.2f\n", a[0], a[1], a[2])
	fmt.Printf("Volume:   %.3f\n", M.Cell.Volume())
	return nil
}
