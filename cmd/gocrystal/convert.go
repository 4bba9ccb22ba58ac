/*
 * convert.go, part of gocrystal.
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
	"strings"

	"github.com/spf13/cobra"

	"github.com/dftdata/gocrystal/structio"
)

var (
	convertInFormat  string
	convertOutFormat string
)

var convertCmd = &cobra.Command{
	Use:   "convert INPUT OUTPUT",
	Short: "Convert between structure file formats",
	Long: `Convert between structure file formats. Formats are detected from
the file names; use --from/--to to override (` + strings.Join(structio.Formats(), ", ") + `).`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertInFormat, "from", "", "input format (default: by extension)")
	convertCmd.Flags().StringVar(&convertOutFormat, "to", "", "output format (default: by extension)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	M, err := readStructure(args[0], convertInFormat)
	if err != nil {
		return err
	}
	log.Debugf("read %d atoms (%s) from %s", M.Len(), formula(M), args[0])
	if err := writeStructure(args[1], M, convertOutFormat); err != nil {
		return err
	}
	fmt.Printf("%s: %d atoms (%s) written to %s\n", args[0], M.Len(), formula(M), args[1])
	return nil
}
