/*
 * helpers.go, part of gocrystal.
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
	"sort"
	"strings"

	cryst "github.com/dftdata/gocrystal"
	"github.com/dftdata/gocrystal/structio"
)

func readStructure(filename, format string) (*cryst.Crystal, error) {
	if format != "" {
		return structio.Read(filename, format)
	}
	return structio.Read(filename)
}

func writeStructure(filename string, M *cryst.Crystal, format string) error {
	if format != "" {
		return structio.Write(filename, M, format)
	}
	return structio.Write(filename, M)
}

// formula builds a Hill-ish chemical formula, elements sorted alphabetically.
func formula(M *cryst.Crystal) string {
	counts := make(map[string]int)
	for _, s := range M.Symbols() {
		counts[s]++
	}
	symbols := make([]string, 0, len(counts))
	for s := range counts {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	var b strings.Builder
	for _, s := range symbols {
		b.WriteString(s)
		if counts[s] > 1 {
			fmt.Fprintf(&b, "%d", counts[s])
		}
	}
	return b.String()
}
