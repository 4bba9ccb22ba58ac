/*
 * structio.go, part of gocrystal.
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

//Package structio dispatches structure reading and writing to the right
//format package, by explicit format name or by file extension.
package structio

import (
	"fmt"
	"strings"

	cryst "github.com/dftdata/gocrystal"
	"github.com/dftdata/gocrystal/dspaw"
	"github.com/dftdata/gocrystal/rescu"
)

// Formats returns the format names Read and Write accept.
func Formats() []string {
	return []string{"dspaw", "rescu", "xyz"}
}

// Read reads a structure from filename. The format, when given, must be one
// of Formats; otherwise it is guessed from the extension: .as is DS-PAW, and
// .xyz is read as the RESCU flavor, which is a superset of plain XYZ and
// keeps the moment and constraint columns RESCU writes into the same
// extension, with a fallback to the plain reader.
func Read(filename string, format ...string) (*cryst.Crystal, error) {
	fmtname := ""
	if len(format) > 0 {
		fmtname = format[0]
	}
	switch {
	case fmtname == "dspaw" || (fmtname == "" && strings.HasSuffix(filename, ".as")):
		return dspaw.Read(filename)
	case fmtname == "rescu":
		return rescu.Read(filename)
	case fmtname == "xyz" || (fmtname == "" && strings.HasSuffix(filename, ".xyz")):
		M, err := rescu.Read(filename)
		if err == nil {
			return M, nil
		}
		return cryst.XYZRead(filename)
	}
	return nil, fmt.Errorf("structio.Read %s: unsupported format %q", filename, fmtname)
}

// Write writes a structure to filename, dispatching like Read. A plain .xyz
// target silently switches to the RESCU flavor when the structure carries
// moments or constraints that plain XYZ cannot hold.
func Write(filename string, M *cryst.Crystal, format ...string) error {
	fmtname := ""
	if len(format) > 0 {
		fmtname = format[0]
	}
	switch {
	case fmtname == "dspaw" || (fmtname == "" && strings.HasSuffix(filename, ".as")):
		return dspaw.Write(filename, M)
	case fmtname == "rescu":
		return rescu.Write(filename, M)
	case fmtname == "xyz" || (fmtname == "" && strings.HasSuffix(filename, ".xyz")):
		if M.MagShape() != 0 || M.HasFix() {
			return rescu.Write(filename, M)
		}
		return cryst.XYZWrite(filename, M)
	}
	return fmt.Errorf("structio.Write %s: unsupported format %q", filename, fmtname)
}
