/*
 * errors.go, part of gocrystal.
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

import "errors"

// Error is the interface for errors that all packages in this library implement.
// The Decorate method allows to add and retrieve info from the error, without
// changing its type or wrapping it around something else. The decorate slice
// should contain a list of the functions in the calling stack, plus, for each
// function, any relevant information, in the format "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string //If passed an empty string, returns the current decoration without adding to it.
}

// The terminal conditions of the supercell search, plus the conditions that
// abort it before it starts. They are wrapped by CError so callers can match
// them with errors.Is and still read a full message.
var (
	//ErrNoCell is returned when the input structure has a zero, or no, lattice.
	ErrNoCell = errors.New("input structure has no cell information")
	//ErrMaxLengthRequired is returned when an orthorhombic search is requested without an upper length bound.
	ErrMaxLengthRequired = errors.New("a maximum length is required for orthorhombic cells")
	//ErrAtomsExceeded is returned when a candidate supercell passes the maximum number of atoms, so growing further cannot help.
	ErrAtomsExceeded = errors.New("the maximum number of atoms was exceeded while solving for the supercell; try relaxing the constraints")
	//ErrLengthExceeded is returned when a candidate supercell reaches the maximum length without satisfying the other constraints.
	ErrLengthExceeded = errors.New("the maximum length was exceeded while solving for the supercell")
	//ErrNoSupercell is returned when an orthorhombic enumeration is exhausted without a match.
	ErrNoSupercell = errors.New("unable to find an orthorhombic supercell within the given constraints")
)

// CError is the concrete error type of the library. The zero kind is allowed,
// in which case the error matches nothing in particular.
type CError struct {
	msg  string
	deco []string
	kind error
}

func (err CError) Error() string { return err.msg }

// Decorate adds the given string to the decoration slice, and returns the
// resulting slice. An empty string just returns the current decoration.
func (err CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Unwrap exposes the error kind, if any, so errors.Is works on CError.
func (err CError) Unwrap() error { return err.kind }

// errKind builds a CError from one of the sentinel error kinds.
func errKind(kind error, caller string) CError {
	return CError{msg: kind.Error(), deco: []string{caller}, kind: kind}
}

// errDecorate adds the caller to the decoration of err if err is an Error,
// and wraps it in a CError otherwise.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if ok {
		err2.Decorate(caller)
		return err2
	}
	return CError{msg: err.Error(), deco: []string{caller}, kind: err}
}
