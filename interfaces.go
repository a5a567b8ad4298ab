/*
 * interfaces.go, part of molgraph.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package chem

import (
	"errors"
	"fmt"
	"strings"
)

//Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call adds the given string (usually the name of the calling function) to the trail and returns the trail. An empty string just returns the current trail.
}

//The kinds of failure a graph operation can report. They are meant to be
//checked with errors.Is. Not finding a match is not an error in this library,
//functions that search for matches return an ok boolean instead.
var (
	//A bond references a missing atom, an atom is bonded to itself, or an atom
	//has more electrons in bonds and hydrogens than its valence allows.
	ErrInvalidGraph = errors.New("invalid graph")
	//The graph is valid, but the requested operation can't handle it (rings
	//for the coordinate synthesis, stereocenters with odd neighbor counts).
	ErrUnsupportedStructure = errors.New("unsupported structure")
	//A relabeling or subgraph key set doesn't match the atom keys of the graph.
	ErrRelabelMismatch = errors.New("relabel mismatch")
)

//CError is the concrete error type returned by the chem package. It wraps one of the
//sentinel errors above, so errors.Is works on it, and keeps a trail of the functions
//it went through.
type CError struct {
	msg  string
	kind error
	deco []string
}

func newError(kind error, caller string, format string, args ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(format, args...), kind: kind, deco: []string{caller}}
}

//Error returns a string with an error message.
func (err *CError) Error() string {
	if err.kind == nil {
		return err.msg
	}
	return fmt.Sprintf("%s: %s", err.kind.Error(), err.msg)
}

//Unwrap returns the kind of the error.
func (err *CError) Unwrap() error {
	return err.kind
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Trail returns the decoration as a single string, innermost function first.
func (err *CError) Trail() string {
	return strings.Join(err.deco, " <- ")
}

//NewError returns an error of the given kind. It is meant for the other packages
//of the library, which report the same kinds of failures as this one.
func NewError(kind error, caller string, format string, args ...interface{}) *CError {
	return newError(kind, caller, format, args...)
}

//ErrDecorate adds caller to the trail of err if err implements Error, and returns err.
//Other errors are returned unchanged.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
