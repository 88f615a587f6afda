/*
 * errors.go, part of gochemff.
 *
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

// The kinds of errors produced while parametrizing a system. A *CError
// unwraps to one of these, so errors.Is can be used to tell them apart.
var (
	//Two or more distinct rows match a tuple with the same priority.
	ErrAmbiguousMatch = errors.New("ambiguous match")
	//No row of a table matches a tuple.
	ErrNoMatch = errors.New("no match")
	//No template matches a residue.
	ErrUnmatchedResidue = errors.New("unmatched residue")
	//A pattern, or a table of them, is structurally invalid.
	ErrMalformedPattern = errors.New("malformed pattern")
	//A template assignment is inconsistent with the target system.
	ErrBadAssignment = errors.New("bad assignment")
)

// CError is the error type used in this library. It carries a message,
// the "decoration" (the list of functions the error has gone through)
// and, optionally, one of the error kinds above.
type CError struct {
	msg  string
	deco []string
	kind error
}

// NewError returns a new *CError of the given kind (which can be nil),
// with the message given, decorated with the names in deco.
func NewError(kind error, msg string, deco ...string) *CError {
	err := &CError{msg: msg, kind: kind}
	for _, v := range deco {
		err.Decorate(v)
	}
	return err
}

// Errorf is like NewError, but the message is built with fmt.Sprintf.
func Errorf(kind error, deco string, format string, a ...interface{}) *CError {
	return NewError(kind, fmt.Sprintf(format, a...), deco)
}

// Error returns a string with an error message.
func (err *CError) Error() string {
	if len(err.deco) == 0 {
		return err.msg
	}
	return fmt.Sprintf("%s: %s", strings.Join(err.deco, ": "), err.msg)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	//the decoration goes from the outermost function to the innermost.
	err.deco = append([]string{dec}, err.deco...)
	return err.deco
}

// Unwrap returns the kind of the error, if any.
func (err *CError) Unwrap() error {
	return err.kind
}

// Decorate adds dec to the decoration of err if err implements Error,
// and returns err. Other errors are wrapped with dec as prefix.
func Decorate(err error, dec string) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		e.Decorate(dec)
		return err
	}
	return fmt.Errorf("%s: %w", dec, err)
}
