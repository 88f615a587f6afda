/*
 * pattern.go, part of gochemff.
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

package pattern

import (
	"fmt"
	"slices"
	"strings"

	chem "github.com/rmera/gochemff"
)

// Bond tokens.
const (
	Single   = "-"
	Double   = "="
	Triple   = "#"
	Aromatic = ":"
	AnyBond  = "~"
)

// AnyAtom is the atom wildcard.
const AnyAtom = "*"

var bondTokens = []string{Single, Double, Triple, Aromatic, AnyBond}

// IsBondToken returns true if s is exactly one of the bond tokens.
func IsBondToken(s string) bool {
	return slices.Contains(bondTokens, s)
}

// Pattern is the representation of a tuple of atoms, or of the "type" of a
// parameter table row, that is used for matching one against the other.
// Bonds is either empty or has one element less than Atoms.
type Pattern struct {
	Atoms []string
	Bonds []string
	Flags []string
}

// New returns a pattern with copies of the given slices.
func New(atoms, bonds, flags []string) Pattern {
	return Pattern{Atoms: clone(atoms), Bonds: clone(bonds), Flags: clone(flags)}
}

func clone(s []string) []string {
	if s == nil {
		return []string{}
	}
	ret := make([]string, len(s))
	copy(ret, s)
	return ret
}

// Copy returns a deep copy of the pattern.
func (P Pattern) Copy() Pattern {
	return New(P.Atoms, P.Bonds, P.Flags)
}

// Equal returns true if both patterns are element-wise equal.
func (P Pattern) Equal(Q Pattern) bool {
	return slices.Equal(P.Atoms, Q.Atoms) && slices.Equal(P.Bonds, Q.Bonds) && slices.Equal(P.Flags, Q.Flags)
}

// Less orders patterns by atoms, then bonds, then flags.
func (P Pattern) Less(Q Pattern) bool {
	if c := slices.Compare(P.Atoms, Q.Atoms); c != 0 {
		return c < 0
	}
	if c := slices.Compare(P.Bonds, Q.Bonds); c != 0 {
		return c < 0
	}
	return slices.Compare(P.Flags, Q.Flags) < 0
}

// Validate returns an error if the bonds of the pattern are not
// consistent with its atoms.
func (P Pattern) Validate() error {
	if len(P.Bonds) != 0 && len(P.Bonds) != len(P.Atoms)-1 {
		return chem.Errorf(chem.ErrMalformedPattern, "Validate", "pattern %s has %d atoms and %d bonds", P, len(P.Atoms), len(P.Bonds))
	}
	for _, v := range P.Bonds {
		if !IsBondToken(v) {
			return chem.Errorf(chem.ErrMalformedPattern, "Validate", "pattern %s has an invalid bond token %q", P, v)
		}
	}
	return nil
}

// HasWildAtom returns true if any atom token contains the atom wildcard.
func (P Pattern) HasWildAtom() bool {
	for _, v := range P.Atoms {
		if strings.Contains(v, AnyAtom) {
			return true
		}
	}
	return false
}

// String returns the pattern as (atom, atom, bond, bond, flag, ...).
// Equal patterns give equal strings, so the result can be used as a key.
func (P Pattern) String() string {
	all := make([]string, 0, len(P.Atoms)+len(P.Bonds)+len(P.Flags))
	all = append(all, P.Atoms...)
	all = append(all, P.Bonds...)
	all = append(all, P.Flags...)
	return fmt.Sprintf("(%s)", strings.Join(all, ", "))
}

// Key is like String, but unambiguous even when tokens contain commas.
func (P Pattern) Key() string {
	return fmt.Sprintf("%q|%q|%q", P.Atoms, P.Bonds, P.Flags)
}
