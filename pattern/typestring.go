/*
 * typestring.go, part of gochemff.
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

import "strings"

// TypeToPattern turns the "type" string of a parameter table row
// into a Pattern.
type TypeToPattern interface {
	Name() string
	Parse(typ string) Pattern
}

func splitType(fields []string) Pattern {
	ret := Pattern{Atoms: make([]string, 0, len(fields)), Bonds: []string{}, Flags: []string{}}
	for _, v := range fields {
		if IsBondToken(v) {
			ret.Bonds = append(ret.Bonds, v)
		} else {
			ret.Atoms = append(ret.Atoms, v)
		}
	}
	return ret
}

// Default takes every whitespace-separated token that is exactly a bond token
// as a bond, and everything else as an atom.
type Default struct{}

func (Default) Name() string { return "default" }
func (Default) Parse(typ string) Pattern {
	return splitType(strings.Fields(typ))
}

// Pseudo is like Default, but the last token is taken as a flag.
type Pseudo struct{}

func (Pseudo) Name() string { return "pseudo" }
func (Pseudo) Parse(typ string) Pattern {
	f := strings.Fields(typ)
	if len(f) == 0 {
		return splitType(f)
	}
	ret := splitType(f[:len(f)-1])
	ret.Flags = []string{f[len(f)-1]}
	return ret
}
