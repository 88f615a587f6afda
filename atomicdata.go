/*
 * atomicdata.go, part of gochemff.
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

import "fmt"

// A map between element symbols and atomic numbers.
// Only elements that show up in biomolecular force fields are present
var symbolAnum = map[string]int{
	"H":  1,
	"He": 2,
	"Li": 3,
	"Be": 4,
	"B":  5,
	"C":  6,
	"N":  7,
	"O":  8,
	"F":  9,
	"Ne": 10,
	"Na": 11,
	"Mg": 12,
	"Al": 13,
	"Si": 14,
	"P":  15,
	"S":  16,
	"Cl": 17,
	"Ar": 18,
	"K":  19,
	"Ca": 20,
	"Cr": 24,
	"Mn": 25,
	"Fe": 26,
	"Co": 27,
	"Ni": 28,
	"Cu": 29,
	"Zn": 30,
	"Se": 34,
	"Br": 35,
	"Kr": 36,
	"Rb": 37,
	"Sr": 38,
	"Cd": 48,
	"I":  53,
	"Xe": 54,
	"Cs": 55,
	"Ba": 56,
}

var anumSymbol = func() map[int]string {
	ret := make(map[int]string, len(symbolAnum))
	for k, v := range symbolAnum {
		ret[v] = k
	}
	return ret
}()

// Symbol returns the element symbol for the atomic number anum.
// Unknown elements are returned as "X<anum>", so formulas stay unambiguous.
func Symbol(anum int) string {
	if s, ok := anumSymbol[anum]; ok {
		return s
	}
	return fmt.Sprintf("X%d", anum)
}

// AtomicNumber returns the atomic number for the element symbol s, and false
// if the element is not known.
func AtomicNumber(s string) (int, bool) {
	n, ok := symbolAnum[s]
	return n, ok
}
