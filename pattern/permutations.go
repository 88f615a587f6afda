/*
 * permutations.go, part of gochemff.
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

import "slices"

// Permutation maps a pattern to an equivalent reordering of the same tuple.
// Flags are never permuted. Implementations must not modify their argument.
type Permutation interface {
	Name() string
	Permute(P Pattern) Pattern
}

type identity struct{}

func (identity) Name() string              { return "identity" }
func (identity) Permute(P Pattern) Pattern { return P.Copy() }

type reverse struct{}

func (reverse) Name() string { return "reverse" }
func (reverse) Permute(P Pattern) Pattern {
	R := P.Copy()
	slices.Reverse(R.Atoms)
	slices.Reverse(R.Bonds)
	return R
}

// improper keeps the first (central) atom and reorders the other three.
// Bond i is the bond between the center and atom i+1, so bonds follow their atoms.
type improper struct {
	name  string
	atoms [4]int
	bonds [3]int
}

func (I improper) Name() string { return I.name }
func (I improper) Permute(P Pattern) Pattern {
	R := P.Copy()
	if len(P.Atoms) == 4 {
		for k, v := range I.atoms {
			R.Atoms[k] = P.Atoms[v]
		}
	}
	if len(P.Bonds) == 3 {
		for k, v := range I.bonds {
			R.Bonds[k] = P.Bonds[v]
		}
	}
	return R
}

// The built-in permutations.
var (
	Identity  Permutation = identity{}
	Reverse   Permutation = reverse{}
	Improper1 Permutation = improper{"improper1", [4]int{0, 1, 3, 2}, [3]int{0, 2, 1}}
	Improper2 Permutation = improper{"improper2", [4]int{0, 2, 1, 3}, [3]int{1, 0, 2}}
	Improper3 Permutation = improper{"improper3", [4]int{0, 2, 3, 1}, [3]int{1, 2, 0}}
	Improper4 Permutation = improper{"improper4", [4]int{0, 3, 1, 2}, [3]int{2, 0, 1}}
	Improper5 Permutation = improper{"improper5", [4]int{0, 3, 2, 1}, [3]int{2, 1, 0}}
)

// Impropers returns the six permutations that leave the first atom of a
// 4-atom tuple in place, starting with Identity.
func Impropers() []Permutation {
	return []Permutation{Identity, Improper1, Improper2, Improper3, Improper4, Improper5}
}

// PermutationFunc turns a function into a named Permutation.
func PermutationFunc(name string, f func(Pattern) Pattern) Permutation {
	return funcPerm{name: name, f: f}
}

type funcPerm struct {
	name string
	f    func(Pattern) Pattern
}

func (F funcPerm) Name() string              { return F.name }
func (F funcPerm) Permute(P Pattern) Pattern { return F.f(P.Copy()) }
