/*
 * builders.go, part of gochemff.
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

	chem "github.com/rmera/gochemff"
)

// System is what the builders need to know about a typed molecule.
// All the arguments are atom indexes.
type System interface {
	//BType returns the bonded type of the atom.
	BType(i int) string
	//NBType returns the nonbonded type of the atom.
	NBType(i int) string
	//PSet returns the pseudo-particle set of the atom.
	PSet(i int) string
	//Bond returns the bond between the two atoms, or nil.
	Bond(i, j int) *chem.Bond
}

// BondToken returns the token for the bond between atoms i and j of sys.
// It panics if the atoms are not bonded.
func BondToken(sys System, i, j int) string {
	b := sys.Bond(i, j)
	if b == nil {
		panic(fmt.Sprintf("pattern: atoms %d and %d are not bonded", i, j))
	}
	if b.Aromatic {
		return Aromatic
	}
	switch b.Order {
	case 1:
		return Single
	case 2:
		return Double
	case 3:
		return Triple
	}
	return AnyBond
}

// SystemToPattern builds the pattern for a tuple of atoms of a system.
// Implementations must be pure and deterministic.
type SystemToPattern interface {
	Name() string
	Build(sys System, atoms []int) Pattern
}

func btypes(sys System, atoms []int) []string {
	ret := make([]string, 0, len(atoms))
	for _, v := range atoms {
		ret = append(ret, sys.BType(v))
	}
	return ret
}

func bondsToFirst(sys System, atoms []int) []string {
	ret := make([]string, 0, len(atoms))
	for _, v := range atoms[1:] {
		ret = append(ret, BondToken(sys, atoms[0], v))
	}
	return ret
}

func bondsChain(sys System, atoms []int) []string {
	ret := make([]string, 0, len(atoms))
	for i := 1; i < len(atoms); i++ {
		ret = append(ret, BondToken(sys, atoms[i-1], atoms[i]))
	}
	return ret
}

// NBType builds the pattern with the nonbonded types of the atoms.
type NBType struct{}

func (NBType) Name() string { return "nbtype" }
func (NBType) Build(sys System, atoms []int) Pattern {
	ats := make([]string, 0, len(atoms))
	for _, v := range atoms {
		ats = append(ats, sys.NBType(v))
	}
	return Pattern{Atoms: ats, Bonds: []string{}, Flags: []string{}}
}

// BType builds the pattern with the bonded types of the atoms.
type BType struct{}

func (BType) Name() string { return "btype" }
func (BType) Build(sys System, atoms []int) Pattern {
	return Pattern{Atoms: btypes(sys, atoms), Bonds: []string{}, Flags: []string{}}
}

// Bonded builds the pattern with the bonded types of the atoms and the bonds
// between consecutive atoms, which must form a chain.
type Bonded struct{}

func (Bonded) Name() string { return "bonded" }
func (Bonded) Build(sys System, atoms []int) Pattern {
	return Pattern{Atoms: btypes(sys, atoms), Bonds: bondsChain(sys, atoms), Flags: []string{}}
}

// BondToFirst builds the pattern with the bonded types of the atoms and the bonds
// between the first atom and each of the others.
type BondToFirst struct{}

func (BondToFirst) Name() string { return "bond_to_first" }
func (BondToFirst) Build(sys System, atoms []int) Pattern {
	if len(atoms) == 0 {
		return Pattern{Atoms: []string{}, Bonds: []string{}, Flags: []string{}}
	}
	return Pattern{Atoms: btypes(sys, atoms), Bonds: bondsToFirst(sys, atoms), Flags: []string{}}
}

// The pseudo builders take the pseudo particle as the first atom of the tuple,
// followed by its sites. The pattern is built over the sites, and flagged
// with the pset of the pseudo particle.

func pseudoFlags(sys System, atoms []int) []string {
	return []string{sys.PSet(atoms[0])}
}

// PseudoBType is BType over the sites of a pseudo particle.
type PseudoBType struct{}

func (PseudoBType) Name() string { return "pseudo_btype" }
func (PseudoBType) Build(sys System, atoms []int) Pattern {
	return Pattern{Atoms: btypes(sys, atoms[1:]), Bonds: []string{}, Flags: pseudoFlags(sys, atoms)}
}

// PseudoBondToFirst is BondToFirst over the sites of a pseudo particle.
type PseudoBondToFirst struct{}

func (PseudoBondToFirst) Name() string { return "pseudo_bond_to_first" }
func (PseudoBondToFirst) Build(sys System, atoms []int) Pattern {
	sites := atoms[1:]
	bonds := []string{}
	if len(sites) > 0 {
		bonds = bondsToFirst(sys, sites)
	}
	return Pattern{Atoms: btypes(sys, sites), Bonds: bonds, Flags: pseudoFlags(sys, atoms)}
}

// PseudoBondToSecond is like PseudoBondToFirst, but the first site is bonded to
// the second one, and every further site is bonded to the second one.
type PseudoBondToSecond struct{}

func (PseudoBondToSecond) Name() string { return "pseudo_bond_to_second" }
func (PseudoBondToSecond) Build(sys System, atoms []int) Pattern {
	sites := atoms[1:]
	bonds := make([]string, 0, len(sites))
	if len(sites) > 1 {
		bonds = append(bonds, BondToken(sys, sites[0], sites[1]))
		for _, v := range sites[2:] {
			bonds = append(bonds, BondToken(sys, sites[1], v))
		}
	}
	return Pattern{Atoms: btypes(sys, sites), Bonds: bonds, Flags: pseudoFlags(sys, atoms)}
}
