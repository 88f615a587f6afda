/*
 * system.go, part of gochemff.
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

package typer

import (
	"fmt"
	"strings"

	chem "github.com/rmera/gochemff"
)

// PseudoType is a kind of pseudo particle, with the atoms that define each of
// its instances. Every site tuple starts with the pseudo particle itself, so
// NSites counts it too.
type PseudoType struct {
	Name   string
	NSites int
	Sites  [][]int
}

type types struct {
	btype, nbtype, pset string
}

// tuples is a list of atom tuples of a fixed length, without repetitions.
type tuples struct {
	n    int
	list [][]int
	seen map[string]bool
}

func newTuples(n int) *tuples {
	return &tuples{n: n, seen: make(map[string]bool)}
}

func tupleKey(t []int) string {
	var b strings.Builder
	for _, v := range t {
		fmt.Fprintf(&b, "%d,", v)
	}
	return b.String()
}

func (T *tuples) add(t []int) {
	if len(t) != T.n {
		panic(fmt.Sprintf("typer: tuple %v should have %d atoms", t, T.n))
	}
	k := tupleKey(t)
	if T.seen[k] {
		return
	}
	T.seen[k] = true
	T.list = append(T.list, append([]int(nil), t...))
}

func (T *tuples) get() [][]int {
	ret := make([][]int, len(T.list))
	for i, v := range T.list {
		ret[i] = append([]int(nil), v...)
	}
	return ret
}

// TypedSystem is a molecule together with everything typing assigns to it:
// bonded and nonbonded types and psets per atom, aromaticity per bond, and
// the tuple lists that the parametrization plugins consume. None of those
// is written into the molecule itself.
// TypedSystem implements pattern.System.
type TypedSystem struct {
	Top         *chem.Topology
	types       map[int]types
	aromatic    map[*chem.Bond]bool
	typed       *tuples
	nonPseudo   *tuples
	pseudoBonds *tuples
	angles      *tuples
	dihedrals   *tuples
	exclusions  *tuples
	impropers   *tuples
	cmaps       *tuples
	pseudoTypes []PseudoType
}

// NewTypedSystem returns an empty typed view of top. If top is nil, an empty
// topology is created.
func NewTypedSystem(top *chem.Topology) *TypedSystem {
	if top == nil {
		top = chem.NewTopology(0, 0)
	}
	return &TypedSystem{
		Top:         top,
		types:       make(map[int]types),
		aromatic:    make(map[*chem.Bond]bool),
		typed:       newTuples(1),
		nonPseudo:   newTuples(2),
		pseudoBonds: newTuples(2),
		angles:      newTuples(3),
		dihedrals:   newTuples(4),
		exclusions:  newTuples(2),
		impropers:   newTuples(4),
		cmaps:       newTuples(8),
	}
}

// RemovePseudos removes every pseudo particle of the molecule, with its
// bonds, and returns how many there were. Atoms are renumbered, so it can
// only be used before anything is typed.
func (S *TypedSystem) RemovePseudos() (int, error) {
	if len(S.types) > 0 || len(S.typed.list) > 0 || len(S.pseudoTypes) > 0 {
		return 0, chem.Errorf(chem.ErrBadAssignment, "RemovePseudos", "the system is already typed")
	}
	var pseudos []int
	for _, at := range S.Top.Atoms {
		if at.Pseudo() {
			pseudos = append(pseudos, at.Index())
		}
	}
	if len(pseudos) == 0 {
		return 0, nil
	}
	if err := S.Top.RemoveAtoms(pseudos...); err != nil {
		return 0, chem.Decorate(err, "RemovePseudos")
	}
	return len(pseudos), nil
}

func (S *TypedSystem) BType(i int) string  { return S.types[i].btype }
func (S *TypedSystem) NBType(i int) string { return S.types[i].nbtype }
func (S *TypedSystem) PSet(i int) string   { return S.types[i].pset }

// SetTypes sets the bonded type, the nonbonded type and the pset of atom i.
func (S *TypedSystem) SetTypes(i int, btype, nbtype, pset string) {
	S.Top.Atom(i) //range check
	S.types[i] = types{btype: btype, nbtype: nbtype, pset: pset}
}

// Bond returns the bond between i and j, or nil. The returned bond is a
// copy whose Aromatic field carries the aromaticity recorded in S, if any.
func (S *TypedSystem) Bond(i, j int) *chem.Bond {
	b := S.Top.Bond(i, j)
	if b == nil {
		return nil
	}
	c := *b
	if ar, ok := S.aromatic[b]; ok {
		c.Aromatic = ar
	}
	return &c
}

// SetAromatic records the aromaticity of the bond between i and j.
func (S *TypedSystem) SetAromatic(i, j int, aromatic bool) error {
	b := S.Top.Bond(i, j)
	if b == nil {
		return chem.Errorf(chem.ErrBadAssignment, "SetAromatic", "atoms %d and %d are not bonded", i, j)
	}
	S.aromatic[b] = aromatic
	return nil
}

// Aromatic returns the recorded aromaticity of the bond between i and j,
// falling back to the flag in the molecule.
func (S *TypedSystem) Aromatic(i, j int) bool {
	b := S.Bond(i, j)
	return b != nil && b.Aromatic
}

func (S *TypedSystem) AddTypedAtom(i int)        { S.typed.add([]int{i}) }
func (S *TypedSystem) AddNonPseudoBond(t []int)  { S.nonPseudo.add(t) }
func (S *TypedSystem) AddPseudoBond(t []int)     { S.pseudoBonds.add(t) }
func (S *TypedSystem) AddAngle(t []int)          { S.angles.add(t) }
func (S *TypedSystem) AddDihedral(t []int)       { S.dihedrals.add(t) }
func (S *TypedSystem) AddExclusion(t []int)      { S.exclusions.add(t) }
func (S *TypedSystem) AddImproper(t []int)       { S.impropers.add(t) }
func (S *TypedSystem) AddCmap(t []int)           { S.cmaps.add(t) }
func (S *TypedSystem) TypedAtoms() [][]int       { return S.typed.get() }
func (S *TypedSystem) NonPseudoBonds() [][]int   { return S.nonPseudo.get() }
func (S *TypedSystem) PseudoBonds() [][]int      { return S.pseudoBonds.get() }
func (S *TypedSystem) Angles() [][]int           { return S.angles.get() }
func (S *TypedSystem) Dihedrals() [][]int        { return S.dihedrals.get() }
func (S *TypedSystem) Exclusions() [][]int       { return S.exclusions.get() }
func (S *TypedSystem) Impropers() [][]int        { return S.impropers.get() }
func (S *TypedSystem) Cmaps() [][]int            { return S.cmaps.get() }
func (S *TypedSystem) PseudoTypes() []PseudoType { return clonePseudoTypes(S.pseudoTypes) }

// Tuples returns the tuple list with the given name: "typed_atoms",
// "nonpseudo_bonds", "pseudo_bonds", "angles", "dihedrals", "exclusions",
// "impropers" or "cmaps".
func (S *TypedSystem) Tuples(name string) ([][]int, error) {
	var t *tuples
	switch name {
	case "typed_atoms":
		t = S.typed
	case "nonpseudo_bonds":
		t = S.nonPseudo
	case "pseudo_bonds":
		t = S.pseudoBonds
	case "angles":
		t = S.angles
	case "dihedrals":
		t = S.dihedrals
	case "exclusions":
		t = S.exclusions
	case "impropers":
		t = S.impropers
	case "cmaps":
		t = S.cmaps
	default:
		return nil, fmt.Errorf("typer: unknown tuple list %q", name)
	}
	return t.get(), nil
}

// AddPseudoType adds a pseudo type with nsites sites (the pseudo particle
// included) and returns its position. Adding an existing type again is
// fine, as long as the number of sites agrees.
func (S *TypedSystem) AddPseudoType(name string, nsites int) (int, error) {
	for i, v := range S.pseudoTypes {
		if v.Name != name {
			continue
		}
		if v.NSites != nsites {
			return -1, chem.Errorf(chem.ErrBadAssignment, "AddPseudoType", "pseudo type %s already exists with %d sites", name, v.NSites)
		}
		return i, nil
	}
	S.pseudoTypes = append(S.pseudoTypes, PseudoType{Name: name, NSites: nsites})
	return len(S.pseudoTypes) - 1, nil
}

// AddPseudoSites adds an instance of the pseudo type name. sites[0] is the
// pseudo particle.
func (S *TypedSystem) AddPseudoSites(name string, sites []int) error {
	i, err := S.AddPseudoType(name, len(sites))
	if err != nil {
		return chem.Decorate(err, "AddPseudoSites")
	}
	S.pseudoTypes[i].Sites = append(S.pseudoTypes[i].Sites, append([]int(nil), sites...))
	return nil
}

func clonePseudoTypes(p []PseudoType) []PseudoType {
	ret := make([]PseudoType, len(p))
	for i, v := range p {
		ret[i] = PseudoType{Name: v.Name, NSites: v.NSites, Sites: make([][]int, len(v.Sites))}
		for j, s := range v.Sites {
			ret[i].Sites[j] = append([]int(nil), s...)
		}
	}
	return ret
}
