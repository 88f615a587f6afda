/*
 * chem.go, part of gochemff.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
	"fmt"
	"sort"
)

/**Note: Many funcitons here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is most likely wrong and should
 * crash. Most panics are related to using the function on a nil object or trying to access out-of bounds
 * fields**/

// Atom contains the information for one atom (or pseudo particle) of a molecule.
// Coordinates are not kept, as nothing in this library needs them.
type Atom struct {
	Name         string
	ID           int
	MolName      string //residue name
	MolID        int    //residue id
	Chain        string
	Symbol       string
	AtomicNumber int //0 for pseudo particles
	Charge       float64
	Mass         float64 //amu
	Bonds        []*Bond
	index        int
}

// Index returns the position of the atom in its topology.
func (A *Atom) Index() int {
	return A.index
}

// Pseudo returns true if the atom is a pseudo (virtual) particle.
func (A *Atom) Pseudo() bool {
	return A.AtomicNumber == 0
}

// Copy returns a copy of the Atom object, without bonds.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	N := new(Atom)
	*N = *A
	N.Bonds = nil
	return N
}

/*****Topology type***/

// Topology contains the atoms and bonds of a molecular system.
type Topology struct {
	Atoms    []*Atom
	bonds    []*Bond
	charge   int
	unpaired int
}

// NewTopology returns a topology containing the given atoms, in order. The
// bonds the atoms may carry are not added.
func NewTopology(charge, unpaired int, ats ...*Atom) *Topology {
	top := new(Topology)
	top.charge = charge
	top.unpaired = unpaired
	for _, v := range ats {
		top.AddAtom(v)
	}
	return top
}

// Charge gets the total charge of the topology
func (T *Topology) Charge() int {
	return T.charge
}

// Unpaired gets the number of unpaired electrons in the topology
func (T *Topology) Unpaired() int {
	return T.unpaired
}

// Atom returns the Atom corresponding to the index i
// of the Atom slice in the Topology. Panics if
// out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() || i < 0 {
		panic(fmt.Sprintf("Topology: Requested Atom %d out of bounds", i))
	}
	return T.Atoms[i]
}

// AddAtom appends an atom at the end of the topology and returns
// its index.
func (T *Topology) AddAtom(at *Atom) int {
	if at == nil {
		panic("Topology: Tried to add a nil atom")
	}
	at.index = len(T.Atoms)
	at.Bonds = nil
	T.Atoms = append(T.Atoms, at)
	return at.index
}

// RemoveAtoms removes the given atoms, and their bonds, from the topology.
// The remaining atoms keep their order, and are renumbered.
func (T *Topology) RemoveAtoms(atoms ...int) error {
	del := make(map[int]bool, len(atoms))
	for _, i := range atoms {
		if i < 0 || i >= T.Len() {
			return Errorf(nil, "RemoveAtoms", "atom %d out of range for %d atoms", i, T.Len())
		}
		del[i] = true
	}
	for i := range del {
		at := T.Atoms[i]
		for len(at.Bonds) > 0 {
			if err := T.RemoveBond(at.Bonds[0]); err != nil {
				return Decorate(err, "RemoveAtoms")
			}
		}
	}
	kept := make([]*Atom, 0, T.Len()-len(del))
	for _, at := range T.Atoms {
		if del[at.index] {
			continue
		}
		at.index = len(kept)
		kept = append(kept, at)
	}
	T.Atoms = kept
	return nil
}

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

// Copy returns a deep copy of the topology, bonds included.
func (T *Topology) Copy() *Topology {
	N := NewTopology(T.charge, T.unpaired)
	for _, v := range T.Atoms {
		N.AddAtom(v.Copy())
	}
	for _, b := range T.bonds {
		nb, _ := N.AddBond(b.At1.index, b.At2.index, b.Order)
		nb.Aromatic = b.Aromatic
	}
	return N
}

// Residues splits the given atoms (all the atoms in the topology,
// if none is given) by residue id. Residues are returned in order of first
// appearance, and the atoms inside each residue keep the order given.
func (T *Topology) Residues(atoms ...int) [][]int {
	if len(atoms) == 0 {
		atoms = make([]int, T.Len())
		for i := range atoms {
			atoms[i] = i
		}
	}
	order := make([]int, 0, 5)
	byres := make(map[int][]int)
	for _, i := range atoms {
		id := T.Atom(i).MolID
		if _, ok := byres[id]; !ok {
			order = append(order, id)
		}
		byres[id] = append(byres[id], i)
	}
	ret := make([][]int, 0, len(order))
	for _, id := range order {
		ret = append(ret, byres[id])
	}
	return ret
}

// Formula returns the chemical formula of the given atoms, in Hill order
// (C first, H second, everything else alphabetically). Atoms without a
// recognizable element are ignored.
func (T *Topology) Formula(atoms []int) string {
	nums := make([]int, 0, len(atoms))
	for _, i := range atoms {
		nums = append(nums, T.Atom(i).AtomicNumber)
	}
	return Formula(nums)
}

// Formula returns the Hill-ordered formula for the given atomic numbers.
// Non-positive atomic numbers are skipped.
func Formula(anums []int) string {
	count := make(map[string]int)
	for _, v := range anums {
		if v <= 0 {
			continue
		}
		count[Symbol(v)]++
	}
	syms := make([]string, 0, len(count))
	for k := range count {
		if k == "C" || k == "H" {
			continue
		}
		syms = append(syms, k)
	}
	sort.Strings(syms)
	if count["C"] > 0 {
		pre := []string{"C"}
		if count["H"] > 0 {
			pre = append(pre, "H")
		}
		syms = append(pre, syms...)
	} else if count["H"] > 0 {
		syms = append(syms, "H")
		sort.Strings(syms)
	}
	ret := ""
	for _, s := range syms {
		ret += s
		if count[s] > 1 {
			ret += fmt.Sprintf("%d", count[s])
		}
	}
	return ret
}
