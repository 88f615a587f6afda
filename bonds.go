/*
 * bonds.go, part of gochemff.
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

type Bond struct {
	Index    int
	At1      *Atom
	At2      *Atom
	Order    float64 //Order 0 means undetermined
	Aromatic bool
}

// Cross returns the atom at the other end of the bond from origin.
func (B *Bond) Cross(origin *Atom) *Atom {
	if origin.index == B.At1.index {
		return B.At2
	}
	if origin.index == B.At2.index {
		return B.At1
	}
	panic("Trying to cross a bond: The origin atom given is not present in the bond!") //I think this got to be a programming error, so a panic is warranted.
}

// IntOrder returns the bond order as an integer, rounding to the
// closest value.
func (B *Bond) IntOrder() int {
	return int(B.Order + 0.5)
}

// return a new *Bond slice with the element id removed
func takefromslice(bonds []*Bond, id int) []*Bond {
	newb := make([]*Bond, 0, len(bonds))
	for _, v := range bonds {
		if v.Index != id {
			newb = append(newb, v)
		}
	}
	return newb
}

// AddBond bonds the atoms with indexes i and j, with the given order, and
// returns the new bond.
func (T *Topology) AddBond(i, j int, order float64) (*Bond, error) {
	if i == j {
		err := new(CError)
		err.msg = fmt.Sprintf("Can't bond atom %d to itself", i)
		err.Decorate("AddBond")
		return nil, err
	}
	if i < 0 || j < 0 || i >= T.Len() || j >= T.Len() {
		err := new(CError)
		err.msg = fmt.Sprintf("Bond %d-%d out of range for %d atoms", i, j, T.Len())
		err.Decorate("AddBond")
		return nil, err
	}
	if b := T.Bond(i, j); b != nil {
		err := new(CError)
		err.msg = fmt.Sprintf("Atoms %d and %d are already bonded", i, j)
		err.Decorate("AddBond")
		return nil, err
	}
	at1 := T.Atoms[i]
	at2 := T.Atoms[j]
	b := &Bond{Index: len(T.bonds), At1: at1, At2: at2, Order: order}
	at1.Bonds = append(at1.Bonds, b)
	at2.Bonds = append(at2.Bonds, b)
	T.bonds = append(T.bonds, b)
	return b, nil
}

// Bond returns the bond between atoms i and j, or nil
// if they are not bonded.
func (T *Topology) Bond(i, j int) *Bond {
	at := T.Atom(i)
	for _, b := range at.Bonds {
		if b.Cross(at).index == j {
			return b
		}
	}
	return nil
}

// Bonds returns all the bonds in the topology, in the order
// they were added.
func (T *Topology) Bonds() []*Bond {
	return T.bonds
}

// Neighbors returns the indexes of the atoms bonded to the
// atom with index i.
func (T *Topology) Neighbors(i int) []int {
	at := T.Atom(i)
	ret := make([]int, 0, len(at.Bonds))
	for _, b := range at.Bonds {
		ret = append(ret, b.Cross(at).index)
	}
	return ret
}

// RemoveBond removes b from the topology and from both its atoms.
func (T *Topology) RemoveBond(b *Bond) error {
	lenb1 := len(b.At1.Bonds)
	lenb2 := len(b.At2.Bonds)
	b.At1.Bonds = takefromslice(b.At1.Bonds, b.Index)
	b.At2.Bonds = takefromslice(b.At2.Bonds, b.Index)
	if len(b.At1.Bonds) == lenb1 || len(b.At2.Bonds) == lenb2 {
		err := new(CError)
		err.msg = fmt.Sprintf("Failed to remove bond Index:%d between atoms %d and %d", b.Index, b.At1.index, b.At2.index)
		err.Decorate("RemoveBond")
		return err
	}
	T.bonds = takefromslice(T.bonds, b.Index)
	//keeps indexes consistent with positions
	for k, v := range T.bonds {
		v.Index = k
	}
	return nil
}
