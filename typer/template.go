/*
 * template.go, part of gochemff.
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
	chem "github.com/rmera/gochemff"
	"github.com/rmera/gochemff/isomorph"
)

// Template is a residue with everything that typing copies to the residues
// it matches: types, charges, atom names, pseudo particles and tuple lists.
// Atoms with atomic number 0 are pseudo particles. Atoms with atomic number
// -1 stand for the atom of a neighboring residue that an external bond
// reaches. A Template must not be modified once it is in a Registry.
type Template struct {
	*TypedSystem
	Name string
}

// NewTemplate returns an empty template for residues called name.
func NewTemplate(name string) *Template {
	return &Template{TypedSystem: NewTypedSystem(nil), Name: name}
}

// AddAtom appends at to the template, with the given types, and returns its
// index.
func (T *Template) AddAtom(at *chem.Atom, btype, nbtype, pset string) int {
	at.MolName = T.Name
	i := T.Top.AddAtom(at)
	T.SetTypes(i, btype, nbtype, pset)
	return i
}

// AddBond bonds atoms i and j of the template.
func (T *Template) AddBond(i, j int, order float64, aromatic bool) error {
	b, err := T.Top.AddBond(i, j, order)
	if err != nil {
		return chem.Decorate(err, "Template.AddBond")
	}
	b.Aromatic = aromatic
	return nil
}

// Formula returns the chemical formula of the real atoms of the template.
func (T *Template) Formula() string {
	anums := make([]int, 0, T.Top.Len())
	for _, at := range T.Top.Atoms {
		anums = append(anums, at.AtomicNumber)
	}
	return chem.Formula(anums)
}

func edgeLabel(b *chem.Bond, bondOrders bool) int {
	if bondOrders {
		return b.IntOrder()
	}
	return 0
}

func mustEdge(g *isomorph.Dense, i, j, label int) {
	if err := g.AddEdge(i, j, label); err != nil {
		panic(err.Error())
	}
}

// graph returns the bond graph of the template, leaving pseudo particles out,
// and the template atom behind each node.
func (T *Template) graph(bondOrders bool) (*isomorph.Dense, []int) {
	g := isomorph.NewDense()
	nodes := make([]int, 0, T.Top.Len())
	idx := make(map[int]int, T.Top.Len())
	for i, at := range T.Top.Atoms {
		if at.Pseudo() {
			continue
		}
		idx[i] = g.AddNode(at.AtomicNumber)
		nodes = append(nodes, i)
	}
	for _, b := range T.Top.Bonds() {
		n1, ok1 := idx[b.At1.Index()]
		n2, ok2 := idx[b.At2.Index()]
		if ok1 && ok2 {
			mustEdge(g, n1, n2, edgeLabel(b, bondOrders))
		}
	}
	return g, nodes
}

// residueGraph returns the bond graph of the given residue atoms of top, and
// the atom of top behind each node. Pseudo particles are left out, and every
// bond to an atom outside the residue adds a placeholder node (label -1)
// that stands for the external atom.
func residueGraph(top chem.Bonder, residue []int, bondOrders bool) (*isomorph.Dense, []int) {
	g := isomorph.NewDense()
	nodes := make([]int, 0, len(residue)+2)
	idx := make(map[int]int, len(residue))
	for _, i := range residue {
		if top.Atom(i).AtomicNumber > 0 {
			idx[i] = g.AddNode(top.Atom(i).AtomicNumber)
			nodes = append(nodes, i)
		}
	}
	for _, i := range residue {
		n1, ok := idx[i]
		if !ok {
			continue
		}
		for _, j := range top.Neighbors(i) {
			if top.Atom(j).AtomicNumber <= 0 {
				continue
			}
			b := top.Bond(i, j)
			if n2, in := idx[j]; in {
				if i < j {
					mustEdge(g, n1, n2, edgeLabel(b, bondOrders))
				}
				continue
			}
			if inResidue(residue, j) {
				continue
			}
			ph := g.AddNode(-1)
			nodes = append(nodes, j)
			mustEdge(g, n1, ph, edgeLabel(b, bondOrders))
		}
	}
	return g, nodes
}

func inResidue(residue []int, i int) bool {
	for _, v := range residue {
		if v == i {
			return true
		}
	}
	return false
}
