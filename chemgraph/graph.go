/*
 * graph.go, part of gochemff.
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

// Package chemgraph puts a chem.Topology behind the gonum graph interfaces,
// and uses them to split a system into its connected fragments.
package chemgraph

import (
	"sort"

	chem "github.com/rmera/gochemff"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Atom is a graph node. Its ID is the index of the atom in its topology.
type Atom struct {
	*chem.Atom
}

func (A *Atom) ID() int64 {
	return int64(A.Index())
}

// Bond is an undirected graph edge.
type Bond struct {
	*chem.Bond
	At1, At2 *Atom
}

func (B *Bond) From() graph.Node {
	return B.At1
}

func (B *Bond) To() graph.Node {
	return B.At2
}

// ReversedEdge returns a new edge over the same bond, with the ends
// swapped. B is not modified.
func (B *Bond) ReversedEdge() graph.Edge {
	return &Bond{Bond: B.Bond, At1: B.At2, At2: B.At1}
}

// Topology is the bond graph of a chem.Topology, or of a part of it.
type Topology struct {
	*chem.Topology
	*simple.UndirectedGraph
}

// TopologyFromChem builds the bond graph of top, with only the atoms for which
// keep returns true (all of them if keep is nil). Bonds to atoms left out are
// ignored.
func TopologyFromChem(top *chem.Topology, keep func(*chem.Atom) bool) *Topology {
	g := simple.NewUndirectedGraph()
	nodes := make(map[int]*Atom, top.Len())
	for _, at := range top.Atoms {
		if keep != nil && !keep(at) {
			continue
		}
		n := &Atom{Atom: at}
		nodes[at.Index()] = n
		g.AddNode(n)
	}
	for _, b := range top.Bonds() {
		at1, ok1 := nodes[b.At1.Index()]
		at2, ok2 := nodes[b.At2.Index()]
		if !ok1 || !ok2 {
			continue
		}
		g.SetEdge(&Bond{Bond: b, At1: at1, At2: at2})
	}
	return &Topology{Topology: top, UndirectedGraph: g}
}

// Fragments returns the connected components of the graph as lists of atom
// indexes. Indexes in each fragment are sorted, and fragments are sorted by
// their first index.
func (T *Topology) Fragments() [][]int {
	cc := topo.ConnectedComponents(T.UndirectedGraph)
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		f := make([]int, 0, len(c))
		for _, n := range c {
			f = append(f, int(n.ID()))
		}
		sort.Ints(f)
		ret = append(ret, f)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

// Fragments returns the connected fragments of top. Pseudo particles are
// included, and belong to the fragment of the atoms they are bonded to.
func Fragments(top *chem.Topology) [][]int {
	return TopologyFromChem(top, nil).Fragments()
}
