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

// Package isomorph finds isomorphisms between small graphs with labeled
// nodes and edges, such as the bond graphs of residues.
package isomorph

import "fmt"

// Graph is an undirected graph with integer labels on nodes and edges.
// Nodes are numbered from 0 to Order()-1.
type Graph interface {
	Order() int
	Label(i int) int
	Neighbors(i int) []int
	//EdgeLabel is only called for adjacent nodes.
	EdgeLabel(i, j int) int
}

// Dense is a simple Graph implementation.
type Dense struct {
	labels []int
	adj    [][]int
	edges  map[[2]int]int
	nedges int
}

func NewDense() *Dense {
	return &Dense{edges: make(map[[2]int]int)}
}

func edgeKey(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}
	return [2]int{i, j}
}

// AddNode adds a node with the given label and returns its index.
func (D *Dense) AddNode(label int) int {
	D.labels = append(D.labels, label)
	D.adj = append(D.adj, nil)
	return len(D.labels) - 1
}

// AddEdge joins nodes i and j with an edge with the given label.
// Adding an edge twice, or a loop, is an error.
func (D *Dense) AddEdge(i, j, label int) error {
	if i == j || i < 0 || j < 0 || i >= len(D.labels) || j >= len(D.labels) {
		return fmt.Errorf("isomorph: invalid edge %d-%d in a graph of order %d", i, j, len(D.labels))
	}
	k := edgeKey(i, j)
	if _, ok := D.edges[k]; ok {
		return fmt.Errorf("isomorph: repeated edge %d-%d", i, j)
	}
	D.edges[k] = label
	D.adj[i] = append(D.adj[i], j)
	D.adj[j] = append(D.adj[j], i)
	D.nedges++
	return nil
}

func (D *Dense) Order() int             { return len(D.labels) }
func (D *Dense) Label(i int) int        { return D.labels[i] }
func (D *Dense) Neighbors(i int) []int  { return D.adj[i] }
func (D *Dense) Size() int              { return D.nedges }
func (D *Dense) EdgeLabel(i, j int) int { return D.edges[edgeKey(i, j)] }

// HasEdge returns true if i and j are adjacent.
func (D *Dense) HasEdge(i, j int) bool {
	_, ok := D.edges[edgeKey(i, j)]
	return ok
}

func size(g Graph) int {
	n := 0
	for i := 0; i < g.Order(); i++ {
		n += len(g.Neighbors(i))
	}
	return n / 2
}

func adjacent(g Graph, i, j int) bool {
	for _, v := range g.Neighbors(i) {
		if v == j {
			return true
		}
	}
	return false
}
