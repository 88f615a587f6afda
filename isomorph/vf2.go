/*
 * vf2.go, part of gochemff.
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

package isomorph

import "sort"

// Find looks for an isomorphism between pattern and target that
// preserves node labels, edge labels and adjacency. If one exists, it returns
// true and a slice m such that m[i] is the target node for pattern node i.
// The search is a VF2-style backtracking, with label and degree pruning, that
// matches the pattern nodes in an order that starts from the rarest label and
// then keeps the matched part connected.
func Find(pattern, target Graph) ([]int, bool) {
	n := pattern.Order()
	if n != target.Order() || size(pattern) != size(target) {
		return nil, false
	}
	if !sameInvariants(pattern, target) {
		return nil, false
	}
	s := &state{
		p:     pattern,
		t:     target,
		core1: filled(n, -1),
		core2: filled(n, -1),
		order: matchOrder(pattern),
	}
	if !s.match(0) {
		return nil, false
	}
	return s.core1, true
}

// Isomorphic is Find without the mapping.
func Isomorphic(a, b Graph) bool {
	_, ok := Find(a, b)
	return ok
}

func filled(n, v int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = v
	}
	return r
}

type nodeClass struct {
	label, degree int
}

// sameInvariants compares the multisets of (label, degree) of both graphs.
func sameInvariants(a, b Graph) bool {
	count := make(map[nodeClass]int)
	for i := 0; i < a.Order(); i++ {
		count[nodeClass{a.Label(i), len(a.Neighbors(i))}]++
	}
	for i := 0; i < b.Order(); i++ {
		c := nodeClass{b.Label(i), len(b.Neighbors(i))}
		count[c]--
		if count[c] < 0 {
			return false
		}
	}
	return true
}

// matchOrder returns the pattern nodes in the order they will be matched.
// Each connected component starts at its node with the rarest label (highest
// degree breaks ties), and continues breadth-first.
func matchOrder(g Graph) []int {
	n := g.Order()
	freq := make(map[int]int)
	for i := 0; i < n; i++ {
		freq[g.Label(i)]++
	}
	seeds := make([]int, n)
	for i := range seeds {
		seeds[i] = i
	}
	sort.SliceStable(seeds, func(i, j int) bool {
		a, b := seeds[i], seeds[j]
		if freq[g.Label(a)] != freq[g.Label(b)] {
			return freq[g.Label(a)] < freq[g.Label(b)]
		}
		return len(g.Neighbors(a)) > len(g.Neighbors(b))
	})
	seen := make([]bool, n)
	order := make([]int, 0, n)
	for _, s := range seeds {
		if seen[s] {
			continue
		}
		seen[s] = true
		queue := []int{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			order = append(order, v)
			for _, w := range g.Neighbors(v) {
				if !seen[w] {
					seen[w] = true
					queue = append(queue, w)
				}
			}
		}
	}
	return order
}

type state struct {
	p, t  Graph
	core1 []int //pattern to target
	core2 []int //target to pattern
	order []int
}

func (s *state) match(depth int) bool {
	if depth == len(s.order) {
		return true
	}
	u := s.order[depth]
	for _, v := range s.candidates(u) {
		if !s.feasible(u, v) {
			continue
		}
		s.core1[u] = v
		s.core2[v] = u
		if s.match(depth + 1) {
			return true
		}
		s.core1[u] = -1
		s.core2[v] = -1
	}
	return false
}

// candidates are the free neighbors of the image of a matched neighbor of u,
// or all free target nodes if u has no matched neighbor.
func (s *state) candidates(u int) []int {
	for _, w := range s.p.Neighbors(u) {
		if img := s.core1[w]; img >= 0 {
			ret := make([]int, 0, 4)
			for _, v := range s.t.Neighbors(img) {
				if s.core2[v] < 0 {
					ret = append(ret, v)
				}
			}
			return ret
		}
	}
	ret := make([]int, 0, s.t.Order())
	for v := 0; v < s.t.Order(); v++ {
		if s.core2[v] < 0 {
			ret = append(ret, v)
		}
	}
	return ret
}

func (s *state) feasible(u, v int) bool {
	if s.p.Label(u) != s.t.Label(v) || len(s.p.Neighbors(u)) != len(s.t.Neighbors(v)) {
		return false
	}
	mapped := 0
	for _, w := range s.p.Neighbors(u) {
		img := s.core1[w]
		if img < 0 {
			continue
		}
		mapped++
		if !adjacent(s.t, v, img) || s.p.EdgeLabel(u, w) != s.t.EdgeLabel(v, img) {
			return false
		}
	}
	//v can't be bonded to matched nodes that u isn't bonded to.
	tmapped := 0
	for _, x := range s.t.Neighbors(v) {
		if s.core2[x] >= 0 {
			tmapped++
		}
	}
	return mapped == tmapped
}
