/*
 * tuples.go, part of gochemff.
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
	"sort"

	chem "github.com/rmera/gochemff"
)

// BondsAnglesDihedrals returns the bonds, angles and dihedrals among the
// given atoms of top. Bonds involving a pseudo particle are returned apart,
// with the real atom first when there is one. Angles and dihedrals only
// include real atoms. Every list is sorted.
func BondsAnglesDihedrals(top *chem.Topology, atoms []int) (bonds, pseudoBonds, angles, dihedrals [][]int) {
	in := make(map[int]bool, len(atoms))
	for _, v := range atoms {
		in[v] = true
	}
	sorted := make([]int, 0, len(in))
	for v := range in {
		sorted = append(sorted, v)
	}
	sort.Ints(sorted)
	//real neighbors of each real atom, in the set
	isReal := func(i int) bool { return !top.Atom(i).Pseudo() }
	neigh := make(map[int][]int, len(sorted))
	for _, i := range sorted {
		for _, j := range top.Neighbors(i) {
			if !in[j] {
				continue
			}
			if i < j {
				switch {
				case isReal(i) && isReal(j):
					bonds = append(bonds, []int{i, j})
				case isReal(j):
					pseudoBonds = append(pseudoBonds, []int{j, i})
				default:
					pseudoBonds = append(pseudoBonds, []int{i, j})
				}
			}
			if isReal(i) && isReal(j) {
				neigh[i] = append(neigh[i], j)
			}
		}
		sort.Ints(neigh[i])
	}
	for _, b := range sorted {
		nb := neigh[b]
		for x := 0; x < len(nb); x++ {
			for y := x + 1; y < len(nb); y++ {
				angles = append(angles, []int{nb[x], b, nb[y]})
			}
		}
	}
	for _, bond := range bonds {
		b, c := bond[0], bond[1]
		for _, a := range neigh[b] {
			if a == c {
				continue
			}
			for _, d := range neigh[c] {
				if d == b || d == a {
					continue
				}
				dihedrals = append(dihedrals, []int{a, b, c, d})
			}
		}
	}
	for _, l := range [][][]int{bonds, pseudoBonds, angles, dihedrals} {
		sortTuples(l)
	}
	return bonds, pseudoBonds, angles, dihedrals
}

func sortTuples(l [][]int) {
	sort.Slice(l, func(i, j int) bool {
		a, b := l[i], l[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
}
