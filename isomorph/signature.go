/*
 * signature.go, part of gochemff.
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

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"
)

// rounds of label refinement. Residues are small, 3 rounds see
// the neighborhood of each atom up to its third neighbors.
const wlRounds = 3

// Signature returns a string that is equal for isomorphic graphs. Different
// graphs can share a signature, so it is only useful to discard candidates.
// It is computed by Weisfeiler-Lehman refinement of the node labels.
func Signature(g Graph) string {
	n := g.Order()
	colors := make([]uint64, n)
	for i := range colors {
		colors[i] = hashInts(int64(g.Label(i)), int64(len(g.Neighbors(i))))
	}
	next := make([]uint64, n)
	for r := 0; r < wlRounds; r++ {
		for i := 0; i < n; i++ {
			nb := make([]uint64, 0, len(g.Neighbors(i)))
			for _, j := range g.Neighbors(i) {
				nb = append(nb, hashInts(int64(g.EdgeLabel(i, j)), int64(colors[j])))
			}
			sort.Slice(nb, func(a, b int) bool { return nb[a] < nb[b] })
			vals := make([]int64, 0, len(nb)+1)
			vals = append(vals, int64(colors[i]))
			for _, v := range nb {
				vals = append(vals, int64(v))
			}
			next[i] = hashInts(vals...)
		}
		colors, next = next, colors
	}
	sorted := make([]uint64, n)
	copy(sorted, colors)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a] < sorted[b] })
	vals := make([]int64, 0, n)
	for _, v := range sorted {
		vals = append(vals, int64(v))
	}
	return fmt.Sprintf("%d:%d:%016x", n, size(g), hashInts(vals...))
}

func hashInts(v ...int64) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 8)
	for _, x := range v {
		binary.LittleEndian.PutUint64(buf, uint64(x))
		h.Write(buf)
	}
	return h.Sum64()
}
