package isomorph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type edge struct{ i, j, l int }

func build(Te *testing.T, labels []int, edges []edge) *Dense {
	g := NewDense()
	for _, v := range labels {
		g.AddNode(v)
	}
	for _, e := range edges {
		require.NoError(Te, g.AddEdge(e.i, e.j, e.l))
	}
	return g
}

// checks that m is really an isomorphism from a to b.
func checkMap(Te *testing.T, a, b Graph, m []int) {
	require.Len(Te, m, a.Order())
	used := make(map[int]bool)
	for i, v := range m {
		assert.False(Te, used[v])
		used[v] = true
		assert.Equal(Te, a.Label(i), b.Label(v))
		for _, j := range a.Neighbors(i) {
			assert.True(Te, adjacent(b, v, m[j]))
			assert.Equal(Te, a.EdgeLabel(i, j), b.EdgeLabel(v, m[j]))
		}
	}
}

// methanol-like graph: C bonded to O and 3 H, O bonded to H.
var methanol = []edge{{0, 1, 1}, {0, 2, 1}, {0, 3, 1}, {0, 4, 1}, {1, 5, 1}}

func TestFind(Te *testing.T) {
	a := build(Te, []int{6, 8, 1, 1, 1, 1}, methanol)
	//same molecule, atoms in another order.
	b := build(Te, []int{1, 1, 8, 1, 6, 1}, []edge{{4, 2, 1}, {4, 0, 1}, {4, 1, 1}, {4, 3, 1}, {2, 5, 1}})
	m, ok := Find(a, b)
	require.True(Te, ok)
	checkMap(Te, a, b, m)
	assert.Equal(Te, 4, m[0])
	assert.Equal(Te, 2, m[1])
	assert.Equal(Te, 5, m[5])
	assert.Equal(Te, Signature(a), Signature(b))
	assert.True(Te, Isomorphic(b, a))

	//H moved from O to C: same formula, different graph.
	c := build(Te, []int{6, 8, 1, 1, 1, 1}, []edge{{0, 1, 1}, {0, 2, 1}, {0, 3, 1}, {0, 4, 1}, {0, 5, 1}})
	assert.False(Te, Isomorphic(a, c))

	//edge labels count
	d := build(Te, []int{6, 8, 1, 1, 1, 1}, []edge{{0, 1, 2}, {0, 2, 1}, {0, 3, 1}, {0, 4, 1}, {1, 5, 1}})
	assert.False(Te, Isomorphic(a, d))
	assert.NotEqual(Te, Signature(a), Signature(d))

	//different node labels
	e := build(Te, []int{6, 7, 1, 1, 1, 1}, methanol)
	assert.False(Te, Isomorphic(a, e))

	//different order
	f := build(Te, []int{6, 8, 1, 1, 1}, methanol[:4])
	assert.False(Te, Isomorphic(a, f))

	//empty graphs are isomorphic
	m, ok = Find(NewDense(), NewDense())
	assert.True(Te, ok)
	assert.Empty(Te, m)
}

func TestSymmetric(Te *testing.T) {
	//two 6-rings and a 12-ring: same labels and degrees, not isomorphic
	rings := make([]edge, 0, 12)
	for i := 0; i < 6; i++ {
		rings = append(rings, edge{i, (i + 1) % 6, 1})
		rings = append(rings, edge{6 + i, 6 + (i+1)%6, 1})
	}
	big := make([]edge, 0, 12)
	for i := 0; i < 12; i++ {
		big = append(big, edge{i, (i + 1) % 12, 1})
	}
	labels := make([]int, 12)
	for i := range labels {
		labels[i] = 6
	}
	a := build(Te, labels, rings)
	b := build(Te, labels, big)
	assert.False(Te, Isomorphic(a, b))
	m, ok := Find(a, a)
	require.True(Te, ok)
	checkMap(Te, a, a, m)

	//the external placeholders (-1) only match each other
	g := build(Te, []int{-1, 6, 6, -1}, []edge{{0, 1, 0}, {1, 2, 0}, {2, 3, 0}})
	h := build(Te, []int{6, -1, -1, 6}, []edge{{1, 0, 0}, {0, 3, 0}, {3, 2, 0}})
	m, ok = Find(g, h)
	require.True(Te, ok)
	checkMap(Te, g, h, m)
}

func TestDense(Te *testing.T) {
	g := NewDense()
	g.AddNode(1)
	g.AddNode(2)
	assert.Error(Te, g.AddEdge(0, 0, 1))
	assert.Error(Te, g.AddEdge(0, 5, 1))
	require.NoError(Te, g.AddEdge(1, 0, 3))
	assert.Error(Te, g.AddEdge(0, 1, 3))
	assert.True(Te, g.HasEdge(0, 1))
	assert.Equal(Te, 3, g.EdgeLabel(0, 1))
	assert.Equal(Te, 1, g.Size())
}
