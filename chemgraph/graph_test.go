package chemgraph

import (
	"testing"

	chem "github.com/rmera/gochemff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragments(Te *testing.T) {
	top := chem.NewTopology(0, 0)
	for _, v := range []int{6, 8, 1, 0, 11, 17, 1} {
		top.AddAtom(&chem.Atom{AtomicNumber: v})
	}
	for _, b := range [][2]int{{0, 1}, {2, 0}, {3, 1}, {6, 5}} {
		_, err := top.AddBond(b[0], b[1], 1)
		require.NoError(Te, err)
	}
	frags := Fragments(top)
	assert.Equal(Te, [][]int{{0, 1, 2, 3}, {4}, {5, 6}}, frags)

	noPseudo := TopologyFromChem(top, func(a *chem.Atom) bool { return !a.Pseudo() })
	assert.Equal(Te, [][]int{{0, 1, 2}, {4}, {5, 6}}, noPseudo.Fragments())
	assert.True(Te, noPseudo.HasEdgeBetween(0, 2))
	assert.False(Te, noPseudo.HasEdgeBetween(1, 3))
	assert.Equal(Te, 6, noPseudo.Nodes().Len())
}

func TestReversedEdge(Te *testing.T) {
	top := chem.NewTopology(0, 0)
	top.AddAtom(&chem.Atom{AtomicNumber: 6})
	top.AddAtom(&chem.Atom{AtomicNumber: 8})
	_, err := top.AddBond(0, 1, 2)
	require.NoError(Te, err)
	G := TopologyFromChem(top, nil)
	e := G.Edge(0, 1)
	require.NotNil(Te, e)
	r := e.ReversedEdge()
	assert.Equal(Te, int64(1), r.From().ID())
	assert.Equal(Te, int64(0), r.To().ID())
	assert.Equal(Te, 2.0, r.(*Bond).Order)
	//the edge stored in the graph keeps its direction, also when the
	//graph reverses it for a lookup.
	assert.Equal(Te, int64(0), e.From().ID())
	assert.Equal(Te, int64(1), G.Edge(1, 0).From().ID())
	assert.Equal(Te, int64(0), G.Edge(0, 1).From().ID())
	assert.NotSame(Te, e, r)
}
