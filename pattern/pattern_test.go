package pattern

import (
	"testing"

	chem "github.com/rmera/gochemff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a tiny typed system: btypes, nbtypes and psets by atom, bonds on a chem.Topology
type testSys struct {
	top    *chem.Topology
	btype  []string
	nbtype []string
	pset   []string
}

func (s *testSys) BType(i int) string       { return s.btype[i] }
func (s *testSys) NBType(i int) string      { return s.nbtype[i] }
func (s *testSys) PSet(i int) string        { return s.pset[i] }
func (s *testSys) Bond(i, j int) *chem.Bond { return s.top.Bond(i, j) }

func newTestSys(btypes ...string) *testSys {
	top := chem.NewTopology(0, 0)
	s := &testSys{top: top}
	for _, v := range btypes {
		top.AddAtom(&chem.Atom{Name: v, AtomicNumber: 6, MolID: 1})
		s.btype = append(s.btype, v)
		s.nbtype = append(s.nbtype, "nb_"+v)
		s.pset = append(s.pset, "")
	}
	return s
}

func (s *testSys) bond(Te *testing.T, i, j int, order float64, aromatic bool) {
	b, err := s.top.AddBond(i, j, order)
	require.NoError(Te, err)
	b.Aromatic = aromatic
}

func TestTypeToPattern(Te *testing.T) {
	p := Default{}.Parse("a - b ~ c = dstuff-stuff # e")
	assert.Equal(Te, []string{"a", "b", "c", "dstuff-stuff", "e"}, p.Atoms)
	assert.Equal(Te, []string{"-", "~", "=", "#"}, p.Bonds)
	assert.Empty(Te, p.Flags)
	assert.NoError(Te, p.Validate())

	q := Pseudo{}.Parse("a - b ~ c = dstuff-stuff # e f")
	assert.Equal(Te, p.Atoms, q.Atoms)
	assert.Equal(Te, p.Bonds, q.Bonds)
	assert.Equal(Te, []string{"f"}, q.Flags)

	assert.Empty(Te, Pseudo{}.Parse("   ").Atoms)
}

func TestValidate(Te *testing.T) {
	p := New([]string{"a", "b", "c"}, []string{"-"}, nil)
	err := p.Validate()
	require.Error(Te, err)
	assert.ErrorIs(Te, err, chem.ErrMalformedPattern)
	assert.NoError(Te, New([]string{"a", "b"}, nil, nil).Validate())
	assert.Error(Te, New([]string{"a", "b"}, []string{"?"}, nil).Validate())
}

func TestEqualAndString(Te *testing.T) {
	p := New([]string{"a", "b"}, []string{"-"}, []string{"f"})
	q := p.Copy()
	assert.True(Te, p.Equal(q))
	q.Atoms[0] = "z"
	assert.False(Te, p.Equal(q))
	assert.Equal(Te, "a", p.Atoms[0], "Copy must not share memory")
	assert.Equal(Te, "(a, b, -, f)", p.String())
	assert.True(Te, p.Less(q))
	assert.False(Te, q.Less(p))
	assert.NotEqual(Te, New([]string{"a,b"}, nil, nil).Key(), New([]string{"a", "b"}, nil, nil).Key())
}

func TestPermutations(Te *testing.T) {
	p := New([]string{"a", "b", "c", "d"}, []string{"x", "y", "z"}, []string{"f"})
	assert.True(Te, Identity.Permute(p).Equal(p))
	r := Reverse.Permute(p)
	assert.Equal(Te, []string{"d", "c", "b", "a"}, r.Atoms)
	assert.Equal(Te, []string{"z", "y", "x"}, r.Bonds)
	assert.Equal(Te, []string{"f"}, r.Flags)
	assert.True(Te, Reverse.Permute(r).Equal(p))
	assert.Equal(Te, []string{"a", "b", "c", "d"}, p.Atoms, "the argument must not change")

	imp2 := Improper2.Permute(p)
	assert.Equal(Te, []string{"a", "c", "b", "d"}, imp2.Atoms)
	assert.Equal(Te, []string{"y", "x", "z"}, imp2.Bonds)

	//the six permutations are all different, and each bond stays with its atom.
	seen := make(map[string]bool)
	tied := map[string]string{"b": "x", "c": "y", "d": "z"}
	for _, perm := range Impropers() {
		q := perm.Permute(p)
		assert.Equal(Te, "a", q.Atoms[0], perm.Name())
		for i := 1; i < 4; i++ {
			assert.Equal(Te, tied[q.Atoms[i]], q.Bonds[i-1], perm.Name())
		}
		seen[q.String()] = true
	}
	assert.Len(Te, seen, 6)

	//bonds are reordered only if there are 3 of them.
	nob := New([]string{"a", "b", "c", "d"}, nil, nil)
	assert.Equal(Te, []string{"a", "d", "c", "b"}, Improper5.Permute(nob).Atoms)
	assert.Empty(Te, Improper5.Permute(nob).Bonds)
	short := New([]string{"a", "b"}, []string{"-"}, nil)
	assert.True(Te, Improper3.Permute(short).Equal(short))
}

func TestBuilders(Te *testing.T) {
	s := newTestSys("c1", "c2", "c3", "c4")
	s.bond(Te, 0, 1, 1, false)
	s.bond(Te, 1, 2, 2, false)
	s.bond(Te, 0, 3, 1.5, true)
	s.bond(Te, 1, 3, 0, false)

	p := Bonded{}.Build(s, []int{0, 1, 2})
	assert.Equal(Te, []string{"c1", "c2", "c3"}, p.Atoms)
	assert.Equal(Te, []string{"-", "="}, p.Bonds)

	p = BondToFirst{}.Build(s, []int{0, 1, 3})
	assert.Equal(Te, []string{"-", ":"}, p.Bonds)

	p = NBType{}.Build(s, []int{2, 3})
	assert.Equal(Te, []string{"nb_c3", "nb_c4"}, p.Atoms)
	assert.Empty(Te, p.Bonds)

	p = BType{}.Build(s, []int{1, 3})
	assert.Equal(Te, []string{"c2", "c4"}, p.Atoms)
	assert.Equal(Te, []string{"~"}, Bonded{}.Build(s, []int{1, 3}).Bonds)

	s.pset[3] = "pset0"
	p = PseudoBType{}.Build(s, []int{3, 0, 1})
	assert.Equal(Te, []string{"c1", "c2"}, p.Atoms)
	assert.Equal(Te, []string{"pset0"}, p.Flags)

	p = PseudoBondToFirst{}.Build(s, []int{3, 1, 0, 2})
	assert.Equal(Te, []string{"c2", "c1", "c3"}, p.Atoms)
	assert.Equal(Te, []string{"-", "="}, p.Bonds)

	p = PseudoBondToSecond{}.Build(s, []int{3, 0, 1, 2})
	assert.Equal(Te, []string{"-", "="}, p.Bonds)

	assert.Panics(Te, func() { Bonded{}.Build(s, []int{0, 2}) })
}

func TestCatalog(Te *testing.T) {
	C := NewCatalog()
	perms, err := C.Permutations("identity", "reverse")
	require.NoError(Te, err)
	assert.Equal(Te, "reverse", perms[1].Name())
	_, err = C.Permutations("nope")
	assert.Error(Te, err)

	swap := PermutationFunc("swap01", func(P Pattern) Pattern {
		P.Atoms[0], P.Atoms[1] = P.Atoms[1], P.Atoms[0]
		return P
	})
	require.NoError(Te, C.RegisterPermutation(swap))
	assert.Error(Te, C.RegisterPermutation(swap))
	assert.Contains(Te, C.PermutationNames(), "swap01")

	p := New([]string{"a", "b"}, nil, nil)
	assert.Equal(Te, []string{"b", "a"}, swap.Permute(p).Atoms)
	assert.Equal(Te, []string{"a", "b"}, p.Atoms)

	b, err := C.SystemToPattern("bond_to_first")
	require.NoError(Te, err)
	assert.Equal(Te, BondToFirst{}.Name(), b.Name())
	t, err := C.TypeToPattern("pseudo")
	require.NoError(Te, err)
	assert.Equal(Te, []string{"q"}, t.Parse("a b q").Flags)
	assert.Error(Te, C.RegisterTypeToPattern(Default{}))
	assert.NoError(Te, C.RegisterSystemToPattern(SystemToPatternFunc("first_only", func(s System, atoms []int) Pattern {
		return New([]string{s.BType(atoms[0])}, nil, nil)
	})))
}
