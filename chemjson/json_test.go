package chemjson

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/rmera/gochemff/forcefield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJob = "testdata/formaldehyde.json"

func TestReadJob(Te *testing.T) {
	J, err := ReadJob(testJob)
	require.NoError(Te, err)
	assert.Equal(Te, "mini", J.Name)
	assert.Len(Te, J.Molecule.Atoms, 4)
	assert.Len(Te, J.Templates, 1)
	assert.Len(Te, J.Tables, 6)
	assert.Equal(Te, [][2]string{{"hc", "h"}}, J.Hierarchy)

	sys, err := J.System()
	require.NoError(Te, err)
	assert.Equal(Te, 4, sys.Top.Len())
	assert.Len(Te, sys.Top.Bonds(), 3)
	assert.Equal(Te, 2.0, sys.Top.Bond(0, 1).Order)

	//the atomic number defaults to that of the symbol, but an explicit 0 is a pseudo.
	J, err = DecodeJob(strings.NewReader(`{"molecule": {"atoms": [{"symbol": "N"}, {"symbol": "N", "anum": 0}]}}`))
	require.NoError(Te, err)
	sys, err = J.System()
	require.NoError(Te, err)
	assert.Equal(Te, 7, sys.Top.Atom(0).AtomicNumber)
	assert.True(Te, sys.Top.Atom(1).Pseudo())
}

func TestReadJobGzip(Te *testing.T) {
	raw, err := os.ReadFile(testJob)
	require.NoError(Te, err)
	name := filepath.Join(Te.TempDir(), "job.json.gz")
	f, err := os.Create(name)
	require.NoError(Te, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write(raw)
	require.NoError(Te, err)
	require.NoError(Te, gz.Close())
	require.NoError(Te, f.Close())

	J, err := ReadJob(name)
	require.NoError(Te, err)
	assert.Equal(Te, "mini", J.Name)

	//a plain file with a .gz name is not a gzip stream.
	bad := filepath.Join(Te.TempDir(), "bad.json.gz")
	require.NoError(Te, os.WriteFile(bad, raw, 0o644))
	_, err = ReadJob(bad)
	assert.Error(Te, err)
}

func TestDecodeJobErrors(Te *testing.T) {
	_, err := DecodeJob(strings.NewReader(`{"name": "x", "nope": 1}`))
	assert.Error(Te, err)
	_, err = DecodeJob(strings.NewReader(`{"name": `))
	assert.Error(Te, err)

	J, err := DecodeJob(strings.NewReader(`{"molecule": {"atoms": [{"symbol": "Xx"}]}}`))
	require.NoError(Te, err)
	_, err = J.System()
	assert.ErrorContains(Te, err, "unknown symbol")

	J, err = DecodeJob(strings.NewReader(`{"molecule": {"atoms": [{"anum": 6}], "bonds": [{"i": 0, "j": 3, "order": 1}]}}`))
	require.NoError(Te, err)
	_, err = J.System()
	assert.ErrorContains(Te, err, "out of range")

	J, err = DecodeJob(strings.NewReader(`{"templates": [{"name": "T", "atoms": [{"anum": 6}, {"anum": 1}], "bonds": [{"i": 0, "j": 1, "order": 1}], "impropers": [[0, 1, 0]]}]}`))
	require.NoError(Te, err)
	_, err = J.Forcefield(forcefield.Rules{}, false, false)
	assert.ErrorContains(Te, err, "should have 4 atoms")
}

func TestForcefield(Te *testing.T) {
	J, err := ReadJob(testJob)
	require.NoError(Te, err)
	ff, err := J.Forcefield(forcefield.Rules{Fatal: true, Plugins: []string{"bonds"}}, true, true)
	require.NoError(Te, err)
	assert.Equal(Te, "mini", ff.Name)
	assert.Equal(Te, []string{"formaldehyde with a lone pair"}, ff.Rules.Info)
	assert.True(Te, ff.Templates.MatchBondOrder())
	assert.Equal(Te, 1, ff.Templates.Len())
	require.NotNil(Te, ff.Hierarchy)
	assert.Equal(Te, []string{"h", "hc"}, ff.Hierarchy.Ancestors("hc"))
	vdw, ok := ff.Table("vdw1")
	require.True(Te, ok)
	assert.Len(Te, vdw.Rows, 4)

	tpls := ff.Templates.FindByName("FOR")
	require.Len(Te, tpls, 1)
	tpl := tpls[0]
	assert.Equal(Te, [][]int{{1, 0, 2, 3}}, tpl.Impropers())
	require.Len(Te, tpl.PseudoTypes(), 1)
	assert.Equal(Te, [][]int{{4, 0, 1}}, tpl.PseudoTypes()[0].Sites)

	sys, err := J.System()
	require.NoError(Te, err)
	res, err := forcefield.Parametrize(sys, ff, forcefield.Options{})
	require.NoError(Te, err)
	assert.Equal(Te, 3, res.Table("stretch_harm").Len())

	flat, err := J.Forcefield(forcefield.Rules{}, false, false)
	require.NoError(Te, err)
	assert.Nil(Te, flat.Hierarchy)
}

// an O-C7 chain, with one cmap over the whole chain.
const chainJob = `{
  "name": "chain",
  "molecule": {
    "atoms": [{"symbol": "O", "resid": 1}, {"symbol": "C", "resid": 1}, {"symbol": "C", "resid": 1}, {"symbol": "C", "resid": 1},
      {"symbol": "C", "resid": 1}, {"symbol": "C", "resid": 1}, {"symbol": "C", "resid": 1}, {"symbol": "C", "resid": 1}],
    "bonds": [{"i": 0, "j": 1, "order": 1}, {"i": 1, "j": 2, "order": 1}, {"i": 2, "j": 3, "order": 1}, {"i": 3, "j": 4, "order": 1},
      {"i": 4, "j": 5, "order": 1}, {"i": 5, "j": 6, "order": 1}, {"i": 6, "j": 7, "order": 1}]
  },
  "templates": [{
    "name": "OCT",
    "atoms": [{"name": "O1", "anum": 8, "btype": "o", "nbtype": "o"}, {"name": "C1", "anum": 6, "btype": "ct", "nbtype": "ct"},
      {"name": "C2", "anum": 6, "btype": "ct", "nbtype": "ct"}, {"name": "C3", "anum": 6, "btype": "ct", "nbtype": "ct"},
      {"name": "C4", "anum": 6, "btype": "ct", "nbtype": "ct"}, {"name": "C5", "anum": 6, "btype": "ct", "nbtype": "ct"},
      {"name": "C6", "anum": 6, "btype": "ct", "nbtype": "ct"}, {"name": "C7", "anum": 6, "btype": "ct", "nbtype": "ct"}],
    "bonds": [{"i": 0, "j": 1, "order": 1}, {"i": 1, "j": 2, "order": 1}, {"i": 2, "j": 3, "order": 1}, {"i": 3, "j": 4, "order": 1},
      {"i": 4, "j": 5, "order": 1}, {"i": 5, "j": 6, "order": 1}, {"i": 6, "j": 7, "order": 1}],
    "cmaps": [[0, 1, 2, 3, 4, 5, 6, 7]]
  }],
  "tables": [
    {"name": "cmap", "props": ["cmapid"], "rows": [{"type": "ct ct ct ct ct ct ct o", "values": [1]}]},
    {"name": "mass", "props": ["amu"], "rows": [{"type": "o", "values": [15.999]}, {"type": "ct", "values": [12.011]}]}
  ]
}`

func TestCmapJob(Te *testing.T) {
	J, err := DecodeJob(strings.NewReader(chainJob))
	require.NoError(Te, err)
	tpl, err := J.Templates[0].Template()
	require.NoError(Te, err)
	assert.Equal(Te, [][]int{{0, 1, 2, 3, 4, 5, 6, 7}}, tpl.Cmaps())

	ff, err := J.Forcefield(forcefield.Rules{Fatal: true, Plugins: []string{"cmap", "mass"}}, false, false)
	require.NoError(Te, err)
	sys, err := J.System()
	require.NoError(Te, err)
	res, err := forcefield.Parametrize(sys, ff, forcefield.Options{})
	require.NoError(Te, err)
	assert.Equal(Te, [][]int{{0, 1, 2, 3, 4, 5, 6, 7}}, sys.Cmaps())
	cmap := res.Table("torsiontorsion_cmap")
	require.NotNil(Te, cmap)
	assert.Equal(Te, []forcefield.Term{{Atoms: []int{0, 1, 2, 3, 4, 5, 6, 7}, Row: 0}}, cmap.Terms)
	assert.Equal(Te, "cmap", cmap.Params)
	assert.Equal(Te, 15.999, sys.Top.Atom(0).Mass)
	assert.Equal(Te, 12.011, sys.Top.Atom(7).Mass)

	//cmaps have 8 atoms, anything else is rejected before typing.
	J.Templates[0].Cmaps = [][]int{{0, 1, 2, 3, 4}}
	_, err = J.Templates[0].Template()
	assert.ErrorContains(Te, err, "cmaps tuple [0 1 2 3 4] should have 8 atoms")
}
