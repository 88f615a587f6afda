/*
 * plugins.go, part of gochemff.
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

package forcefield

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rmera/gochemff/matcher"
	"github.com/rmera/gochemff/pattern"
	"github.com/rmera/gochemff/typer"
	"go.uber.org/zap"
)

// Context is what a plugin gets to work with: the typed system, the force
// field, and the term tables produced so far.
type Context struct {
	Sys    *typer.TypedSystem
	FF     *Forcefield
	Log    *zap.Logger
	Stats  *matcher.Stats
	tables map[string]*TermTable
	order  []string
}

func newContext(sys *typer.TypedSystem, ff *Forcefield, log *zap.Logger, stats *matcher.Stats) *Context {
	return &Context{Sys: sys, FF: ff, Log: log, Stats: stats, tables: make(map[string]*TermTable)}
}

// TermTable returns the term table called name, creating it if needed.
func (C *Context) TermTable(name, params string, natoms int) *TermTable {
	if t, ok := C.tables[name]; ok {
		return t
	}
	t := NewTermTable(name, params, natoms)
	C.tables[name] = t
	C.order = append(C.order, name)
	return t
}

// Plugin adds terms to the context, usually by matching some of the tuple
// lists of the typed system against the parameter tables of the force field.
type Plugin func(C *Context) error

// PluginRegistry maps names to plugins.
type PluginRegistry struct {
	plugins map[string]Plugin
}

// builtinNbody are the built-in plugins that only fill one table from one
// tuple list.
var builtinNbody = []NbodySpec{
	{Name: "bonds", Table: "stretch_harm", NAtoms: 2, Tuples: "nonpseudo_bonds",
		SystemToPattern: "bonded", Permutations: []string{"identity", "reverse"}, Required: true},
	{Name: "angles", Table: "angle_harm", NAtoms: 3, Tuples: "angles",
		SystemToPattern: "bonded", Permutations: []string{"identity", "reverse"}, Required: true},
	{Name: "propers", Table: "dihedral_trig", NAtoms: 4, Tuples: "dihedrals",
		SystemToPattern: "bonded", Permutations: []string{"identity", "reverse"}, Required: true, Multiple: true},
	{Name: "propers_allowmissing", Table: "dihedral_trig", NAtoms: 4, Tuples: "dihedrals",
		SystemToPattern: "bonded", Permutations: []string{"identity", "reverse"}, Required: true, Multiple: true, Lenient: true},
	//cmaps are matched without bonds.
	{Name: "cmap", Table: "torsiontorsion_cmap", Params: "cmap", NAtoms: 8, Tuples: "cmaps",
		SystemToPattern: "btype", Permutations: []string{"identity", "reverse"}, Required: true},
	{Name: "vdw1", Table: "nonbonded", Params: "vdw1", NAtoms: 1, Tuples: "typed_atoms",
		SystemToPattern: "nbtype", Required: true},
	{Name: "mass", Table: "mass", NAtoms: 1, Tuples: "typed_atoms", SystemToPattern: "btype", Required: true},
	{Name: "mass2", Table: "mass", NAtoms: 1, Tuples: "typed_atoms", SystemToPattern: "nbtype", Required: true},
}

// NewPluginRegistry returns a registry with the built-in plugins. Their
// pattern builders and permutations are taken from pattern.NewCatalog().
func NewPluginRegistry() *PluginRegistry {
	R := &PluginRegistry{plugins: make(map[string]Plugin)}
	cat := pattern.NewCatalog()
	for _, v := range builtinNbody {
		if err := R.RegisterNbody(v, cat); err != nil {
			panic(err) //the built-ins are known to be fine.
		}
	}
	R.plugins["mass"] = withMasses(R.plugins["mass"])
	R.plugins["mass2"] = withMasses(R.plugins["mass2"])
	R.plugins["impropers"] = impropers
	R.plugins["virtuals"] = virtuals
	return R
}

// RegisterNbody builds an n-body plugin from S, with the builders and
// permutations of cat, and registers it under S.Name.
func (R *PluginRegistry) RegisterNbody(S NbodySpec, cat *pattern.Catalog) error {
	p, err := NbodyPlugin(S, cat)
	if err != nil {
		return err
	}
	return R.Register(S.Name, p)
}

// Register adds a plugin. Names can't be repeated.
func (R *PluginRegistry) Register(name string, p Plugin) error {
	if _, ok := R.plugins[name]; ok {
		return fmt.Errorf("plugin %q already registered", name)
	}
	if p == nil {
		return fmt.Errorf("plugin %q is nil", name)
	}
	R.plugins[name] = p
	return nil
}

// Get returns the plugin called name.
func (R *PluginRegistry) Get(name string) (Plugin, bool) {
	p, ok := R.plugins[name]
	return p, ok
}

// Names returns the names of all the plugins, sorted.
func (R *PluginRegistry) Names() []string {
	ret := make([]string, 0, len(R.plugins))
	for k := range R.plugins {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

var forwardReverse = []pattern.Permutation{pattern.Identity, pattern.Reverse}

// withMasses runs p, which fills the mass table, and then copies the amu
// value of each matched row into the mass of its atom.
func withMasses(p Plugin) Plugin {
	return func(C *Context) error {
		if err := p(C); err != nil {
			return err
		}
		params, _ := C.FF.Table("mass")
		for _, t := range C.TermTable("mass", "mass", 1).Terms {
			amu, err := params.Value(t.Row, "amu")
			if err != nil {
				return fmt.Errorf("mass: %w", err)
			}
			C.Sys.Top.Atom(t.Atoms[0]).Mass = amu
		}
		return nil
	}
}

// impropers fills whichever of the improper_harm, improper_anharm and
// improper_trig tables the force field has rows for.
func impropers(C *Context) error {
	imps := C.Sys.Impropers()
	if C.FF.HasRows("improper_harm") {
		//no bonds, as force fields disagree on where the center goes.
		err := AddNbodyTable(C, Nbody{
			Table: "improper_harm", Plugin: "impropers", NAtoms: 4,
			Tuples:          imps,
			SystemToPattern: pattern.BType{},
			TypeToPattern:   pattern.Default{},
			Permutations:    forwardReverse,
			Required:        true,
		})
		if err != nil {
			return err
		}
	}
	if C.FF.HasRows("improper_anharm") {
		if err := impropersAnharm(C, imps); err != nil {
			return err
		}
	}
	if C.FF.HasRows("improper_trig") {
		err := AddNbodyTable(C, Nbody{
			Table: "improper_trig", Plugin: "impropers", NAtoms: 4,
			Tuples:          imps,
			SystemToPattern: pattern.BType{},
			TypeToPattern:   pattern.Default{},
			Permutations:    forwardReverse,
			Required:        true,
			Lenient:         true,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// impropersAnharm matches impropers with the center atom last using only
// the identity and no bonds, and impropers with the center first using
// every order of the other three atoms, with their bonds to the center.
// Impropers with neither layout are ignored.
func impropersAnharm(C *Context, imps [][]int) error {
	old, err := C.newMatcher("improper_anharm", pattern.BType{}, pattern.Default{}, nil)
	if err != nil {
		return err
	}
	centerFirst, err := C.newMatcher("improper_anharm", pattern.BondToFirst{}, pattern.Default{}, pattern.Impropers())
	if err != nil {
		return err
	}
	table := C.TermTable("improper_anharm", "improper_anharm", 4)
	bonded := func(center int, others ...int) bool {
		for _, v := range others {
			if C.Sys.Bond(center, v) == nil {
				return false
			}
		}
		return true
	}
	for _, t := range imps {
		var M *matcher.Matcher
		var stp pattern.SystemToPattern
		switch {
		case bonded(t[3], t[0], t[1], t[2]):
			M, stp = old, pattern.BType{}
		case bonded(t[0], t[1], t[2], t[3]):
			M, stp = centerFirst, pattern.BondToFirst{}
		default:
			continue
		}
		row, _, err := M.Match(C.Sys, t, false)
		if err != nil {
			return err
		}
		if row == matcher.BadRow {
			if err := C.noMatch(M, stp, t, false); err != nil {
				return err
			}
			continue
		}
		table.AddTerm(t, row)
	}
	return nil
}

// virtuals matches the sites of every pseudo type called virtual_X against
// the parameter table virtuals_X. The pset of the pseudo particle, the
// bonded types of the site atoms, and their bonds to the parent atom (to
// the second site atom, for virtual_fdat3) have to match.
func virtuals(C *Context) error {
	for _, pt := range C.Sys.PseudoTypes() {
		if !strings.HasPrefix(pt.Name, "virtual_") || pt.Name == "virtual_shift" || len(pt.Sites) == 0 {
			continue
		}
		var stp pattern.SystemToPattern = pattern.PseudoBType{}
		if pt.Name == "virtual_fdat3" {
			stp = pattern.PseudoBondToSecond{}
		}
		err := AddNbodyTable(C, Nbody{
			Table:  pt.Name,
			Params: "virtuals_" + strings.TrimPrefix(pt.Name, "virtual_"),
			Plugin: "virtuals", NAtoms: len(pt.Sites[0]),
			Tuples:          pt.Sites,
			SystemToPattern: stp,
			TypeToPattern:   pattern.Pseudo{},
			Required:        true,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
