/*
 * typer.go, part of gochemff.
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

// Package typer assigns residue templates to the fragments of a molecule.
// A residue matches a template when their bond graphs are isomorphic, with
// atoms labeled by atomic number (and bonds by order, optionally).
// Names are never used for matching.
package typer

import (
	"fmt"
	"strings"

	"github.com/rmera/gochemff/isomorph"
	"go.uber.org/zap"
)

// Match is a template assigned to one residue of a system.
type Match struct {
	Template *Template
	//residue id and atoms, as in the target system.
	Residue int
	Atoms   []int
	//Map[i] is the target atom for template atom i, -1 for
	//pseudo particles. External placeholders are mapped to the actual
	//atom of the neighboring residue.
	Map []int
}

// Typer matches residues against the templates in a registry.
type Typer struct {
	Registry *Registry
	log      *zap.Logger
}

// New returns a Typer that uses the templates in reg. log can be nil.
func New(reg *Registry, log *zap.Logger) *Typer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Typer{Registry: reg, log: log}
}

// MatchFragment splits fragment into residues and finds a template for
// each of them. If every residue matches, the matches are returned, in
// order of first appearance of each residue in fragment. Otherwise it returns
// nil and a message explaining why the first unmatched residue failed.
func (T *Typer) MatchFragment(sys *TypedSystem, fragment []int) ([]Match, string) {
	residues := sys.Top.Residues(fragment...)
	if len(fragment) == 0 {
		residues = nil
	}
	matches := make([]Match, 0, len(residues))
	for _, res := range residues {
		m, whynot := T.matchResidue(sys, res)
		if whynot != "" {
			return nil, whynot
		}
		matches = append(matches, m)
	}
	return matches, ""
}

func (T *Typer) matchResidue(sys *TypedSystem, res []int) (Match, string) {
	top := sys.Top
	first := top.Atom(res[0])
	resid, resname := first.MolID, first.MolName
	g, nodes := residueGraph(top, res, T.Registry.bondOrders)
	cands := T.Registry.candidates(isomorph.Signature(g))
	if len(cands) == 0 {
		return Match{}, T.noFormula(sys, res, resid, resname)
	}
	var found *entry
	var perm []int
	var others []string
	for _, c := range cands {
		p, ok := isomorph.Find(c.g, g)
		if !ok {
			continue
		}
		if found != nil {
			others = append(others, c.tpl.Name)
			continue
		}
		found, perm = c, p
	}
	if found == nil {
		names := make([]string, 0, len(cands))
		for _, c := range cands {
			names = append(names, c.tpl.Name)
		}
		return Match{}, fmt.Sprintf("has no template with matching topology for residue %d (%s), but templates found with matching formula and different bond topology: %s.", resid, resname, strings.Join(names, " "))
	}
	if len(others) > 0 {
		T.log.Warn("several templates match a residue, using the first one",
			zap.Int("residue", resid), zap.String("resname", resname),
			zap.String("template", found.tpl.Name), zap.Strings("also_matching", others))
	}
	tmap := make([]int, found.tpl.Top.Len())
	for i := range tmap {
		tmap[i] = -1
	}
	for n, at := range found.nodes {
		tmap[at] = nodes[perm[n]]
	}
	T.log.Debug("residue matched", zap.Int("residue", resid), zap.String("resname", resname), zap.String("template", found.tpl.Name))
	return Match{Template: found.tpl, Residue: resid, Atoms: append([]int(nil), res...), Map: tmap}, ""
}

func (T *Typer) noFormula(sys *TypedSystem, res []int, resid int, resname string) string {
	formula := sys.Top.Formula(res)
	var b strings.Builder
	fmt.Fprintf(&b, "has no template with matching formula for residue %d (%s, %s)", resid, resname, formula)
	for _, e := range T.Registry.entries {
		if e.tpl.Name == resname {
			fmt.Fprintf(&b, "\n\ta template with name %s was found but has different chemical formula and/or terminal locations", resname)
		}
		if e.formula == formula {
			fmt.Fprintf(&b, "\n\ta template (%s) with same chemical formula but different terminal extensions was found. ", e.tpl.Name)
			b.WriteString("\n\tDid you remember to include or exclude connections to external residues?")
		}
	}
	b.WriteString(".")
	return b.String()
}
