/*
 * parametrize.go, part of gochemff.
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
	"io"

	"github.com/google/uuid"
	chem "github.com/rmera/gochemff"
	"github.com/rmera/gochemff/chemgraph"
	"github.com/rmera/gochemff/matcher"
	"github.com/rmera/gochemff/typer"
	"go.uber.org/zap"
)

// Options for Parametrize. The zero value is usable.
type Options struct {
	RenameAtoms    bool
	RenameResidues bool
	Logger         *zap.Logger
	Stats          *matcher.Stats
	//Plugins defaults to NewPluginRegistry().
	Plugins *PluginRegistry
}

// Result is the outcome of a parametrization run.
type Result struct {
	RunID string
	Sys   *typer.TypedSystem
	//Tables are the term tables, in the order they were created.
	Tables []*TermTable
	//Unmatched are the fragments no template matched, under non-fatal rules.
	Unmatched [][]int
}

// Table returns the term table called name, or nil.
func (R *Result) Table(name string) *TermTable {
	for _, t := range R.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Parametrize types every fragment of sys with the templates of ff, and then
// runs the plugins in the rules of ff, in order. Pseudo particles already in
// sys are removed first, as typing adds those of the templates, so sys must
// not be typed yet. Fragments are found before typing, so the pseudo
// particles added by templates don't change them.
func Parametrize(sys *typer.TypedSystem, ff *Forcefield, o Options) (*Result, error) {
	if ff.Templates == nil {
		return nil, fmt.Errorf("Parametrize: forcefield %s has no template registry", ff.Name)
	}
	runID := uuid.NewString()
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("run", runID), zap.String("forcefield", ff.Name))
	plugins := o.Plugins
	if plugins == nil {
		plugins = NewPluginRegistry()
	}
	R := &Result{RunID: runID, Sys: sys}
	T := typer.New(ff.Templates, log)
	//pseudo particles come from the templates, the input ones are discarded.
	removed, err := sys.RemovePseudos()
	if err != nil {
		return nil, chem.Decorate(err, "Parametrize")
	}
	if removed > 0 {
		log.Info("removed pseudo particles from the input", zap.Int("pseudos", removed))
	}
	frags := chemgraph.Fragments(sys.Top)
	log.Info("typing system", zap.Int("atoms", sys.Top.Len()), zap.Int("fragments", len(frags)), zap.Int("templates", ff.Templates.Len()))
	for _, frag := range frags {
		matches, whynot := T.MatchFragment(sys, frag)
		if whynot != "" {
			msg := fmt.Sprintf("fragment starting at atom %d %s", frag[0], whynot)
			if ff.Rules.Fatal {
				return nil, chem.NewError(chem.ErrUnmatchedResidue, msg, "Parametrize")
			}
			log.Warn(msg, zap.Int("fragment_atoms", len(frag)))
			R.Unmatched = append(R.Unmatched, frag)
			continue
		}
		if err := T.AssignMatch(sys, matches, o.RenameAtoms, o.RenameResidues); err != nil {
			return nil, chem.Decorate(err, "Parametrize")
		}
	}
	C := newContext(sys, ff, log, o.Stats)
	for _, name := range ff.Rules.Plugins {
		p, ok := plugins.Get(name)
		if !ok {
			return nil, fmt.Errorf("Parametrize: unknown plugin %q", name)
		}
		if err := p(C); err != nil {
			return nil, chem.Decorate(err, fmt.Sprintf("Parametrize: plugin %s", name))
		}
		log.Debug("plugin done", zap.String("plugin", name))
	}
	for _, name := range C.order {
		R.Tables = append(R.Tables, C.tables[name])
	}
	log.Info("parametrization done", zap.Int("tables", len(R.Tables)), zap.Int("unmatched_fragments", len(R.Unmatched)))
	return R, nil
}

// Print writes every term table of R, with the values from the parameter
// tables of ff, and then the exclusions and pseudo sites of the system.
// oneBased is added to every atom index.
func (R *Result) Print(w io.StringWriter, ff *Forcefield, oneBased int) error {
	for _, t := range R.Tables {
		params, _ := ff.Table(t.Params)
		if err := t.Print(w, params, oneBased); err != nil {
			return err
		}
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
	}
	if ex := R.Sys.Exclusions(); len(ex) > 0 {
		if err := printTuples(w, "exclusions", ex, oneBased); err != nil {
			return err
		}
	}
	for _, pt := range R.Sys.PseudoTypes() {
		if err := printTuples(w, "pseudo "+pt.Name, pt.Sites, oneBased); err != nil {
			return err
		}
	}
	return nil
}
