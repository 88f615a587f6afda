/*
 * nbody.go, part of gochemff.
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
	"strings"

	chem "github.com/rmera/gochemff"
	"github.com/rmera/gochemff/matcher"
	"github.com/rmera/gochemff/pattern"
	"github.com/rmera/gochemff/typer"
	"go.uber.org/zap"
)

// Nbody describes a term table filled by matching every tuple in a list
// against one parameter table.
type Nbody struct {
	//Table is the name of the output term table, Params the parameter
	//table to match against (Table if empty).
	Table, Params string
	//Plugin is the name of the plugin asking, for messages.
	Plugin string
	NAtoms int
	Tuples [][]int

	SystemToPattern pattern.SystemToPattern
	TypeToPattern   pattern.TypeToPattern
	Permutations    []pattern.Permutation

	//If Required is false, tuples that match nothing are silently dropped.
	Required bool
	//If Multiple is true, repeated rows with the same type are allowed,
	//and all of them are added.
	Multiple bool
	//If Lenient is true, unmatched tuples are only warned about,
	//even under fatal rules.
	Lenient bool
}

func (N Nbody) params() string {
	if N.Params == "" {
		return N.Table
	}
	return N.Params
}

// newMatcher builds a matcher for the table name of the force field.
func (C *Context) newMatcher(name string, stp pattern.SystemToPattern, ttp pattern.TypeToPattern, perms []pattern.Permutation) (*matcher.Matcher, error) {
	t, ok := C.FF.Table(name)
	if !ok {
		return nil, fmt.Errorf("forcefield %s has no table %s", C.FF.Name, name)
	}
	return matcher.New(t.Candidates(), matcher.Options{
		Table:           name,
		SystemToPattern: stp,
		TypeToPattern:   ttp,
		Permutations:    perms,
		Hierarchy:       C.FF.Hierarchy,
		Stats:           C.Stats,
	})
}

// noMatch deals with a tuple that matches no row: it is logged as a
// warning if the rules are not fatal (or lenient is set), and returned as
// an ErrNoMatch error otherwise.
func (C *Context) noMatch(M *matcher.Matcher, stp pattern.SystemToPattern, atoms []int, lenient bool) error {
	P := stp.Build(C.Sys, atoms)
	if !M.MatchBonds() {
		P.Bonds = nil
	}
	at := make([]string, 0, len(atoms))
	for _, v := range atoms {
		at = append(at, fmt.Sprint(v))
	}
	msg := fmt.Sprintf("No match found for table '%s', pattern %s, atoms (%s)", M.Table(), P, strings.Join(at, ","))
	if C.FF.Rules.Fatal && !lenient {
		return chem.NewError(chem.ErrNoMatch, msg)
	}
	C.Log.Warn(msg, zap.String("table", M.Table()), zap.Ints("atoms", atoms))
	return nil
}

// AddNbodyTable matches every tuple in N against its parameter table and
// adds the matches to the term table N.Table of C.
func AddNbodyTable(C *Context, N Nbody) error {
	if !C.FF.HasRows(N.params()) {
		return fmt.Errorf("must have '%s' table for '%s' plugin", N.params(), N.Plugin)
	}
	M, err := C.newMatcher(N.params(), N.SystemToPattern, N.TypeToPattern, N.Permutations)
	if err != nil {
		return chem.Decorate(err, "AddNbodyTable")
	}
	table := C.TermTable(N.Table, N.params(), N.NAtoms)
	for _, term := range N.Tuples {
		row, _, err := M.Match(C.Sys, term, N.Multiple)
		if err != nil {
			return chem.Decorate(err, "AddNbodyTable")
		}
		if row == matcher.BadRow {
			if !N.Required {
				continue
			}
			if err := C.noMatch(M, N.SystemToPattern, term, N.Lenient); err != nil {
				return chem.Decorate(err, "AddNbodyTable")
			}
			continue
		}
		if N.Multiple {
			if err := M.WriteMultiple(row, term, table); err != nil {
				return err
			}
			continue
		}
		table.AddTerm(term, row)
	}
	C.Log.Debug("table filled", zap.String("table", N.Table), zap.String("params", N.params()), zap.Int("tuples", len(N.Tuples)), zap.Int("terms", table.Len()))
	return nil
}

// NbodySpec describes an n-body plugin by the names of its parts, so that
// plugins can also be declared in configuration. Tuples names a tuple list
// of the typed system (see typer.TypedSystem.Tuples). TypeToPattern
// defaults to "default" and Permutations to the identity.
type NbodySpec struct {
	Name            string
	Table, Params   string
	NAtoms          int
	Tuples          string
	SystemToPattern string
	TypeToPattern   string
	Permutations    []string
	Required        bool
	Multiple        bool
	Lenient         bool
}

// NbodyPlugin returns a plugin that fills one table as described by S,
// resolving builders and permutations by name in cat.
func NbodyPlugin(S NbodySpec, cat *pattern.Catalog) (Plugin, error) {
	if S.Name == "" || S.Table == "" {
		return nil, fmt.Errorf("n-body plugin %q: name and table are required", S.Name)
	}
	if S.NAtoms <= 0 {
		return nil, fmt.Errorf("n-body plugin %s: invalid number of atoms %d", S.Name, S.NAtoms)
	}
	if _, err := typer.NewTypedSystem(nil).Tuples(S.Tuples); err != nil {
		return nil, fmt.Errorf("n-body plugin %s: %w", S.Name, err)
	}
	stp, err := cat.SystemToPattern(S.SystemToPattern)
	if err != nil {
		return nil, fmt.Errorf("n-body plugin %s: %w", S.Name, err)
	}
	ttpName := S.TypeToPattern
	if ttpName == "" {
		ttpName = "default"
	}
	ttp, err := cat.TypeToPattern(ttpName)
	if err != nil {
		return nil, fmt.Errorf("n-body plugin %s: %w", S.Name, err)
	}
	permNames := S.Permutations
	if len(permNames) == 0 {
		permNames = []string{"identity"}
	}
	perms, err := cat.Permutations(permNames...)
	if err != nil {
		return nil, fmt.Errorf("n-body plugin %s: %w", S.Name, err)
	}
	return func(C *Context) error {
		tuples, err := C.Sys.Tuples(S.Tuples)
		if err != nil {
			return err
		}
		return AddNbodyTable(C, Nbody{
			Table: S.Table, Params: S.Params, Plugin: S.Name, NAtoms: S.NAtoms,
			Tuples:          tuples,
			SystemToPattern: stp,
			TypeToPattern:   ttp,
			Permutations:    perms,
			Required:        S.Required,
			Multiple:        S.Multiple,
			Lenient:         S.Lenient,
		})
	}, nil
}
