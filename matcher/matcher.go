/*
 * matcher.go, part of gochemff.
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

package matcher

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	chem "github.com/rmera/gochemff"
	"github.com/rmera/gochemff/pattern"
)

// RowID identifies a row of a parameter table. It is opaque to the matcher.
type RowID int64

// BadRow is returned when nothing matches.
const BadRow RowID = -1

// Candidate is a row of a parameter table, as seen by the matcher.
type Candidate struct {
	ID   RowID
	Type string
}

// TermSink receives the terms written by WriteMultiple.
type TermSink interface {
	AddTerm(atoms []int, row RowID)
}

// Options configures a Matcher. Only SystemToPattern is mandatory.
type Options struct {
	//Table is the name of the parameter table, used in messages and statistics.
	Table           string
	SystemToPattern pattern.SystemToPattern
	//TypeToPattern defaults to pattern.Default.
	TypeToPattern pattern.TypeToPattern
	//Permutations defaults to Identity only.
	Permutations []pattern.Permutation
	//Hierarchy enables hierarchical matching when not nil.
	Hierarchy Hierarchy
	Stats     *Stats
}

type cached struct {
	row  RowID
	perm pattern.Permutation
}

// Matcher finds the row of a parameter table that applies to a tuple of
// atoms. The candidate rows are fixed at construction. A Matcher can be
// used from several goroutines at the same time.
type Matcher struct {
	table      string
	rows       []RowID
	types      []string
	patterns   []pattern.Pattern
	wild       []bool
	index      map[RowID]int
	stp        pattern.SystemToPattern
	perms      []pattern.Permutation
	hier       Hierarchy
	stats      *Stats
	matchBonds bool

	mu    sync.Mutex
	cache map[string]cached
}

// New builds a matcher for the given rows. It fails if some type string
// gives a malformed pattern, or if some rows match bonds and others do not.
func New(rows []Candidate, o Options) (*Matcher, error) {
	if o.SystemToPattern == nil {
		return nil, fmt.Errorf("matcher for table %q: no system-to-pattern builder given", o.Table)
	}
	ttp := o.TypeToPattern
	if ttp == nil {
		ttp = pattern.Default{}
	}
	perms := o.Permutations
	if len(perms) == 0 {
		perms = []pattern.Permutation{pattern.Identity}
	}
	M := &Matcher{
		table:    o.Table,
		rows:     make([]RowID, 0, len(rows)),
		types:    make([]string, 0, len(rows)),
		patterns: make([]pattern.Pattern, 0, len(rows)),
		wild:     make([]bool, 0, len(rows)),
		index:    make(map[RowID]int, len(rows)),
		stp:      o.SystemToPattern,
		perms:    slices.Clone(perms),
		hier:     o.Hierarchy,
		stats:    o.Stats,
		cache:    make(map[string]cached),
	}
	for k, v := range rows {
		if _, ok := M.index[v.ID]; ok {
			return nil, fmt.Errorf("matcher for table %q: repeated row id %d", o.Table, v.ID)
		}
		p := ttp.Parse(v.Type)
		if err := p.Validate(); err != nil {
			return nil, chem.Decorate(err, fmt.Sprintf("New: table %q, row %d", o.Table, v.ID))
		}
		if k == 0 {
			M.matchBonds = len(p.Bonds) > 0
		} else if M.matchBonds != (len(p.Bonds) > 0) {
			return nil, chem.Errorf(chem.ErrMalformedPattern, "New", "table %q: either all rows or no rows can match bond types (row %d: %q)", o.Table, v.ID, v.Type)
		}
		M.index[v.ID] = k
		M.rows = append(M.rows, v.ID)
		M.types = append(M.types, v.Type)
		M.patterns = append(M.patterns, p)
		M.wild = append(M.wild, p.HasWildAtom())
	}
	return M, nil
}

// MatchBonds returns true if the rows of the table specify bonds.
func (M *Matcher) MatchBonds() bool {
	return M.matchBonds
}

// Table returns the name of the table the matcher was built for.
func (M *Matcher) Table() string {
	return M.table
}

// Pattern returns the pattern of the given row.
func (M *Matcher) Pattern(row RowID) (pattern.Pattern, bool) {
	i, ok := M.index[row]
	if !ok {
		return pattern.Pattern{}, false
	}
	return M.patterns[i].Copy(), true
}

// Match returns the row that best matches the given atoms of sys, and the
// permutation that makes the tuple match it. If nothing matches, BadRow and a
// nil permutation are returned, with a nil error. If two different rows match
// with the same, highest, priority, an ErrAmbiguousMatch error is returned,
// unless allowRepeat is true and both rows have the same type.
func (M *Matcher) Match(sys pattern.System, atoms []int, allowRepeat bool) (RowID, pattern.Permutation, error) {
	row, perm, err := M.MatchPattern(M.stp.Build(sys, atoms), allowRepeat)
	if err != nil {
		return BadRow, nil, chem.Decorate(err, fmt.Sprintf("Match: atoms %v", atoms))
	}
	return row, perm, nil
}

// MatchPattern is like Match, but takes the pattern of the tuple directly.
func (M *Matcher) MatchPattern(P pattern.Pattern, allowRepeat bool) (RowID, pattern.Permutation, error) {
	key := fmt.Sprintf("%s|%t", P.Key(), allowRepeat)
	M.mu.Lock()
	c, ok := M.cache[key]
	M.mu.Unlock()
	if !ok {
		var err error
		c, err = M.match(P, allowRepeat)
		if err != nil {
			return BadRow, nil, err
		}
		M.mu.Lock()
		M.cache[key] = c
		M.mu.Unlock()
	}
	M.stats.observe(M.table, c.row)
	return c.row, c.perm, nil
}

// a row matched by a tuple.
type hit struct {
	idx      int
	perm     pattern.Permutation
	priority []int
}

// hits returns, in table order, the rows that P matches, each with the first
// permutation giving its best priority.
func (M *Matcher) hits(P pattern.Pattern) []hit {
	ret := make([]hit, 0, 3)
	perms := make([]pattern.Pattern, len(M.perms))
	for k, v := range M.perms {
		perms[k] = v.Permute(P)
	}
	for i, T := range M.patterns {
		var best *hit
		for k, Q := range perms {
			prio, ok := M.structural(T, Q, M.wild[i])
			if !ok {
				continue
			}
			if best == nil || slices.Compare(prio, best.priority) > 0 {
				best = &hit{idx: i, perm: M.perms[k], priority: prio}
			}
		}
		if best != nil {
			ret = append(ret, *best)
		}
	}
	return ret
}

// structural tests whether the tuple pattern Q matches the type pattern T.
// For rows without wildcards, it also returns the sorted depths of the
// types used to match each position.
func (M *Matcher) structural(T, Q pattern.Pattern, wild bool) ([]int, bool) {
	if len(T.Atoms) != len(Q.Atoms) {
		return nil, false
	}
	if len(T.Bonds) != 0 {
		if len(T.Bonds) != len(Q.Bonds) {
			return nil, false
		}
		for i, v := range T.Bonds {
			if v != pattern.AnyBond && v != Q.Bonds[i] {
				return nil, false
			}
		}
	}
	if !slices.Equal(T.Flags, Q.Flags) {
		return nil, false
	}
	depths := make([]int, len(T.Atoms))
	for i, t := range T.Atoms {
		d, ok := M.atomMatch(t, Q.Atoms[i], wild)
		if !ok {
			return nil, false
		}
		depths[i] = d
	}
	sort.Ints(depths)
	return depths, true
}

func (M *Matcher) atomMatch(t, q string, wild bool) (int, bool) {
	chain := []string{q}
	if M.hier != nil {
		chain = M.hier.Ancestors(q)
	}
	//the deepest type in the chain that matches wins.
	for d := len(chain) - 1; d >= 0; d-- {
		if t == chain[d] || (wild && wildMatch(chain[d], t, pattern.AnyAtom[0])) {
			if M.hier == nil {
				return 0, true
			}
			return d, true
		}
	}
	return 0, false
}

func (M *Matcher) match(P pattern.Pattern, allowRepeat bool) (cached, error) {
	hits := M.hits(P)
	var best []hit
	for _, h := range hits {
		if M.wild[h.idx] {
			continue
		}
		if len(best) == 0 {
			best = []hit{h}
			continue
		}
		switch c := slices.Compare(h.priority, best[0].priority); {
		case c > 0:
			best = []hit{h}
		case c == 0:
			best = append(best, h)
		}
	}
	if len(best) > 0 {
		if len(best) > 1 {
			same := true
			for _, h := range best[1:] {
				if !M.patterns[h.idx].Equal(M.patterns[best[0].idx]) {
					same = false
					break
				}
			}
			if !same || !allowRepeat {
				return cached{}, chem.Errorf(chem.ErrAmbiguousMatch, "match",
					"table %q: found two matches for %s (at the same priority): %q (row %d) and %q (row %d)",
					M.table, P, M.types[best[0].idx], M.rows[best[0].idx], M.types[best[1].idx], M.rows[best[1].idx])
			}
		}
		return cached{row: M.rows[best[0].idx], perm: best[0].perm}, nil
	}
	//Among wildcard rows, the first one in the table wins.
	for _, h := range hits {
		if M.wild[h.idx] {
			return cached{row: M.rows[h.idx], perm: h.perm}, nil
		}
	}
	return cached{row: BadRow}, nil
}

// MatchAll returns every row that matches the tuple: rows without wildcards
// first, from the highest priority to the lowest, then rows with wildcards.
// Rows with the same priority keep the table order.
func (M *Matcher) MatchAll(sys pattern.System, atoms []int) []RowID {
	hits := M.hits(M.stp.Build(sys, atoms))
	exact := make([]hit, 0, len(hits))
	ret := make([]RowID, 0, len(hits))
	for _, h := range hits {
		if !M.wild[h.idx] {
			exact = append(exact, h)
		}
	}
	sort.SliceStable(exact, func(i, j int) bool {
		return slices.Compare(exact[i].priority, exact[j].priority) > 0
	})
	for _, h := range exact {
		ret = append(ret, M.rows[h.idx])
	}
	for _, h := range hits {
		if M.wild[h.idx] {
			ret = append(ret, M.rows[h.idx])
		}
	}
	return ret
}

// WriteMultiple adds a term to sink for the given atoms, for every row with
// the same type pattern as row, in table order. It is meant for tables where a
// type maps to several rows on purpose, such as multi-term torsions.
func (M *Matcher) WriteMultiple(row RowID, atoms []int, sink TermSink) error {
	i, ok := M.index[row]
	if !ok {
		return fmt.Errorf("WriteMultiple: table %q: invalid row %d", M.table, row)
	}
	for k, v := range M.patterns {
		if v.Equal(M.patterns[i]) {
			sink.AddTerm(slices.Clone(atoms), M.rows[k])
		}
	}
	return nil
}
