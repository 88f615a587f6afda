/*
 * forcefield.go, part of gochemff.
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

// Package forcefield holds the parameter tables, templates and rules of a
// force field, and uses them to parametrize a molecular system.
package forcefield

import (
	"fmt"
	"sort"

	"github.com/rmera/gochemff/matcher"
	"github.com/rmera/gochemff/typer"
)

// Row is a row of a parameter table. Values are in the order given by the
// Props of the table.
type Row struct {
	ID     matcher.RowID
	Type   string
	Values []float64
}

// ParamTable is a named table of parameters.
type ParamTable struct {
	Name  string
	Props []string
	Rows  []Row
	index map[matcher.RowID]int
}

// NewParamTable returns an empty table with the given property names.
func NewParamTable(name string, props ...string) *ParamTable {
	return &ParamTable{Name: name, Props: props, index: make(map[matcher.RowID]int)}
}

// AddRow appends a row with the given type string and values, and returns
// its id. Ids are assigned in order, starting at 0.
func (P *ParamTable) AddRow(typ string, values ...float64) (matcher.RowID, error) {
	if len(values) != len(P.Props) {
		return matcher.BadRow, fmt.Errorf("table %s: row %q has %d values, the table has %d properties", P.Name, typ, len(values), len(P.Props))
	}
	if P.index == nil {
		P.reindex()
	}
	id := matcher.RowID(len(P.Rows))
	for {
		if _, used := P.index[id]; !used {
			break
		}
		id++
	}
	P.index[id] = len(P.Rows)
	P.Rows = append(P.Rows, Row{ID: id, Type: typ, Values: append([]float64(nil), values...)})
	return id, nil
}

func (P *ParamTable) reindex() {
	P.index = make(map[matcher.RowID]int, len(P.Rows))
	for i, r := range P.Rows {
		P.index[r.ID] = i
	}
}

// Row returns the row with the given id.
func (P *ParamTable) Row(id matcher.RowID) (Row, bool) {
	if len(P.index) == len(P.Rows) {
		i, ok := P.index[id]
		if !ok {
			return Row{}, false
		}
		return P.Rows[i], true
	}
	//Rows were set directly.
	for _, r := range P.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}

// Value returns the value of the property prop in the row id.
func (P *ParamTable) Value(id matcher.RowID, prop string) (float64, error) {
	r, ok := P.Row(id)
	if !ok {
		return 0, fmt.Errorf("table %s: no row %d", P.Name, id)
	}
	for i, v := range P.Props {
		if v == prop {
			return r.Values[i], nil
		}
	}
	return 0, fmt.Errorf("table %s: no property %q", P.Name, prop)
}

// Candidates returns the rows in the form the matcher takes them.
func (P *ParamTable) Candidates() []matcher.Candidate {
	ret := make([]matcher.Candidate, 0, len(P.Rows))
	for _, r := range P.Rows {
		ret = append(ret, matcher.Candidate{ID: r.ID, Type: r.Type})
	}
	return ret
}

// Rules are the global settings of a force field. If Fatal is true, a
// tuple or fragment that can't be parametrized is an error, otherwise it
// is only logged. Plugins are run in the order given.
type Rules struct {
	Fatal   bool
	Plugins []string
	Info    []string
}

// Forcefield is a set of parameter tables and templates, with its rules.
// Hierarchy can be nil, in which case every atom type is its own root.
type Forcefield struct {
	Name      string
	Rules     Rules
	Tables    map[string]*ParamTable
	Templates *typer.Registry
	Hierarchy matcher.Hierarchy
}

// New returns a force field without tables. If templates is nil, an empty
// registry is used.
func New(name string, rules Rules, templates *typer.Registry) *Forcefield {
	if templates == nil {
		templates = typer.NewRegistry(false)
	}
	return &Forcefield{Name: name, Rules: rules, Tables: make(map[string]*ParamTable), Templates: templates}
}

// AddTable adds t to the force field. Table names must be unique.
func (F *Forcefield) AddTable(t *ParamTable) error {
	if t == nil {
		return fmt.Errorf("forcefield %s: can't add a nil table", F.Name)
	}
	if _, ok := F.Tables[t.Name]; ok {
		return fmt.Errorf("forcefield %s: table %s already exists", F.Name, t.Name)
	}
	F.Tables[t.Name] = t
	return nil
}

// Table returns the table called name.
func (F *Forcefield) Table(name string) (*ParamTable, bool) {
	t, ok := F.Tables[name]
	return t, ok
}

// HasRows returns true if the force field has a table called name, with
// at least one row.
func (F *Forcefield) HasRows(name string) bool {
	t, ok := F.Tables[name]
	return ok && len(t.Rows) > 0
}

// TableNames returns the names of the tables, sorted.
func (F *Forcefield) TableNames() []string {
	ret := make([]string, 0, len(F.Tables))
	for k := range F.Tables {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
