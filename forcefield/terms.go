/*
 * terms.go, part of gochemff.
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
	"strings"

	"github.com/rmera/gochemff/matcher"
)

// Term is a tuple of atoms together with the parameter row that applies to it.
type Term struct {
	Atoms []int
	Row   matcher.RowID
}

// TermTable collects the terms of one kind for a system. Params is the name
// of the parameter table the rows come from.
// TermTable implements matcher.TermSink.
type TermTable struct {
	Name   string
	Params string
	NAtoms int
	Terms  []Term
}

func NewTermTable(name, params string, natoms int) *TermTable {
	return &TermTable{Name: name, Params: params, NAtoms: natoms}
}

// AddTerm appends a term. It panics if the number of atoms is not the one
// of the table.
func (T *TermTable) AddTerm(atoms []int, row matcher.RowID) {
	if len(atoms) != T.NAtoms {
		panic(fmt.Sprintf("TermTable %s: term with %d atoms, expected %d", T.Name, len(atoms), T.NAtoms))
	}
	T.Terms = append(T.Terms, Term{Atoms: append([]int(nil), atoms...), Row: row})
}

func (T *TermTable) Len() int {
	return len(T.Terms)
}

// Rows returns the row of each term, in order.
func (T *TermTable) Rows() []matcher.RowID {
	ret := make([]matcher.RowID, 0, len(T.Terms))
	for _, v := range T.Terms {
		ret = append(ret, v.Row)
	}
	return ret
}

func writeAtoms(atoms []int, oneBased int) string {
	r := make([]string, 0, len(atoms))
	for _, v := range atoms {
		r = append(r, fmt.Sprintf("%5d", v+oneBased))
	}
	return strings.Join(r, " ")
}

// ToText writes the term as a line with its atoms (adding oneBased to each
// index), the type of its row and the row values. If params is nil, only the
// row id is written.
func (T Term) ToText(params *ParamTable, oneBased int) (string, error) {
	ret := make([]string, 0, 8)
	ret = append(ret, writeAtoms(T.Atoms, oneBased))
	if params == nil {
		ret = append(ret, fmt.Sprintf("%5d", T.Row))
		return strings.Join(ret, " ") + "\n", nil
	}
	row, ok := params.Row(T.Row)
	if !ok {
		return "", fmt.Errorf("term %v: table %s has no row %d", T.Atoms, params.Name, T.Row)
	}
	ret = append(ret, fmt.Sprintf("%-16s", strings.Join(strings.Fields(row.Type), "_")))
	for _, v := range row.Values {
		ret = append(ret, fmt.Sprintf("%10.4f", v))
	}
	return strings.Join(ret, " ") + "\n", nil
}

// Print writes a header with the name of the table, and then each term in
// it, as given by ToText.
func (T *TermTable) Print(r io.StringWriter, params *ParamTable, oneBased int) error {
	if _, err := r.WriteString(fmt.Sprintf("[ %s ]\n", T.Name)); err != nil {
		return err
	}
	for _, v := range T.Terms {
		m, err := v.ToText(params, oneBased)
		if err != nil {
			return fmt.Errorf("table %s: %w", T.Name, err)
		}
		if _, err = r.WriteString(m); err != nil {
			return err
		}
	}
	return nil
}

// printTuples writes a section with a list of atom tuples, such as
// exclusions.
func printTuples(r io.StringWriter, header string, g [][]int, oneBased int) error {
	if _, err := r.WriteString(fmt.Sprintf("[ %s ]\n", header)); err != nil {
		return err
	}
	for _, v := range g {
		if _, err := r.WriteString(writeAtoms(v, oneBased) + "\n"); err != nil {
			return err
		}
	}
	return nil
}
