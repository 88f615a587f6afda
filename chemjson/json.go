/*
 * json.go, part of gochemff.
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

package chemjson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	chem "github.com/rmera/gochemff"
	"github.com/rmera/gochemff/forcefield"
	"github.com/rmera/gochemff/matcher"
	"github.com/rmera/gochemff/typer"
)

// A ready-to-serialize container for an atom.
type Atom struct {
	Name    string  `json:"name"`
	ID      int     `json:"id"`
	MolName string  `json:"resname"`
	MolID   int     `json:"resid"`
	Chain   string  `json:"chain"`
	Symbol  string  `json:"symbol"`
	Anum    *int    `json:"anum"`
	Charge  float64 `json:"charge"`
	Mass    float64 `json:"mass,omitempty"`
	//Only used in templates.
	BType  string `json:"btype,omitempty"`
	NBType string `json:"nbtype,omitempty"`
	PSet   string `json:"pset,omitempty"`
}

// chem returns the atom as a *chem.Atom. If the atomic number is not
// given, it is taken from the symbol.
func (A *Atom) chem() (*chem.Atom, error) {
	at := &chem.Atom{Name: A.Name, ID: A.ID, MolName: A.MolName, MolID: A.MolID, Chain: A.Chain, Symbol: A.Symbol, Charge: A.Charge, Mass: A.Mass}
	if A.Anum != nil {
		at.AtomicNumber = *A.Anum
		return at, nil
	}
	n, ok := chem.AtomicNumber(A.Symbol)
	if !ok {
		return nil, fmt.Errorf("atom %q: no atomic number, and unknown symbol %q", A.Name, A.Symbol)
	}
	at.AtomicNumber = n
	return at, nil
}

// A ready-to-serialize container for a bond between atoms I and J
// (0-based).
type Bond struct {
	I        int     `json:"i"`
	J        int     `json:"j"`
	Order    float64 `json:"order"`
	Aromatic bool    `json:"aromatic"`
}

type Molecule struct {
	Charge   int    `json:"charge"`
	Unpaired int    `json:"unpaired"`
	Atoms    []Atom `json:"atoms"`
	Bonds    []Bond `json:"bonds"`
}

type Pseudo struct {
	Name  string  `json:"name"`
	Sites [][]int `json:"sites"`
}

type Template struct {
	Name       string   `json:"name"`
	Atoms      []Atom   `json:"atoms"`
	Bonds      []Bond   `json:"bonds"`
	Exclusions [][]int  `json:"exclusions"`
	Impropers  [][]int  `json:"impropers"`
	Cmaps      [][]int  `json:"cmaps"`
	Angles     [][]int  `json:"angles"`
	Dihedrals  [][]int  `json:"dihedrals"`
	Pseudos    []Pseudo `json:"pseudos"`
}

type Row struct {
	Type   string    `json:"type"`
	Values []float64 `json:"values"`
}

type Table struct {
	Name  string   `json:"name"`
	Props []string `json:"props"`
	Rows  []Row    `json:"rows"`
}

// Job is everything needed for one parametrization. Each element of
// Hierarchy is a [child, parent] pair of atom types.
type Job struct {
	Name      string      `json:"name"`
	Info      []string    `json:"info"`
	Molecule  Molecule    `json:"molecule"`
	Templates []Template  `json:"templates"`
	Tables    []Table     `json:"tables"`
	Hierarchy [][2]string `json:"hierarchy"`
}

// DecodeJob reads a job from stream.
func DecodeJob(stream io.Reader) (*Job, error) {
	J := new(Job)
	dec := json.NewDecoder(stream)
	dec.DisallowUnknownFields()
	if err := dec.Decode(J); err != nil {
		return nil, fmt.Errorf("DecodeJob: %w", err)
	}
	return J, nil
}

// ReadJob reads a job from the file name, which is decompressed first if
// its name ends in ".gz".
func ReadJob(name string) (*Job, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("ReadJob: %s: %w", name, err)
		}
		defer gz.Close()
		r = gz
	}
	J, err := DecodeJob(r)
	if err != nil {
		return nil, fmt.Errorf("ReadJob: %s: %w", name, err)
	}
	return J, nil
}

func addBonds(top *chem.Topology, bonds []Bond, where string) error {
	for _, b := range bonds {
		if b.I < 0 || b.J < 0 || b.I >= top.Len() || b.J >= top.Len() {
			return fmt.Errorf("%s: bond %d-%d out of range", where, b.I, b.J)
		}
		nb, err := top.AddBond(b.I, b.J, b.Order)
		if err != nil {
			return chem.Decorate(err, where)
		}
		nb.Aromatic = b.Aromatic
	}
	return nil
}

// System builds the typed system for the molecule of the job. Nothing
// in it is typed yet.
func (J *Job) System() (*typer.TypedSystem, error) {
	top := chem.NewTopology(J.Molecule.Charge, J.Molecule.Unpaired)
	for i := range J.Molecule.Atoms {
		at, err := J.Molecule.Atoms[i].chem()
		if err != nil {
			return nil, fmt.Errorf("molecule: %w", err)
		}
		top.AddAtom(at)
	}
	if err := addBonds(top, J.Molecule.Bonds, "molecule"); err != nil {
		return nil, err
	}
	return typer.NewTypedSystem(top), nil
}

// Template returns the typer template for T.
func (T *Template) Template() (*typer.Template, error) {
	tpl := typer.NewTemplate(T.Name)
	for i := range T.Atoms {
		a := &T.Atoms[i]
		at, err := a.chem()
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", T.Name, err)
		}
		tpl.AddAtom(at, a.BType, a.NBType, a.PSet)
	}
	where := "template " + T.Name
	for _, b := range T.Bonds {
		if b.I < 0 || b.J < 0 || b.I >= tpl.Top.Len() || b.J >= tpl.Top.Len() {
			return nil, fmt.Errorf("%s: bond %d-%d out of range", where, b.I, b.J)
		}
		if err := tpl.AddBond(b.I, b.J, b.Order, b.Aromatic); err != nil {
			return nil, chem.Decorate(err, where)
		}
	}
	lists := []struct {
		name string
		n    int
		l    [][]int
		add  func([]int)
	}{
		{"exclusions", 2, T.Exclusions, tpl.AddExclusion},
		{"impropers", 4, T.Impropers, tpl.AddImproper},
		{"cmaps", 8, T.Cmaps, tpl.AddCmap},
		{"angles", 3, T.Angles, tpl.AddAngle},
		{"dihedrals", 4, T.Dihedrals, tpl.AddDihedral},
	}
	for _, v := range lists {
		for _, t := range v.l {
			if len(t) != v.n {
				return nil, fmt.Errorf("%s: %s tuple %v should have %d atoms", where, v.name, t, v.n)
			}
			for _, a := range t {
				if a < 0 || a >= tpl.Top.Len() {
					return nil, fmt.Errorf("%s: %s tuple %v out of range", where, v.name, t)
				}
			}
			v.add(t)
		}
	}
	for _, p := range T.Pseudos {
		for _, s := range p.Sites {
			if err := tpl.AddPseudoSites(p.Name, s); err != nil {
				return nil, chem.Decorate(err, where)
			}
		}
	}
	return tpl, nil
}

// Forcefield builds the force field of the job, with the given rules.
// If matchBondOrder is true, template matching also compares bond orders.
// If hierarchical is false, the parent relations of the job are ignored.
func (J *Job) Forcefield(rules forcefield.Rules, matchBondOrder, hierarchical bool) (*forcefield.Forcefield, error) {
	reg := typer.NewRegistry(matchBondOrder)
	for i := range J.Templates {
		tpl, err := J.Templates[i].Template()
		if err != nil {
			return nil, err
		}
		if err := reg.Add(tpl); err != nil {
			return nil, chem.Decorate(err, "Forcefield")
		}
	}
	if len(rules.Info) == 0 {
		rules.Info = J.Info
	}
	ff := forcefield.New(J.Name, rules, reg)
	for _, t := range J.Tables {
		pt := forcefield.NewParamTable(t.Name, t.Props...)
		for _, r := range t.Rows {
			if _, err := pt.AddRow(r.Type, r.Values...); err != nil {
				return nil, err
			}
		}
		if err := ff.AddTable(pt); err != nil {
			return nil, err
		}
	}
	if hierarchical {
		tree := matcher.NewTree()
		for _, v := range J.Hierarchy {
			if err := tree.SetParent(v[0], v[1]); err != nil {
				return nil, fmt.Errorf("Forcefield: %w", err)
			}
		}
		ff.Hierarchy = tree
	}
	return ff, nil
}
