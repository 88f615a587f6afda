/*
 * assign.go, part of gochemff.
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

package typer

import (
	"sort"
	"strings"

	chem "github.com/rmera/gochemff"
	"go.uber.org/zap"
)

// AssignMatch copies the matched templates into sys. Charges, atom names
// (if renameAtoms), residue names (if renameResidues) and the pseudo
// particles of the templates, with their bonds, are written into the
// molecule. Types, aromaticity and tuple lists are recorded in sys.
// The bonds, angles and dihedrals among all the atoms assigned are derived
// from the bond graph at the end.
func (T *Typer) AssignMatch(sys *TypedSystem, matches []Match, renameAtoms, renameResidues bool) error {
	assigned := make([]int, 0, 16)
	for _, m := range matches {
		a, err := T.assignOne(sys, m, renameAtoms, renameResidues)
		if err != nil {
			return chem.Decorate(err, "AssignMatch")
		}
		assigned = append(assigned, a...)
	}
	bonds, pbonds, angles, dihedrals := BondsAnglesDihedrals(sys.Top, assigned)
	for _, v := range bonds {
		sys.AddNonPseudoBond(v)
	}
	for _, v := range pbonds {
		sys.AddPseudoBond(v)
	}
	for _, v := range angles {
		sys.AddAngle(v)
	}
	for _, v := range dihedrals {
		sys.AddDihedral(v)
	}
	return nil
}

// assignment is the state of the assignment of one template.
type assignment struct {
	sys       *TypedSystem
	tpl       *Template
	tmap      []int
	ambiguous map[int]bool
	assigned  []int
}

func (T *Typer) assignOne(sys *TypedSystem, m Match, renameAtoms, renameResidues bool) ([]int, error) {
	tpl := m.Template
	ttop, top := tpl.Top, sys.Top
	if len(m.Map) != ttop.Len() {
		return nil, chem.Errorf(chem.ErrBadAssignment, "assignOne", "map has %d atoms, template %s has %d", len(m.Map), tpl.Name, ttop.Len())
	}
	A := &assignment{sys: sys, tpl: tpl, tmap: append([]int(nil), m.Map...), ambiguous: make(map[int]bool)}
	for i, j := range A.tmap {
		tat := ttop.Atom(i)
		if j < 0 || tat.AtomicNumber <= 0 {
			continue
		}
		at := top.Atom(j)
		sys.SetTypes(j, tpl.BType(i), tpl.NBType(i), "")
		at.Charge = tat.Charge
		if renameAtoms {
			at.Name = tat.Name
		}
		sys.AddTypedAtom(j)
		A.assigned = append(A.assigned, j)
	}
	if renameResidues {
		for _, j := range m.Atoms {
			top.Atom(j).MolName = tpl.Name
		}
	}
	if err := A.bonds(m.Atoms); err != nil {
		return nil, err
	}
	if err := A.pseudos(); err != nil {
		return nil, err
	}
	lists := []struct {
		kind string
		from [][]int
		add  func([]int)
	}{
		{"Exclusion", tpl.Exclusions(), sys.AddExclusion},
		{"Improper", tpl.Impropers(), sys.AddImproper},
		{"Cmap", tpl.Cmaps(), sys.AddCmap},
		{"Angle", tpl.Angles(), sys.AddAngle},
		{"Dihedral", tpl.Dihedrals(), sys.AddDihedral},
	}
	for _, l := range lists {
		for _, t := range l.from {
			nt, err := A.translate(l.kind, t, 0)
			if err != nil {
				return nil, err
			}
			l.add(nt)
		}
	}
	T.log.Debug("template assigned", zap.String("template", tpl.Name), zap.Int("residue", m.Residue), zap.Int("atoms", len(A.assigned)))
	return A.assigned, nil
}

// bonds checks that the internal bonds of the template are present in the
// target, copies their aromaticity, and finds out which external atoms are
// ambiguous, i.e. bonded to an atom that has more than one external bond.
func (A *assignment) bonds(residue []int) error {
	top := A.sys.Top
	for _, tb := range A.tpl.Top.Bonds() {
		t1, t2 := tb.At1, tb.At2
		if t1.Pseudo() || t2.Pseudo() {
			continue
		}
		if t1.AtomicNumber > 0 && t2.AtomicNumber > 0 {
			i, j := A.tmap[t1.Index()], A.tmap[t2.Index()]
			if i < 0 || j < 0 || top.Bond(i, j) == nil {
				return chem.Errorf(chem.ErrBadAssignment, "bonds", "incorrect match for template %s: system is missing bond %d-%d", A.tpl.Name, i, j)
			}
			if err := A.sys.SetAromatic(i, j, tb.Aromatic); err != nil {
				return err
			}
			continue
		}
		in, ex := t1, t2
		if in.AtomicNumber == -1 {
			in, ex = ex, in
		}
		sin, sex := A.tmap[in.Index()], A.tmap[ex.Index()]
		if sin < 0 || sex < 0 || top.Bond(sin, sex) == nil {
			return chem.Errorf(chem.ErrBadAssignment, "bonds", "incorrect match for template %s: system is missing external bond %d-%d", A.tpl.Name, sin, sex)
		}
		externals := 0
		for _, n := range top.Neighbors(sin) {
			if top.Atom(n).AtomicNumber > 0 && !inResidue(residue, n) {
				externals++
			}
		}
		if externals > 1 {
			A.ambiguous[ex.Index()] = true
		}
	}
	return nil
}

// translate maps a tuple of template atoms to target atoms. The first skip
// elements are left as they are.
func (A *assignment) translate(kind string, t []int, skip int) ([]int, error) {
	ret := append([]int(nil), t...)
	for j := skip; j < len(t); j++ {
		if A.ambiguous[t[j]] {
			return nil, chem.Errorf(chem.ErrBadAssignment, "translate", "%s in template %s references an ambiguous externally bonded atom", kind, A.tpl.Name)
		}
		if A.tmap[t[j]] < 0 {
			return nil, chem.Errorf(chem.ErrBadAssignment, "translate", "%s in template %s references atom %d, which is not in the system", kind, A.tpl.Name, t[j])
		}
		ret[j] = A.tmap[t[j]]
	}
	return ret, nil
}

// pseudos creates the pseudo particles of the template. The ones in pseudo
// types go first, with drudes last, so drudes can sit on virtual sites.
// Pseudo particles not in any pseudo type are created after them.
func (A *assignment) pseudos() error {
	ptypes := A.tpl.PseudoTypes()
	sort.SliceStable(ptypes, func(i, j int) bool {
		return !isDrude(ptypes[i].Name) && isDrude(ptypes[j].Name)
	})
	for _, pt := range ptypes {
		for _, sites := range pt.Sites {
			tuple, err := A.translate("Virtual site definition", sites, 1)
			if err != nil {
				return err
			}
			id, err := A.addPseudo(sites[0], tuple[1])
			if err != nil {
				return err
			}
			tuple[0] = id
			if err := A.sys.AddPseudoSites(pt.Name, tuple); err != nil {
				return err
			}
		}
	}
	ttop := A.tpl.Top
	for {
		added := false
		for i, at := range ttop.Atoms {
			if !at.Pseudo() || A.tmap[i] >= 0 {
				continue
			}
			parent := -1
			for _, n := range ttop.Neighbors(i) {
				if A.tmap[n] >= 0 {
					parent = A.tmap[n]
					break
				}
			}
			if parent < 0 {
				continue
			}
			if _, err := A.addPseudo(i, parent); err != nil {
				return err
			}
			added = true
		}
		if !added {
			return nil
		}
	}
}

func isDrude(name string) bool {
	return strings.HasPrefix(name, "drude")
}

// addPseudo creates the target particle for the template pseudo tid, in the
// residue of the target atom parent, and bonds it to the target images of
// its template neighbors that already exist.
func (A *assignment) addPseudo(tid, parent int) (int, error) {
	if id := A.tmap[tid]; id >= 0 {
		return id, nil
	}
	top, ttop := A.sys.Top, A.tpl.Top
	par := top.Atom(parent)
	at := ttop.Atom(tid).Copy()
	at.MolID, at.MolName, at.Chain = par.MolID, par.MolName, par.Chain
	at.ID = top.Len() + 1
	id := top.AddAtom(at)
	A.tmap[tid] = id
	A.sys.SetTypes(id, A.tpl.BType(tid), A.tpl.NBType(tid), A.tpl.PSet(tid))
	A.sys.AddTypedAtom(id)
	A.assigned = append(A.assigned, id)
	for _, n := range ttop.Neighbors(tid) {
		target := A.tmap[n]
		if target < 0 {
			if ttop.Atom(n).AtomicNumber != 0 {
				return -1, chem.Errorf(chem.ErrBadAssignment, "addPseudo", "pseudo %d of template %s is bonded to atom %d, which is not in the system", tid, A.tpl.Name, n)
			}
			//bonded to a pseudo not yet created, the bond is added then.
			continue
		}
		if _, err := top.AddBond(id, target, 1); err != nil {
			return -1, err
		}
		if err := A.sys.SetAromatic(id, target, false); err != nil {
			return -1, err
		}
	}
	return id, nil
}
