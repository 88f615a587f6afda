/*
 * registry.go, part of gochemff.
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
	"fmt"

	chem "github.com/rmera/gochemff"
	"github.com/rmera/gochemff/isomorph"
)

type entry struct {
	tpl     *Template
	g       *isomorph.Dense
	nodes   []int
	sig     string
	formula string
}

// Registry holds the templates of a force field. Templates are kept in the
// order they were added, and bucketed by the signature of their bond graph.
// Names are not unique, and are never used to match.
// A Registry can be read concurrently, but adding or removing templates
// while matching is not safe.
type Registry struct {
	bondOrders bool
	entries    []*entry
	bySig      map[string][]*entry
}

// NewRegistry returns an empty registry. If matchBondOrder is true, the
// bond orders of templates and residues have to agree for them to match.
func NewRegistry(matchBondOrder bool) *Registry {
	return &Registry{bondOrders: matchBondOrder, bySig: make(map[string][]*entry)}
}

// MatchBondOrder returns true if bond orders are taken into account.
func (R *Registry) MatchBondOrder() bool {
	return R.bondOrders
}

// Len returns the number of templates in the registry.
func (R *Registry) Len() int {
	return len(R.entries)
}

// Add checks tpl and adds it to the registry. tpl is considered frozen
// from then on.
func (R *Registry) Add(tpl *Template) error {
	if tpl == nil {
		return fmt.Errorf("typer: can't add a nil template")
	}
	for _, e := range R.entries {
		if e.tpl == tpl {
			return fmt.Errorf("typer: template %s already in the registry", tpl.Name)
		}
	}
	if err := checkTemplate(tpl); err != nil {
		return chem.Decorate(err, "Registry.Add")
	}
	g, nodes := tpl.graph(R.bondOrders)
	e := &entry{tpl: tpl, g: g, nodes: nodes, sig: isomorph.Signature(g), formula: tpl.Formula()}
	R.entries = append(R.entries, e)
	R.bySig[e.sig] = append(R.bySig[e.sig], e)
	return nil
}

// checkTemplate makes sure every placeholder has exactly one bond, to a real
// atom, and that the pseudo sites are in range and start with a pseudo.
func checkTemplate(tpl *Template) error {
	top := tpl.Top
	for i, at := range top.Atoms {
		if at.AtomicNumber != -1 {
			continue
		}
		nb := top.Neighbors(i)
		if len(nb) != 1 || top.Atom(nb[0]).AtomicNumber <= 0 {
			return chem.Errorf(chem.ErrBadAssignment, "checkTemplate", "external atom %d of template %s must be bonded to exactly one real atom", i, tpl.Name)
		}
	}
	for _, pt := range tpl.pseudoTypes {
		for _, sites := range pt.Sites {
			for _, v := range sites {
				if v < 0 || v >= top.Len() {
					return chem.Errorf(chem.ErrBadAssignment, "checkTemplate", "pseudo type %s of template %s references atom %d, out of range", pt.Name, tpl.Name, v)
				}
			}
			if len(sites) < 2 || !top.Atom(sites[0]).Pseudo() {
				return chem.Errorf(chem.ErrBadAssignment, "checkTemplate", "sites %v of pseudo type %s in template %s must start with a pseudo particle and have a parent", sites, pt.Name, tpl.Name)
			}
		}
	}
	return nil
}

// Remove takes tpl out of the registry.
func (R *Registry) Remove(tpl *Template) error {
	for i, e := range R.entries {
		if e.tpl != tpl {
			continue
		}
		R.entries = append(R.entries[:i], R.entries[i+1:]...)
		bucket := R.bySig[e.sig]
		for j, v := range bucket {
			if v == e {
				bucket = append(bucket[:j], bucket[j+1:]...)
				break
			}
		}
		if len(bucket) == 0 {
			delete(R.bySig, e.sig)
		} else {
			R.bySig[e.sig] = bucket
		}
		return nil
	}
	return fmt.Errorf("typer: can't remove template: template not found")
}

// Templates returns all the templates, in the order they were added.
func (R *Registry) Templates() []*Template {
	ret := make([]*Template, 0, len(R.entries))
	for _, e := range R.entries {
		ret = append(ret, e.tpl)
	}
	return ret
}

// FindByName returns the templates called name.
func (R *Registry) FindByName(name string) []*Template {
	var ret []*Template
	for _, e := range R.entries {
		if e.tpl.Name == name {
			ret = append(ret, e.tpl)
		}
	}
	return ret
}

func (R *Registry) candidates(sig string) []*entry {
	return R.bySig[sig]
}
