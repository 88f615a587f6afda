/*
 * catalog.go, part of gochemff.
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

package pattern

import (
	"fmt"
	"sort"
)

// SystemToPatternFunc turns a function into a named SystemToPattern.
func SystemToPatternFunc(name string, f func(System, []int) Pattern) SystemToPattern {
	return stpFunc{name: name, f: f}
}

type stpFunc struct {
	name string
	f    func(System, []int) Pattern
}

func (S stpFunc) Name() string                          { return S.name }
func (S stpFunc) Build(sys System, atoms []int) Pattern { return S.f(sys, atoms) }

// TypeToPatternFunc turns a function into a named TypeToPattern.
func TypeToPatternFunc(name string, f func(string) Pattern) TypeToPattern {
	return ttpFunc{name: name, f: f}
}

type ttpFunc struct {
	name string
	f    func(string) Pattern
}

func (T ttpFunc) Name() string             { return T.name }
func (T ttpFunc) Parse(typ string) Pattern { return T.f(typ) }

// Catalog holds named pattern builders and permutations. Capabilities are
// always looked up, and compared, by the name they were registered with.
// A Catalog is not safe for concurrent registration.
type Catalog struct {
	stp   map[string]SystemToPattern
	ttp   map[string]TypeToPattern
	perms map[string]Permutation
}

// NewCatalog returns a catalog with all the built-in builders and permutations.
func NewCatalog() *Catalog {
	C := &Catalog{
		stp:   make(map[string]SystemToPattern),
		ttp:   make(map[string]TypeToPattern),
		perms: make(map[string]Permutation),
	}
	for _, v := range []SystemToPattern{NBType{}, BType{}, Bonded{}, BondToFirst{}, PseudoBType{}, PseudoBondToFirst{}, PseudoBondToSecond{}} {
		C.stp[v.Name()] = v
	}
	for _, v := range []TypeToPattern{Default{}, Pseudo{}} {
		C.ttp[v.Name()] = v
	}
	for _, v := range append(Impropers(), Reverse) {
		C.perms[v.Name()] = v
	}
	return C
}

// RegisterSystemToPattern adds s to the catalog under its name.
// It fails if the name is taken.
func (C *Catalog) RegisterSystemToPattern(s SystemToPattern) error {
	if _, ok := C.stp[s.Name()]; ok {
		return fmt.Errorf("system-to-pattern builder %q already registered", s.Name())
	}
	C.stp[s.Name()] = s
	return nil
}

// RegisterTypeToPattern adds t to the catalog under its name.
// It fails if the name is taken.
func (C *Catalog) RegisterTypeToPattern(t TypeToPattern) error {
	if _, ok := C.ttp[t.Name()]; ok {
		return fmt.Errorf("type-to-pattern builder %q already registered", t.Name())
	}
	C.ttp[t.Name()] = t
	return nil
}

// RegisterPermutation adds p to the catalog under its name.
// It fails if the name is taken.
func (C *Catalog) RegisterPermutation(p Permutation) error {
	if _, ok := C.perms[p.Name()]; ok {
		return fmt.Errorf("permutation %q already registered", p.Name())
	}
	C.perms[p.Name()] = p
	return nil
}

func (C *Catalog) SystemToPattern(name string) (SystemToPattern, error) {
	s, ok := C.stp[name]
	if !ok {
		return nil, fmt.Errorf("unknown system-to-pattern builder %q", name)
	}
	return s, nil
}

func (C *Catalog) TypeToPattern(name string) (TypeToPattern, error) {
	t, ok := C.ttp[name]
	if !ok {
		return nil, fmt.Errorf("unknown type-to-pattern builder %q", name)
	}
	return t, nil
}

// Permutations returns the permutations with the given names, in order.
func (C *Catalog) Permutations(names ...string) ([]Permutation, error) {
	ret := make([]Permutation, 0, len(names))
	for _, v := range names {
		p, ok := C.perms[v]
		if !ok {
			return nil, fmt.Errorf("unknown permutation %q", v)
		}
		ret = append(ret, p)
	}
	return ret, nil
}

// PermutationNames returns the names of all registered permutations, sorted.
func (C *Catalog) PermutationNames() []string {
	ret := make([]string, 0, len(C.perms))
	for k := range C.perms {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
