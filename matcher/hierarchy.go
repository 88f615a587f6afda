/*
 * hierarchy.go, part of gochemff.
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
)

// Hierarchy gives the chain of ancestors of an atom type, starting at its root
// and ending with the type itself. The depth of a type in the chain is its
// index (0 for the root).
type Hierarchy interface {
	Ancestors(typ string) []string
}

// Flat is the hierarchy in which every type is its own root.
type Flat struct{}

func (Flat) Ancestors(typ string) []string {
	return []string{typ}
}

// Tree is a single-inheritance forest of atom types. Types
// that were never given a parent are roots.
type Tree struct {
	parent map[string]string
}

func NewTree() *Tree {
	return &Tree{parent: make(map[string]string)}
}

// SetParent makes parent the direct ancestor of child. A type can only have
// one parent, and no type can be its own ancestor.
func (T *Tree) SetParent(child, parent string) error {
	if p, ok := T.parent[child]; ok && p != parent {
		return fmt.Errorf("type %q already has parent %q, can't add %q: multiple parents are not supported", child, p, parent)
	}
	if slices.Contains(T.Ancestors(parent), child) {
		return fmt.Errorf("making %q the parent of %q would create a cycle", parent, child)
	}
	T.parent[child] = parent
	return nil
}

// Ancestors returns the chain [root..typ].
func (T *Tree) Ancestors(typ string) []string {
	ret := []string{typ}
	for p, ok := T.parent[typ]; ok; p, ok = T.parent[p] {
		ret = append(ret, p)
	}
	slices.Reverse(ret)
	return ret
}

// Depth returns the depth of typ in the tree, 0 for a root.
func (T *Tree) Depth(typ string) int {
	return len(T.Ancestors(typ)) - 1
}
