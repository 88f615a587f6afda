/*
 * doc.go, part of gochemff.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

/*
Package chem is the main package of gochemff. It provides the atom, bond and topology
structures on which force-field parameters are assigned, and the error type used
across the library.

	**gochemff packages**

	chem (this one): atoms, bonds, residues, formulas and errors.

	chemgraph: decomposition of a topology into connected fragments.

	pattern: the (atoms, bonds, flags) patterns used to match parameter tables,
	the functions that build them from systems and from table type strings, and
	the permutations of a pattern.

	matcher: selection of the parameter table row that best applies to a tuple
	of atoms.

	isomorph: labeled graph isomorphism.

	typer: residue templates and their assignment to a molecule by graph
	isomorphism.

	forcefield: parameter tables, rules and plugins, and the driver that
	parametrizes a whole system.

	chemjson: the JSON job format read by the gochemff command.

The gochemff command itself lives in cmd/gochemff.
*/
package chem
