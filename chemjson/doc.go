/*
 * doc.go, part of gochemff.
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

// Package chemjson implements the unserialization of gochemff jobs.
// A job carries a molecule, the templates and parameter tables of
// a force field, and the parent relations among its atom types, so
// an external program can hand a whole parametrization to a gochemff
// program, for instance through a pipe. It is a convenience format
// for that exchange, not a way of storing force fields.
package chemjson
