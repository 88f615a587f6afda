/*
 * defaults.go, part of gochemff.
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

package config

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// DefaultPlugins are the plugins run when none are configured.
var DefaultPlugins = []string{"bonds", "angles", "propers", "impropers", "vdw1", "virtuals"}

// ApplyDefaults fills the zero-value fields of cfg. Booleans default to
// false and are left alone.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Plugins) == 0 {
		cfg.Plugins = append([]string(nil), DefaultPlugins...)
	}
}
