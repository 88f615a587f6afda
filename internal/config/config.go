/*
 * config.go, part of gochemff.
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

// Package config loads the settings of the gochemff command from a YAML
// file, with GOCHEMFF_* environment variables taking precedence.
package config

import (
	"fmt"
	"strings"
)

// TypingConfig controls template typing and the handling of failures.
type TypingConfig struct {
	// Fatal makes unmatched residues and tuples errors instead of warnings.
	Fatal          bool `mapstructure:"fatal"`
	RenameAtoms    bool `mapstructure:"rename_atoms"`
	RenameResidues bool `mapstructure:"rename_residues"`
	MatchBondOrder bool `mapstructure:"match_bond_order"`
}

// MatchingConfig controls parameter matching.
type MatchingConfig struct {
	// Hierarchical enables the atom type parent relations given by the job.
	Hierarchical bool `mapstructure:"hierarchical"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config is the root configuration.
type Config struct {
	Typing   TypingConfig   `mapstructure:"typing"`
	Matching MatchingConfig `mapstructure:"matching"`
	// Plugins are run in this order.
	Plugins []string      `mapstructure:"plugins"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks the fully populated Config.
func (c *Config) Validate() error {
	var errs []string
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Sprintf("log.format %q is not json or console", c.Log.Format))
	}
	if len(c.Plugins) == 0 {
		errs = append(errs, "plugins must not be empty")
	}
	seen := make(map[string]bool, len(c.Plugins))
	for _, p := range c.Plugins {
		if p == "" {
			errs = append(errs, "plugins: empty plugin name")
			continue
		}
		if seen[p] {
			errs = append(errs, fmt.Sprintf("plugins: %q appears more than once", p))
		}
		seen[p] = true
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
