/*
 * type.go, part of gochemff.
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

package cli

import (
	"bufio"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rmera/gochemff/chemjson"
	"github.com/rmera/gochemff/forcefield"
	"github.com/rmera/gochemff/internal/logging"
	"github.com/rmera/gochemff/matcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type typeOptions struct {
	oneBased int
}

func newTypeCommand(root *RootOptions) *cobra.Command {
	opts := &typeOptions{}
	cmd := &cobra.Command{
		Use:   "type JOB",
		Short: "Type and parametrize the molecule of a JSON job",
		Long: "type reads a JSON job (gzip compressed if its name ends in .gz) with a\n" +
			"molecule, templates and parameter tables, and prints the term tables.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runType(cmd, root, opts, args[0])
		},
	}
	cmd.Flags().IntVar(&opts.oneBased, "one-based", 1, "number added to every atom index in the output")
	return cmd
}

func runType(cmd *cobra.Command, root *RootOptions, opts *typeOptions, jobFile string) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	log := logging.NewWithWriter(cfg.Log, cmd.ErrOrStderr())
	defer log.Sync()

	job, err := chemjson.ReadJob(jobFile)
	if err != nil {
		return err
	}
	sys, err := job.System()
	if err != nil {
		return err
	}
	rules := forcefield.Rules{Fatal: cfg.Typing.Fatal, Plugins: cfg.Plugins}
	ff, err := job.Forcefield(rules, cfg.Typing.MatchBondOrder, cfg.Matching.Hierarchical)
	if err != nil {
		return err
	}
	var reg *prometheus.Registry
	var stats *matcher.Stats
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		if stats, err = matcher.NewStats(reg); err != nil {
			return err
		}
	}
	res, err := forcefield.Parametrize(sys, ff, forcefield.Options{
		RenameAtoms:    cfg.Typing.RenameAtoms,
		RenameResidues: cfg.Typing.RenameResidues,
		Logger:         log.With(zap.String("job", jobFile)),
		Stats:          stats,
	})
	if err != nil {
		return err
	}
	out := bufio.NewWriter(cmd.OutOrStdout())
	if err := res.Print(out, ff, opts.oneBased); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}
	if reg != nil {
		return logStats(log, reg)
	}
	return nil
}

// logStats logs every non-zero matcher counter in reg.
func logStats(log *zap.Logger, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			v := m.GetCounter().GetValue()
			if v == 0 {
				continue
			}
			fields := []zap.Field{zap.String("metric", f.GetName()), zap.Float64("count", v)}
			for _, l := range m.GetLabel() {
				fields = append(fields, zap.String(l.GetName(), l.GetValue()))
			}
			log.Info("matcher statistics", fields...)
		}
	}
	return nil
}
