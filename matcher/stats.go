/*
 * stats.go, part of gochemff.
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
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Stats exports how often each row of each table is matched. One Stats can
// be shared by all the matchers of a force field.
type Stats struct {
	matches *prometheus.CounterVec
	misses  *prometheus.CounterVec
}

// NewStats creates the counters and registers them with reg.
func NewStats(reg prometheus.Registerer) (*Stats, error) {
	S := &Stats{
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gochemff",
			Subsystem: "matcher",
			Name:      "matches_total",
			Help:      "Number of tuples matched to each parameter row.",
		}, []string{"table", "row"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gochemff",
			Subsystem: "matcher",
			Name:      "misses_total",
			Help:      "Number of tuples for which no parameter row was found.",
		}, []string{"table"}),
	}
	for _, c := range []prometheus.Collector{S.matches, S.misses} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return S, nil
}

func (S *Stats) observe(table string, row RowID) {
	if S == nil {
		return
	}
	if row == BadRow {
		S.misses.WithLabelValues(table).Inc()
		return
	}
	S.matches.WithLabelValues(table, strconv.FormatInt(int64(row), 10)).Inc()
}

// Matches returns the counter for the given table and row.
func (S *Stats) Matches(table string, row RowID) prometheus.Counter {
	return S.matches.WithLabelValues(table, strconv.FormatInt(int64(row), 10))
}

// Misses returns the no-match counter for the given table.
func (S *Stats) Misses(table string) prometheus.Counter {
	return S.misses.WithLabelValues(table)
}
