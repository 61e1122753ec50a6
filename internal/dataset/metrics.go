/*
 * metrics.go, part of qm9.
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

package dataset

import "github.com/prometheus/client_golang/prometheus"

//Metrics counts what a Cache does.
type Metrics struct {
	Decoded       prometheus.Counter
	Skipped       prometheus.Counter
	FetchBytes    prometheus.Counter
	Loads         prometheus.Counter
	BuildDuration prometheus.Histogram
}

//NewMetrics creates the collectors and registers them with reg. If reg is
//nil, the collectors still work but nobody can scrape them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Decoded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qm9_records_decoded_total",
			Help: "XYZ files decoded into records.",
		}),
		Skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qm9_records_skipped_total",
			Help: "XYZ files skipped because they could not be decoded.",
		}),
		FetchBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qm9_fetch_bytes_total",
			Help: "Bytes of raw archive downloaded.",
		}),
		Loads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qm9_cache_loads_total",
			Help: "Times the processed dataset was loaded instead of built.",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "qm9_build_duration_seconds",
			Help:    "Time taken to fetch, extract, parse and persist the dataset.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Decoded, m.Skipped, m.FetchBytes, m.Loads, m.BuildDuration)
	}
	return m
}
