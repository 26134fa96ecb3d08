// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package report

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes construction/query counters via a Prometheus registry, for
// the optional -metrics-addr flag used by long-running benchmark harnesses
// that repeatedly invoke the CLI (spec §11 domain-stack wiring).
type Metrics struct {
	reg         *prometheus.Registry
	queries     prometheus.Counter
	constructMS prometheus.Gauge
}

// NewMetrics constructs a Metrics registry with counters for the given algo
// ("pd" or "rmq").
func NewMetrics(algo string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		queries: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pdrmq_queries_total",
			Help:        "Total number of queries answered.",
			ConstLabels: prometheus.Labels{"algo": algo},
		}),
		constructMS: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "pdrmq_construct_duration_ms",
			Help:        "Construction wall-clock duration in milliseconds.",
			ConstLabels: prometheus.Labels{"algo": algo},
		}),
	}
	reg.MustRegister(m.queries)
	reg.MustRegister(m.constructMS)
	return m
}

// IncQueries increments the query counter by n.
func (m *Metrics) IncQueries(n int) { m.queries.Add(float64(n)) }

// SetConstructMillis records the construction duration.
func (m *Metrics) SetConstructMillis(ms int64) { m.constructMS.Set(float64(ms)) }

// Serve starts a blocking HTTP server exposing the registry at /metrics.
// Callers typically run this in a goroutine from the CLI's -metrics-addr
// flag handler.
func (m *Metrics) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	return http.ListenAndServe(addr, mux)
}
