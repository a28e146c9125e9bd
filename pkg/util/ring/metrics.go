// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ring

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is an EventHandler exporting capacity events to Prometheus. One
// Metrics may serve many buffers; series are labeled by buffer name.
type Metrics struct {
	Grows        *prometheus.CounterVec
	GrowFailures *prometheus.CounterVec
	FullRejects  *prometheus.CounterVec
	Capacity     *prometheus.GaugeVec
}

var _ EventHandler = (*Metrics)(nil)

// NewMetrics creates the ring metrics under the given namespace and registers
// them with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	labels := []string{"ring"}
	m := &Metrics{
		Grows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ring",
			Name:      "grow_total",
			Help:      "Number of times a ring buffer grew its backing array",
		}, labels),
		GrowFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ring",
			Name:      "grow_failures_total",
			Help:      "Number of growth attempts refused by the memory budget",
		}, labels),
		FullRejects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ring",
			Name:      "full_total",
			Help:      "Number of pushes rejected because the buffer was full and locked",
		}, labels),
		Capacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ring",
			Name:      "capacity",
			Help:      "Current number of slots in the ring buffer backing array",
		}, labels),
	}
	for _, c := range []prometheus.Collector{m.Grows, m.GrowFailures, m.FullRejects, m.Capacity} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "registering ring metrics")
		}
	}
	return m, nil
}

// OnGrow implements EventHandler.
func (m *Metrics) OnGrow(_ context.Context, info Info, _, _ int) {
	m.Grows.WithLabelValues(info.Name).Inc()
}

// OnResize implements EventHandler.
func (m *Metrics) OnResize(_ context.Context, info Info, _, newCap int) {
	m.Capacity.WithLabelValues(info.Name).Set(float64(newCap))
}

// OnGrowFailed implements EventHandler.
func (m *Metrics) OnGrowFailed(_ context.Context, info Info, _ error) {
	m.GrowFailures.WithLabelValues(info.Name).Inc()
}

// OnFull implements EventHandler.
func (m *Metrics) OnFull(_ context.Context, info Info) {
	m.FullRejects.WithLabelValues(info.Name).Inc()
}
