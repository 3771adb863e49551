// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"code.hybscloud.com/lfchan/internal/op"
)

// Metrics records benchmark counters on a private Prometheus registry.
// A nil *Metrics records nothing.
type Metrics struct {
	reg      *prometheus.Registry
	ops      *prometheus.CounterVec
	failures *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	samples  prometheus.Histogram
}

// NewMetrics creates and registers the benchmark collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matbench",
			Name:      "operations_total",
			Help:      "Matrix operations executed, by kind.",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matbench",
			Name:      "operation_failures_total",
			Help:      "Matrix operations that returned an error, by kind.",
		}, []string{"kind"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "matbench",
			Name:      "operation_duration_seconds",
			Help:      "Time to execute one matrix operation.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"kind"}),
		samples: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "matbench",
			Name:      "sample_duration_seconds",
			Help:      "Wall time of one benchmark sample.",
			Buckets:   prometheus.ExponentialBuckets(1e-4, 2, 16),
		}),
	}
	m.reg.MustRegister(m.ops, m.failures, m.latency, m.samples)
	return m
}

// Registry returns the registry holding the benchmark collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// ObserveOp records one executed operation.
func (m *Metrics) ObserveOp(k op.Kind, d time.Duration, err error) {
	if m == nil {
		return
	}
	kind := k.String()
	m.ops.WithLabelValues(kind).Inc()
	m.latency.WithLabelValues(kind).Observe(d.Seconds())
	if err != nil {
		m.failures.WithLabelValues(kind).Inc()
	}
}

// ObserveSample records the wall time of one sample.
func (m *Metrics) ObserveSample(d time.Duration) {
	if m == nil {
		return
	}
	m.samples.Observe(d.Seconds())
}

// WriteText writes every collected metric family in the Prometheus text
// exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	mfs, err := m.reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
