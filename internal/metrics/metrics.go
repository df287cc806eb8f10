// SPDX-License-Identifier: MIT

// Package metrics records butterfly pass statistics in Prometheus
// collectors. A nil *Recorder is valid and records nothing.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "fmmtl"

// LabelOperator names the transfer operator of a pass (S2M, M2M, ...).
const LabelOperator = "operator"

// Recorder holds the collectors shared by every Plan of one registry.
type Recorder struct {
	invocations *prometheus.CounterVec
	boxes       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	applies     prometheus.Counter
}

// New creates the collectors and registers them with reg. Collectors already
// registered by an earlier New on the same registry are reused, so several
// plans can share one registry.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "pass_total",
			Help:      "Operator passes executed, by operator.",
		}, []string{LabelOperator}),
		boxes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "box_invocations_total",
			Help:      "Per-box operator invocations, by operator.",
		}, []string{LabelOperator}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "pass_duration_seconds",
			Help:      "Wall time of one operator pass, by operator.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}, []string{LabelOperator}),
		applies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "apply_total",
			Help:      "Completed transforms.",
		}),
	}

	var err error
	if r.invocations, err = register(reg, r.invocations); err != nil {
		return nil, err
	}
	if r.boxes, err = register(reg, r.boxes); err != nil {
		return nil, err
	}
	if r.duration, err = register(reg, r.duration); err != nil {
		return nil, err
	}
	if r.applies, err = register(reg, r.applies); err != nil {
		return nil, err
	}

	return r, nil
}

// register adds c to reg, returning the existing collector when an equal one
// is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		return c, err
	}

	return c, nil
}

// ObservePass records one pass of op that visited boxes boxes in d.
func (r *Recorder) ObservePass(op string, boxes int, d time.Duration) {
	if r == nil {
		return
	}
	r.invocations.WithLabelValues(op).Inc()
	r.boxes.WithLabelValues(op).Add(float64(boxes))
	r.duration.WithLabelValues(op).Observe(d.Seconds())
}

// ObserveApply counts one completed transform.
func (r *Recorder) ObserveApply() {
	if r == nil {
		return
	}
	r.applies.Inc()
}
