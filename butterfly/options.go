// SPDX-License-Identifier: MIT

// Functional configuration for Plan. This file defines:
//   - documented defaults (constants),
//   - WithX constructors that panic on nonsensical values (programmer error),
//   - gatherOptions, which resolves a ...Option list into plan settings.
package butterfly

import (
	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/klog/v2"

	"github.com/nipinghe/fmmtl/geom"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultOrder is the number of Chebyshev nodes per axis (Q).
	DefaultOrder = 4

	// DefaultDepth is the tree depth L_max.
	DefaultDepth = 2

	// DefaultWorkers runs every pass sequentially.
	DefaultWorkers = 1

	// AutoSplit selects the split level L_max/2.
	AutoSplit = -1
)

// ---------- Internal panic messages ----------

const (
	panicOrderInvalid   = "butterfly: WithOrder: order must be >= 1"
	panicDepthInvalid   = "butterfly: WithDepth: depth must be >= 0"
	panicSplitInvalid   = "butterfly: WithSplitLevel: split must be >= 0 or AutoSplit"
	panicWorkersInvalid = "butterfly: WithWorkers: workers must be >= 1"
)

// Option configures NewPlan.
type Option func(*options)

type options struct {
	order   int
	depth   int
	split   int
	workers int

	logger   klog.Logger
	registry prometheus.Registerer

	sourceBounds *geom.Box
	targetBounds *geom.Box
}

// WithOrder sets Q, the Chebyshev nodes per axis. Panics if order < 1.
func WithOrder(order int) Option {
	if order < 1 {
		panic(panicOrderInvalid)
	}

	return func(o *options) { o.order = order }
}

// WithDepth sets L_max for both trees. Panics if depth < 0.
func WithDepth(depth int) Option {
	if depth < 0 {
		panic(panicDepthInvalid)
	}

	return func(o *options) { o.depth = depth }
}

// WithSplitLevel sets the target level at which M2L runs. AutoSplit picks
// L_max/2; a value above L_max is rejected by NewPlan with ErrInvalidSplit.
func WithSplitLevel(split int) Option {
	if split < 0 && split != AutoSplit {
		panic(panicSplitInvalid)
	}

	return func(o *options) { o.split = split }
}

// WithWorkers bounds the goroutines used inside one pass. Panics if workers < 1.
func WithWorkers(workers int) Option {
	if workers < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = workers }
}

// WithLogger sets the structured logger (default klog.Background()).
func WithLogger(logger klog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics registers pass counters and durations with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registry = reg }
}

// WithSourceBounds fixes the source root box (see tree.WithBounds).
func WithSourceBounds(b geom.Box) Option {
	return func(o *options) { o.sourceBounds = &b }
}

// WithTargetBounds fixes the target root box (see tree.WithBounds).
func WithTargetBounds(b geom.Box) Option {
	return func(o *options) { o.targetBounds = &b }
}

func gatherOptions(opts []Option) options {
	o := options{
		order:   DefaultOrder,
		depth:   DefaultDepth,
		split:   AutoSplit,
		workers: DefaultWorkers,
		logger:  klog.Background(),
	}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
