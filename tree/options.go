// SPDX-License-Identifier: MIT

package tree

import "github.com/nipinghe/fmmtl/geom"

// DefaultPadding is the half extent used for an axis on which every point
// shares one coordinate (and no other axis has a positive extent).
const DefaultPadding = 0.5

// Option configures Build.
type Option func(*options)

type options struct {
	bounds    *geom.Box
	hasBounds bool
}

// WithBounds fixes the root box instead of deriving it from the points.
// Two trees built with the same bounds share geometry box for box.
// Panics if bounds is degenerate (programmer error).
func WithBounds(bounds geom.Box) Option {
	b, err := geom.NewBox(bounds.Center, bounds.Extents)
	if err != nil {
		panic("tree: WithBounds: " + err.Error())
	}

	return func(o *options) {
		o.bounds = &b
		o.hasBounds = true
	}
}

func gatherOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
