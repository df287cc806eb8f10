// SPDX-License-Identifier: MIT

package main

import (
	"math"
	"math/rand"

	"github.com/nipinghe/fmmtl/geom"
	"github.com/nipinghe/fmmtl/internal/config"
)

// scenario is one generated problem: sources in the unit cube, targets in
// the unit cube shifted by Separation along axis 0.
type scenario struct {
	sources, targets []geom.Point
	charges          []complex128

	sourceBounds, targetBounds geom.Box
}

func newScenario(cfg config.Config) (*scenario, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	lo := make(geom.Point, cfg.Dim)
	hi := make(geom.Point, cfg.Dim)
	for d := range hi {
		hi[d] = 1
	}
	srcBounds, err := geom.BoxFromBounds(lo, hi)
	if err != nil {
		return nil, err
	}
	shift := make(geom.Point, cfg.Dim)
	shift[0] = cfg.Separation
	tgtBounds, err := geom.NewBox(srcBounds.Center.Add(shift), srcBounds.Extents.Clone())
	if err != nil {
		return nil, err
	}

	sc := &scenario{sourceBounds: srcBounds, targetBounds: tgtBounds}
	switch cfg.Layout {
	case config.LayoutGrid:
		sc.sources = gridPoints(cfg.Sources, cfg.Dim)
		sc.targets = gridPoints(cfg.Targets, cfg.Dim)
		sc.charges = make([]complex128, cfg.Sources)
		for i := range sc.charges {
			sc.charges[i] = 1
		}
	default:
		sc.sources = randomPoints(rng, cfg.Sources, cfg.Dim)
		sc.targets = randomPoints(rng, cfg.Targets, cfg.Dim)
		sc.charges = make([]complex128, cfg.Sources)
		for i := range sc.charges {
			sc.charges[i] = complex(2*rng.Float64()-1, 2*rng.Float64()-1)
		}
	}
	for i, t := range sc.targets {
		sc.targets[i] = t.Add(shift)
	}

	return sc, nil
}

// gridPoints returns the first n cell centers of the smallest regular grid
// with at least n cells in [0,1]^dim, axis 0 fastest.
func gridPoints(n, dim int) []geom.Point {
	side := int(math.Ceil(math.Pow(float64(n), 1/float64(dim))))
	for pow(side-1, dim) >= n {
		side--
	}
	for pow(side, dim) < n {
		side++
	}
	pts := make([]geom.Point, n)
	for i := range pts {
		p := make(geom.Point, dim)
		rest := i
		for d := range p {
			p[d] = (float64(rest%side) + 0.5) / float64(side)
			rest /= side
		}
		pts[i] = p
	}

	return pts
}

func randomPoints(rng *rand.Rand, n, dim int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		p := make(geom.Point, dim)
		for d := range p {
			p[d] = rng.Float64()
		}
		pts[i] = p
	}

	return pts
}

func pow(b, e int) int {
	r := 1
	for i := 0; i < e; i++ {
		r *= b
	}

	return r
}
