// SPDX-License-Identifier: MIT

package butterfly_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nipinghe/fmmtl/butterfly"
	"github.com/nipinghe/fmmtl/chebyshev"
	"github.com/nipinghe/fmmtl/geom"
	"github.com/nipinghe/fmmtl/kernel"
	"github.com/nipinghe/fmmtl/tree"
)

// cube returns [lo, lo+1]^dim with axis 0 shifted by shift.
func cube(tb testing.TB, dim int, shift float64) geom.Box {
	tb.Helper()
	center := make(geom.Point, dim)
	extents := make(geom.Point, dim)
	for d := range center {
		center[d] = 0.5
		extents[d] = 0.5
	}
	center[0] += shift
	box, err := geom.NewBox(center, extents)
	require.NoError(tb, err)

	return box
}

func randomPoints(rng *rand.Rand, box geom.Box, n int) []geom.Point {
	out := make([]geom.Point, n)
	for i := range out {
		x := make(geom.Point, box.Dim())
		for d := range x {
			x[d] = 2*rng.Float64() - 1
		}
		out[i] = box.Place(make(geom.Point, box.Dim()), x)
	}

	return out
}

func randomCharges(rng *rand.Rand, n int) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(2*rng.Float64()-1, 2*rng.Float64()-1)
	}

	return out
}

// cellCenters returns the side^2 cell centers of box, axis 0 fastest.
func cellCenters(box geom.Box, side int) []geom.Point {
	out := make([]geom.Point, 0, side*side)
	for j := 0; j < side; j++ {
		for i := 0; i < side; i++ {
			x := geom.Point{
				(2*float64(i)+1)/float64(side) - 1,
				(2*float64(j)+1)/float64(side) - 1,
			}
			out = append(out, box.Place(make(geom.Point, 2), x))
		}
	}

	return out
}

func ones(n int) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		out[i] = 1
	}

	return out
}

func direct(tb testing.TB, k kernel.Kernel, targets, sources []geom.Point, charges []complex128) []complex128 {
	tb.Helper()
	want := make([]complex128, len(targets))
	require.NoError(tb, kernel.Direct(k, targets, sources, charges, want))

	return want
}

func relErr(tb testing.TB, got, want []complex128) float64 {
	tb.Helper()
	e, err := butterfly.MaxRelativeError(got, want)
	require.NoError(tb, err)

	return e
}

// fixture wires Operators over two trees built on the same bounds, without a
// Plan, for driving individual operators.
type fixture struct {
	op *butterfly.Operators
}

func newFixture(tb testing.TB, k kernel.Kernel, depth, order int, sources, targets []geom.Point,
	srcBounds, tgtBounds geom.Box) *fixture {
	tb.Helper()
	src, err := tree.Build(sources, depth, tree.WithBounds(srcBounds))
	require.NoError(tb, err)
	tgt, err := tree.Build(targets, depth, tree.WithBounds(tgtBounds))
	require.NoError(tb, err)
	basis, err := chebyshev.NewBasis(srcBounds.Dim(), order)
	require.NoError(tb, err)
	multipole, err := butterfly.NewTable(src.NumBoxes(), basis.Size())
	require.NoError(tb, err)
	local, err := butterfly.NewTable(tgt.NumBoxes(), basis.Size())
	require.NoError(tb, err)

	return &fixture{op: &butterfly.Operators{
		Basis:     basis,
		Kernel:    k,
		Source:    src,
		Target:    tgt,
		Sources:   tree.Gather(src, sources),
		Charges:   ones(len(sources)),
		Targets:   tree.Gather(tgt, targets),
		Results:   make([]complex128, len(targets)),
		Multipole: multipole,
		Local:     local,
	}}
}

// allocMultipole sizes the multipole slots of source level lmax−L for target level L.
func (f *fixture) allocMultipole(L int) {
	lmax := f.op.Depth()
	boxes, _ := f.op.Source.Level(lmax - L)
	for _, b := range boxes {
		f.op.Multipole.Allocate(b.ID, f.op.Target.LevelSize(L))
	}
}

// allocLocal sizes the local slots of target level L for source level lmax−L.
func (f *fixture) allocLocal(L int) {
	lmax := f.op.Depth()
	boxes, _ := f.op.Target.Level(L)
	for _, b := range boxes {
		f.op.Local.Allocate(b.ID, f.op.Source.LevelSize(lmax-L))
	}
}

func (f *fixture) level(tb testing.TB, t *tree.Tree, l int) []tree.Box {
	tb.Helper()
	boxes, err := t.Level(l)
	require.NoError(tb, err)

	return boxes
}
