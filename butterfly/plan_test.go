// SPDX-License-Identifier: MIT

package butterfly_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/nipinghe/fmmtl/butterfly"
	"github.com/nipinghe/fmmtl/geom"
	"github.com/nipinghe/fmmtl/kernel"
)

//---------------------------------------------------------------------------//
// Accuracy
//---------------------------------------------------------------------------//

// TestApply_IdentityIsExact: with K ≡ 1 every target receives Σ q for any
// dimension, depth and split level.
func TestApply_IdentityIsExact(t *testing.T) {
	for dim := 1; dim <= 3; dim++ {
		for depth := 0; depth <= 3; depth++ {
			for split := 0; split <= depth; split++ {
				t.Run(fmt.Sprintf("D=%d/L=%d/split=%d", dim, depth, split), func(t *testing.T) {
					rng := rand.New(rand.NewSource(int64(100*dim + 10*depth + split)))
					src := randomPoints(rng, cube(t, dim, 0), 37)
					tgt := randomPoints(rng, cube(t, dim, 2), 23)
					q := randomCharges(rng, len(src))

					plan, err := butterfly.NewPlan(kernel.Identity{}, src, tgt,
						butterfly.WithOrder(3), butterfly.WithDepth(depth), butterfly.WithSplitLevel(split))
					require.NoError(t, err)
					got, err := plan.Apply(context.Background(), q)
					require.NoError(t, err)

					var sum complex128
					for _, v := range q {
						sum += v
					}
					for i, r := range got {
						require.InDelta(t, real(sum), real(r), 1e-11, "target %d", i)
						require.InDelta(t, imag(sum), imag(r), 1e-11, "target %d", i)
					}
				})
			}
		}
	}
}

// radialScenario: 16 unit sources at the cell centers of [0,1]², 16 targets
// at the cell centers of [3,4]×[0,1], trees pinned to those squares.
func radialScenario(t *testing.T, order int) float64 {
	t.Helper()
	srcBox, tgtBox := cube(t, 2, 0), cube(t, 2, 3)
	src, tgt := cellCenters(srcBox, 4), cellCenters(tgtBox, 4)
	q := ones(len(src))
	k := kernel.Radial{Omega: 2}

	plan, err := butterfly.NewPlan(k, src, tgt,
		butterfly.WithOrder(order), butterfly.WithDepth(2), butterfly.WithSplitLevel(1),
		butterfly.WithSourceBounds(srcBox), butterfly.WithTargetBounds(tgtBox))
	require.NoError(t, err)
	got, err := plan.Apply(context.Background(), q)
	require.NoError(t, err)

	return relErr(t, got, direct(t, k, tgt, src, q))
}

func TestApply_RadialScenario(t *testing.T) {
	require.Less(t, radialScenario(t, 4), 1e-4)
}

// TestApply_ConvergesWithOrder: the error falls (near-)monotonically in Q.
func TestApply_ConvergesWithOrder(t *testing.T) {
	var errs []float64
	for q := 2; q <= 7; q++ {
		errs = append(errs, radialScenario(t, q))
	}
	for i := 1; i < len(errs); i++ {
		require.LessOrEqual(t, errs[i], 1.5*errs[i-1], "Q=%d after Q=%d: %v", i+2, i+1, errs)
	}
	require.Less(t, errs[len(errs)-1], 1e-6)
	require.Greater(t, errs[0]/errs[len(errs)-1], 1e3)
}

func TestApply_FourierKernel(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	box := cube(t, 2, 0)
	src, tgt := randomPoints(rng, box, 40), randomPoints(rng, box, 40)
	q := randomCharges(rng, len(src))
	k := kernel.Fourier{Omega: 8}

	plan, err := butterfly.NewPlan(k, src, tgt,
		butterfly.WithOrder(6), butterfly.WithDepth(3),
		butterfly.WithSourceBounds(box), butterfly.WithTargetBounds(box))
	require.NoError(t, err)
	require.Equal(t, 1, plan.SplitLevel()) // depth/2
	got, err := plan.Apply(context.Background(), q)
	require.NoError(t, err)

	require.Less(t, relErr(t, got, direct(t, k, tgt, src, q)), 1e-5)
}

//---------------------------------------------------------------------------//
// Driver behavior
//---------------------------------------------------------------------------//

func TestApply_ParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	src := randomPoints(rng, cube(t, 2, 0), 200)
	tgt := randomPoints(rng, cube(t, 2, 3), 150)
	q := randomCharges(rng, len(src))
	k := kernel.Radial{Omega: 4}

	run := func(workers int) []complex128 {
		plan, err := butterfly.NewPlan(k, src, tgt,
			butterfly.WithOrder(4), butterfly.WithDepth(3), butterfly.WithWorkers(workers))
		require.NoError(t, err)
		got, err := plan.Apply(context.Background(), q)
		require.NoError(t, err)
		return got
	}
	require.Equal(t, run(1), run(4)) // disjoint writes: bitwise identical
}

func TestApply_ResultsInInputOrder(t *testing.T) {
	srcBox, tgtBox := cube(t, 2, 0), cube(t, 2, 3)
	src := []geom.Point{{0.1, 0.1}, {0.9, 0.9}}
	tgt := []geom.Point{{3.9, 0.1}, {3.1, 0.9}, {3.6, 0.6}} // land in different leaves
	q := []complex128{1, 2i}
	k := kernel.Radial{Omega: 1}

	plan, err := butterfly.NewPlan(k, src, tgt, butterfly.WithOrder(8), butterfly.WithDepth(1),
		butterfly.WithSourceBounds(srcBox), butterfly.WithTargetBounds(tgtBox))
	require.NoError(t, err)
	got, err := plan.Apply(context.Background(), q)
	require.NoError(t, err)

	want := direct(t, k, tgt, src, q)
	for i := range want {
		require.InDelta(t, real(want[i]), real(got[i]), 1e-6, "target %d", i)
		require.InDelta(t, imag(want[i]), imag(got[i]), 1e-6, "target %d", i)
	}
}

func TestApply_Cancelled(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	box := cube(t, 2, 0)
	plan, err := butterfly.NewPlan(kernel.Identity{}, randomPoints(rng, box, 10), randomPoints(rng, box, 10))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = plan.Apply(ctx, ones(10))
	require.ErrorIs(t, err, context.Canceled)
}

func TestApply_ChargeLength(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	box := cube(t, 2, 0)
	plan, err := butterfly.NewPlan(kernel.Identity{}, randomPoints(rng, box, 10), randomPoints(rng, box, 10))
	require.NoError(t, err)

	_, err = plan.Apply(context.Background(), ones(9))
	require.ErrorIs(t, err, butterfly.ErrLengthMismatch)
}

func TestApply_Metrics(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	box := cube(t, 2, 0)
	reg := prometheus.NewRegistry()
	plan, err := butterfly.NewPlan(kernel.Identity{}, randomPoints(rng, box, 10), randomPoints(rng, box, 10),
		butterfly.WithDepth(2), butterfly.WithMetrics(reg))
	require.NoError(t, err)
	_, err = plan.Apply(context.Background(), ones(10))
	require.NoError(t, err)

	// S2M, M2M, M2L, L2L, L2T each ran once (depth 2, split 1)
	n, err := testutil.GatherAndCount(reg, "fmmtl_pass_total")
	require.NoError(t, err)
	require.Equal(t, 5, n)
}

func TestNewPlan_Errors(t *testing.T) {
	box := cube(t, 2, 0)
	pts := []geom.Point{{0.2, 0.2}, {0.7, 0.4}}

	_, err := butterfly.NewPlan(nil, pts, pts)
	require.ErrorIs(t, err, butterfly.ErrNilCollaborator)

	_, err = butterfly.NewPlan(kernel.Identity{}, pts, pts, butterfly.WithDepth(2), butterfly.WithSplitLevel(3))
	require.ErrorIs(t, err, butterfly.ErrInvalidSplit)

	_, err = butterfly.NewPlan(kernel.Identity{}, pts, []geom.Point{{0, 0, 0}})
	require.ErrorIs(t, err, butterfly.ErrDimensionMismatch)

	_, err = butterfly.NewPlan(kernel.Identity{}, nil, pts)
	require.Error(t, err) // empty source tree without bounds

	_, err = butterfly.NewPlan(kernel.Identity{}, []geom.Point{{5, 5}}, pts, butterfly.WithSourceBounds(box))
	require.Error(t, err) // source outside pinned bounds
}

func TestOptions_Panics(t *testing.T) {
	require.Panics(t, func() { butterfly.WithOrder(0) })
	require.Panics(t, func() { butterfly.WithDepth(-1) })
	require.Panics(t, func() { butterfly.WithSplitLevel(-2) })
	require.Panics(t, func() { butterfly.WithWorkers(0) })
	require.NotPanics(t, func() { butterfly.WithSplitLevel(butterfly.AutoSplit) })
}

func TestPlan_Accessors(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	box := cube(t, 3, 0)
	plan, err := butterfly.NewPlan(kernel.Identity{}, randomPoints(rng, box, 8), randomPoints(rng, box, 8),
		butterfly.WithOrder(2), butterfly.WithDepth(3), butterfly.WithWorkers(2))
	require.NoError(t, err)
	require.Equal(t, 3, plan.Depth())
	require.Equal(t, 1, plan.SplitLevel())
	require.Equal(t, 2, plan.Workers())
	require.Equal(t, 8, plan.Basis().Size())
	require.Equal(t, 8, plan.Source().NumBodies())
	require.Equal(t, 8, plan.Target().Arity())
}

//---------------------------------------------------------------------------//
// MaxRelativeError
//---------------------------------------------------------------------------//

func TestMaxRelativeError(t *testing.T) {
	e, err := butterfly.MaxRelativeError([]complex128{1, 2.5}, []complex128{1, 2})
	require.NoError(t, err)
	require.InDelta(t, 0.25, e, 1e-15)

	e, err = butterfly.MaxRelativeError([]complex128{1i}, []complex128{0})
	require.NoError(t, err)
	require.InDelta(t, 1, e, 1e-15) // absolute when want is zero

	e, err = butterfly.MaxRelativeError(nil, nil)
	require.NoError(t, err)
	require.Zero(t, e)

	_, err = butterfly.MaxRelativeError([]complex128{1}, nil)
	require.ErrorIs(t, err, butterfly.ErrLengthMismatch)
}
