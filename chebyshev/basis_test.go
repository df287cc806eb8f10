// SPDX-License-Identifier: MIT

package chebyshev_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/nipinghe/fmmtl/chebyshev"
	"github.com/nipinghe/fmmtl/geom"
)

// approx compares float64 values up to 1e-12 absolute error.
var approx = cmpopts.EquateApprox(0, 1e-12)

// TestNewBasis_Errors verifies constructor validation through errors.Is.
func TestNewBasis_Errors(t *testing.T) {
	cases := []struct {
		name       string
		dim, order int
		err        error
	}{
		{"ZeroDim", 0, 4, chebyshev.ErrInvalidDimension},
		{"ZeroOrder", 2, 0, chebyshev.ErrInvalidOrder},
		{"TooLarge", 12, 8, chebyshev.ErrBasisTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := chebyshev.NewBasis(tc.dim, tc.order)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

// TestNodesAreChebyshevRoots checks T_Q(x_k) = cos(Q·acos x_k) = 0.
func TestNodesAreChebyshevRoots(t *testing.T) {
	for _, q := range []int{1, 2, 4, 7} {
		b, err := chebyshev.NewBasis(1, q)
		require.NoError(t, err)
		nodes := b.Nodes()
		require.Len(t, nodes, q)
		for k, x := range nodes {
			require.InDelta(t, 0, math.Cos(float64(q)*math.Acos(x)), 1e-12, "Q=%d k=%d", q, k)
			require.True(t, x > -1 && x < 1, "node inside (-1,1)")
		}
	}
}

// TestIndexAxisFastest pins the flat ordering shared by grids and matrices.
func TestIndexAxisFastest(t *testing.T) {
	b, err := chebyshev.NewBasis(2, 3)
	require.NoError(t, err)
	require.Equal(t, 9, b.Size())

	require.Equal(t, []int{0, 0}, b.Index(0))
	require.Equal(t, []int{1, 0}, b.Index(1)) // axis 0 moves first
	require.Equal(t, []int{0, 1}, b.Index(3))
	require.Equal(t, []int{2, 2}, b.Index(8))
	for k := 0; k < b.Size(); k++ {
		require.Equal(t, k, b.Flat(b.Index(k)))
	}
}

// TestGridPlacement compares a 2D grid against hand-placed nodes.
func TestGridPlacement(t *testing.T) {
	b, err := chebyshev.NewBasis(2, 2)
	require.NoError(t, err)
	box, err := geom.NewBox(geom.Point{1, 2}, geom.Point{0.5, 2})
	require.NoError(t, err)

	got, err := b.Grid(box)
	require.NoError(t, err)

	x := b.Nodes() // {cos(π/4), cos(3π/4)}
	want := []geom.Point{
		{1 + 0.5*x[0], 2 + 2*x[0]},
		{1 + 0.5*x[1], 2 + 2*x[0]},
		{1 + 0.5*x[0], 2 + 2*x[1]},
		{1 + 0.5*x[1], 2 + 2*x[1]},
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Fatalf("Grid mismatch (-want +got):\n%s", diff)
	}
}

// TestGridInto_LengthMismatch rejects a wrongly sized buffer.
func TestGridInto_LengthMismatch(t *testing.T) {
	b, err := chebyshev.NewBasis(2, 3)
	require.NoError(t, err)
	box, err := geom.NewBox(geom.Point{0, 0}, geom.Point{1, 1})
	require.NoError(t, err)

	err = b.GridInto(make([]geom.Point, 4), box)
	require.ErrorIs(t, err, chebyshev.ErrLengthMismatch)
}

// TestWeightsPartitionOfUnity checks Σ_k L_k(x) = 1 at arbitrary points.
func TestWeightsPartitionOfUnity(t *testing.T) {
	b, err := chebyshev.NewBasis(3, 4)
	require.NoError(t, err)
	w := make([]float64, b.Size())
	for _, x := range []geom.Point{{0, 0, 0}, {0.3, -0.9, 0.1}, {1, 1, -1}, {1.5, 0, 0}} {
		require.NoError(t, b.Weights(w, x, nil))
		var sum float64
		for _, v := range w {
			sum += v
		}
		require.InDelta(t, 1, sum, 1e-12)
	}
}
