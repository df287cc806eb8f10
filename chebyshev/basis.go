// SPDX-License-Identifier: MIT

package chebyshev

import (
	"fmt"
	"math"

	"github.com/nipinghe/fmmtl/geom"
)

// MaxBasisSize caps Q^D so a misconfigured order cannot allocate an
// unbounded grid.
const MaxBasisSize = 1 << 20

const (
	opNewBasis = "NewBasis"
	opGrid     = "Grid"
	opMatrix   = "Matrix"
	opWeights  = "Weights"
)

// basisErrorf wraps err with an operation tag, preserving it for errors.Is.
func basisErrorf(tag string, err error) error {
	return fmt.Errorf("chebyshev.%s: %w", tag, err)
}

// Basis is the tensor-product Chebyshev interpolation basis of order Q in
// dimension D. It is immutable after NewBasis and safe for concurrent use.
type Basis struct {
	dim   int
	order int
	size  int       // order^dim
	nodes []float64 // Chebyshev roots on [-1,1], len == order
	denom []float64 // denom[k] = Π_{m≠k} (nodes[k] - nodes[m])
	index [][]int   // index[flat][d] in [0, order)
}

// NewBasis builds the Q^D basis.
//
// Implementation:
//   - Stage 1: validate dim, order and the product size.
//   - Stage 2: compute roots x_k = cos((2k+1)π/(2Q)) and Lagrange denominators.
//   - Stage 3: enumerate tensor indices with axis 0 fastest.
//
// Errors: ErrInvalidDimension, ErrInvalidOrder, ErrBasisTooLarge.
func NewBasis(dim, order int) (*Basis, error) {
	if dim < 1 {
		return nil, basisErrorf(opNewBasis, ErrInvalidDimension)
	}
	if order < 1 {
		return nil, basisErrorf(opNewBasis, ErrInvalidOrder)
	}
	size := 1
	for d := 0; d < dim; d++ {
		size *= order
		if size > MaxBasisSize {
			return nil, basisErrorf(opNewBasis, ErrBasisTooLarge)
		}
	}

	nodes := make([]float64, order)
	for k := range nodes {
		nodes[k] = math.Cos(float64(2*k+1) * math.Pi / float64(2*order))
	}
	denom := make([]float64, order)
	for k := range denom {
		v := 1.0
		for m := range nodes {
			if m != k {
				v *= nodes[k] - nodes[m]
			}
		}
		denom[k] = v
	}

	index := make([][]int, size)
	backing := make([]int, size*dim)
	for flat := 0; flat < size; flat++ {
		idx := backing[flat*dim : (flat+1)*dim : (flat+1)*dim]
		rem := flat
		for d := 0; d < dim; d++ {
			idx[d] = rem % order
			rem /= order
		}
		index[flat] = idx
	}

	return &Basis{
		dim:   dim,
		order: order,
		size:  size,
		nodes: nodes,
		denom: denom,
		index: index,
	}, nil
}

// Dim returns D.
func (b *Basis) Dim() int { return b.dim }

// Order returns Q.
func (b *Basis) Order() int { return b.order }

// Size returns Q^D, the length of every coefficient vector on this basis.
func (b *Basis) Size() int { return b.size }

// Nodes returns a copy of the one-dimensional Chebyshev roots.
func (b *Basis) Nodes() []float64 {
	out := make([]float64, len(b.nodes))
	copy(out, b.nodes)

	return out
}

// Index returns the tensor index of flat position k. The slice aliases
// internal storage and must not be modified.
func (b *Basis) Index(k int) []int { return b.index[k] }

// Flat is the inverse of Index.
func (b *Basis) Flat(idx []int) int {
	flat, stride := 0, 1
	for d := 0; d < b.dim; d++ {
		flat += idx[d] * stride
		stride *= b.order
	}

	return flat
}

// lagrange1D writes ℓ_k(x) for k in [0, Q) into dst.
func (b *Basis) lagrange1D(x float64, dst []float64) {
	for k := range b.nodes {
		v := 1.0
		for m, xm := range b.nodes {
			if m != k {
				v *= x - xm
			}
		}
		dst[k] = v / b.denom[k]
	}
}

// Weights writes L_k(x) for every flat node k into dst, for a point x
// already expressed in the reference frame. scratch must hold at least D·Q
// values; passing nil allocates it.
func (b *Basis) Weights(dst []float64, x geom.Point, scratch []float64) error {
	if len(dst) != b.size || len(x) != b.dim {
		return basisErrorf(opWeights, ErrLengthMismatch)
	}
	if len(scratch) < b.dim*b.order {
		scratch = make([]float64, b.dim*b.order)
	}
	for d := 0; d < b.dim; d++ {
		b.lagrange1D(x[d], scratch[d*b.order:(d+1)*b.order])
	}
	b.tensorProduct(dst, scratch)

	return nil
}

// tensorProduct fills dst[k] = Π_d axis[d*Q + idx_k[d]].
func (b *Basis) tensorProduct(dst, axis []float64) {
	for k, idx := range b.index {
		v := 1.0
		for d, i := range idx {
			v *= axis[d*b.order+i]
		}
		dst[k] = v
	}
}
