// SPDX-License-Identifier: MIT

package chebyshev

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/nipinghe/fmmtl/geom"
)

const (
	opInterpolate = "Interpolate"
	opAnterpolate = "Anterpolate"
)

// Matrix is the dense Lagrange interpolation matrix of a sample set against
// the Q^D nodes of one box: shape (samples, Q^D), row-major, real.
//
// The complex vectors it is applied to are split into real and imaginary
// parts and multiplied with gonum's MulVec; the split buffers live in the
// Matrix, so a Matrix must not be shared between goroutines.
type Matrix struct {
	dense      *mat.Dense
	rows, cols int

	colRe, colIm *mat.VecDense // length cols
	rowRe, rowIm *mat.VecDense // length rows
}

// Matrix builds the Lagrange matrix of samples mapped into box's reference
// frame.
//
// Implementation:
//   - Stage 1: validate non-empty samples and dimensions.
//   - Stage 2: for each sample, map to [-1,1]^D, evaluate the D one-dimensional
//     Lagrange rows and take their tensor product into one matrix row.
//   - Stage 3: wrap the row-major buffer in a gonum Dense.
//
// Samples outside the box are extrapolated, not rejected.
//
// Errors: ErrNoSamples, ErrLengthMismatch.
// Complexity: O(S·(D·Q² + Q^D·D)) time, O(S·Q^D) space.
func (b *Basis) Matrix(box geom.Box, samples []geom.Point) (*Matrix, error) {
	if len(samples) == 0 {
		return nil, basisErrorf(opMatrix, ErrNoSamples)
	}
	if box.Dim() != b.dim {
		return nil, basisErrorf(opMatrix, ErrLengthMismatch)
	}

	rows, cols := len(samples), b.size
	data := make([]float64, rows*cols)
	ref := make(geom.Point, b.dim)
	axis := make([]float64, b.dim*b.order)
	for r, s := range samples {
		if len(s) != b.dim {
			return nil, basisErrorf(opMatrix, fmt.Errorf("sample %d: %w", r, ErrLengthMismatch))
		}
		box.Reference(ref, s)
		for d := 0; d < b.dim; d++ {
			b.lagrange1D(ref[d], axis[d*b.order:(d+1)*b.order])
		}
		b.tensorProduct(data[r*cols:(r+1)*cols], axis)
	}

	return &Matrix{
		dense: mat.NewDense(rows, cols, data),
		rows:  rows,
		cols:  cols,
		colRe: mat.NewVecDense(cols, nil),
		colIm: mat.NewVecDense(cols, nil),
		rowRe: mat.NewVecDense(rows, nil),
		rowIm: mat.NewVecDense(rows, nil),
	}, nil
}

// Rows returns the number of samples.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns Q^D.
func (m *Matrix) Cols() int { return m.cols }

// At returns L_j(ref(sample_i)).
func (m *Matrix) At(i, j int) float64 { return m.dense.At(i, j) }

// Dense exposes the underlying gonum matrix (read-only by convention).
func (m *Matrix) Dense() mat.Matrix { return m.dense }

// Interpolate accumulates dst += M·src: node values (len Q^D) to sample
// values (len samples).
func (m *Matrix) Interpolate(dst, src []complex128) error {
	if len(src) != m.cols || len(dst) != m.rows {
		return basisErrorf(opInterpolate, ErrLengthMismatch)
	}
	for j, v := range src {
		m.colRe.SetVec(j, real(v))
		m.colIm.SetVec(j, imag(v))
	}
	m.rowRe.MulVec(m.dense, m.colRe)
	m.rowIm.MulVec(m.dense, m.colIm)
	for i := range dst {
		dst[i] += complex(m.rowRe.AtVec(i), m.rowIm.AtVec(i))
	}

	return nil
}

// Anterpolate accumulates dst += Mᵀ·src: per-sample weights (len samples)
// to node coefficients (len Q^D).
func (m *Matrix) Anterpolate(dst, src []complex128) error {
	if len(src) != m.rows || len(dst) != m.cols {
		return basisErrorf(opAnterpolate, ErrLengthMismatch)
	}
	for i, v := range src {
		m.rowRe.SetVec(i, real(v))
		m.rowIm.SetVec(i, imag(v))
	}
	m.colRe.MulVec(m.dense.T(), m.rowRe)
	m.colIm.MulVec(m.dense.T(), m.rowIm)
	for j := range dst {
		dst[j] += complex(m.colRe.AtVec(j), m.colIm.AtVec(j))
	}

	return nil
}
