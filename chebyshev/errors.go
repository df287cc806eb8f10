// SPDX-License-Identifier: MIT

package chebyshev

import "errors"

var (
	// ErrInvalidDimension is returned when the spatial dimension is < 1.
	ErrInvalidDimension = errors.New("chebyshev: dimension must be >= 1")

	// ErrInvalidOrder is returned when the interpolation order is < 1.
	ErrInvalidOrder = errors.New("chebyshev: order must be >= 1")

	// ErrBasisTooLarge is returned when Q^D exceeds MaxBasisSize.
	ErrBasisTooLarge = errors.New("chebyshev: basis size exceeds limit")

	// ErrNoSamples is returned when a Lagrange matrix is requested for an
	// empty sample set. Callers treat an empty box as a zero contribution.
	ErrNoSamples = errors.New("chebyshev: no samples")

	// ErrLengthMismatch indicates a vector whose length does not match the
	// matrix (or basis) shape.
	ErrLengthMismatch = errors.New("chebyshev: length mismatch")
)
