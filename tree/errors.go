// SPDX-License-Identifier: MIT

package tree

import "errors"

var (
	// ErrNoPoints is returned when no points and no explicit bounds are given,
	// so the root box cannot be derived.
	ErrNoPoints = errors.New("tree: no points to bound")

	// ErrNegativeDepth is returned for depth < 0.
	ErrNegativeDepth = errors.New("tree: depth must be >= 0")

	// ErrTooDeep is returned when D·depth exceeds MaxLevelBits.
	ErrTooDeep = errors.New("tree: depth too large for dimension")

	// ErrDimensionMismatch is returned when points (or bounds) disagree on D.
	ErrDimensionMismatch = errors.New("tree: dimension mismatch")

	// ErrOutOfBounds is returned when a point lies outside explicit bounds.
	ErrOutOfBounds = errors.New("tree: point outside bounds")

	// ErrLevelRange is returned by accessors given a level outside [0, Depth].
	ErrLevelRange = errors.New("tree: level out of range")
)
