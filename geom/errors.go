// SPDX-License-Identifier: MIT

package geom

import "errors"

var (
	// ErrDimensionMismatch indicates that two points (or a point and a box)
	// do not share the same dimension.
	ErrDimensionMismatch = errors.New("geom: dimension mismatch")

	// ErrDegenerateBox indicates a box with a non-positive or non-finite extent
	// on at least one axis; such a box has no reference frame.
	ErrDegenerateBox = errors.New("geom: degenerate box extent")
)
