// SPDX-License-Identifier: MIT

package geom

import (
	"fmt"
	"math"
)

// Box is an axis-aligned box: Center ± Extents on every axis.
// Extents are half-widths, so a box with Extents[d] = 0.5 spans one unit on axis d.
type Box struct {
	Center  Point
	Extents Point
}

// NewBox validates center/extents and returns the Box.
// Returns ErrDimensionMismatch if the lengths disagree and ErrDegenerateBox
// if any extent is not a finite positive number.
func NewBox(center, extents Point) (Box, error) {
	if len(center) != len(extents) {
		return Box{}, ErrDimensionMismatch
	}
	for d, e := range extents {
		if !(e > 0) || math.IsInf(e, 0) {
			return Box{}, fmt.Errorf("axis %d extent %g: %w", d, e, ErrDegenerateBox)
		}
	}

	return Box{Center: center.Clone(), Extents: extents.Clone()}, nil
}

// BoxFromBounds builds the box spanning [lo, hi] on every axis.
func BoxFromBounds(lo, hi Point) (Box, error) {
	if len(lo) != len(hi) {
		return Box{}, ErrDimensionMismatch
	}
	center := make(Point, len(lo))
	extents := make(Point, len(lo))
	for d := range lo {
		center[d] = 0.5 * (lo[d] + hi[d])
		extents[d] = 0.5 * (hi[d] - lo[d])
	}

	return NewBox(center, extents)
}

// Dim returns the box dimension.
func (b Box) Dim() int { return len(b.Center) }

// Contains reports whether p lies inside the closed box.
func (b Box) Contains(p Point) bool {
	for d := range b.Center {
		if math.Abs(p[d]-b.Center[d]) > b.Extents[d] {
			return false
		}
	}

	return true
}

// Reference writes the local [-1,1]^D coordinates of p into dst:
// dst[d] = (p[d] - Center[d]) / Extents[d].
// dst must have length Dim(); it is returned for chaining.
func (b Box) Reference(dst, p Point) Point {
	for d := range b.Center {
		dst[d] = (p[d] - b.Center[d]) / b.Extents[d]
	}

	return dst
}

// Place is the inverse of Reference: dst[d] = Center[d] + x[d]*Extents[d].
func (b Box) Place(dst, x Point) Point {
	for d := range b.Center {
		dst[d] = b.Center[d] + x[d]*b.Extents[d]
	}

	return dst
}

// Child returns the sub-box of the 2^D-ary split selected by code:
// bit d of code set means the upper half on axis d.
func (b Box) Child(code int) Box {
	dim := len(b.Center)
	c := Box{Center: make(Point, dim), Extents: make(Point, dim)}
	for d := 0; d < dim; d++ {
		c.Extents[d] = 0.5 * b.Extents[d]
		if code>>d&1 == 1 {
			c.Center[d] = b.Center[d] + c.Extents[d]
		} else {
			c.Center[d] = b.Center[d] - c.Extents[d]
		}
	}

	return c
}

// ChildCode returns the 2^D-ary child code of p relative to b's center.
// Points on a splitting plane go to the upper child.
func (b Box) ChildCode(p Point) int {
	code := 0
	for d := range b.Center {
		if p[d] >= b.Center[d] {
			code |= 1 << d
		}
	}

	return code
}
