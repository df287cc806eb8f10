// SPDX-License-Identifier: MIT

package geom

import "math"

// Point is a coordinate in D-dimensional real space.
type Point []float64

// Dim returns the number of coordinates.
func (p Point) Dim() int { return len(p) }

// Clone returns an independent copy of p.
func (p Point) Clone() Point {
	out := make(Point, len(p))
	copy(out, p)

	return out
}

// Add returns p + q. Both points must have the same dimension.
func (p Point) Add(q Point) Point {
	out := make(Point, len(p))
	for d := range p {
		out[d] = p[d] + q[d]
	}

	return out
}

// Sub returns p - q. Both points must have the same dimension.
func (p Point) Sub(q Point) Point {
	out := make(Point, len(p))
	for d := range p {
		out[d] = p[d] - q[d]
	}

	return out
}

// Dot returns the Euclidean inner product of p and q.
func (p Point) Dot(q Point) float64 {
	var acc float64
	for d := range p {
		acc += p[d] * q[d]
	}

	return acc
}

// Distance returns the Euclidean distance |p - q| without allocating.
func Distance(p, q Point) float64 {
	var acc, diff float64
	for d := range p {
		diff = p[d] - q[d]
		acc += diff * diff
	}

	return math.Sqrt(acc)
}

// SameDim reports whether every point in ps has dimension dim.
func SameDim(dim int, ps []Point) bool {
	for _, p := range ps {
		if len(p) != dim {
			return false
		}
	}

	return true
}
