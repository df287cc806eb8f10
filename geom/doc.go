// SPDX-License-Identifier: MIT

// Package geom provides the D-dimensional point and axis-aligned box
// primitives shared by the tree, chebyshev, kernel and butterfly packages.
//
// What:
//
//   - Point is a plain []float64 of length D; no fixed-size arrays, since the
//     dimension is a runtime parameter of the transform.
//   - Box is an axis-aligned region described by its center and per-axis
//     half extents, so the box covers center ± extents on every axis.
//   - Box.Reference maps a point into the box's local [-1,1]^D frame used by
//     Chebyshev interpolation; Box.Place maps it back.
//
// Complexity:
//
//   - Every helper is O(D) time and allocates only when it returns a new Point.
package geom
