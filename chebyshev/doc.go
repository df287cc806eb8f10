// SPDX-License-Identifier: MIT

// Package chebyshev builds the fixed tensor-product interpolation basis used
// by every butterfly transfer operator.
//
// What:
//
//   - Basis holds the Q Chebyshev roots x_k = cos((2k+1)π/(2Q)) of T_Q,
//     their Lagrange denominators, and the enumeration of the Q^D tensor
//     indices (axis 0 varies fastest: flat = Σ_d idx[d]·Q^d).
//   - Basis.Grid places the Q^D nodes inside a geom.Box.
//   - Basis.Matrix builds the dense |samples| × Q^D Lagrange matrix whose
//     row r holds L_k(ref(sample_r)) for every node k, where
//     L_k(x) = Π_d ℓ_{k_d}(x_d) and ref() maps into the box's [-1,1]^D frame.
//   - Matrix.Interpolate applies it (node values → sample values);
//     Matrix.Anterpolate applies its transpose (sample weights → node
//     coefficients).
//
// Why:
//
//   - Grid construction and matrix construction share one enumeration, so a
//     coefficient vector produced against a grid always lines up with the
//     matrix columns that consume it.
//
// Complexity:
//
//   - NewBasis:  O(Q² + Q^D·D).
//   - Grid:      O(Q^D·D).
//   - Matrix:    O(S·(D·Q² + Q^D·D)) for S samples; storage O(S·Q^D).
//   - Interpolate / Anterpolate: O(S·Q^D).
//
// Errors:
//
//   - ErrInvalidDimension, ErrInvalidOrder, ErrBasisTooLarge from NewBasis.
//   - ErrNoSamples when a matrix is requested for zero samples.
//   - ErrLengthMismatch when vectors do not match the matrix shape.
package chebyshev
