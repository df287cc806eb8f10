// SPDX-License-Identifier: MIT

// Package tree builds the spatial hierarchies the butterfly operators walk:
// a uniform 2^D-ary tree of fixed depth over a point set.
//
// What:
//
//   - Tree is an arena of Box values ordered level-major. Level l holds
//     exactly 2^(D·l) boxes with IDs in [Offset(l), Offset(l+1)).
//   - Box carries integer links (Parent, Children) into the arena rather than
//     owning references, plus its Level, Index within level, geometry and a
//     contiguous body range [Begin, End).
//   - Bodies are permuted so every box's bodies are contiguous; Gather and
//     Scatter move per-body data between input order and tree order.
//
// Invariants:
//
//   - Children of the box with Index i at level l are the boxes with Index
//     i·2^D + code at level l+1, code being the child's orthant bits.
//   - The body ranges of a level partition [0, N) in Index order.
//   - Every leaf sits at level Depth(); boxes may be empty.
//
// Complexity:
//
//   - Build: O(N·Depth·D + B) time for B = Σ_l 2^(D·l) boxes; O(N + B·D) memory.
//   - Level, Children, Box: O(1).
//
// Errors:
//
//   - ErrNoPoints, ErrNegativeDepth, ErrTooDeep, ErrDimensionMismatch,
//     ErrOutOfBounds from Build.
package tree
