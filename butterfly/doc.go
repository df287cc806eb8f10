// SPDX-License-Identifier: MIT

// Package butterfly implements the multilevel butterfly compression of an
// oscillatory kernel transform r_t = Σ_s K(t,s)·q_s between a source and a
// target hierarchy of equal depth L_max.
//
// What:
//
//   - Table is a coefficient table: per box, one Q^D coefficient vector per
//     counterpart box at the paired level. The multipole table hangs off
//     source boxes (counterparts are target boxes); the local table hangs
//     off target boxes (counterparts are source boxes).
//   - Operators bundles the collaborators (basis, kernel, trees, body
//     arrays, tables) as explicit fields and exposes the five transfer
//     operators S2M, M2M, M2L, L2L and L2T.
//   - Plan drives the operators level by level, with barriers between levels
//     and optional parallelism within a level.
//
// Level pairing:
//
//	target level L  ↔  source level L_max − L
//
// Every operator checks the pairing of the boxes and table slots it touches
// and returns ErrLevelMismatch / ErrCounterpartCount / ErrCoefficientLength
// instead of reading the wrong slots.
//
// Phase factoring:
//
//	Coefficients never carry the raw oscillation exp(i·φ). Multipoles are
//	taken relative to the counterpart target center, locals relative to the
//	counterpart source center, and M2M/L2L re-phase between parent and child
//	centers so only smooth residuals are interpolated.
//
// Concurrency:
//
//	Operators take no locks. Calls on distinct write targets may run in
//	parallel: S2M and M2M by source box, M2LTarget and L2L by target box,
//	L2T by target box (disjoint result ranges).
package butterfly
