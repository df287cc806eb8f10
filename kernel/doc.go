// SPDX-License-Identifier: MIT

// Package kernel defines the oscillatory kernels the butterfly transform
// compresses, K(t,s) = Amplitude(t,s)·exp(i·Phase(t,s)), and the O(N²)
// direct evaluation used as ground truth.
//
// Kernels shipped here:
//
//   - Identity: Phase 0, Amplitude 1. The transform reduces to Σ_s q_s.
//   - Radial:   Phase ω|t−s|, Amplitude 1/(1+|t−s|).
//   - Fourier:  Phase ω t·s, Amplitude 1 (discrete Fourier-type integral).
//
// Argument order is always (target, source).
package kernel
