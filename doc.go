// SPDX-License-Identifier: MIT

// Package fmmtl is a multilevel butterfly transform for oscillatory kernels
// K(t,s) = a(t,s)·exp(i·φ(t,s)), computing r_t ≈ Σ_s K(t,s)·q_s between a
// source and a target point set in far fewer than N_s·N_t kernel
// evaluations.
//
// What is in the box?
//
//	• geom/     : D-dimensional points and center/half-extent boxes
//	• tree/     : uniform 2^D-ary hierarchy stored as a level-major arena
//	• chebyshev/: Chebyshev grids and Lagrange interpolation matrices (gonum)
//	• kernel/   : kernel interface, identity/radial/Fourier kernels, direct sum
//	• butterfly/: coefficient tables, the S2M/M2M/M2L/L2L/L2T operators and Plan
//	• cmd/butterfly: CLI that runs a scenario and reports the error vs direct
//
// How it works:
//
//	At matched levels (target level L with source level L_max − L) the
//	kernel, with its dominant phase factored out, is smooth over the pair
//	of boxes and is carried on a Q^D Chebyshev grid. Multipoles climb the
//	source tree while the target tree is refined; at the split level they
//	turn into locals, which descend the target tree.
//
// Quick start:
//
//	plan, err := butterfly.NewPlan(kernel.Radial{Omega: 8}, sources, targets,
//		butterfly.WithOrder(6), butterfly.WithDepth(3))
//	results, err := plan.Apply(ctx, charges)
//
//	go install github.com/nipinghe/fmmtl/cmd/butterfly@latest
package fmmtl
