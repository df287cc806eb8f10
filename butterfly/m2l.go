// SPDX-License-Identifier: MIT

package butterfly

import (
	"github.com/nipinghe/fmmtl/chebyshev"
	"github.com/nipinghe/fmmtl/geom"
	"github.com/nipinghe/fmmtl/kernel"
	"github.com/nipinghe/fmmtl/tree"
)

// coupleScratch holds the two grids of one (source, target) pair so the
// O(Q^{2D}) inner loop never allocates.
type coupleScratch struct {
	sgrid []geom.Point
	tgrid []geom.Point
}

func (op *Operators) newCoupleScratch() *coupleScratch {
	return &coupleScratch{
		sgrid: chebyshev.NewGridBuffer(op.Basis),
		tgrid: chebyshev.NewGridBuffer(op.Basis),
	}
}

// M2L couples every source box at level L_max − L with every target box at
// level L.
//
// MAIN DESCRIPTION:
//   - Turns multipoles M[B][A] into local contributions Lc[A][B]; this is the
//     only step where the kernel amplitude is evaluated and it dominates the
//     cost: N_B·N_A pairs of O(Q^{2D}) work each.
//
// Implementation:
//   - Stage 1: validate the level pairing and table shapes for the whole level.
//   - Stage 2: visit pairs target-major via M2LTarget, so each target box's
//     local slots are written by exactly one caller.
//
// Complexity:
//   - Time O(N_B·N_A·Q^{2D}), Space O(Q^D·D) scratch.
func (op *Operators) M2L(L int) error {
	if err := op.checkTables(opM2L); err != nil {
		return err
	}
	if _, err := op.pairedLevel(opM2L, L); err != nil {
		return err
	}
	targets, err := op.Target.Level(L)
	if err != nil {
		return opErrorf(opM2L, err)
	}
	sc := op.newCoupleScratch()
	for _, tbox := range targets {
		if err := op.m2lTarget(L, tbox, sc); err != nil {
			return err
		}
	}

	return nil
}

// M2LTarget couples every source box at level L_max − L into tbox (at level
// L). It writes only tbox's local slots and is the unit of parallel M2L work.
func (op *Operators) M2LTarget(L int, tbox tree.Box) error {
	if err := op.checkTables(opM2L); err != nil {
		return err
	}

	return op.m2lTarget(L, tbox, op.newCoupleScratch())
}

func (op *Operators) m2lTarget(L int, tbox tree.Box, sc *coupleScratch) error {
	srcLevel, err := op.pairedLevel(opM2L, L)
	if err != nil {
		return err
	}
	if err := expectLevel(opM2L, "target", tbox, L); err != nil {
		return err
	}
	sources, err := op.Source.Level(srcLevel)
	if err != nil {
		return opErrorf(opM2L, err)
	}
	if err := op.Local.expect(tbox.ID, len(sources)); err != nil {
		return opErrorf(opM2L, err)
	}
	if err := op.Basis.GridInto(sc.tgrid, tbox.Box); err != nil {
		return opErrorf(opM2L, err)
	}
	nTargets := op.Target.LevelSize(L)
	for _, sbox := range sources {
		if err := op.Multipole.expect(sbox.ID, nTargets); err != nil {
			return opErrorf(opM2L, err)
		}
		if err := op.Basis.GridInto(sc.sgrid, sbox.Box); err != nil {
			return opErrorf(opM2L, err)
		}
		op.couple(sbox, tbox, sc)
	}

	return nil
}

// Couple performs M2L for the single pair (sbox, tbox) at target level L.
// Returns ErrLevelMismatch unless tbox is at level L and sbox at L_max − L.
func (op *Operators) Couple(L int, sbox, tbox tree.Box) error {
	if err := op.checkTables(opCouple); err != nil {
		return err
	}
	srcLevel, err := op.pairedLevel(opCouple, L)
	if err != nil {
		return err
	}
	if err := expectLevel(opCouple, "target", tbox, L); err != nil {
		return err
	}
	if err := expectLevel(opCouple, "source", sbox, srcLevel); err != nil {
		return err
	}
	if err := op.Multipole.expect(sbox.ID, op.Target.LevelSize(L)); err != nil {
		return opErrorf(opCouple, err)
	}
	if err := op.Local.expect(tbox.ID, op.Source.LevelSize(srcLevel)); err != nil {
		return opErrorf(opCouple, err)
	}

	sc := op.newCoupleScratch()
	if err := op.Basis.GridInto(sc.tgrid, tbox.Box); err != nil {
		return opErrorf(opCouple, err)
	}
	if err := op.Basis.GridInto(sc.sgrid, sbox.Box); err != nil {
		return opErrorf(opCouple, err)
	}
	op.couple(sbox, tbox, sc)

	return nil
}

// couple is the validated pair kernel. For target node t_i and source node s_k:
//
//	Lc[A][B][i] += exp(−i·φ(t_i, c_B)) · Σ_k a(t_i,s_k) · M[B][A][k] · exp(i·(φ(t_i,s_k) − φ(c_A,s_k)))
func (op *Operators) couple(sbox, tbox tree.Box, sc *coupleScratch) {
	multipole := op.Multipole.Vector(sbox.ID, tbox.Index)
	local := op.Local.Vector(tbox.ID, sbox.Index)
	for i, t := range sc.tgrid {
		var acc complex128
		for k, s := range sc.sgrid {
			phase := op.Kernel.Phase(t, s) - op.Kernel.Phase(tbox.Center, s)
			acc += op.Kernel.Amplitude(t, s) * multipole[k] * kernel.UnitPolar(phase)
		}
		local[i] += acc * kernel.UnitPolar(-op.Kernel.Phase(t, sbox.Center))
	}
}
