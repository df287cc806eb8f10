// SPDX-License-Identifier: MIT

package butterfly

import (
	"github.com/nipinghe/fmmtl/kernel"
	"github.com/nipinghe/fmmtl/tree"
)

// L2T evaluates tbox's local vectors at its targets, summing over every
// source box B at level L_max − L:
//
//	r_t += (Lg · Lc[tbox][B])[t] · exp(i·φ(t, c_B))
//
// Results are accumulated, never overwritten. A box without bodies is a no-op.
func (op *Operators) L2T(L int, tbox tree.Box) error {
	if err := op.checkTables(opL2T); err != nil {
		return err
	}
	srcLevel, err := op.pairedLevel(opL2T, L)
	if err != nil {
		return err
	}
	if err := expectLevel(opL2T, "target", tbox, L); err != nil {
		return err
	}
	sources, err := op.Source.Level(srcLevel)
	if err != nil {
		return opErrorf(opL2T, err)
	}
	if err := op.Local.expect(tbox.ID, len(sources)); err != nil {
		return opErrorf(opL2T, err)
	}
	if tbox.NumBodies() == 0 {
		return nil
	}

	targets := op.Targets[tbox.Begin:tbox.End]
	results := op.Results[tbox.Begin:tbox.End]
	lgm, err := op.Basis.Matrix(tbox.Box, targets)
	if err != nil {
		return opErrorf(opL2T, err)
	}

	tmp := make([]complex128, len(targets))
	for _, sbox := range sources {
		clear(tmp)
		if err := lgm.Interpolate(tmp, op.Local.Vector(tbox.ID, sbox.Index)); err != nil {
			return opErrorf(opL2T, err)
		}
		for i, t := range targets {
			results[i] += tmp[i] * kernel.UnitPolar(op.Kernel.Phase(t, sbox.Center))
		}
	}

	return nil
}
