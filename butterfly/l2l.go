// SPDX-License-Identifier: MIT

package butterfly

import (
	"fmt"

	"github.com/nipinghe/fmmtl/tree"
)

// L2L pushes the local vectors of tbox's parent P down to tbox.
//
// tbox sits at target level L (L ≥ 1). P's locals are counterparts of
// source boxes C at level L_max − L + 1; each C folds into its parent B at
// level L_max − L, the counterpart used by tbox. With x_j the Chebyshev
// nodes of tbox and Lg the matrix of those nodes in P's frame:
//
//	Lc[tbox][B][j] += (Lg · Lc[P][C])[j] · exp(i·(φ(x_j, c_C) − φ(x_j, c_B)))
//
// The re-phasing factor depends on the child node x_j, so it multiplies the
// interpolated value, not the parent coefficient.
func (op *Operators) L2L(L int, tbox tree.Box) error {
	if err := op.checkTables(opL2L); err != nil {
		return err
	}
	srcLevel, err := op.pairedLevel(opL2L, L)
	if err != nil {
		return err
	}
	if L < 1 {
		return opErrorf(opL2L, fmt.Errorf("target level %d has no parent: %w", L, ErrLevelMismatch))
	}
	if err := expectLevel(opL2L, "target", tbox, L); err != nil {
		return err
	}
	pbox, _ := op.Target.Parent(tbox)
	children, err := op.Source.Level(srcLevel + 1)
	if err != nil {
		return opErrorf(opL2L, err)
	}
	if err := op.Local.expect(pbox.ID, len(children)); err != nil {
		return opErrorf(opL2L, err)
	}
	if err := op.Local.expect(tbox.ID, op.Source.LevelSize(srcLevel)); err != nil {
		return opErrorf(opL2L, err)
	}

	grid, err := op.Basis.Grid(tbox.Box)
	if err != nil {
		return opErrorf(opL2L, err)
	}
	lgm, err := op.Basis.Matrix(pbox.Box, grid)
	if err != nil {
		return opErrorf(opL2L, err)
	}

	tmp := make([]complex128, op.Basis.Size())
	for _, cbox := range children {
		sbox, _ := op.Source.Parent(cbox)
		clear(tmp)
		if err := lgm.Interpolate(tmp, op.Local.Vector(pbox.ID, cbox.Index)); err != nil {
			return opErrorf(opL2L, err)
		}
		dst := op.Local.Vector(tbox.ID, sbox.Index)
		for j, x := range grid {
			dst[j] += tmp[j] * op.rephaseTarget(x, cbox.Center, sbox.Center)
		}
	}

	return nil
}

