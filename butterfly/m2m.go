// SPDX-License-Identifier: MIT

package butterfly

import (
	"fmt"

	"github.com/nipinghe/fmmtl/chebyshev"
	"github.com/nipinghe/fmmtl/tree"
)

// M2M merges the multipoles of sbox's children into sbox.
//
// sbox sits at source level L_max − L (L ≥ 1); its children at
// L_max − L + 1 pair with target level L − 1. For every target box A at
// level L with parent P, and every child c with Chebyshev nodes y_j:
//
//	M[sbox][A] += Lgᵀ · ( M[c][P][j] · exp(i·(φ(c_A, y_j) − φ(c_P, y_j))) )
//
// where Lg maps the child grid into sbox's reference frame. The child's
// multipole is read at the parent counterpart P because the child was
// paired one target level coarser.
//
// Complexity: O(2^D · N_A · Q^{2D}) for N_A target boxes at level L.
func (op *Operators) M2M(L int, sbox tree.Box) error {
	if err := op.checkTables(opM2M); err != nil {
		return err
	}
	srcLevel, err := op.pairedLevel(opM2M, L)
	if err != nil {
		return err
	}
	if L < 1 {
		return opErrorf(opM2M, fmt.Errorf("target level %d has no parent level: %w", L, ErrLevelMismatch))
	}
	if err := expectLevel(opM2M, "source", sbox, srcLevel); err != nil {
		return err
	}
	targets, err := op.Target.Level(L)
	if err != nil {
		return opErrorf(opM2M, err)
	}
	if err := op.Multipole.expect(sbox.ID, len(targets)); err != nil {
		return opErrorf(opM2M, err)
	}
	parentCount := op.Target.LevelSize(L - 1)

	grid := chebyshev.NewGridBuffer(op.Basis)
	rhs := make([]complex128, op.Basis.Size())
	for _, cbox := range op.Source.Children(sbox) {
		if err := op.Multipole.expect(cbox.ID, parentCount); err != nil {
			return opErrorf(opM2M, err)
		}
		if err := op.Basis.GridInto(grid, cbox.Box); err != nil {
			return opErrorf(opM2M, err)
		}
		lgm, err := op.Basis.Matrix(sbox.Box, grid)
		if err != nil {
			return opErrorf(opM2M, err)
		}

		for _, tbox := range targets {
			pbox, _ := op.Target.Parent(tbox)
			child := op.Multipole.Vector(cbox.ID, pbox.Index)
			for j, y := range grid {
				rhs[j] = child[j] * op.rephaseSource(tbox.Center, pbox.Center, y)
			}
			if err := lgm.Anterpolate(op.Multipole.Vector(sbox.ID, tbox.Index), rhs); err != nil {
				return opErrorf(opM2M, err)
			}
		}
	}

	return nil
}
