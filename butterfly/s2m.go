// SPDX-License-Identifier: MIT

package butterfly

import (
	"github.com/nipinghe/fmmtl/kernel"
	"github.com/nipinghe/fmmtl/tree"
)

// S2M accumulates the sources of sbox into its multipole vectors, one per
// target box A at target level L:
//
//	M[sbox][A][k] += Σ_{s∈sbox} L_k(ref(s)) · q_s · exp(i·φ(c_A, s))
//
// sbox must sit at source level L_max − L. A box without bodies contributes
// nothing.
func (op *Operators) S2M(L int, sbox tree.Box) error {
	if err := op.checkTables(opS2M); err != nil {
		return err
	}
	srcLevel, err := op.pairedLevel(opS2M, L)
	if err != nil {
		return err
	}
	if err := expectLevel(opS2M, "source", sbox, srcLevel); err != nil {
		return err
	}
	targets, err := op.Target.Level(L)
	if err != nil {
		return opErrorf(opS2M, err)
	}
	if err := op.Multipole.expect(sbox.ID, len(targets)); err != nil {
		return opErrorf(opS2M, err)
	}
	if sbox.NumBodies() == 0 {
		return nil
	}

	sources := op.Sources[sbox.Begin:sbox.End]
	charges := op.Charges[sbox.Begin:sbox.End]
	lgm, err := op.Basis.Matrix(sbox.Box, sources)
	if err != nil {
		return opErrorf(opS2M, err)
	}

	rhs := make([]complex128, len(sources))
	for _, tbox := range targets {
		for j, s := range sources {
			rhs[j] = charges[j] * kernel.UnitPolar(op.Kernel.Phase(tbox.Center, s))
		}
		if err := lgm.Anterpolate(op.Multipole.Vector(sbox.ID, tbox.Index), rhs); err != nil {
			return opErrorf(opS2M, err)
		}
	}

	return nil
}
