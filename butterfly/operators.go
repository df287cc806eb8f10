// SPDX-License-Identifier: MIT

package butterfly

import (
	"fmt"

	"github.com/nipinghe/fmmtl/chebyshev"
	"github.com/nipinghe/fmmtl/geom"
	"github.com/nipinghe/fmmtl/kernel"
	"github.com/nipinghe/fmmtl/tree"
)

// Operators holds every collaborator the transfer operators read or write.
// Nothing is captured implicitly: each call uses exactly these fields.
//
// Body arrays are in tree order (see tree.Gather): Sources and Charges are
// parallel to Source's bodies, Targets and Results to Target's bodies.
// Multipole is indexed by source box ID, Local by target box ID.
type Operators struct {
	Basis  *chebyshev.Basis
	Kernel kernel.Kernel

	Source *tree.Tree
	Target *tree.Tree

	Sources []geom.Point
	Charges []complex128
	Targets []geom.Point
	Results []complex128

	Multipole *Table
	Local     *Table
}

// Validate checks the whole-configuration preconditions once: non-nil
// collaborators, equal tree depths, a shared dimension, parallel body
// arrays and tables sized for Q^D vectors over each tree's arena.
func (op *Operators) Validate() error {
	if op.Basis == nil || op.Kernel == nil || op.Source == nil || op.Target == nil ||
		op.Multipole == nil || op.Local == nil {
		return opErrorf(opValidate, ErrNilCollaborator)
	}
	if op.Source.Depth() != op.Target.Depth() {
		return opErrorf(opValidate, fmt.Errorf("source %d, target %d: %w",
			op.Source.Depth(), op.Target.Depth(), ErrDepthMismatch))
	}
	dim := op.Basis.Dim()
	if op.Source.Dim() != dim || op.Target.Dim() != dim ||
		!geom.SameDim(dim, op.Sources) || !geom.SameDim(dim, op.Targets) {
		return opErrorf(opValidate, ErrDimensionMismatch)
	}
	if len(op.Sources) != op.Source.NumBodies() || len(op.Charges) != len(op.Sources) ||
		len(op.Targets) != op.Target.NumBodies() || len(op.Results) != len(op.Targets) {
		return opErrorf(opValidate, ErrLengthMismatch)
	}
	if err := op.checkTables(opValidate); err != nil {
		return err
	}
	if op.Multipole.NumBoxes() != op.Source.NumBoxes() || op.Local.NumBoxes() != op.Target.NumBoxes() {
		return opErrorf(opValidate, ErrCounterpartCount)
	}

	return nil
}

// Depth returns L_max.
func (op *Operators) Depth() int { return op.Source.Depth() }

// checkTables rejects tables whose vectors are not Q^D long.
func (op *Operators) checkTables(tag string) error {
	size := op.Basis.Size()
	if op.Multipole.Size() != size || op.Local.Size() != size {
		return opErrorf(tag, fmt.Errorf("multipole %d, local %d, basis %d: %w",
			op.Multipole.Size(), op.Local.Size(), size, ErrCoefficientLength))
	}

	return nil
}

// pairedLevel validates target level L and returns the source level L_max − L.
func (op *Operators) pairedLevel(tag string, L int) (int, error) {
	lmax := op.Depth()
	if L < 0 || L > lmax {
		return 0, opErrorf(tag, fmt.Errorf("target level %d outside [0,%d]: %w", L, lmax, ErrLevelMismatch))
	}

	return lmax - L, nil
}

// expectLevel rejects a box that is not at level want.
func expectLevel(tag, role string, b tree.Box, want int) error {
	if b.Level != want {
		return opErrorf(tag, fmt.Errorf("%s box %d at level %d, want %d: %w", role, b.ID, b.Level, want, ErrLevelMismatch))
	}

	return nil
}

// rephaseSource returns exp(i·(Phase(t, y) − Phase(p, y))) evaluated at the same
// source-side point y for two target centers.
func (op *Operators) rephaseSource(t, p, y geom.Point) complex128 {
	return kernel.UnitPolar(op.Kernel.Phase(t, y) - op.Kernel.Phase(p, y))
}

// rephaseTarget returns exp(i·(Phase(x, c) − Phase(x, s))) for one target-side
// point x and two source centers.
func (op *Operators) rephaseTarget(x, c, s geom.Point) complex128 {
	return kernel.UnitPolar(op.Kernel.Phase(x, c) - op.Kernel.Phase(x, s))
}
