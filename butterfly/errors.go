// SPDX-License-Identifier: MIT

package butterfly

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the butterfly operators and Plan.
var (
	// ErrLevelMismatch is returned when a box or level violates the pairing
	// target level L ↔ source level L_max − L, or the level is out of range.
	ErrLevelMismatch = errors.New("butterfly: level pairing violated")

	// ErrCoefficientLength is returned when a coefficient vector (or table)
	// does not hold exactly Q^D entries.
	ErrCoefficientLength = errors.New("butterfly: coefficient vector length is not Q^D")

	// ErrCounterpartCount is returned when a table slot was allocated for a
	// different number of counterpart boxes than the paired level holds.
	ErrCounterpartCount = errors.New("butterfly: counterpart count mismatch")

	// ErrDepthMismatch is returned when the source and target trees differ in depth.
	ErrDepthMismatch = errors.New("butterfly: source and target depths differ")

	// ErrDimensionMismatch is returned when trees, points and basis disagree on D.
	ErrDimensionMismatch = errors.New("butterfly: dimension mismatch")

	// ErrLengthMismatch is returned when body arrays are not parallel to their tree.
	ErrLengthMismatch = errors.New("butterfly: body array length mismatch")

	// ErrNilCollaborator is returned when a required Operators field is nil.
	ErrNilCollaborator = errors.New("butterfly: nil collaborator")

	// ErrInvalidSplit is returned when the M2L split level is outside [0, L_max].
	ErrInvalidSplit = errors.New("butterfly: split level out of range")
)

// Operation tags for error wrapping.
const (
	opS2M      = "S2M"
	opM2M      = "M2M"
	opM2L      = "M2L"
	opCouple   = "Couple"
	opL2L      = "L2L"
	opL2T      = "L2T"
	opValidate = "Validate"
	opNewPlan  = "NewPlan"
	opApply    = "Apply"
)

// opErrorf wraps err as "butterfly.<tag>: err", preserving errors.Is.
func opErrorf(tag string, err error) error {
	return fmt.Errorf("butterfly.%s: %w", tag, err)
}
