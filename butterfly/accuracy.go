// SPDX-License-Identifier: MIT

package butterfly

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// MaxRelativeError returns max_t |got_t − want_t| / max_t |want_t|.
// When want is identically zero the absolute error is returned. Empty inputs
// give 0.
func MaxRelativeError(got, want []complex128) (float64, error) {
	if len(got) != len(want) {
		return 0, fmt.Errorf("got %d, want %d: %w", len(got), len(want), ErrLengthMismatch)
	}
	if len(want) == 0 {
		return 0, nil
	}

	diff := make([]float64, len(want))
	norm := make([]float64, len(want))
	for i := range want {
		diff[i] = cmplx.Abs(got[i] - want[i])
		norm[i] = cmplx.Abs(want[i])
	}
	scale := floats.Max(norm)
	if scale == 0 {
		return floats.Max(diff), nil
	}

	return floats.Max(diff) / scale, nil
}
