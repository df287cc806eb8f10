// SPDX-License-Identifier: MIT

package kernel

import "errors"

var (
	// ErrLengthMismatch indicates charges/results not parallel to their points.
	ErrLengthMismatch = errors.New("kernel: length mismatch")

	// ErrUnknownKernel is returned by ByName for an unregistered name.
	ErrUnknownKernel = errors.New("kernel: unknown kernel")
)
