// SPDX-License-Identifier: MIT

package config

import "errors"

// Sentinel errors returned by Validate and Load.
var (
	ErrInvalidDimension  = errors.New("config: dim must be >= 1")
	ErrInvalidOrder      = errors.New("config: order must be >= 1")
	ErrInvalidDepth      = errors.New("config: depth must be >= 0")
	ErrInvalidSplit      = errors.New("config: split must be -1 or within [0, depth]")
	ErrInvalidCount      = errors.New("config: sources and targets must be >= 1")
	ErrInvalidWorkers    = errors.New("config: workers must be >= 1")
	ErrInvalidSeparation = errors.New("config: separation must be finite and >= 0")
	ErrInvalidOmega      = errors.New("config: omega must be finite")
	ErrUnknownKernel     = errors.New("config: unknown kernel")
	ErrUnknownLayout     = errors.New("config: unknown layout")
	ErrRead              = errors.New("config: cannot read config file")
)
