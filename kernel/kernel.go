// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"
	"math"

	"github.com/nipinghe/fmmtl/geom"
)

// Kernel evaluates the amplitude and phase of an oscillatory kernel.
// Implementations must be safe for concurrent use.
type Kernel interface {
	// Phase returns the real phase φ(t, s).
	Phase(t, s geom.Point) float64
	// Amplitude returns the smooth complex amplitude a(t, s).
	Amplitude(t, s geom.Point) complex128
}

// Names accepted by ByName.
const (
	NameIdentity = "identity"
	NameRadial   = "radial"
	NameFourier  = "fourier"
)

// Identity has zero phase and unit amplitude.
type Identity struct{}

// Phase returns 0.
func (Identity) Phase(_, _ geom.Point) float64 { return 0 }

// Amplitude returns 1.
func (Identity) Amplitude(_, _ geom.Point) complex128 { return 1 }

// Radial is the Helmholtz-like kernel exp(iω|t−s|)/(1+|t−s|).
type Radial struct {
	Omega float64
}

// Phase returns ω|t−s|.
func (k Radial) Phase(t, s geom.Point) float64 { return k.Omega * geom.Distance(t, s) }

// Amplitude returns 1/(1+|t−s|).
func (k Radial) Amplitude(t, s geom.Point) complex128 {
	return complex(1/(1+geom.Distance(t, s)), 0)
}

// Fourier is the kernel exp(iω t·s).
type Fourier struct {
	Omega float64
}

// Phase returns ω t·s.
func (k Fourier) Phase(t, s geom.Point) float64 { return k.Omega * t.Dot(s) }

// Amplitude returns 1.
func (Fourier) Amplitude(_, _ geom.Point) complex128 { return 1 }

// ByName returns the named kernel with frequency omega (ignored by Identity).
func ByName(name string, omega float64) (Kernel, error) {
	switch name {
	case NameIdentity:
		return Identity{}, nil
	case NameRadial:
		return Radial{Omega: omega}, nil
	case NameFourier:
		return Fourier{Omega: omega}, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownKernel)
	}
}

// UnitPolar returns exp(i·x).
func UnitPolar(x float64) complex128 {
	s, c := math.Sincos(x)
	return complex(c, s)
}

// Eval returns K(t, s).
func Eval(k Kernel, t, s geom.Point) complex128 {
	return k.Amplitude(t, s) * UnitPolar(k.Phase(t, s))
}

// Direct accumulates results[i] += Σ_j K(targets[i], sources[j])·charges[j].
//
// Complexity: O(len(targets)·len(sources)).
func Direct(k Kernel, targets, sources []geom.Point, charges, results []complex128) error {
	if len(charges) != len(sources) || len(results) != len(targets) {
		return ErrLengthMismatch
	}
	for i, t := range targets {
		var acc complex128
		for j, s := range sources {
			acc += Eval(k, t, s) * charges[j]
		}
		results[i] += acc
	}

	return nil
}
