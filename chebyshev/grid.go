// SPDX-License-Identifier: MIT

package chebyshev

import "github.com/nipinghe/fmmtl/geom"

// Grid returns the Q^D Chebyshev nodes of box, in flat tensor order:
// node k sits at Center[d] + x_{idx_k[d]}·Extents[d].
func (b *Basis) Grid(box geom.Box) ([]geom.Point, error) {
	out := NewGridBuffer(b)
	if err := b.GridInto(out, box); err != nil {
		return nil, err
	}

	return out, nil
}

// NewGridBuffer allocates Q^D points of dimension D backed by one slice,
// for reuse with GridInto.
func NewGridBuffer(b *Basis) []geom.Point {
	pts := make([]geom.Point, b.size)
	backing := make([]float64, b.size*b.dim)
	for k := range pts {
		pts[k] = backing[k*b.dim : (k+1)*b.dim : (k+1)*b.dim]
	}

	return pts
}

// GridInto writes the grid of box into dst without allocating.
// dst must hold Q^D points of dimension D (see NewGridBuffer).
func (b *Basis) GridInto(dst []geom.Point, box geom.Box) error {
	if len(dst) != b.size || box.Dim() != b.dim {
		return basisErrorf(opGrid, ErrLengthMismatch)
	}
	for k, idx := range b.index {
		p := dst[k]
		if len(p) != b.dim {
			return basisErrorf(opGrid, ErrLengthMismatch)
		}
		for d, i := range idx {
			p[d] = box.Center[d] + b.nodes[i]*box.Extents[d]
		}
	}

	return nil
}
