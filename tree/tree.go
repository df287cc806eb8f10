// SPDX-License-Identifier: MIT

package tree

import (
	"fmt"
	"math"

	"github.com/nipinghe/fmmtl/geom"
)

// Tree is a uniform 2^D-ary hierarchy over a point set.
type Tree struct {
	dim     int
	depth   int
	arity   int   // 2^dim
	boxes   []Box // level-major arena
	offsets []int // offsets[l] = ID of the first box at level l; len depth+2
	perm    []int // perm[i] = input index of the body at tree position i
}

// Build constructs a tree of the given depth over points.
//
// Implementation:
//   - Stage 1: validate depth and dimensions; derive or check the root box.
//   - Stage 2: allocate the arena level by level (parents in Index order,
//     children in orthant-code order).
//   - Stage 3: descend each point to its leaf, counting-sort bodies by leaf and
//     assign body ranges bottom-up.
//
// Errors: ErrNegativeDepth, ErrTooDeep, ErrNoPoints, ErrDimensionMismatch,
// ErrOutOfBounds.
func Build(points []geom.Point, depth int, opts ...Option) (*Tree, error) {
	o := gatherOptions(opts)
	if depth < 0 {
		return nil, ErrNegativeDepth
	}

	root, err := rootBox(points, o)
	if err != nil {
		return nil, err
	}
	dim := root.Dim()
	if dim*depth > MaxLevelBits {
		return nil, fmt.Errorf("dim %d depth %d: %w", dim, depth, ErrTooDeep)
	}
	if !geom.SameDim(dim, points) {
		return nil, ErrDimensionMismatch
	}
	if o.hasBounds {
		for i, p := range points {
			if !root.Contains(p) {
				return nil, fmt.Errorf("point %d: %w", i, ErrOutOfBounds)
			}
		}
	}

	t := &Tree{dim: dim, depth: depth, arity: 1 << dim}
	t.allocate(root)
	t.sortBodies(points)

	return t, nil
}

// rootBox returns the explicit bounds or the bounding box of points.
func rootBox(points []geom.Point, o options) (geom.Box, error) {
	if o.hasBounds {
		return *o.bounds, nil
	}
	if len(points) == 0 {
		return geom.Box{}, ErrNoPoints
	}

	dim := len(points[0])
	if dim == 0 {
		return geom.Box{}, ErrDimensionMismatch
	}
	lo := points[0].Clone()
	hi := points[0].Clone()
	for _, p := range points[1:] {
		if len(p) != dim {
			return geom.Box{}, ErrDimensionMismatch
		}
		for d := range p {
			lo[d] = math.Min(lo[d], p[d])
			hi[d] = math.Max(hi[d], p[d])
		}
	}

	center := make(geom.Point, dim)
	extents := make(geom.Point, dim)
	widest := 0.0
	for d := 0; d < dim; d++ {
		center[d] = 0.5 * (lo[d] + hi[d])
		extents[d] = 0.5 * (hi[d] - lo[d])
		widest = math.Max(widest, extents[d])
	}
	if widest == 0 {
		widest = DefaultPadding
	}
	for d := range extents {
		if extents[d] == 0 {
			extents[d] = widest
		}
	}

	return geom.NewBox(center, extents)
}

// allocate builds every box of every level.
func (t *Tree) allocate(root geom.Box) {
	total := 0
	t.offsets = make([]int, t.depth+2)
	for l := 0; l <= t.depth; l++ {
		t.offsets[l] = total
		total += 1 << (t.dim * l)
	}
	t.offsets[t.depth+1] = total

	t.boxes = make([]Box, 0, total)
	t.boxes = append(t.boxes, Box{Box: root, ID: 0, Level: 0, Index: 0, Parent: NoParent})
	for l := 1; l <= t.depth; l++ {
		for pid := t.offsets[l-1]; pid < t.offsets[l]; pid++ {
			children := make([]int, t.arity)
			for code := 0; code < t.arity; code++ {
				id := len(t.boxes)
				children[code] = id
				t.boxes = append(t.boxes, Box{
					Box:    t.boxes[pid].Child(code),
					ID:     id,
					Level:  l,
					Index:  id - t.offsets[l],
					Parent: pid,
				})
			}
			t.boxes[pid].Children = children
		}
	}
}

// sortBodies assigns body ranges and the permutation.
func (t *Tree) sortBodies(points []geom.Point) {
	nLeaves := t.offsets[t.depth+1] - t.offsets[t.depth]
	leafOf := make([]int, len(points))
	for i, p := range points {
		pos := 0
		for l := 1; l <= t.depth; l++ {
			parent := t.boxes[t.offsets[l-1]+pos]
			pos = pos*t.arity + parent.ChildCode(p)
		}
		leafOf[i] = pos
	}

	// Counting sort keeps input order within a leaf.
	start := make([]int, nLeaves+1)
	for _, leaf := range leafOf {
		start[leaf+1]++
	}
	for k := 1; k <= nLeaves; k++ {
		start[k] += start[k-1]
	}
	next := make([]int, nLeaves)
	copy(next, start[:nLeaves])
	t.perm = make([]int, len(points))
	for i, leaf := range leafOf {
		t.perm[next[leaf]] = i
		next[leaf]++
	}

	base := t.offsets[t.depth]
	for k := 0; k < nLeaves; k++ {
		t.boxes[base+k].Begin = start[k]
		t.boxes[base+k].End = start[k+1]
	}
	for id := t.offsets[t.depth] - 1; id >= 0; id-- {
		b := &t.boxes[id]
		b.Begin = t.boxes[b.Children[0]].Begin
		b.End = t.boxes[b.Children[len(b.Children)-1]].End
	}
}

// Dim returns D.
func (t *Tree) Dim() int { return t.dim }

// Depth returns L_max, the level of every leaf.
func (t *Tree) Depth() int { return t.depth }

// Arity returns 2^D.
func (t *Tree) Arity() int { return t.arity }

// NumBoxes returns the arena size.
func (t *Tree) NumBoxes() int { return len(t.boxes) }

// NumBodies returns the number of points the tree was built over.
func (t *Tree) NumBodies() int { return len(t.perm) }

// Root returns the level-0 box.
func (t *Tree) Root() Box { return t.boxes[0] }

// Box returns the box with arena ID id.
func (t *Tree) Box(id int) Box { return t.boxes[id] }

// Offset returns the ID of the first box at level l.
func (t *Tree) Offset(l int) int { return t.offsets[l] }

// LevelSize returns the number of boxes at level l, or 0 if l is out of range.
func (t *Tree) LevelSize(l int) int {
	if l < 0 || l > t.depth {
		return 0
	}

	return t.offsets[l+1] - t.offsets[l]
}

// Level returns the boxes at level l in Index order. The slice aliases the
// arena and must be treated as read-only.
func (t *Tree) Level(l int) ([]Box, error) {
	if l < 0 || l > t.depth {
		return nil, fmt.Errorf("level %d of depth %d: %w", l, t.depth, ErrLevelRange)
	}

	return t.boxes[t.offsets[l]:t.offsets[l+1]], nil
}

// Parent returns b's parent; ok is false for the root.
func (t *Tree) Parent(b Box) (parent Box, ok bool) {
	if b.Parent == NoParent {
		return Box{}, false
	}

	return t.boxes[b.Parent], true
}

// Children returns b's children (contiguous in the arena), nil for leaves.
func (t *Tree) Children(b Box) []Box {
	if len(b.Children) == 0 {
		return nil
	}
	first := b.Children[0]

	return t.boxes[first : first+len(b.Children)]
}

// Permutation returns a copy of the body permutation: element i is the input
// index of the body stored at tree position i.
func (t *Tree) Permutation() []int {
	out := make([]int, len(t.perm))
	copy(out, t.perm)

	return out
}

// Gather returns src reordered into tree order: out[i] = src[perm[i]].
func Gather[T any](t *Tree, src []T) []T {
	out := make([]T, len(t.perm))
	for i, j := range t.perm {
		out[i] = src[j]
	}

	return out
}

// Scatter writes tree-ordered values back to input order: dst[perm[i]] = src[i].
func Scatter[T any](t *Tree, dst, src []T) {
	for i, j := range t.perm {
		dst[j] = src[i]
	}
}
