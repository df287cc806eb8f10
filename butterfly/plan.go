// SPDX-License-Identifier: MIT

package butterfly

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/nipinghe/fmmtl/chebyshev"
	"github.com/nipinghe/fmmtl/geom"
	"github.com/nipinghe/fmmtl/internal/metrics"
	"github.com/nipinghe/fmmtl/kernel"
	"github.com/nipinghe/fmmtl/tree"
)

// Plan is a reusable butterfly transform for one kernel and one pair of
// point sets. Trees and basis are built once by NewPlan; every Apply
// allocates fresh coefficient tables, so a Plan may be applied concurrently.
type Plan struct {
	kernel kernel.Kernel
	basis  *chebyshev.Basis

	source, target   *tree.Tree
	sources, targets []geom.Point // tree order

	split   int
	workers int

	logger  klog.Logger
	metrics *metrics.Recorder
}

// NewPlan builds the source and target trees and the Chebyshev basis.
//
// Implementation:
//   - Stage 1: resolve options and build both trees with the same depth.
//   - Stage 2: check dimensions, build the basis, resolve the split level.
//   - Stage 3: permute the points into tree order and wire metrics.
//
// Errors: ErrNilCollaborator, ErrDimensionMismatch, ErrInvalidSplit, and the
// tree and chebyshev sentinels (wrapped).
func NewPlan(k kernel.Kernel, sources, targets []geom.Point, opts ...Option) (*Plan, error) {
	if k == nil {
		return nil, opErrorf(opNewPlan, ErrNilCollaborator)
	}
	o := gatherOptions(opts)

	var srcOpts, tgtOpts []tree.Option
	if o.sourceBounds != nil {
		srcOpts = append(srcOpts, tree.WithBounds(*o.sourceBounds))
	}
	if o.targetBounds != nil {
		tgtOpts = append(tgtOpts, tree.WithBounds(*o.targetBounds))
	}
	src, err := tree.Build(sources, o.depth, srcOpts...)
	if err != nil {
		return nil, opErrorf(opNewPlan, fmt.Errorf("source tree: %w", err))
	}
	tgt, err := tree.Build(targets, o.depth, tgtOpts...)
	if err != nil {
		return nil, opErrorf(opNewPlan, fmt.Errorf("target tree: %w", err))
	}
	if src.Dim() != tgt.Dim() {
		return nil, opErrorf(opNewPlan, fmt.Errorf("source dim %d, target dim %d: %w",
			src.Dim(), tgt.Dim(), ErrDimensionMismatch))
	}

	basis, err := chebyshev.NewBasis(src.Dim(), o.order)
	if err != nil {
		return nil, opErrorf(opNewPlan, err)
	}

	split := o.split
	if split == AutoSplit {
		split = o.depth / 2
	}
	if split > o.depth {
		return nil, opErrorf(opNewPlan, fmt.Errorf("split %d, depth %d: %w", split, o.depth, ErrInvalidSplit))
	}

	var rec *metrics.Recorder
	if o.registry != nil {
		if rec, err = metrics.New(o.registry); err != nil {
			return nil, opErrorf(opNewPlan, err)
		}
	}

	return &Plan{
		kernel:  k,
		basis:   basis,
		source:  src,
		target:  tgt,
		sources: tree.Gather(src, sources),
		targets: tree.Gather(tgt, targets),
		split:   split,
		workers: o.workers,
		logger:  o.logger,
		metrics: rec,
	}, nil
}

// Source returns the source tree.
func (p *Plan) Source() *tree.Tree { return p.source }

// Target returns the target tree.
func (p *Plan) Target() *tree.Tree { return p.target }

// Basis returns the shared Chebyshev basis.
func (p *Plan) Basis() *chebyshev.Basis { return p.basis }

// Depth returns L_max.
func (p *Plan) Depth() int { return p.source.Depth() }

// SplitLevel returns the target level at which M2L runs.
func (p *Plan) SplitLevel() int { return p.split }

// Workers returns the per-pass goroutine limit.
func (p *Plan) Workers() int { return p.workers }

// Apply computes r_t ≈ Σ_s K(t,s)·q_s for every target. charges and the
// returned results are in the caller's input order.
//
// Schedule (split level L_s, barrier after every pass):
//  1. S2M on the source leaves against target level 0.
//  2. M2M for L = 1 … L_s.
//  3. M2L at L_s.
//  4. L2L for L = L_s+1 … L_max.
//  5. L2T on the target leaves.
//
// Multipole and local levels are released as soon as the next level has
// consumed them. ctx is checked between passes and before each box.
//
// Errors: ErrLengthMismatch, ctx.Err() (wrapped), operator errors.
func (p *Plan) Apply(ctx context.Context, charges []complex128) ([]complex128, error) {
	if len(charges) != p.source.NumBodies() {
		return nil, opErrorf(opApply, fmt.Errorf("%d charges for %d sources: %w",
			len(charges), p.source.NumBodies(), ErrLengthMismatch))
	}
	start := time.Now()

	op, err := p.operators(tree.Gather(p.source, charges))
	if err != nil {
		return nil, opErrorf(opApply, err)
	}
	lmax := p.Depth()

	// 1. S2M
	p.allocate(op.Multipole, p.source, lmax, p.target.LevelSize(0))
	if err := p.boxPass(ctx, opS2M, 0, p.source, lmax, op.S2M); err != nil {
		return nil, err
	}

	// 2. M2M
	for L := 1; L <= p.split; L++ {
		p.allocate(op.Multipole, p.source, lmax-L, p.target.LevelSize(L))
		if err := p.boxPass(ctx, opM2M, L, p.source, lmax-L, op.M2M); err != nil {
			return nil, err
		}
		p.release(op.Multipole, p.source, lmax-L+1)
	}

	// 3. M2L
	p.allocate(op.Local, p.target, p.split, p.source.LevelSize(lmax-p.split))
	if err := p.boxPass(ctx, opM2L, p.split, p.target, p.split, op.M2LTarget); err != nil {
		return nil, err
	}
	p.release(op.Multipole, p.source, lmax-p.split)

	// 4. L2L
	for L := p.split + 1; L <= lmax; L++ {
		p.allocate(op.Local, p.target, L, p.source.LevelSize(lmax-L))
		if err := p.boxPass(ctx, opL2L, L, p.target, L, op.L2L); err != nil {
			return nil, err
		}
		p.release(op.Local, p.target, L-1)
	}

	// 5. L2T
	if err := p.boxPass(ctx, opL2T, lmax, p.target, lmax, op.L2T); err != nil {
		return nil, err
	}

	results := make([]complex128, len(op.Results))
	tree.Scatter(p.target, results, op.Results)

	p.metrics.ObserveApply()
	p.logger.V(1).Info("butterfly transform applied",
		"sources", len(p.sources), "targets", len(p.targets),
		"dim", p.basis.Dim(), "order", p.basis.Order(),
		"depth", lmax, "split", p.split, "workers", p.workers,
		"elapsed", time.Since(start))

	return results, nil
}

// operators wires a fresh Operators value for one Apply.
func (p *Plan) operators(charges []complex128) (*Operators, error) {
	size := p.basis.Size()
	multipole, err := NewTable(p.source.NumBoxes(), size)
	if err != nil {
		return nil, err
	}
	local, err := NewTable(p.target.NumBoxes(), size)
	if err != nil {
		return nil, err
	}
	op := &Operators{
		Basis:     p.basis,
		Kernel:    p.kernel,
		Source:    p.source,
		Target:    p.target,
		Sources:   p.sources,
		Charges:   charges,
		Targets:   p.targets,
		Results:   make([]complex128, len(p.targets)),
		Multipole: multipole,
		Local:     local,
	}

	return op, op.Validate()
}

func (p *Plan) allocate(tbl *Table, t *tree.Tree, level, counterparts int) {
	boxes, _ := t.Level(level)
	for _, b := range boxes {
		tbl.Allocate(b.ID, counterparts)
	}
}

func (p *Plan) release(tbl *Table, t *tree.Tree, level int) {
	boxes, _ := t.Level(level)
	for _, b := range boxes {
		tbl.Release(b.ID)
	}
}

// boxPass runs fn(L, box) for every box at level of t, with at most
// p.workers calls in flight. Every fn writes only its own box's slots.
func (p *Plan) boxPass(ctx context.Context, name string, L int, t *tree.Tree, level int,
	fn func(int, tree.Box) error) error {
	if err := ctx.Err(); err != nil {
		return opErrorf(opApply, fmt.Errorf("before %s: %w", name, err))
	}
	start := time.Now()
	boxes, err := t.Level(level)
	if err != nil {
		return opErrorf(opApply, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, b := range boxes {
		if gctx.Err() != nil {
			break
		}
		b := b
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(L, b)
		})
	}
	if err := g.Wait(); err != nil {
		return opErrorf(opApply, err)
	}
	if err := ctx.Err(); err != nil {
		return opErrorf(opApply, fmt.Errorf("during %s: %w", name, err))
	}

	elapsed := time.Since(start)
	p.metrics.ObservePass(name, len(boxes), elapsed)
	p.logger.V(2).Info("pass done", "operator", name, "level", L,
		"boxes", len(boxes), "elapsed", elapsed)

	return nil
}
