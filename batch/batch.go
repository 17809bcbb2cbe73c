package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hypinv/engine"
	"github.com/katalvlaran/hypinv/report"
	"github.com/katalvlaran/hypinv/resolve"
)

// Sentinel errors.
var (
	// ErrBadWorkers indicates a non-positive worker limit.
	ErrBadWorkers = errors.New("batch: workers must be positive")

	// ErrNilManifold indicates a nil entry in the manifold list.
	ErrNilManifold = errors.New("batch: nil manifold")
)

// ResolveAll runs ComputeArithmeticInvariants on every manifold with at most
// workers running at once. A nil entry fails with ErrNilManifold before any
// manifold starts. The first error cancels the context handed to the
// remaining manifolds and is returned, wrapped with the manifold's name.
func ResolveAll(ctx context.Context, manifolds []*engine.Manifold, workers int, opts ...resolve.CallOption) error {
	if workers <= 0 {
		return ErrBadWorkers
	}
	for i, m := range manifolds {
		if m == nil {
			return fmt.Errorf("%w at index %d", ErrNilManifold, i)
		}
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, m := range manifolds {
		g.Go(func() error {
			if err := m.ComputeArithmeticInvariants(gctx, opts...); err != nil {
				return fmt.Errorf("batch: %s: %w", m.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Reports snapshots every manifold in order; nil entries are skipped.
func Reports(manifolds []*engine.Manifold) []report.Report {
	out := make([]report.Report, 0, len(manifolds))
	for _, m := range manifolds {
		if m != nil {
			out = append(out, m.Report())
		}
	}
	return out
}
