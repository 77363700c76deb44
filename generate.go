package tilewave

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/tilewave/distribution"
)

// generateBatch is the number of tiles a worker collapses between
// cancellation checks and rate-limit waits.
const generateBatch = 64

// Region is a collapse window in area-local coordinates.
type Region struct {
	U, V          int
	Width, Height int
}

// touches reports whether r and o overlap or share a side or corner.
func (r Region) touches(o Region) bool {
	return r.U <= o.U+o.Width && o.U <= r.U+r.Width &&
		r.V <= o.V+o.Height && o.V <= r.V+r.Height
}

// Generate collapses every region of area, placed at world offset (x, y),
// into w. The result matches solving the regions one after another in
// input order: a region waits for every earlier region it touches, and
// regions that do not depend on each other run concurrently, bounded by
// WithWorkers and WithTileRate.
//
// The first error cancels the remaining regions and is returned.
func Generate(ctx context.Context, w World, area *distribution.Area, x, y int, regions []Region, optFns ...Option) error {
	if w == nil || w.Tileset() == nil {
		return ErrNilWorld
	}
	if area == nil {
		return ErrNoDistributionArea
	}

	opts := applyOptions(optFns)
	start := time.Now()
	var tiles atomic.Int64

	err := func() error {
		for _, wave := range planWaves(regions) {
			if err := runWave(ctx, w, area, x, y, regions, wave, opts, optFns, &tiles); err != nil {
				return err
			}
		}
		return nil
	}()

	opts.logger.LogGenerate(ctx, len(regions), int(tiles.Load()), time.Since(start), err)
	return err
}

// planWaves groups region indices into waves. A region runs one wave after
// the latest earlier region it touches, so every region is solved after all
// earlier neighbours and before all later ones; regions of one wave never
// touch. On a row-major grid the waves are diagonal wavefronts.
func planWaves(regions []Region) [][]int {
	level := make([]int, len(regions))
	var waves [][]int
	for i, r := range regions {
		for j := range i {
			if r.touches(regions[j]) {
				level[i] = max(level[i], level[j]+1)
			}
		}
		for len(waves) <= level[i] {
			waves = append(waves, nil)
		}
		waves[level[i]] = append(waves[level[i]], i)
	}
	return waves
}

func runWave(ctx context.Context, w World, area *distribution.Area, x, y int, regions []Region, wave []int, opts options, optFns []Option, tiles *atomic.Int64) error {
	g, gctx := errgroup.WithContext(ctx)
	ctrl := opts.controller

	for _, idx := range wave {
		if err := ctrl.AcquireWorker(gctx); err != nil {
			break
		}

		// Per-region options: own random source, shared controller.
		regionOpts := append(append([]Option{}, optFns...),
			WithSeed(regionSeed(opts.seed, idx)),
			WithLogger(opts.logger.WithRegion(idx)),
			withController(ctrl),
		)

		g.Go(func() error {
			defer ctrl.ReleaseWorker()

			n, err := solveRegion(gctx, w, area, x, y, regions[idx], regionOpts)
			tiles.Add(int64(n))
			if err != nil {
				return fmt.Errorf("region %d: %w", idx, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// regionSeed derives the random seed of region idx.
func regionSeed(seed int64, idx int) int64 {
	return seed + int64(idx)*7919
}

// solveRegion collapses one region to completion and returns the number of
// tiles it decided.
func solveRegion(ctx context.Context, w World, area *distribution.Area, x, y int, r Region, optFns []Option) (int, error) {
	sp, err := New(w, optFns...)
	if err != nil {
		return 0, err
	}
	defer func() { _ = sp.Close() }()

	sp.SelectDistributionArea(x, y, area)
	if err := sp.SelectCollapseArea(r.U, r.V, r.Width, r.Height); err != nil {
		return 0, err
	}

	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		batch := min(generateBatch, sp.Remaining())
		if err := sp.controller.AcquireTiles(ctx, batch); err != nil {
			return total, err
		}

		before := sp.Remaining()
		done, err := sp.CollapseTiles(batch)
		if err != nil {
			return total, err
		}
		total += before - sp.Remaining()
		if done {
			return total, nil
		}
	}
}
