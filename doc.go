// Package tilewave provides an incremental wave function collapse solver
// for tile worlds of unbounded size.
//
// Tilewave fills a world of edge-matched tiles one collapse window at a
// time. Each window keeps a candidate bit field per cell, propagates edge
// constraints to a fixed point and decides the cell of least Shannon
// entropy first, picking tiles from weighted distributions that vary over
// the world.
//
// # Quick Start
//
//	ts, _ := tileset.New(tileset.DefaultEdgeLimit, tileset.DefaultTileLimit)
//	grass, _ := ts.AddUniformTile(0)
//	water, _ := ts.AddUniformTile(1)
//	shore, _ := ts.AddAxialTile(0, 1)
//
//	d := distribution.New(ts.TileFieldSize())
//	_ = d.AddTile(grass, 6)
//	_ = d.AddTile(water, 3)
//	_ = d.AddTile(shore, 1)
//
//	w := world.New(ts, world.DefaultChunkSize)
//	sp, _ := tilewave.New(w, tilewave.WithSeed(42))
//	defer sp.Close()
//
//	sp.SelectDistributionArea(0, 0, distribution.NewSingleArea(d))
//	if err := sp.SelectCollapseArea(0, 0, 32, 32); err != nil {
//	    return err
//	}
//	for {
//	    done, err := sp.CollapseTiles(64)
//	    if err != nil {
//	        return err // e.g. ErrContradiction: select the window again
//	    }
//	    if done {
//	        break
//	    }
//	}
//
// # Distribution Areas
//
// A distribution.Area tiles the world with a grid of distributions. Near
// the border of two grid slots, cells draw from both, so terrain blends
// instead of changing abruptly.
//
// # Collapse Windows
//
// SelectCollapseArea seeds a window from the world: decided cells keep
// their tile, undecided cells start from the distributions covering them.
// The cells just outside the window constrain its border, so consecutive
// windows stitch together. CollapseTiles may be called in small slices to
// spread work over frames.
//
// # Parallel Generation
//
// Generate solves many regions with a bounded worker pool:
//
//	err := tilewave.Generate(ctx, w, area, 0, 0, regions,
//	    tilewave.WithWorkers(8),
//	    tilewave.WithSeed(7),
//	)
//
// # Error Handling
//
// Contradictions are reported as *ErrCellContradiction, which matches
// ErrContradiction with errors.Is:
//
//	if _, err := sp.CollapseTiles(16); errors.Is(err, tilewave.ErrContradiction) {
//	    var c *tilewave.ErrCellContradiction
//	    errors.As(err, &c)
//	    log.Printf("stuck at %d,%d", c.X, c.Y)
//	}
//
// A contradiction aborts the window; select a collapse area again to
// continue.
package tilewave
