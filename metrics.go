package tilewave

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting solver metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    collapseCounter   prometheus.Counter
//	    collapseHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordCollapse(tiles int, duration time.Duration, err error) {
//	    p.collapseCounter.Add(float64(tiles))
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordSelectCollapseArea is called after each window setup.
	// cells is the number of window cells, err is nil if successful.
	RecordSelectCollapseArea(cells int, duration time.Duration, err error)

	// RecordCollapse is called after each CollapseTiles call.
	// tiles is the number of cells collapsed by the call.
	RecordCollapse(tiles int, duration time.Duration, err error)

	// RecordPropagation is called after each propagation run.
	// visits is the number of neighbour constraints applied, shrunk the
	// number of those that removed candidates.
	RecordPropagation(visits, shrunk int)

	// RecordContradiction is called when a cell runs out of candidates.
	RecordContradiction()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSelectCollapseArea(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordCollapse(int, time.Duration, error)           {}
func (NoopMetricsCollector) RecordPropagation(int, int)                         {}
func (NoopMetricsCollector) RecordContradiction()                               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SelectCount       atomic.Int64
	SelectErrors      atomic.Int64
	SelectCells       atomic.Int64
	SelectTotalNanos  atomic.Int64
	CollapseCount     atomic.Int64
	CollapseErrors    atomic.Int64
	CollapseTiles     atomic.Int64
	CollapseNanos     atomic.Int64
	PropagationCount  atomic.Int64
	PropagationVisits atomic.Int64
	PropagationShrunk atomic.Int64
	Contradictions    atomic.Int64
}

// RecordSelectCollapseArea implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSelectCollapseArea(cells int, duration time.Duration, err error) {
	b.SelectCount.Add(1)
	b.SelectTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SelectErrors.Add(1)
		return
	}
	b.SelectCells.Add(int64(cells))
}

// RecordCollapse implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCollapse(tiles int, duration time.Duration, err error) {
	b.CollapseCount.Add(1)
	b.CollapseTiles.Add(int64(tiles))
	b.CollapseNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CollapseErrors.Add(1)
	}
}

// RecordPropagation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPropagation(visits, shrunk int) {
	b.PropagationCount.Add(1)
	b.PropagationVisits.Add(int64(visits))
	b.PropagationShrunk.Add(int64(shrunk))
}

// RecordContradiction implements MetricsCollector.
func (b *BasicMetricsCollector) RecordContradiction() {
	b.Contradictions.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SelectCount:       b.SelectCount.Load(),
		SelectErrors:      b.SelectErrors.Load(),
		SelectCells:       b.SelectCells.Load(),
		SelectAvgNanos:    b.getAvgSelectNanos(),
		CollapseCount:     b.CollapseCount.Load(),
		CollapseErrors:    b.CollapseErrors.Load(),
		CollapseTiles:     b.CollapseTiles.Load(),
		TileAvgNanos:      b.getAvgTileNanos(),
		PropagationCount:  b.PropagationCount.Load(),
		PropagationVisits: b.PropagationVisits.Load(),
		PropagationShrunk: b.PropagationShrunk.Load(),
		Contradictions:    b.Contradictions.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSelectNanos() int64 {
	count := b.SelectCount.Load()
	if count == 0 {
		return 0
	}
	return b.SelectTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgTileNanos() int64 {
	tiles := b.CollapseTiles.Load()
	if tiles == 0 {
		return 0
	}
	return b.CollapseNanos.Load() / tiles
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SelectCount       int64
	SelectErrors      int64
	SelectCells       int64
	SelectAvgNanos    int64
	CollapseCount     int64
	CollapseErrors    int64
	CollapseTiles     int64
	TileAvgNanos      int64
	PropagationCount  int64
	PropagationVisits int64
	PropagationShrunk int64
	Contradictions    int64
}
