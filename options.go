package tilewave

import (
	"log/slog"
	"math/rand"
	"runtime"
	"time"

	"github.com/hupe1980/tilewave/distribution"
	"github.com/hupe1980/tilewave/internal/resource"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	rng              distribution.Rand
	seed             int64
	memoryLimit      int64
	workers          int
	tilesPerSecond   int

	// controller is shared by the solvers of one Generate call.
	controller *resource.Controller
}

// Option configures Superposition and Generate behavior.
//
// Breaking changes are expected while tilewave is pre-release.
type Option func(*options)

// WithSeed seeds the random source used for tile picks. Two solvers with
// the same seed, world, area and call sequence produce the same tiles.
//
// Generate derives one source per region from the seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.rng = nil
	}
}

// WithRand configures the random source used for tile picks.
// The source is used from a single goroutine only; Generate ignores it
// and derives per-region sources from WithSeed instead.
func WithRand(rng distribution.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithMemoryLimit bounds the bytes held by candidate fields and entropy
// state of collapse windows. Windows that do not fit fail with
// ErrResourceExhausted. A limit <= 0 disables the check.
//
// Example:
//
//	sp, _ := tilewave.New(w, tilewave.WithMemoryLimit(64<<20))
//	if err := sp.SelectCollapseArea(0, 0, 4096, 4096); errors.Is(err, tilewave.ErrResourceExhausted) {
//	    // use smaller windows
//	}
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithWorkers bounds the number of regions Generate solves concurrently.
// If workers <= 0, GOMAXPROCS is used.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithTileRate limits Generate to tilesPerSecond collapsed tiles across
// all workers. A rate <= 0 disables the limit.
func WithTileRate(tilesPerSecond int) Option {
	return func(o *options) {
		o.tilesPerSecond = tilesPerSecond
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &tilewave.BasicMetricsCollector{}
//	sp, _ := tilewave.New(w, tilewave.WithMetricsCollector(metrics))
//	// ... collapse ...
//	stats := metrics.GetStats()
//	fmt.Printf("Tiles: %d, Avg latency: %dns\n", stats.CollapseTiles, stats.TileAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := tilewave.NewJSONLogger(slog.LevelDebug)
//	sp, _ := tilewave.New(w, tilewave.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// withController shares a resource controller between solvers.
func withController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		seed:             time.Now().UnixNano(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(o.seed)) // nolint gosec
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.controller == nil {
		o.controller = resource.NewController(resource.Config{
			MemoryLimitBytes: o.memoryLimit,
			MaxWorkers:       int64(o.workers),
			TilesPerSecond:   int64(o.tilesPerSecond),
		})
	}
	return o
}
