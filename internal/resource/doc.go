// Package resource implements the Controller that governs resources
// shared by solvers.
//
// The Controller manages three resource types:
//
//   - Memory: Track and limit solve-window allocations (non-blocking, fail-fast)
//   - Concurrency: Limit the number of regions solved in parallel
//   - Throughput: Rate-limit collapses so background generation does not
//     starve the host
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory is non-blocking and returns immediately
// with ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20,
//	})
//
//	if err := rc.AcquireMemory(windowBytes); err != nil {
//	    // ErrMemoryLimitExceeded - caller decides retry/backoff
//	}
//	defer rc.ReleaseMemory(windowBytes)
//
// # Worker Limits
//
//	rc := resource.NewController(resource.Config{
//	    MaxWorkers: 4,
//	})
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
// # Throughput
//
// Token bucket over collapsed tiles:
//
//	rc := resource.NewController(resource.Config{
//	    TilesPerSecond: 20000,
//	})
//	if err := rc.AcquireTiles(ctx, 256); err != nil {
//	    return err
//	}
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
