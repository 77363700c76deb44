// Package testutil provides testing utilities for tilewave.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG that satisfies the sampling
// interface of the distribution package, plus generators for weights,
// random fields and coordinates.
//
//	rng := testutil.NewRNG(seed)
//	tile, err := set.PickRandom(field, rng)
package testutil
