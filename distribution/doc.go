// Package distribution turns candidate bit fields into weighted random
// picks and fixed-point Shannon entropy.
//
// # Tables
//
// A Distribution keeps, for every byte position of a tile field and every
// one of the 256 values that byte can take, the summed weight of the tiles
// encoded by that byte value and the summed weight*log(weight). Tables are
// updated incrementally by AddTile, so sampling and entropy cost one table
// read per byte of the field instead of one read per tile.
//
// # Areas and Sets
//
// An Area tiles distributions over world space. Select returns the Set of
// distributions overlapping a point. The Set is a plain value; callers
// thread it through ShannonEntropy, PickRandom and AllTiles, so any number
// of solvers may share one Area concurrently.
//
// # Fixed Point
//
// Entropy values are int64 fixed-point numbers with Scale units per nat.
// Integer arithmetic keeps scores identical across platforms, which keeps
// the collapse order reproducible for a given seed.
package distribution
