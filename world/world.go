// Package world provides an in-memory store of decided tiles.
//
// Tiles are kept in square chunks keyed by chunk coordinate. Writes are
// serialised and a coordinate is decided at most once: the first Set wins
// and later writes are rejected, so several solvers may share one World.
package world

import (
	"sync"

	"github.com/hupe1980/tilewave/tileset"
)

// NullTile marks an undecided coordinate.
const NullTile = -1

// DefaultChunkSize is the chunk edge length used when none is given.
const DefaultChunkSize = 32

type chunkKey struct{ cx, cy int }

// World is a thread-safe, chunked tile map.
type World struct {
	mu        sync.RWMutex
	tileset   tileset.Compatibility
	chunkSize int
	chunks    map[chunkKey][]int32
	decided   int
}

// New creates an empty world. chunkSize <= 0 selects DefaultChunkSize.
func New(ts tileset.Compatibility, chunkSize int) *World {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &World{
		tileset:   ts,
		chunkSize: chunkSize,
		chunks:    make(map[chunkKey][]int32),
	}
}

// Tileset returns the tileset the world's tiles belong to.
func (w *World) Tileset() tileset.Compatibility { return w.tileset }

// ChunkSize returns the chunk edge length, also the default solve window.
func (w *World) ChunkSize() int { return w.chunkSize }

// Get returns the tile at (x, y) or NullTile.
func (w *World) Get(x, y int) int {
	key, idx := w.locate(x, y)

	w.mu.RLock()
	defer w.mu.RUnlock()

	c, ok := w.chunks[key]
	if !ok {
		return NullTile
	}
	return int(c[idx])
}

// Set decides (x, y) as tile. It reports false, leaving the world
// unchanged, if the coordinate is already decided or tile is NullTile.
func (w *World) Set(x, y, tile int) bool {
	if tile < 0 {
		return false
	}
	key, idx := w.locate(x, y)

	w.mu.Lock()
	defer w.mu.Unlock()

	c, ok := w.chunks[key]
	if !ok {
		c = newChunk(w.chunkSize)
		w.chunks[key] = c
	}
	if c[idx] != NullTile {
		return false
	}
	c[idx] = int32(tile)
	w.decided++
	return true
}

// Decided returns the number of decided coordinates.
func (w *World) Decided() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.decided
}

// Chunk returns a copy of chunk (cx, cy) in row-major order, or false if
// nothing in it was decided.
func (w *World) Chunk(cx, cy int) ([]int, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	c, ok := w.chunks[chunkKey{cx, cy}]
	if !ok {
		return nil, false
	}
	out := make([]int, len(c))
	for i, t := range c {
		out[i] = int(t)
	}
	return out, true
}

func (w *World) locate(x, y int) (chunkKey, int) {
	cx, lx := floorDivMod(x, w.chunkSize)
	cy, ly := floorDivMod(y, w.chunkSize)
	return chunkKey{cx, cy}, lx + ly*w.chunkSize
}

func newChunk(size int) []int32 {
	c := make([]int32, size*size)
	for i := range c {
		c[i] = NullTile
	}
	return c
}

// floorDivMod returns floor(a/b) and the non-negative remainder.
func floorDivMod(a, b int) (int, int) {
	q, r := a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}
