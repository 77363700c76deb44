// Package tileset defines edge compatibility between tiles.
//
// Every tile carries one edge id per side. Two tiles may abut across a
// shared side when the edge ids facing each other are equal. Candidate sets
// of tiles are projected to sets of edge ids (FindTileEdge), and a
// neighbour's candidates are filtered by such an edge set (ConstrainTile).
package tileset

import (
	"errors"
	"fmt"

	"github.com/hupe1980/tilewave/bitfield"
)

var (
	// ErrTileLimit is returned when a tileset is full.
	ErrTileLimit = errors.New("tileset: tile limit reached")

	// ErrEdgeLimit is returned for edge ids outside the edge limit.
	ErrEdgeLimit = errors.New("tileset: edge limit exceeded")

	// ErrInvalidLimits is returned for non-positive limits.
	ErrInvalidLimits = errors.New("tileset: invalid limits")
)

// Default limits match the common 128 tile, 128 edge configuration.
const (
	DefaultTileLimit = 128
	DefaultEdgeLimit = 128
)

// Compatibility is the edge-compatibility collaborator of the solver.
// Implementations must be safe for concurrent reads.
type Compatibility interface {
	// TileFieldSize is the lane count of tile candidate fields.
	TileFieldSize() int
	// EdgeFieldSize is the lane count of edge fields.
	EdgeFieldSize() int
	// ConstrainTile removes from tileField every tile whose edge on side
	// from is not in edgeConstraint.
	ConstrainTile(tileField, edgeConstraint bitfield.Field, from Edge)
	// FindTileEdge writes to out the edges the tiles of tileField expose
	// on side edge.
	FindTileEdge(tileField, out bitfield.Field, edge Edge)
}

// Tileset is an edge-id tileset. It is built with AddTile and read-only
// afterwards.
type Tileset struct {
	tileLimit     int
	edgeLimit     int
	tileFieldSize int
	edgeFieldSize int

	// edges[side][tile] is the edge id of tile on side.
	edges [4][]int32
}

var _ Compatibility = (*Tileset)(nil)

// New creates an empty tileset holding up to tileLimit tiles whose edge
// ids lie in [0, edgeLimit).
func New(edgeLimit, tileLimit int) (*Tileset, error) {
	if edgeLimit <= 0 || tileLimit <= 0 {
		return nil, fmt.Errorf("%w: edges %d, tiles %d", ErrInvalidLimits, edgeLimit, tileLimit)
	}

	ts := &Tileset{
		tileLimit:     tileLimit,
		edgeLimit:     edgeLimit,
		tileFieldSize: bitfield.LanesFor(tileLimit),
		edgeFieldSize: bitfield.LanesFor(edgeLimit),
	}
	for side := range ts.edges {
		ts.edges[side] = make([]int32, 0, tileLimit)
	}
	return ts, nil
}

// TileFieldSize implements Compatibility.
func (ts *Tileset) TileFieldSize() int { return ts.tileFieldSize }

// EdgeFieldSize implements Compatibility.
func (ts *Tileset) EdgeFieldSize() int { return ts.edgeFieldSize }

// Len returns the number of tiles.
func (ts *Tileset) Len() int { return len(ts.edges[Right]) }

// TileLimit returns the maximum number of tiles.
func (ts *Tileset) TileLimit() int { return ts.tileLimit }

// EdgeLimit returns the exclusive upper bound of edge ids.
func (ts *Tileset) EdgeLimit() int { return ts.edgeLimit }

// AddTile appends a tile and returns its id.
func (ts *Tileset) AddTile(right, top, left, bottom int) (int, error) {
	id := ts.Len()
	if id >= ts.tileLimit {
		return 0, fmt.Errorf("%w: %d", ErrTileLimit, ts.tileLimit)
	}

	sides := [4]int{Right: right, Top: top, Left: left, Bottom: bottom}
	for side, e := range sides {
		if e < 0 || e >= ts.edgeLimit {
			return 0, fmt.Errorf("%w: %s edge %d, limit %d", ErrEdgeLimit, Edge(side), e, ts.edgeLimit)
		}
	}

	for side, e := range sides {
		ts.edges[side] = append(ts.edges[side], int32(e))
	}
	return id, nil
}

// AddUniformTile appends a tile with the same edge on all four sides.
func (ts *Tileset) AddUniformTile(edge int) (int, error) {
	return ts.AddTile(edge, edge, edge, edge)
}

// AddAxialTile appends a tile whose left and right sides share horizontal
// and whose top and bottom sides share vertical.
func (ts *Tileset) AddAxialTile(horizontal, vertical int) (int, error) {
	return ts.AddTile(horizontal, vertical, horizontal, vertical)
}

// EdgeOf returns the edge id of tile on side.
func (ts *Tileset) EdgeOf(tile int, side Edge) int {
	return int(ts.edges[side][tile])
}

// FindTileEdge implements Compatibility.
func (ts *Tileset) FindTileEdge(tileField, out bitfield.Field, edge Edge) {
	out.Clear(ts.edgeFieldSize)

	n := ts.Len()
	side := ts.edges[edge]
	for tile := tileField.NextSetBit(ts.tileFieldSize, 0); tile != bitfield.None && tile < n; tile = tileField.NextSetBit(ts.tileFieldSize, tile+1) {
		out.SetBit(int(side[tile]))
	}
}

// ConstrainTile implements Compatibility. Bits for ids that are not
// tiles of this set are cleared as well.
func (ts *Tileset) ConstrainTile(tileField, edgeConstraint bitfield.Field, from Edge) {
	n := ts.Len()
	side := ts.edges[from]
	for tile := tileField.NextSetBit(ts.tileFieldSize, 0); tile != bitfield.None; tile = tileField.NextSetBit(ts.tileFieldSize, tile+1) {
		if tile >= n || !edgeConstraint.Has(int(side[tile])) {
			tileField.ClearBit(tile)
		}
	}
}
