package tileset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tilewave/bitfield"
)

func TestEdge(t *testing.T) {
	assert.Equal(t, Left, Right.Opposite())
	assert.Equal(t, Bottom, Top.Opposite())
	assert.Equal(t, Right, Left.Opposite())
	assert.Equal(t, Top, Bottom.Opposite())
	assert.Equal(t, None, None.Opposite())

	for _, e := range Sides {
		di, dj := e.Offset()
		odi, odj := e.Opposite().Offset()
		assert.Equal(t, 0, di+odi)
		assert.Equal(t, 0, dj+odj)
	}
	assert.Equal(t, "top", Top.String())
}

func TestNew_Limits(t *testing.T) {
	_, err := New(0, 8)
	assert.ErrorIs(t, err, ErrInvalidLimits)

	ts, err := New(130, 65)
	require.NoError(t, err)
	assert.Equal(t, 2, ts.TileFieldSize())
	assert.Equal(t, 3, ts.EdgeFieldSize())
}

func TestAddTile(t *testing.T) {
	ts, err := New(4, 2)
	require.NoError(t, err)

	id, err := ts.AddTile(0, 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, id)
	assert.Equal(t, 2, ts.EdgeOf(0, Left))

	_, err = ts.AddTile(0, 4, 0, 0)
	assert.ErrorIs(t, err, ErrEdgeLimit)
	assert.Equal(t, 1, ts.Len())

	id, err = ts.AddAxialTile(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, 1, ts.EdgeOf(1, Left))
	assert.Equal(t, 3, ts.EdgeOf(1, Bottom))

	_, err = ts.AddUniformTile(0)
	assert.ErrorIs(t, err, ErrTileLimit)
}

func TestFindTileEdgeAndConstrain(t *testing.T) {
	ts, err := New(8, 8)
	require.NoError(t, err)

	// Edge colours: 0 = grass, 1 = water, 2 = shore.
	grass, _ := ts.AddUniformTile(0)
	water, _ := ts.AddUniformTile(1)
	shore, _ := ts.AddTile(1, 2, 0, 2)

	tiles := bitfield.New(ts.TileFieldSize())
	tiles.SetBit(grass)
	tiles.SetBit(shore)

	edges := bitfield.New(ts.EdgeFieldSize())
	ts.FindTileEdge(tiles, edges, Right)
	assert.Equal(t, "{0 1}", edges.Format(ts.EdgeFieldSize()))

	ts.FindTileEdge(tiles, edges, Top)
	assert.Equal(t, "{0 2}", edges.Format(ts.EdgeFieldSize()))

	// A neighbour to the right receives the right edges on its left side.
	neighbour := bitfield.New(ts.TileFieldSize())
	neighbour.SetBit(grass)
	neighbour.SetBit(water)
	neighbour.SetBit(shore)
	neighbour.SetBit(7) // not a tile

	only := bitfield.New(ts.EdgeFieldSize())
	only.SetBit(1)
	ts.ConstrainTile(neighbour, only, Left)
	assert.Equal(t, "{1}", neighbour.Format(ts.TileFieldSize()))
}
