package distribution

import (
	"fmt"
	"math"
)

// Area tiles distributions over world space. Each distribution covers a
// square of distributionSize cells; the grid is distributionsWidth wide
// and high. An Area is read-only once populated and safe to share.
type Area struct {
	distributionSize   int
	distributionsWidth int
	dists              []*Distribution
}

// NewArea creates an empty area.
func NewArea(distributionSize, distributionsWidth int) (*Area, error) {
	if distributionSize <= 0 || distributionsWidth <= 0 {
		return nil, fmt.Errorf("%w: size %d, width %d", ErrInvalidArea, distributionSize, distributionsWidth)
	}
	return &Area{
		distributionSize:   distributionSize,
		distributionsWidth: distributionsWidth,
		dists:              make([]*Distribution, distributionsWidth*distributionsWidth),
	}, nil
}

// NewSingleArea creates an area where d applies everywhere.
func NewSingleArea(d *Distribution) *Area {
	a := &Area{
		distributionSize:   math.MaxInt32,
		distributionsWidth: 1,
		dists:              []*Distribution{d},
	}
	return a
}

// DistributionSize returns the cell span of one distribution tile.
func (a *Area) DistributionSize() int { return a.distributionSize }

// DistributionsWidth returns the grid width in distribution tiles.
func (a *Area) DistributionsWidth() int { return a.distributionsWidth }

// Put places d at grid position (u, v). Both must lie in
// [0, DistributionsWidth()).
func (a *Area) Put(u, v int, d *Distribution) error {
	if !a.contains(u, v) {
		return fmt.Errorf("%w: (%d, %d), width %d", ErrPositionOutOfRange, u, v, a.distributionsWidth)
	}
	a.dists[u+v*a.distributionsWidth] = d
	return nil
}

// Get returns the distribution at grid position (u, v), nil if the slot is
// empty or outside the grid.
func (a *Area) Get(u, v int) *Distribution {
	if !a.contains(u, v) {
		return nil
	}
	return a.dists[u+v*a.distributionsWidth]
}

func (a *Area) contains(u, v int) bool {
	return u >= 0 && v >= 0 && u < a.distributionsWidth && v < a.distributionsWidth
}

// Select returns the distributions overlapping the neighbourhood of the
// area-local point (x, y). The footprint is a fixed window of at most 2x2
// grid tiles starting a quarter tile ahead of the point, clamped to the
// grid.
func (a *Area) Select(x, y int) Set {
	startU, endU := a.span(x)
	startV, endV := a.span(y)

	var s Set
	for u := startU; u <= endU; u++ {
		for v := startV; v <= endV; v++ {
			s.add(a.Get(u, v))
		}
	}
	return s
}

// span returns the inclusive, clamped grid range for one coordinate.
func (a *Area) span(c int) (int, int) {
	q := floorDiv(c*4, a.distributionSize)
	start := a.clamp(floorDiv(q+1, 4))
	end := a.clamp(floorDiv(q+7, 4) - 1)
	if end < start {
		end = start
	}
	return start, end
}

func (a *Area) clamp(i int) int {
	return max(0, min(i, a.distributionsWidth-1))
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
