package tilewave

import (
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/tilewave/bitfield"
	"github.com/hupe1980/tilewave/distribution"
	"github.com/hupe1980/tilewave/internal/entropy"
	"github.com/hupe1980/tilewave/internal/resource"
	"github.com/hupe1980/tilewave/internal/simd"
	"github.com/hupe1980/tilewave/tileset"
	"github.com/hupe1980/tilewave/world"
)

// NullTile is the world value of an undecided cell.
const NullTile = world.NullTile

// Tileset is the edge-compatibility collaborator the solver reads.
type Tileset = tileset.Compatibility

// World is the tile store the solver reads decided cells from and writes
// collapsed tiles to. Set must be first-write-wins: it reports false when
// the cell was already decided, leaving it unchanged.
type World interface {
	Get(x, y int) int
	Set(x, y, tile int) bool
	Tileset() Tileset
	ChunkSize() int
}

// heapCellBytes is the entropy state held per window cell.
const heapCellBytes = 16

// propagationHint sizes the initial propagation worklist.
const propagationHint = 256

// propagation is a pending neighbour update: cell propagates its
// candidates to every side except skip.
type propagation struct {
	cell int32
	skip tileset.Edge
}

// Superposition is the candidate state of one collapse window.
//
// A Superposition is not safe for concurrent use. Several Superpositions
// may share a World and distributions.
type Superposition struct {
	world World
	tiles Tileset

	tileFieldSize int
	edgeFieldSize int

	area   *distribution.Area
	areaX  int
	areaY  int
	u, v   int
	width  int
	height int

	fields   bitfield.Array
	heap     *entropy.Heap
	stale    *roaring.Bitmap
	queue    []propagation
	tempTile bitfield.Field
	tempEdge bitfield.Field

	recording     bool
	selected      bool
	closed        bool
	contradiction error
	reserved      int64

	visits int
	shrunk int

	rng        distribution.Rand
	baseLogger *Logger
	logger     *Logger
	metrics    MetricsCollector
	controller *resource.Controller
}

// New creates a Superposition bound to w. A distribution area and a
// collapse window must be selected before collapsing.
func New(w World, optFns ...Option) (*Superposition, error) {
	if w == nil || w.Tileset() == nil {
		return nil, ErrNilWorld
	}

	opts := applyOptions(optFns)
	tiles := w.Tileset()
	chunk := max(w.ChunkSize(), 1)

	s := &Superposition{
		world:         w,
		tiles:         tiles,
		tileFieldSize: tiles.TileFieldSize(),
		edgeFieldSize: tiles.EdgeFieldSize(),
		heap:          entropy.New(chunk * chunk),
		stale:         roaring.New(),
		queue:         make([]propagation, 0, propagationHint),
		tempTile:      bitfield.New(tiles.TileFieldSize()),
		tempEdge:      bitfield.New(tiles.EdgeFieldSize()),
		rng:           opts.rng,
		baseLogger:    opts.logger,
		logger:        opts.logger,
		metrics:       opts.metricsCollector,
		controller:    opts.controller,
	}

	s.logger.Debug("superposition created",
		"tile_field_size", s.tileFieldSize,
		"edge_field_size", s.edgeFieldSize,
		"simd", simd.ActiveISA().String(),
		"kernels", string(simd.ActiveKernels()),
	)
	return s, nil
}

// SelectDistributionArea sets the distribution area and its world offset.
// The collapse window must be selected again afterwards.
func (s *Superposition) SelectDistributionArea(x, y int, area *distribution.Area) {
	s.area = area
	s.areaX = x
	s.areaY = y
	s.logger = s.baseLogger.WithArea(x, y)
	s.selected = false
	s.contradiction = nil
}

// SelectCollapseArea prepares the window of width x height cells at
// area-local offset (u, v): candidates are seeded from the world and the
// distributions, constrained by the cells around the window, propagated to
// a fixed point and scored for collapse.
//
// A contradiction found here is returned and aborts the window.
func (s *Superposition) SelectCollapseArea(u, v, width, height int) (err error) {
	if s.closed {
		return ErrClosed
	}
	if s.area == nil {
		return ErrNoDistributionArea
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidWindow, width, height)
	}

	start := time.Now()
	defer func() {
		duration := time.Since(start)
		s.metrics.RecordSelectCollapseArea(width*height, duration, err)
		s.logger.LogSelectCollapseArea(u, v, width, height, s.heap.Len(), duration, err)
	}()

	s.selected = false
	s.contradiction = nil
	if err := s.reserve(width * height); err != nil {
		return err
	}

	s.u, s.v = u, v
	s.width, s.height = width, height
	s.fields = bitfield.NewArray(width*height, s.tileFieldSize)
	s.heap.Reset(width * height)
	s.stale.Clear()
	s.queue = s.queue[:0]
	s.recording = false
	s.visits, s.shrunk = 0, 0

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			cell := s.cellIndex(i, j)
			field := s.fields.Index(cell)
			if s.naiveField(i, j, field) {
				s.heap.MarkCollapsed(cell)
				continue
			}
			if field.Popcount(s.tileFieldSize) == 0 {
				return s.fail(i, j, distribution.ErrEmptyField)
			}
		}
	}

	s.constrainBoundary()
	for cell := 0; cell < width*height; cell++ {
		s.push(cell, tileset.None)
	}
	if err := s.propagate(); err != nil {
		return err
	}

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			cell := s.cellIndex(i, j)
			if s.heap.IsCollapsed(cell) {
				continue
			}
			s.heap.Set(cell, s.selectDistributions(i, j).ShannonEntropy(s.fields.Index(cell)))
		}
	}
	s.heap.Build()

	s.recording = true
	s.selected = true
	return nil
}

// CollapseTiles collapses up to amount cells, lowest entropy first, writing
// each chosen tile to the world and propagating its constraints. It
// reports whether the window is complete.
//
// A contradiction returns an error wrapping ErrContradiction; the window
// stays aborted until the next SelectCollapseArea.
func (s *Superposition) CollapseTiles(amount int) (done bool, err error) {
	if s.closed {
		return false, ErrClosed
	}
	if s.contradiction != nil {
		return false, s.contradiction
	}
	if !s.selected {
		return false, ErrNoCollapseArea
	}

	start := time.Now()
	collapsed := 0
	defer func() {
		s.metrics.RecordCollapse(collapsed, time.Since(start), err)
		s.logger.LogCollapse(amount, collapsed, s.heap.Len(), err)
	}()

	for ; collapsed < amount && s.heap.Len() > 0; collapsed++ {
		if err := s.collapseLeast(); err != nil {
			return false, err
		}
	}
	return s.heap.Len() == 0, nil
}

// Remaining returns the number of window cells still to collapse.
func (s *Superposition) Remaining() int {
	if !s.selected {
		return 0
	}
	return s.heap.Len()
}

// Window returns the selected collapse window in area-local coordinates.
func (s *Superposition) Window() (u, v, width, height int) {
	return s.u, s.v, s.width, s.height
}

// Candidates returns a copy of the candidate field of window cell (i, j).
func (s *Superposition) Candidates(i, j int) bitfield.Field {
	if i < 0 || j < 0 || i >= s.width || j >= s.height || s.fields.Len() == 0 {
		return nil
	}
	out := bitfield.New(s.tileFieldSize)
	out.Copy(s.fields.Index(s.cellIndex(i, j)), s.tileFieldSize)
	return out
}

// Close releases the window state and its memory reservation. Closing
// twice is a no-op.
func (s *Superposition) Close() error {
	if s.closed {
		return nil
	}
	s.release()
	s.fields = bitfield.Array{}
	s.stale.Clear()
	s.selected = false
	s.closed = true
	return nil
}

func (s *Superposition) cellIndex(i, j int) int { return j*s.width + i }

// worldXY maps window cell (i, j) to world coordinates.
func (s *Superposition) worldXY(i, j int) (int, int) {
	return s.areaX + s.u + i, s.areaY + s.v + j
}

// selectDistributions returns the distributions covering window cell (i, j).
func (s *Superposition) selectDistributions(i, j int) distribution.Set {
	return s.area.Select(s.u+i, s.v+j)
}

// reserve swaps the memory reservation for one sized to cells.
func (s *Superposition) reserve(cells int) error {
	s.release()
	need := bitfield.SizeBytes(cells, s.tileFieldSize) + int64(cells)*heapCellBytes
	if err := s.controller.AcquireMemory(need); err != nil {
		return fmt.Errorf("%w: window of %d cells needs %d bytes: %w", ErrResourceExhausted, cells, need, err)
	}
	s.reserved = need
	return nil
}

func (s *Superposition) release() {
	s.controller.ReleaseMemory(s.reserved)
	s.reserved = 0
}

// naiveField writes the unconstrained candidates of window cell (i, j) to
// dst, which may lie outside the window. A decided world cell yields its
// tile alone and reports true.
func (s *Superposition) naiveField(i, j int, dst bitfield.Field) bool {
	dst.Clear(s.tileFieldSize)
	if tile := s.world.Get(s.worldXY(i, j)); tile != NullTile {
		dst.SetBit(tile)
		return true
	}
	s.selectDistributions(i, j).AllTiles(dst, s.tileFieldSize)
	return false
}

// constrainBoundary restricts the window's edge cells by the naive
// candidates of the cells just outside it.
func (s *Superposition) constrainBoundary() {
	for i := 0; i < s.width; i++ {
		s.constrainFromOutside(i, -1, i, 0, tileset.Top)
		s.constrainFromOutside(i, s.height, i, s.height-1, tileset.Bottom)
	}
	for j := 0; j < s.height; j++ {
		s.constrainFromOutside(-1, j, 0, j, tileset.Right)
		s.constrainFromOutside(s.width, j, s.width-1, j, tileset.Left)
	}
}

// constrainFromOutside applies the edges outside cell (oi, oj) exposes on
// side toward window cell (i, j).
func (s *Superposition) constrainFromOutside(oi, oj, i, j int, side tileset.Edge) {
	if s.contradiction != nil {
		return
	}
	s.naiveField(oi, oj, s.tempTile)
	s.tiles.FindTileEdge(s.tempTile, s.tempEdge, side)
	s.constrainField(i, j, s.tempEdge, side.Opposite())
}

// constrainField removes the candidates of window cell (i, j) whose edge on
// side from is not in constraint. Shrunk cells are queued for propagation.
func (s *Superposition) constrainField(i, j int, constraint bitfield.Field, from tileset.Edge) {
	cell := s.cellIndex(i, j)
	if s.heap.IsCollapsed(cell) {
		return
	}

	field := s.fields.Index(cell)
	before := field.Popcount(s.tileFieldSize)
	s.tiles.ConstrainTile(field, constraint, from)
	after := field.Popcount(s.tileFieldSize)

	s.visits++
	if after == before {
		return
	}
	s.shrunk++

	if after == 0 {
		_ = s.fail(i, j, nil)
		return
	}
	if s.recording {
		s.stale.Add(uint32(cell))
	}
	s.push(cell, from)
}

func (s *Superposition) push(cell int, skip tileset.Edge) {
	s.queue = append(s.queue, propagation{cell: int32(cell), skip: skip})
}

// propagate drains the worklist until no candidate set shrinks or a
// contradiction is found.
func (s *Superposition) propagate() error {
	s.visits, s.shrunk = 0, 0
	for len(s.queue) > 0 && s.contradiction == nil {
		p := s.queue[len(s.queue)-1]
		s.queue = s.queue[:len(s.queue)-1]
		s.constrainNeighbours(int(p.cell), p.skip)
	}
	s.queue = s.queue[:0]
	s.metrics.RecordPropagation(s.visits, s.shrunk)
	return s.contradiction
}

// constrainNeighbours projects the candidates of cell onto each side but
// skip and constrains the in-window neighbour there.
func (s *Superposition) constrainNeighbours(cell int, skip tileset.Edge) {
	i, j := cell%s.width, cell/s.width
	field := s.fields.Index(cell)

	for _, side := range tileset.Sides {
		if side == skip {
			continue
		}
		di, dj := side.Offset()
		ni, nj := i+di, j+dj
		if ni < 0 || nj < 0 || ni >= s.width || nj >= s.height {
			continue
		}
		if s.heap.IsCollapsed(s.cellIndex(ni, nj)) {
			continue
		}
		s.tiles.FindTileEdge(field, s.tempEdge, side)
		s.constrainField(ni, nj, s.tempEdge, side.Opposite())
		if s.contradiction != nil {
			return
		}
	}
}

// collapseLeast decides the lowest-entropy cell and propagates the choice.
func (s *Superposition) collapseLeast() error {
	cell, ok := s.heap.CollapseLeast()
	if !ok {
		return nil
	}
	i, j := cell%s.width, cell/s.width
	field := s.fields.Index(cell)

	tile, err := s.selectDistributions(i, j).PickRandom(field, s.rng)
	if err != nil {
		return s.fail(i, j, err)
	}

	x, y := s.worldXY(i, j)
	if !s.world.Set(x, y, tile) {
		// Another writer decided the cell first.
		existing := s.world.Get(x, y)
		if existing == NullTile || !field.Has(existing) {
			return s.fail(i, j, fmt.Errorf("cell decided as %d outside candidates %s", existing, field.Format(s.tileFieldSize)))
		}
		tile = existing
	}

	field.Clear(s.tileFieldSize)
	field.SetBit(tile)

	s.push(cell, tileset.None)
	if err := s.propagate(); err != nil {
		return err
	}
	s.flushStale()
	return nil
}

// flushStale rescores the cells whose candidates shrank since the last
// flush.
func (s *Superposition) flushStale() {
	it := s.stale.Iterator()
	for it.HasNext() {
		cell := int(it.Next())
		if s.heap.IsCollapsed(cell) {
			continue
		}
		i, j := cell%s.width, cell/s.width
		s.heap.Update(cell, s.selectDistributions(i, j).ShannonEntropy(s.fields.Index(cell)))
	}
	s.stale.Clear()
}

// fail aborts the window with a contradiction at window cell (i, j).
func (s *Superposition) fail(i, j int, cause error) error {
	x, y := s.worldXY(i, j)
	s.contradiction = &ErrCellContradiction{X: x, Y: y, cause: cause}
	s.selected = false
	s.metrics.RecordContradiction()
	s.logger.LogContradiction(x, y, cause)
	return s.contradiction
}

// relax re-runs full propagation over the window and returns the number of
// cells that shrank. A window at its fixed point returns 0.
func (s *Superposition) relax() (int, error) {
	for cell := 0; cell < s.width*s.height; cell++ {
		s.push(cell, tileset.None)
	}
	err := s.propagate()
	return s.shrunk, err
}
