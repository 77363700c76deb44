// Package entropy provides the min-entropy priority structure of the
// solver: a binary min-heap over cell scores with a cell-to-slot
// back-reference for O(log n) updates of arbitrary cells.
package entropy

import (
	"math"

	"github.com/hupe1980/tilewave/distribution"
)

// Collapsed marks cells that are no longer eligible for collapse.
const Collapsed = distribution.Entropy(math.MaxInt64)

// notInHeap is the slot of cells outside the heap.
const notInHeap = -1

// Heap orders pending cells by entropy. Equal scores order by lower cell
// index, so the collapse sequence is deterministic.
type Heap struct {
	scores []distribution.Entropy // by cell
	slots  []int32                // cell -> heap position
	items  []int32                // heap of cells
}

// New creates a heap with room for capacity cells.
func New(capacity int) *Heap {
	h := &Heap{}
	h.grow(capacity)
	return h
}

func (h *Heap) grow(n int) {
	if cap(h.scores) >= n {
		return
	}
	h.scores = make([]distribution.Entropy, 0, n)
	h.slots = make([]int32, 0, n)
	h.items = make([]int32, 0, n)
}

// Reset sizes the heap for n cells, all pending with score 0 and none
// heap-resident until Build.
func (h *Heap) Reset(n int) {
	h.grow(n)
	h.scores = h.scores[:n]
	h.slots = h.slots[:n]
	h.items = h.items[:0]
	for i := range h.scores {
		h.scores[i] = 0
		h.slots[i] = notInHeap
	}
}

// Cells returns the number of cells the heap was sized for.
func (h *Heap) Cells() int { return len(h.scores) }

// Set pre-fills the score of cell i before Build.
func (h *Heap) Set(i int, score distribution.Entropy) {
	h.scores[i] = score
}

// Build heapifies every cell whose score is not Collapsed in O(n).
func (h *Heap) Build() {
	h.items = h.items[:0]
	for i, s := range h.scores {
		if s == Collapsed {
			h.slots[i] = notInHeap
			continue
		}
		h.slots[i] = int32(len(h.items))
		h.items = append(h.items, int32(i))
	}
	for i := len(h.items)/2 - 1; i >= 0; i-- {
		h.siftDown(i)
	}
}

// Len returns the number of pending cells.
func (h *Heap) Len() int { return len(h.items) }

// Score returns the current score of cell i.
func (h *Heap) Score(i int) distribution.Entropy { return h.scores[i] }

// IsCollapsed reports whether cell i is no longer pending.
func (h *Heap) IsCollapsed(i int) bool { return h.scores[i] == Collapsed }

// Update changes the score of a pending cell. Collapsed cells are left
// untouched.
func (h *Heap) Update(i int, score distribution.Entropy) {
	if h.scores[i] == Collapsed || score == Collapsed {
		if score == Collapsed {
			h.MarkCollapsed(i)
		}
		return
	}
	h.scores[i] = score
	if pos := int(h.slots[i]); pos != notInHeap {
		h.fix(pos)
	}
}

// Peek returns the pending cell with least entropy without removing it.
func (h *Heap) Peek() (int, bool) {
	if len(h.items) == 0 {
		return 0, false
	}
	return int(h.items[0]), true
}

// CollapseLeast removes and returns the pending cell with least entropy,
// marking it collapsed.
func (h *Heap) CollapseLeast() (int, bool) {
	if len(h.items) == 0 {
		return 0, false
	}
	cell := int(h.items[0])
	h.removeAt(0)
	h.scores[cell] = Collapsed
	return cell, true
}

// MarkCollapsed removes cell i from the heap if it is pending.
func (h *Heap) MarkCollapsed(i int) {
	if pos := int(h.slots[i]); pos != notInHeap {
		h.removeAt(pos)
	}
	h.scores[i] = Collapsed
}

func (h *Heap) removeAt(pos int) {
	cell := h.items[pos]
	last := len(h.items) - 1
	if pos != last {
		h.swap(pos, last)
	}
	h.items = h.items[:last]
	h.slots[cell] = notInHeap
	if pos < last {
		h.fix(pos)
	}
}

func (h *Heap) fix(pos int) {
	if !h.siftUp(pos) {
		h.siftDown(pos)
	}
}

func (h *Heap) less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	sa, sb := h.scores[a], h.scores[b]
	if sa != sb {
		return sa < sb
	}
	return a < b
}

func (h *Heap) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.slots[h.items[i]] = int32(i)
	h.slots[h.items[j]] = int32(j)
}

// siftUp reports whether the item moved.
func (h *Heap) siftUp(i int) bool {
	moved := false
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(i, p) {
			break
		}
		h.swap(i, p)
		i = p
		moved = true
	}
	return moved
}

func (h *Heap) siftDown(i int) {
	n := len(h.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && h.less(r, l) {
			best = r
		}
		if !h.less(best, i) {
			return
		}
		h.swap(i, best)
		i = best
	}
}
