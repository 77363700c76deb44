// Package bitfield implements fixed-capacity bit vectors over tile and
// edge ids.
//
// A Field carries no length of its own. The lane count is chosen once per
// tileset and every caller passes it explicitly, so binary operations
// must always be given two fields of the same size.
package bitfield

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/hupe1980/tilewave/internal/simd"
)

// LaneBits is the number of bits per lane.
const LaneBits = 64

// None is returned by NextSetBit when no further bit is set.
const None = -1

// Field is a bit vector stored as 64-bit lanes.
type Field []uint64

// LanesFor returns the number of lanes needed to hold n bits.
func LanesFor(n int) int {
	return (n + LaneBits - 1) / LaneBits
}

// Bytes returns the number of 8-bit slices in a field of size lanes.
func Bytes(size int) int {
	return size * 8
}

// New creates a zeroed field of size lanes.
func New(size int) Field {
	return make(Field, size)
}

// Clear zeroes the first size lanes.
func (f Field) Clear(size int) {
	clear(f[:size])
}

// Copy overwrites f with the first size lanes of src.
func (f Field) Copy(src Field, size int) {
	copy(f[:size], src[:size])
}

// Or performs f |= other over size lanes.
func (f Field) Or(other Field, size int) {
	simd.OrWords(f[:size], other)
}

// And performs f &= other over size lanes.
func (f Field) And(other Field, size int) {
	simd.AndWords(f[:size], other)
}

// Popcount returns the number of set bits in the first size lanes.
func (f Field) Popcount(size int) int {
	return simd.PopcountWords(f[:size])
}

// Byte returns the i-th 8-bit slice. Bits 8*i to 8*i+7 map to bits 0 to 7.
func (f Field) Byte(i int) uint8 {
	return uint8(f[i>>3] >> ((i & 7) << 3))
}

// SetBit sets bit.
func (f Field) SetBit(bit int) {
	f[bit>>6] |= 1 << (bit & 63)
}

// ClearBit clears bit.
func (f Field) ClearBit(bit int) {
	f[bit>>6] &^= 1 << (bit & 63)
}

// Has reports whether bit is set.
func (f Field) Has(bit int) bool {
	return f[bit>>6]&(1<<(bit&63)) != 0
}

// NextSetBit returns the smallest set bit index >= start within size
// lanes, or None.
func (f Field) NextSetBit(size, start int) int {
	if start < 0 {
		start = 0
	}
	wi := start >> 6
	if wi >= size {
		return None
	}

	w := f[wi] & (^uint64(0) << (start & 63))
	for {
		if w != 0 {
			return wi<<6 + bits.TrailingZeros64(w)
		}
		wi++
		if wi >= size {
			return None
		}
		w = f[wi]
	}
}

// Format renders the set bits of the first size lanes, e.g. "{1 5 9}".
func (f Field) Format(size int) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for bit := f.NextSetBit(size, 0); bit != None; bit = f.NextSetBit(size, bit+1) {
		if sb.Len() > 1 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", bit)
	}
	sb.WriteByte('}')
	return sb.String()
}

// Array is a contiguous batch of equally sized fields.
type Array struct {
	lanes []uint64
	size  int
	count int
}

// NewArray allocates count zeroed fields of size lanes in one slab.
func NewArray(count, size int) Array {
	return Array{
		lanes: make([]uint64, count*size),
		size:  size,
		count: count,
	}
}

// Index returns the i-th field. The result aliases the array.
func (a Array) Index(i int) Field {
	off := i * a.size
	return Field(a.lanes[off : off+a.size : off+a.size])
}

// Len returns the number of fields.
func (a Array) Len() int { return a.count }

// Size returns the lane count of each field.
func (a Array) Size() int { return a.size }

// SizeBytes returns the memory footprint of count fields of size lanes.
func SizeBytes(count, size int) int64 {
	return int64(count) * int64(size) * 8
}
