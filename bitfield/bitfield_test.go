package bitfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_Basic(t *testing.T) {
	const size = 2
	f := New(size)

	assert.Equal(t, 0, f.Popcount(size))
	assert.Equal(t, None, f.NextSetBit(size, 0))

	f.SetBit(3)
	f.SetBit(64)
	f.SetBit(127)

	assert.True(t, f.Has(3))
	assert.True(t, f.Has(64))
	assert.False(t, f.Has(4))
	assert.Equal(t, 3, f.Popcount(size))
	assert.Equal(t, "{3 64 127}", f.Format(size))

	f.ClearBit(64)
	assert.False(t, f.Has(64))
	assert.Equal(t, "{3 127}", f.Format(size))

	f.Clear(size)
	assert.Equal(t, 0, f.Popcount(size))
}

func TestField_NextSetBit(t *testing.T) {
	const size = 3
	f := New(size)
	for _, b := range []int{0, 63, 64, 130} {
		f.SetBit(b)
	}

	tests := []struct {
		start int
		want  int
	}{
		{-5, 0},
		{0, 0},
		{1, 63},
		{63, 63},
		{64, 64},
		{65, 130},
		{131, None},
		{192, None},
		{1000, None},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, f.NextSetBit(size, tt.start), "start=%d", tt.start)
	}

	// Bits beyond the given size are invisible.
	assert.Equal(t, None, f.NextSetBit(2, 65))
}

func TestField_Byte(t *testing.T) {
	f := New(2)
	f.SetBit(0)
	f.SetBit(7)
	f.SetBit(9)
	f.SetBit(63)
	f.SetBit(64)

	assert.Equal(t, uint8(0x81), f.Byte(0))
	assert.Equal(t, uint8(0x02), f.Byte(1))
	assert.Equal(t, uint8(0x80), f.Byte(7))
	assert.Equal(t, uint8(0x01), f.Byte(8))
	assert.Equal(t, uint8(0), f.Byte(15))
	assert.Equal(t, 16, Bytes(2))
}

func TestField_OrAnd(t *testing.T) {
	const size = 2
	a, b := New(size), New(size)
	a.SetBit(1)
	a.SetBit(70)
	b.SetBit(70)
	b.SetBit(100)

	u := New(size)
	u.Copy(a, size)
	u.Or(b, size)
	assert.Equal(t, "{1 70 100}", u.Format(size))

	a.And(b, size)
	assert.Equal(t, "{70}", a.Format(size))
}

func TestArray(t *testing.T) {
	arr := NewArray(4, 2)
	require.Equal(t, 4, arr.Len())
	require.Equal(t, 2, arr.Size())

	arr.Index(1).SetBit(65)
	arr.Index(3).SetBit(0)

	assert.Equal(t, 0, arr.Index(0).Popcount(2))
	assert.Equal(t, "{65}", arr.Index(1).Format(2))
	assert.Equal(t, 0, arr.Index(2).Popcount(2))
	assert.Equal(t, "{0}", arr.Index(3).Format(2))

	// Fields must not be able to grow into their neighbour.
	assert.Equal(t, 2, cap(arr.Index(1)))
	assert.Equal(t, int64(64), SizeBytes(4, 2))
}

func TestLanesFor(t *testing.T) {
	assert.Equal(t, 0, LanesFor(0))
	assert.Equal(t, 1, LanesFor(1))
	assert.Equal(t, 1, LanesFor(64))
	assert.Equal(t, 2, LanesFor(65))
}
