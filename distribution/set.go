package distribution

import (
	"fmt"

	"github.com/hupe1980/tilewave/bitfield"
)

// MaxSetSize is the largest number of distributions a Set can hold.
const MaxSetSize = 4

// Set is the active set of distributions at one point. It is a value:
// copying it is cheap and it holds no reference to the Area it came from.
type Set struct {
	dists [MaxSetSize]*Distribution
	n     int
}

// SetOf builds a Set from up to MaxSetSize distributions. Nil entries are
// skipped.
func SetOf(dists ...*Distribution) Set {
	var s Set
	for _, d := range dists {
		s.add(d)
	}
	return s
}

func (s *Set) add(d *Distribution) {
	if d == nil || s.n == MaxSetSize {
		return
	}
	for i := 0; i < s.n; i++ {
		if s.dists[i] == d {
			return
		}
	}
	s.dists[s.n] = d
	s.n++
}

// Len returns the number of distributions in the set.
func (s Set) Len() int { return s.n }

// At returns the i-th distribution.
func (s Set) At(i int) *Distribution { return s.dists[i] }

// AllTiles ORs every distribution's tiles into dst over size lanes.
func (s Set) AllTiles(dst bitfield.Field, size int) {
	for i := 0; i < s.n; i++ {
		d := s.dists[i]
		dst.Or(d.allTiles, min(size, d.tileFieldSize))
	}
}

// WeightSum returns the weight of field summed over the set.
func (s Set) WeightSum(field bitfield.Field) Entropy {
	var sum Entropy
	for i := 0; i < s.n; i++ {
		sum += s.dists[i].WeightSum(field)
	}
	return sum
}

// ShannonEntropy returns the fixed-point entropy of the blended
// distribution restricted to field.
func (s Set) ShannonEntropy(field bitfield.Field) Entropy {
	var weightSum, wlwSum Entropy
	for i := 0; i < s.n; i++ {
		w, wlw := s.dists[i].sums(field)
		weightSum += w
		wlwSum += wlw
	}
	return shannon(weightSum, wlwSum)
}

// PickRandom draws a tile from field weighted by the set. The roll first
// locates the owning byte through the byte tables and then the tile within
// that byte. Fields with zero total weight fall back to
// PickRandomUnweighted.
func (s Set) PickRandom(field bitfield.Field, rng Rand) (int, error) {
	sum := s.WeightSum(field)
	if sum == 0 {
		return s.PickRandomUnweighted(field, rng)
	}

	roll := Entropy(rng.Int63n(int64(sum)))

	var acc Entropy
	for i := 0; i < s.n; i++ {
		d := s.dists[i]
		for j := 0; j < bitfield.Bytes(d.tileFieldSize); j++ {
			acc += d.weightTable[j*byteValues+int(field.Byte(j))]
			if acc > roll {
				return d.pickFromWeightedByte(field, j, rng), nil
			}
		}
	}

	panic(fmt.Sprintf("distribution: weighted pick failed: sum %d, roll %d", sum, roll))
}

// PickRandomUnweighted draws uniformly among the tiles of field, counted
// once per distribution in the set. It returns ErrEmptyField if field has
// no admissible tile.
func (s Set) PickRandomUnweighted(field bitfield.Field, rng Rand) (int, error) {
	count := 0
	for i := 0; i < s.n; i++ {
		count += field.Popcount(s.dists[i].tileFieldSize)
	}
	if count == 0 {
		return bitfield.None, ErrEmptyField
	}

	roll := rng.Intn(count)
	count = 0
	for i := 0; i < s.n; i++ {
		size := s.dists[i].tileFieldSize
		for tile := field.NextSetBit(size, 0); tile != bitfield.None; tile = field.NextSetBit(size, tile+1) {
			count++
			if count > roll {
				return tile, nil
			}
		}
	}

	panic(fmt.Sprintf("distribution: unweighted pick failed: count %d, roll %d", count, roll))
}
