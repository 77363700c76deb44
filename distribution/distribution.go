package distribution

import (
	"fmt"

	"github.com/hupe1980/tilewave/bitfield"
)

// byteValues is the number of values one field byte can take.
const byteValues = 256

// Distribution is one weighted probability table over a tile universe.
// It is built once with AddTile and read-only afterwards.
type Distribution struct {
	tileFieldSize int

	// weights holds the weight of every tile id.
	weights []Entropy

	// weightTable[b*256+v] is the weight sum of the tiles whose bits are
	// set in value v of byte b.
	weightTable []Entropy

	// weightLogWeightTable mirrors weightTable with w*log(w) sums.
	weightLogWeightTable []Entropy

	// allTiles has a bit set for every tile this distribution produces.
	allTiles bitfield.Field
}

// New creates an empty distribution for fields of tileFieldSize lanes.
func New(tileFieldSize int) *Distribution {
	bytes := bitfield.Bytes(tileFieldSize)
	return &Distribution{
		tileFieldSize:        tileFieldSize,
		weights:              make([]Entropy, tileFieldSize*bitfield.LaneBits),
		weightTable:          make([]Entropy, bytes*byteValues),
		weightLogWeightTable: make([]Entropy, bytes*byteValues),
		allTiles:             bitfield.New(tileFieldSize),
	}
}

// TileFieldSize returns the lane count of the fields this distribution reads.
func (d *Distribution) TileFieldSize() int { return d.tileFieldSize }

// AllTiles returns the field of every tile added so far. Callers must not
// modify it.
func (d *Distribution) AllTiles() bitfield.Field { return d.allTiles }

// Weight returns the weight of tile, 0 if it was never added.
func (d *Distribution) Weight(tile int) Entropy {
	if tile < 0 || tile >= len(d.weights) {
		return 0
	}
	return d.weights[tile]
}

// WeightTable returns the summed weight of the tiles encoded by value at
// field byte byteIndex.
func (d *Distribution) WeightTable(byteIndex int, value uint8) Entropy {
	return d.weightTable[byteIndex*byteValues+int(value)]
}

// AddTile registers tile with weight. Adding a tile again replaces its
// previous weight.
func (d *Distribution) AddTile(tile int, weight Entropy) error {
	if tile < 0 || tile >= len(d.weights) {
		return fmt.Errorf("%w: tile %d, capacity %d", ErrTileOutOfRange, tile, len(d.weights))
	}
	if weight < 0 {
		return fmt.Errorf("%w: tile %d weight %d", ErrNegativeWeight, tile, weight)
	}

	if d.allTiles.Has(tile) {
		old := d.weights[tile]
		d.addToTables(tile, -old, -weightLogWeight(old))
	}

	d.weights[tile] = weight
	d.addToTables(tile, weight, weightLogWeight(weight))
	d.allTiles.SetBit(tile)
	return nil
}

// addToTables adds the deltas to every byte value carrying tile's bit.
func (d *Distribution) addToTables(tile int, weight, wlw Entropy) {
	base := (tile / 8) * byteValues
	bit := tile % 8

	weightTable := d.weightTable[base : base+byteValues]
	wlwTable := d.weightLogWeightTable[base : base+byteValues]

	// Values with the bit set come in runs of 1<<bit, every 2<<bit values.
	for i := 0; i < byteValues; i += 2 << bit {
		for j := 0; j < 1<<bit; j++ {
			v := 1<<bit + i + j
			weightTable[v] += weight
			wlwTable[v] += wlw
		}
	}
}

// sums returns the weight and weight*log(weight) sums over field.
func (d *Distribution) sums(field bitfield.Field) (weightSum, wlwSum Entropy) {
	for j := 0; j < bitfield.Bytes(d.tileFieldSize); j++ {
		idx := j*byteValues + int(field.Byte(j))
		weightSum += d.weightTable[idx]
		wlwSum += d.weightLogWeightTable[idx]
	}
	return weightSum, wlwSum
}

// WeightSum returns the total weight of the tiles set in field.
func (d *Distribution) WeightSum(field bitfield.Field) Entropy {
	w, _ := d.sums(field)
	return w
}

// ShannonEntropy returns the fixed-point entropy of this distribution
// restricted to the tiles set in field. It is 0 when the weight sum is 0.
func (d *Distribution) ShannonEntropy(field bitfield.Field) Entropy {
	return shannon(d.sums(field))
}

// PickRandom draws a tile set in field with probability proportional to
// its weight. Fields without weight fall back to a uniform pick.
func (d *Distribution) PickRandom(field bitfield.Field, rng Rand) (int, error) {
	return SetOf(d).PickRandom(field, rng)
}

// pickFromWeightedByte resolves a weighted pick among the at most 8 tiles
// of byte byteIndex. The byte's weight sum must be positive.
func (d *Distribution) pickFromWeightedByte(field bitfield.Field, byteIndex int, rng Rand) int {
	sum := d.weightTable[byteIndex*byteValues+int(field.Byte(byteIndex))]
	roll := Entropy(rng.Int63n(int64(sum)))

	var acc Entropy
	end := byteIndex*8 + 8
	for i := byteIndex * 8; ; {
		tile := field.NextSetBit(d.tileFieldSize, i)
		if tile == bitfield.None || tile >= end {
			break
		}
		acc += d.weights[tile]
		if acc > roll {
			return tile
		}
		i = tile + 1
	}

	panic(fmt.Sprintf("distribution: weighted byte %d pick failed: table sum %d, walked %d", byteIndex, sum, acc))
}
