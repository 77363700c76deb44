package distribution

import "errors"

var (
	// ErrEmptyField is returned when sampling a field with no admissible tile.
	ErrEmptyField = errors.New("distribution: no admissible tile in field")

	// ErrTileOutOfRange is returned when a tile id exceeds the field capacity.
	ErrTileOutOfRange = errors.New("distribution: tile out of range")

	// ErrNegativeWeight is returned for weights below zero.
	ErrNegativeWeight = errors.New("distribution: negative weight")

	// ErrInvalidArea is returned for non-positive area dimensions.
	ErrInvalidArea = errors.New("distribution: invalid area dimensions")

	// ErrPositionOutOfRange is returned for grid positions outside an area.
	ErrPositionOutOfRange = errors.New("distribution: grid position out of range")
)
