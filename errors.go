package tilewave

import (
	"errors"
	"fmt"
)

var (
	// ErrNilWorld is returned when a Superposition is created without a
	// world or tileset.
	ErrNilWorld = errors.New("world and tileset must not be nil")

	// ErrNoDistributionArea is returned when a collapse window is selected
	// before a distribution area.
	ErrNoDistributionArea = errors.New("no distribution area selected")

	// ErrNoCollapseArea is returned when collapsing before a window was
	// selected.
	ErrNoCollapseArea = errors.New("no collapse area selected")

	// ErrInvalidWindow is returned for non-positive window dimensions.
	ErrInvalidWindow = errors.New("invalid collapse window")

	// ErrContradiction is returned when a cell runs out of admissible tiles.
	// The window is aborted; select a new collapse area to continue.
	ErrContradiction = errors.New("contradiction")

	// ErrResourceExhausted is returned when a window does not fit the
	// memory budget.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrClosed is returned by operations on a closed Superposition.
	ErrClosed = errors.New("superposition closed")
)

// ErrCellContradiction reports the world cell whose candidate set became
// empty. errors.Is(err, ErrContradiction) holds for it.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type ErrCellContradiction struct {
	X, Y  int
	cause error
}

func (e *ErrCellContradiction) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("contradiction at (%d, %d): %v", e.X, e.Y, e.cause)
	}
	return fmt.Sprintf("contradiction at (%d, %d)", e.X, e.Y)
}

// Is reports whether target is ErrContradiction.
func (e *ErrCellContradiction) Is(target error) bool { return target == ErrContradiction }

func (e *ErrCellContradiction) Unwrap() error { return e.cause }
