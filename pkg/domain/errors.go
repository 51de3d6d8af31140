package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidCoordinate is returned when a coordinate lies outside the grid space.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// ErrInvalidGridSize is returned when a grid side length is not a positive odd number.
var ErrInvalidGridSize = errors.New("invalid grid size")

// ErrUnknownRole is returned when a role name is neither "input" nor "output".
var ErrUnknownRole = errors.New("unknown node role")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExists is returned when creating a session whose ID is already taken.
var ErrSessionExists = errors.New("session already exists")

// CoordinateError describes a coordinate rejected by a Space.
type CoordinateError struct {
	Coord Coord
	Half  int // Valid range is [-Half, Half] on both axes
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s: %s outside [-%d, %d]", ErrInvalidCoordinate, e.Coord, e.Half, e.Half)
}

// Unwrap allows errors.Is(err, ErrInvalidCoordinate).
func (e *CoordinateError) Unwrap() error {
	return ErrInvalidCoordinate
}
