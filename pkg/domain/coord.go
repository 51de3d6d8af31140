package domain

import "fmt"

// DefaultGridSize is the side length of the designer grid.
const DefaultGridSize = 15

// Coord is a point on the substrate grid.
// It is a value type: two coordinates are the same point iff they are ==.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// C is shorthand for Coord{X: x, Y: y}.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Space is the square of valid coordinates, centered on the origin.
// Its side length is odd so that the origin is a cell. The zero value is not usable;
// construct it with NewSpace or DefaultSpace.
type Space struct {
	size int
}

// NewSpace creates a space with the given odd, positive side length.
func NewSpace(size int) (Space, error) {
	if size <= 0 || size%2 == 0 {
		return Space{}, fmt.Errorf("%w: %d (must be a positive odd number)", ErrInvalidGridSize, size)
	}
	return Space{size: size}, nil
}

// MustSpace is like NewSpace but panics on an invalid size.
func MustSpace(size int) Space {
	s, err := NewSpace(size)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultSpace returns the 15x15 space used by the designer.
func DefaultSpace() Space {
	return Space{size: DefaultGridSize}
}

// Size returns the side length.
func (s Space) Size() int {
	return s.size
}

// Half returns the largest absolute value a coordinate axis may take.
func (s Space) Half() int {
	return s.size / 2
}

// IsValid reports whether (x, y) lies inside the space.
func (s Space) IsValid(x, y int) bool {
	h := s.Half()
	return x >= -h && x <= h && y >= -h && y <= h
}

// Contains reports whether c lies inside the space.
func (s Space) Contains(c Coord) bool {
	return s.IsValid(c.X, c.Y)
}

// Validate returns a *CoordinateError if c lies outside the space.
func (s Space) Validate(c Coord) error {
	if !s.Contains(c) {
		return &CoordinateError{Coord: c, Half: s.Half()}
	}
	return nil
}
