package space

import (
	"errors"
	"fmt"
)

// Sentinel errors for space construction.
var (
	// ErrBadDimensions indicates a width, length or height smaller than one.
	ErrBadDimensions = errors.New("space: every dimension must be at least 1")
	// ErrNilInit indicates NewCubeGrid was given no initializer.
	ErrNilInit = errors.New("space: cell initializer is nil")
)

// Slot holds a value that may be absent. It resolves a neighbor offset to a
// coordinate, or a neighbor coordinate to its state; Valid is false past the
// border of the space.
type Slot[T any] struct {
	Value T
	Valid bool
}

// Some returns a valid slot holding v.
func Some[T any](v T) Slot[T] {
	return Slot[T]{Value: v, Valid: true}
}

// Space is an indexable collection of cells of type S addressed by C, with a
// neighbor lookup over deltas of type D.
type Space[C comparable, D any, S any] interface {
	// Coordinates returns every coordinate exactly once, in a deterministic order.
	Coordinates() []C
	// Neighbors writes, for each offset, the translated coordinate into the
	// matching slot of out, or an invalid slot if it falls outside the space.
	// out must be at least as long as offsets.
	Neighbors(c C, offsets []D, out []Slot[C])
	// At returns the cell stored at c. c must be in bounds.
	At(c C) S
}

// Invertible is a neighbor delta that has an opposite direction.
type Invertible[D any] interface {
	comparable
	Invert() D
}

// Coord addresses a cell of a CubeGrid. Y is the vertical axis.
type Coord struct {
	X, Y, Z int
}

// Add translates c by o.
func (c Coord) Add(o Offset) Coord {
	return Coord{X: c.X + o.DX, Y: c.Y + o.DY, Z: c.Z + o.DZ}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Offset is a coordinate delta naming a neighbor direction.
type Offset struct {
	DX, DY, DZ int
}

// Invert returns the opposite direction: (dx,dy,dz) → (-dx,-dy,-dz).
func (o Offset) Invert() Offset {
	return Offset{DX: -o.DX, DY: -o.DY, DZ: -o.DZ}
}

func (o Offset) String() string {
	return fmt.Sprintf("<%d,%d,%d>", o.DX, o.DY, o.DZ)
}

// The six face directions of a cube cell.
var (
	Right = Offset{DX: 1}  // +x
	Front = Offset{DZ: -1} // -z
	Left  = Offset{DX: -1} // -x
	Back  = Offset{DZ: 1}  // +z
	Above = Offset{DY: 1}  // +y
	Below = Offset{DY: -1} // -y
)

// Directions returns the six face directions in prototype order:
// +x, -z, -x, +z, +y, -y.
func Directions() []Offset {
	return []Offset{Right, Front, Left, Back, Above, Below}
}
