package space

import (
	"fmt"
	"strings"
)

// CubeGrid is a dense width×length×height grid of cells of type S.
// Width runs along x, length along z and height along y. Cells are stored
// y-major, then z, then x; Coordinates walks them in the same order.
// The grid is never resized after construction.
type CubeGrid[S any] struct {
	cells                 []S
	width, length, height int
}

// NewCubeGrid builds a grid and fills it by calling init once per coordinate,
// in storage order. Returns ErrBadDimensions if any dimension is < 1 and
// ErrNilInit if init is nil.
// Complexity: O(W×L×H) time and memory.
func NewCubeGrid[S any](width, length, height int, init func(c Coord) S) (*CubeGrid[S], error) {
	if width < 1 || length < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%dx%d", ErrBadDimensions, width, length, height)
	}
	if init == nil {
		return nil, ErrNilInit
	}
	g := &CubeGrid[S]{
		cells:  make([]S, 0, width*length*height),
		width:  width,
		length: length,
		height: height,
	}
	for y := 0; y < height; y++ {
		for z := 0; z < length; z++ {
			for x := 0; x < width; x++ {
				g.cells = append(g.cells, init(Coord{X: x, Y: y, Z: z}))
			}
		}
	}

	return g, nil
}

// Width is the extent along x.
func (g *CubeGrid[S]) Width() int { return g.width }

// Length is the extent along z.
func (g *CubeGrid[S]) Length() int { return g.length }

// Height is the extent along y.
func (g *CubeGrid[S]) Height() int { return g.height }

// Len is the total number of cells.
func (g *CubeGrid[S]) Len() int { return len(g.cells) }

// InBounds reports whether every axis of c lies within the grid.
// Complexity: O(1).
func (g *CubeGrid[S]) InBounds(c Coord) bool {
	return clamp(c.X, g.width-1) == c.X &&
		clamp(c.Z, g.length-1) == c.Z &&
		clamp(c.Y, g.height-1) == c.Y
}

// Index maps c to its position in storage: y*W*L + z*W + x.
// No bounds checking is done.
func (g *CubeGrid[S]) Index(c Coord) int {
	return c.Y*g.width*g.length + c.Z*g.width + c.X
}

// Coordinate converts a storage index back to its coordinate.
func (g *CubeGrid[S]) Coordinate(i int) Coord {
	layer := g.width * g.length
	return Coord{
		X: i % g.width,
		Y: i / layer,
		Z: (i % layer) / g.width,
	}
}

// Coordinates returns every coordinate once: y outer, then z, then x.
// Complexity: O(W×L×H).
func (g *CubeGrid[S]) Coordinates() []Coord {
	coords := make([]Coord, 0, len(g.cells))
	for y := 0; y < g.height; y++ {
		for z := 0; z < g.length; z++ {
			for x := 0; x < g.width; x++ {
				coords = append(coords, Coord{X: x, Y: y, Z: z})
			}
		}
	}

	return coords
}

// Neighbors resolves each offset against c. Slots for coordinates outside the
// grid are left invalid. Panics if out is shorter than offsets.
// Complexity: O(len(offsets)).
func (g *CubeGrid[S]) Neighbors(c Coord, offsets []Offset, out []Slot[Coord]) {
	if len(out) < len(offsets) {
		panic(fmt.Sprintf("space: neighbor buffer of %d slots for %d offsets", len(out), len(offsets)))
	}
	for i, o := range offsets {
		n := c.Add(o)
		if g.InBounds(n) {
			out[i] = Some(n)
		} else {
			out[i] = Slot[Coord]{}
		}
	}
}

// At returns the cell at c. Out-of-bounds coordinates are undefined: they
// either panic or alias another cell.
func (g *CubeGrid[S]) At(c Coord) S {
	return g.cells[g.Index(c)]
}

// Set replaces the cell at c.
func (g *CubeGrid[S]) Set(c Coord, s S) {
	g.cells[g.Index(c)] = s
}

// Cells exposes the backing slice in storage order.
func (g *CubeGrid[S]) Cells() []S {
	return g.cells
}

// Layers calls fn for each horizontal layer, bottom first, with the rows of
// that layer ordered by z and each row ordered by x.
func (g *CubeGrid[S]) Layers(fn func(y int, rows [][]S)) {
	for y := 0; y < g.height; y++ {
		rows := make([][]S, g.length)
		for z := 0; z < g.length; z++ {
			start := g.Index(Coord{Y: y, Z: z})
			rows[z] = g.cells[start : start+g.width]
		}
		fn(y, rows)
	}
}

// String renders the grid layer by layer using fmt's %v for each cell.
func (g *CubeGrid[S]) String() string {
	var sb strings.Builder
	g.Layers(func(y int, rows [][]S) {
		fmt.Fprintf(&sb, "Layer: %d\n", y)
		for _, row := range rows {
			for _, cell := range row {
				fmt.Fprintf(&sb, "%v ", cell)
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	})

	return sb.String()
}

// clamp limits v to [0, hi].
func clamp(v, hi int) int {
	return max(0, min(v, hi))
}
