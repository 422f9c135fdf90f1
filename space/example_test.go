package space_test

import (
	"fmt"

	"github.com/katalvlaran/kahuna/space"
)

// ExampleCubeGrid_Neighbors resolves the six face neighbors of the corner
// cell of a 2×2×2 cube; half of them fall outside the grid.
func ExampleCubeGrid_Neighbors() {
	g, _ := space.NewCubeGrid(2, 2, 2, func(c space.Coord) string { return c.String() })

	out := make([]space.Slot[space.Coord], 6)
	g.Neighbors(space.Coord{}, space.Directions(), out)
	for i, d := range space.Directions() {
		if out[i].Valid {
			fmt.Println(d, "->", g.At(out[i].Value))
		} else {
			fmt.Println(d, "-> none")
		}
	}

	// Output:
	// <1,0,0> -> (1,0,0)
	// <0,0,-1> -> none
	// <-1,0,0> -> none
	// <0,0,1> -> (0,0,1)
	// <0,1,0> -> (0,1,0)
	// <0,-1,0> -> none
}
