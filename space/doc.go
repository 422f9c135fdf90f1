// Package space defines the cell containers a collapse solve runs over.
//
// What:
//
//   - Space is the generic contract: list every coordinate, resolve neighbor
//     offsets to coordinates (or "none" past the border), and address a cell.
//   - CubeGrid is the dense 3-D implementation: a flat slice of cells stored
//     y-major, then z, then x.
//   - Slot is the optional value used for resolved neighbors.
//   - Coord/Offset are the cube's coordinate and delta types; Directions
//     lists the six face neighbors in prototype order (+x, -z, -x, +z, +y, -y).
//
// Layout:
//
//	Cube as viewed from above (y is up)
//	(0,0,length) - - - - (width,0,length)
//	            |       |
//	            |       |
//	     (0,0,0) - - - - (width,0,0)
//
//	index(x,y,z) = y*width*length + z*width + x
//
// Complexity:
//
//   - NewCubeGrid:  O(W×L×H) time and memory, one init call per cell.
//   - Coordinates:  O(W×L×H).
//   - Neighbors:    O(len(offsets)).
//   - At / Index:   O(1).
//
// Errors:
//
//   - ErrBadDimensions: a dimension passed to NewCubeGrid is < 1.
//   - ErrNilInit:       NewCubeGrid received a nil initializer.
//
// Neighbors panics when the output buffer is shorter than the offset list and
// At does not bounds-check beyond the backing slice; both are programmer errors.
package space
