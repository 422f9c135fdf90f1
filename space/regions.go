package space

// Regions groups the coordinates of sp into connected regions. Two
// coordinates are connected when one is reachable from the other through
// offsets and same reports true for their cells. Cells for which keep returns
// false belong to no region.
//
// Regions are returned in order of their first coordinate in
// sp.Coordinates(); each region lists coordinates in BFS order from that
// first coordinate.
//
// Time:   O(N·d) same calls for N cells and d offsets.
// Memory: O(N) for visited flags and output.
func Regions[C comparable, D any, S any](sp Space[C, D, S], offsets []D, keep func(S) bool, same func(a, b S) bool) [][]C {
	coords := sp.Coordinates()
	seen := make(map[C]bool, len(coords))
	out := make([]Slot[C], len(offsets))
	var regions [][]C

	for _, c0 := range coords {
		if seen[c0] || !keep(sp.At(c0)) {
			continue
		}
		queue := []C{c0}
		seen[c0] = true
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			cu := sp.At(u)
			sp.Neighbors(u, offsets, out)
			for _, slot := range out {
				if !slot.Valid || seen[slot.Value] {
					continue
				}
				cv := sp.At(slot.Value)
				if !keep(cv) || !same(cu, cv) {
					continue
				}
				seen[slot.Value] = true
				queue = append(queue, slot.Value)
			}
		}
		regions = append(regions, queue)
	}

	return regions
}
