// Package builder turns a region of voxel storage into a graph.Graph: the
// "identify" phase maps each position's cell.Cell to a graph node, and the
// "link search" phase walks wire networks and direct neighbors to wire up
// the signal edges between them. It is grounded on
// redpiler/passes/identify_nodes.rs (identify) and redpiler's separate link
// search pass that walks wire runs to find a diode's real inputs.
package builder

import "github.com/sarchlab/redpiler/internal/cell"

// Bounds is an inclusive axis-aligned region of voxel space to compile.
type Bounds struct {
	Min, Max cell.Pos
}

// Contains reports whether pos falls within b, inclusive on all sides.
func (b Bounds) Contains(pos cell.Pos) bool {
	return pos.X >= b.Min.X && pos.X <= b.Max.X &&
		pos.Y >= b.Min.Y && pos.Y <= b.Max.Y &&
		pos.Z >= b.Min.Z && pos.Z <= b.Max.Z
}

// ForEach visits every position in b in a deterministic x-then-y-then-z
// raster order, matching for_each_block_optimized's sweep used by
// identify_nodes.rs.
func (b Bounds) ForEach(f func(cell.Pos)) {
	for x := b.Min.X; x <= b.Max.X; x++ {
		for y := b.Min.Y; y <= b.Max.Y; y++ {
			for z := b.Min.Z; z <= b.Max.Z; z++ {
				f(cell.Pos{X: x, Y: y, Z: z})
			}
		}
	}
}
