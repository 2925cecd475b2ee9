package builder

import "github.com/sarchlab/redpiler/internal/cell"

// canFeedWire reports whether a block kind at side can inject power into an
// adjacent wire, mirroring wire::can_connect_to's power-source side of the
// predicate (a link-search concern, independent of the naive simulator's own
// copy of the same rule).
func canFeedWire(n cell.Cell, side cell.Direction) bool {
	switch n.Kind {
	case cell.Wire, cell.Comparator, cell.Torch, cell.Block15, cell.WallTorch,
		cell.PressurePlate, cell.Button, cell.Lever:
		return true
	case cell.Repeater:
		return n.Facing == side || n.Facing == side.Opposite()
	default:
		return false
	}
}

func canConnectDiagonal(n cell.Cell) bool {
	return n.Kind == cell.Wire
}

// wireSide mirrors wire::get_side for link search's own traversal: direct
// connection if the neighbor feeds power, else a diagonal reach through
// open space above or below.
func wireSide(s cell.Storage, pos cell.Pos, side cell.Direction) cell.WireSide {
	neighborPos := side.Face().Offset(pos)
	neighbor, hasNeighbor := s.Get(neighborPos)
	if hasNeighbor && canFeedWire(neighbor, side) {
		return cell.SideConnected
	}

	up, hasUp := s.Get(cell.Up.Offset(pos))
	upOpen := !hasUp || !up.Solid
	if upOpen {
		if diag, ok := s.Get(cell.Up.Offset(neighborPos)); ok && canConnectDiagonal(diag) {
			return cell.SideUp
		}
	}
	neighborOpen := !hasNeighbor || !neighbor.Solid
	if neighborOpen {
		if diag, ok := s.Get(cell.Down.Offset(neighborPos)); ok && canConnectDiagonal(diag) {
			return cell.SideConnected
		}
	}
	return cell.SideNone
}

// sourceLink is one component found feeding a diode's input, at the given
// wire-hop distance (0 if it's a direct, non-wire neighbor).
type sourceLink struct {
	pos      cell.Pos
	distance uint8
}

// wireSources walks the wire network reachable from startPos (expected to
// be a Wire cell), returning every non-wire component found feeding power
// into it, tagged with its BFS distance. Distance 0 means startPos itself
// was adjacent to the component (no wire hop needed to explain the decay);
// each additional wire hop increases distance by one, matching vanilla
// redstone's one-signal-strength-per-block decay.
func wireSources(s cell.Storage, startPos cell.Pos) []sourceLink {
	type frontierEntry struct {
		pos   cell.Pos
		depth uint8
	}

	visited := map[cell.Pos]bool{startPos: true}
	queue := []frontierEntry{{startPos, 0}}
	var sources []sourceLink

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, dir := range [4]cell.Direction{cell.DirNorth, cell.DirEast, cell.DirSouth, cell.DirWest} {
			if wireSide(s, cur.pos, dir) == cell.SideNone {
				continue
			}
			neighborPos := dir.Face().Offset(cur.pos)
			neighbor, ok := s.Get(neighborPos)
			if !ok {
				continue
			}
			if neighbor.Kind == cell.Wire {
				if visited[neighborPos] {
					continue
				}
				visited[neighborPos] = true
				queue = append(queue, frontierEntry{neighborPos, cur.depth + 1})
				continue
			}
			if canFeedWire(neighbor, dir) {
				sources = append(sources, sourceLink{pos: neighborPos, distance: cur.depth})
			}
		}

		// Diagonal climb: a wire one level up or down, directly above/below
		// a connected neighbor, continues the same network.
		for _, dir := range [4]cell.Direction{cell.DirNorth, cell.DirEast, cell.DirSouth, cell.DirWest} {
			neighborPos := dir.Face().Offset(cur.pos)
			var diagPos cell.Pos
			switch wireSide(s, cur.pos, dir) {
			case cell.SideUp:
				diagPos = cell.Up.Offset(neighborPos)
			case cell.SideConnected:
				if neighbor, ok := s.Get(neighborPos); ok && neighbor.Solid {
					continue
				}
				diagPos = cell.Down.Offset(neighborPos)
			default:
				continue
			}
			if diag, ok := s.Get(diagPos); ok && diag.Kind == cell.Wire && !visited[diagPos] {
				visited[diagPos] = true
				queue = append(queue, frontierEntry{diagPos, cur.depth + 1})
			}
		}
	}

	return sources
}

// directNeighbor returns the component, if any, directly adjacent to pos on
// the given side — used for a diode's side inputs, which the reference
// rules read only one block deep, never through a wire chain.
func directNeighbor(s cell.Storage, pos cell.Pos, side cell.Direction) (cell.Pos, cell.Cell, bool) {
	np := side.Face().Offset(pos)
	c, ok := s.Get(np)
	if !ok {
		return np, cell.Cell{}, false
	}
	return np, c, true
}
