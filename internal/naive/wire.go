package naive

import "github.com/sarchlab/redpiler/internal/cell"

// makeCross returns a wire cell with all four sides connected ("plus"
// shape) at the given power, mirroring make_cross.
func makeCross(power uint8) cell.Cell {
	c := cell.Cell{Kind: cell.Wire, Output: power}
	for i := range c.Sides {
		c.Sides[i] = cell.SideConnected
	}
	return c
}

// canConnectTo mirrors wire::can_connect_to: which neighbor kinds a wire
// will run a side connection into.
func canConnectTo(n cell.Cell, side cell.Direction) bool {
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

// canConnectDiagonalTo mirrors wire::can_connect_diagonal_to: only wire
// itself propagates a connection diagonally, through a gap in solid blocks.
func canConnectDiagonalTo(n cell.Cell) bool {
	return n.Kind == cell.Wire
}

// GetSide mirrors wire::get_side: direct connection if the neighbor allows
// it, else a diagonal reach up-and-over or down-and-under through open air.
func (s *Sim) GetSide(pos cell.Pos, side cell.Direction) cell.WireSide {
	neighborPos := side.Face().Offset(pos)
	neighbor, hasNeighbor := s.Storage.Get(neighborPos)
	if hasNeighbor && canConnectTo(neighbor, side) {
		return cell.SideConnected
	}

	up, hasUp := s.Storage.Get(cell.Up.Offset(pos))
	upOpen := !hasUp || !up.Solid

	if upOpen {
		if diag, ok := s.Storage.Get(cell.Up.Offset(neighborPos)); ok && canConnectDiagonalTo(diag) {
			return cell.SideUp
		}
	}
	neighborOpen := !hasNeighbor || !neighbor.Solid
	if neighborOpen {
		if diag, ok := s.Storage.Get(cell.Down.Offset(neighborPos)); ok && canConnectDiagonalTo(diag) {
			return cell.SideConnected
		}
	}
	return cell.SideNone
}

func (s *Sim) getAllSides(pos cell.Pos) [4]cell.WireSide {
	var sides [4]cell.WireSide
	sides[cell.DirNorth] = s.GetSide(pos, cell.DirNorth)
	sides[cell.DirSouth] = s.GetSide(pos, cell.DirSouth)
	sides[cell.DirEast] = s.GetSide(pos, cell.DirEast)
	sides[cell.DirWest] = s.GetSide(pos, cell.DirWest)
	return sides
}

// GetRegulatedSides mirrors wire::get_regulated_sides: the raw per-side
// connection state, with the "dot" pattern forced into a cross whenever a
// pair of opposite sides would otherwise both read None.
func (s *Sim) GetRegulatedSides(wire cell.Cell, pos cell.Pos) cell.Cell {
	state := wire
	state.Sides = s.getAllSides(pos)
	if wire.IsDot() && state.IsDot() {
		return state
	}

	northNone := state.Sides[cell.DirNorth].IsNone()
	southNone := state.Sides[cell.DirSouth].IsNone()
	eastNone := state.Sides[cell.DirEast].IsNone()
	westNone := state.Sides[cell.DirWest].IsNone()
	northSouthNone := northNone && southNone
	eastWestNone := eastNone && westNone

	if northNone && eastWestNone {
		state.Sides[cell.DirNorth] = cell.SideConnected
	}
	if southNone && eastWestNone {
		state.Sides[cell.DirSouth] = cell.SideConnected
	}
	if eastNone && northSouthNone {
		state.Sides[cell.DirEast] = cell.SideConnected
	}
	if westNone && northSouthNone {
		state.Sides[cell.DirWest] = cell.SideConnected
	}
	return state
}

func (s *Sim) maxWirePower(wirePower uint8, pos cell.Pos) uint8 {
	if c, ok := s.Storage.Get(pos); ok && c.Kind == cell.Wire {
		return maxU8(wirePower, c.Output)
	}
	return wirePower
}

// CalculatePower mirrors wire::calculate_power: the strongest block-power
// signal reaching pos from any of its six neighbors, combined with the
// highest adjacent wire power (including diagonal climbs through open
// space), the same way the reference implementation derives a freshly
// placed or neighbor-changed wire's output strength.
func (s *Sim) CalculatePower(pos cell.Pos) uint8 {
	var blockPower, wirePower uint8

	up, hasUp := s.Storage.Get(cell.Up.Offset(pos))
	upSolid := hasUp && up.Solid

	for _, f := range cell.AllFaces {
		neighborPos := f.Offset(pos)
		wirePower = s.maxWirePower(wirePower, neighborPos)
		neighbor, hasNeighbor := s.Storage.Get(neighborPos)
		if p := s.getRedstonePowerNoDust(neighborPos, f); p > blockPower {
			blockPower = p
		}
		if f.IsHorizontal() {
			if !upSolid && hasNeighbor && !neighbor.Transparent {
				wirePower = s.maxWirePower(wirePower, cell.Up.Offset(neighborPos))
			}
			if !hasNeighbor || !neighbor.Solid {
				wirePower = s.maxWirePower(wirePower, cell.Down.Offset(neighborPos))
			}
		}
	}

	return maxU8(blockPower, subSat(wirePower, 1))
}

// GetStateForPlacement mirrors wire::get_state_for_placement.
func (s *Sim) GetStateForPlacement(pos cell.Pos) cell.Cell {
	wire := cell.Cell{Kind: cell.Wire, Output: s.CalculatePower(pos)}
	wire = s.GetRegulatedSides(wire, pos)
	if wire.IsDot() {
		wire = makeCross(wire.Output)
	}
	return wire
}

// onNeighborChanged mirrors wire::on_neighbor_changed: a structural
// connectivity update (as opposed to a power update), triggered when the
// block on the given face of the wire itself changed kind.
func (s *Sim) onNeighborChanged(wire cell.Cell, pos cell.Pos, side cell.Face) cell.Cell {
	old := wire
	var newSide cell.WireSide
	switch side {
	case cell.Up:
		return wire
	case cell.Down:
		return s.GetRegulatedSides(wire, pos)
	case cell.North:
		wire.Sides[cell.DirSouth] = s.GetSide(pos, cell.DirSouth)
		newSide = wire.Sides[cell.DirSouth]
	case cell.South:
		wire.Sides[cell.DirNorth] = s.GetSide(pos, cell.DirNorth)
		newSide = wire.Sides[cell.DirNorth]
	case cell.East:
		wire.Sides[cell.DirWest] = s.GetSide(pos, cell.DirWest)
		newSide = wire.Sides[cell.DirWest]
	case cell.West:
		wire.Sides[cell.DirEast] = s.GetSide(pos, cell.DirEast)
		newSide = wire.Sides[cell.DirEast]
	}
	wire = s.GetRegulatedSides(wire, pos)
	if old.IsCross() && newSide.IsNone() {
		return old
	}
	if !old.IsDot() && wire.IsDot() {
		wire = makeCross(wire.Output)
	}
	return wire
}

// ToggleWireShape mirrors wire::on_use: flips a wire between its canonical
// dot and cross shapes, the player-facing "shift-click" interaction.
func (s *Sim) ToggleWireShape(pos cell.Pos) bool {
	c, ok := s.Storage.Get(pos)
	if !ok || c.Kind != cell.Wire {
		return false
	}
	var next cell.Cell
	if c.IsCross() {
		next = cell.Cell{Kind: cell.Wire}
	} else if c.IsDot() {
		next = makeCross(0)
	} else {
		return false
	}
	next.Output = c.Output
	next = s.GetRegulatedSides(next, pos)
	if next == c {
		return false
	}
	s.Storage.Set(pos, next)
	s.updateWireNeighbors(pos)
	return true
}

func (s *Sim) updateWireNeighbors(pos cell.Pos) {
	for _, f := range cell.AllFaces {
		s.Update(f.Offset(pos))
	}
}
