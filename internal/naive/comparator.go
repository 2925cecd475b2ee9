package naive

import "github.com/sarchlab/redpiler/internal/cell"

// comparatorPowerOnSide mirrors RedstoneComparator::get_power_on_side: like
// the repeater's side check, but a redstone block and bare wire also count
// (a comparator's side input is a superset of a repeater's).
func (s *Sim) comparatorPowerOnSide(pos cell.Pos, side cell.Direction) uint8 {
	sidePos := side.Face().Offset(pos)
	c, ok := s.Storage.Get(sidePos)
	if !ok {
		return 0
	}
	switch {
	case c.Kind.IsDiode():
		return s.getWeakPower(sidePos, side.Face(), false)
	case c.Kind == cell.Wire:
		return c.Output
	case c.Kind == cell.Block15:
		return 15
	default:
		return 0
	}
}

func (s *Sim) comparatorPowerOnSides(c cell.Cell, pos cell.Pos) uint8 {
	right := s.comparatorPowerOnSide(pos, c.Facing.Rotate())
	left := s.comparatorPowerOnSide(pos, c.Facing.RotateCCW())
	return maxU8(right, left)
}

// hasComparatorOverride and comparatorOverride expose a container's derived
// signal, mirroring Block::has_comparator_override/get_comparator_override.
func (s *Sim) hasComparatorOverride(pos cell.Pos) bool {
	be, ok := s.Storage.GetBlockEntity(pos)
	if !ok {
		return false
	}
	_, ok = be.(cell.ContainerEntity)
	return ok
}

func (s *Sim) comparatorOverride(pos cell.Pos) uint8 {
	be, ok := s.Storage.GetBlockEntity(pos)
	if !ok {
		return 0
	}
	container, ok := be.(cell.ContainerEntity)
	if !ok {
		return 0
	}
	return container.ComputeOverride()
}

// calculateInputStrength mirrors RedstoneComparator::calculate_input_strength,
// including the far-input look-through for a solid block sitting directly in
// front of the comparator.
func (s *Sim) calculateInputStrength(c cell.Cell, pos cell.Pos) uint8 {
	base := s.diodeInputStrength(pos, c.Facing)
	inputPos := c.Facing.Face().Offset(pos)

	if s.hasComparatorOverride(inputPos) {
		return s.comparatorOverride(inputPos)
	}
	inputCell, ok := s.Storage.Get(inputPos)
	if base < 15 && ok && inputCell.Solid {
		farPos := c.Facing.Face().Offset(inputPos)
		if s.hasComparatorOverride(farPos) {
			return s.comparatorOverride(farPos)
		}
	}
	return base
}

// ComparatorShouldBePowered mirrors RedstoneComparator::should_be_powered.
func (s *Sim) ComparatorShouldBePowered(c cell.Cell, pos cell.Pos) bool {
	input := s.calculateInputStrength(c, pos)
	if input == 0 {
		return false
	}
	sides := s.comparatorPowerOnSides(c, pos)
	if input > sides {
		return true
	}
	return sides == input && c.Mode == cell.Compare
}

// calculateOutputStrength mirrors RedstoneComparator::calculate_output_strength.
func (s *Sim) calculateOutputStrength(c cell.Cell, pos cell.Pos) uint8 {
	input := s.calculateInputStrength(c, pos)
	sides := s.comparatorPowerOnSides(c, pos)
	if c.Mode == cell.Subtract {
		return subSat(input, sides)
	}
	if input >= sides {
		return input
	}
	return 0
}

func (s *Sim) comparatorOnStateChange(c cell.Cell, pos cell.Pos) {
	frontPos := c.Facing.Opposite().Face().Offset(pos)
	s.Update(frontPos)
	for _, f := range cell.AllFaces {
		s.Update(f.Offset(frontPos))
	}
}

func (s *Sim) comparatorOutputEntity(pos cell.Pos) uint8 {
	be, ok := s.Storage.GetBlockEntity(pos)
	if !ok {
		return 0
	}
	comp, ok := be.(cell.ComparatorEntity)
	if !ok {
		return 0
	}
	return comp.OutputStrength
}

// updateComparator mirrors RedstoneComparator::update.
func (s *Sim) updateComparator(c cell.Cell, pos cell.Pos) {
	if _, pending := s.Storage.PendingTickAt(pos); pending {
		return
	}
	output := s.calculateOutputStrength(c, pos)
	old := s.comparatorOutputEntity(pos)
	if output != old || c.Powered != s.ComparatorShouldBePowered(c, pos) {
		frontPos := c.Facing.Opposite().Face().Offset(pos)
		priority := cell.PriorityNormal
		if front, ok := s.Storage.Get(frontPos); ok && front.Kind.IsDiode() {
			priority = cell.PriorityHigh
		}
		s.Storage.ScheduleTick(pos, 1, priority)
	}
}

// tickComparator mirrors RedstoneComparator::tick.
func (s *Sim) tickComparator(c cell.Cell, pos cell.Pos) {
	newStrength := s.calculateOutputStrength(c, pos)
	old := s.comparatorOutputEntity(pos)
	if newStrength != old || c.Mode == cell.Compare {
		s.Storage.SetBlockEntity(pos, cell.ComparatorEntity{OutputStrength: newStrength})
		shouldBePowered := s.ComparatorShouldBePowered(c, pos)
		if c.Powered != shouldBePowered {
			c.Powered = shouldBePowered
			s.Storage.Set(pos, c)
		}
		s.comparatorOnStateChange(c, pos)
	}
}
