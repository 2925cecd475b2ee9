package naive

import "github.com/sarchlab/redpiler/internal/cell"

// getPowerOnSide reads the weak power a diode neighbor contributes on side,
// mirroring RedstoneRepeater::get_power_on_side (shared verbatim by the
// comparator's locking check).
func (s *Sim) getPowerOnSide(pos cell.Pos, side cell.Direction) uint8 {
	sidePos := side.Face().Offset(pos)
	c, ok := s.Storage.Get(sidePos)
	if !ok || !c.Kind.IsDiode() {
		return 0
	}
	return s.getWeakPower(sidePos, side.Face(), false)
}

// ShouldBeLocked mirrors RedstoneRepeater::should_be_locked: a repeater
// locks when either side neighbor (rotated clockwise or counter-clockwise
// from its facing) is a powered diode.
func (s *Sim) ShouldBeLocked(facing cell.Direction, pos cell.Pos) bool {
	right := s.getPowerOnSide(pos, facing.Rotate())
	left := s.getPowerOnSide(pos, facing.RotateCCW())
	return maxU8(right, left) > 0
}

// RepeaterShouldBePowered mirrors RedstoneRepeater::should_be_powered.
func (s *Sim) RepeaterShouldBePowered(c cell.Cell, pos cell.Pos) bool {
	return s.diodeInputStrength(pos, c.Facing) > 0
}

// repeaterOnStateChange mirrors RedstoneRepeater::on_state_change: updates
// the block directly in front of the repeater's output, then that block's
// own six neighbors.
func (s *Sim) repeaterOnStateChange(c cell.Cell, pos cell.Pos) {
	frontPos := c.Facing.Opposite().Face().Offset(pos)
	s.Update(frontPos)
	for _, f := range cell.AllFaces {
		s.Update(f.Offset(frontPos))
	}
}

// repeaterSchedulePriority mirrors RedstoneRepeater::schedule_tick's
// priority selection.
func (s *Sim) repeaterSchedulePriority(c cell.Cell, pos cell.Pos, shouldBePowered bool) cell.TickPriority {
	frontPos := c.Facing.Opposite().Face().Offset(pos)
	front, ok := s.Storage.Get(frontPos)
	switch {
	case ok && front.Kind.IsDiode():
		return cell.PriorityHighest
	case !shouldBePowered:
		return cell.PriorityHigher
	default:
		return cell.PriorityHigh
	}
}

// updateRepeater mirrors RedstoneRepeater::on_neighbor_updated.
func (s *Sim) updateRepeater(c cell.Cell, pos cell.Pos) {
	shouldBeLocked := s.ShouldBeLocked(c.Facing, pos)
	if shouldBeLocked != c.Locked {
		c.Locked = shouldBeLocked
		s.Storage.Set(pos, c)
	}

	if c.Locked {
		return
	}
	if _, pending := s.Storage.PendingTickAt(pos); pending {
		return
	}
	shouldBePowered := s.RepeaterShouldBePowered(c, pos)
	if shouldBePowered != c.Powered {
		priority := s.repeaterSchedulePriority(c, pos, shouldBePowered)
		s.Storage.ScheduleTick(pos, c.Delay, priority)
	}
}

// tickRepeater mirrors RedstoneRepeater::tick.
func (s *Sim) tickRepeater(c cell.Cell, pos cell.Pos) {
	if c.Locked {
		return
	}
	shouldBePowered := s.RepeaterShouldBePowered(c, pos)
	if c.Powered && !shouldBePowered {
		c.Powered = false
		s.Storage.Set(pos, c)
		s.repeaterOnStateChange(c, pos)
	} else if !c.Powered {
		c.Powered = true
		s.Storage.Set(pos, c)
		s.repeaterOnStateChange(c, pos)
	}
}
