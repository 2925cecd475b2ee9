package naive

import "github.com/sarchlab/redpiler/internal/cell"

// ButtonTickDelay is the number of ticks a stone button stays pressed before
// it pops back out on its own.
const ButtonTickDelay uint8 = 10

func (s *Sim) simpleOnStateChange(pos cell.Pos) {
	for _, f := range cell.AllFaces {
		s.Update(f.Offset(pos))
	}
}

// ActivateButton presses a button: powers it immediately and schedules the
// tick that releases it, mirroring how buttons are driven by player
// interaction rather than neighbor updates in the reference game.
func (s *Sim) ActivateButton(pos cell.Pos) {
	c, ok := s.Storage.Get(pos)
	if !ok || c.Kind != cell.Button || c.Powered {
		return
	}
	c.Powered = true
	s.Storage.Set(pos, c)
	s.simpleOnStateChange(pos)
	s.Storage.ScheduleTick(pos, ButtonTickDelay, cell.PriorityNormal)
}

func (s *Sim) tickButton(c cell.Cell, pos cell.Pos) {
	if !c.Powered {
		return
	}
	c.Powered = false
	s.Storage.Set(pos, c)
	s.simpleOnStateChange(pos)
}

// ToggleLever flips a lever's power state, mirroring on_use for Lever: an
// instantaneous edit, no scheduled tick.
func (s *Sim) ToggleLever(pos cell.Pos) {
	c, ok := s.Storage.Get(pos)
	if !ok || c.Kind != cell.Lever {
		return
	}
	c.Powered = !c.Powered
	s.Storage.Set(pos, c)
	s.simpleOnStateChange(pos)
}

// SetPressurePlate sets a pressure plate's powered state directly (entity
// weight detection is an external collaborator's job, not this core's), and
// propagates the change immediately if it actually flipped.
func (s *Sim) SetPressurePlate(pos cell.Pos, powered bool) {
	c, ok := s.Storage.Get(pos)
	if !ok || c.Kind != cell.PressurePlate || c.Powered == powered {
		return
	}
	c.Powered = powered
	s.Storage.Set(pos, c)
	s.simpleOnStateChange(pos)
}

// LampShouldBeLit mirrors Block::redstone_lamp_should_be_lit: lit whenever
// any of its six neighbors offers nonzero redstone power.
func (s *Sim) LampShouldBeLit(pos cell.Pos) bool {
	for _, f := range cell.AllFaces {
		np := f.Offset(pos)
		if s.GetRedstonePower(np, f) > 0 {
			return true
		}
	}
	return false
}

// LampOffDelay is the vanilla-matching delay before a lamp turns off after
// losing power (lamps light instantly but extinguish on a short delay to
// avoid visible flicker).
const LampOffDelay uint8 = 2

func (s *Sim) updateLamp(c cell.Cell, pos cell.Pos) {
	shouldBeLit := s.LampShouldBeLit(pos)
	if shouldBeLit == c.Powered {
		return
	}
	if shouldBeLit {
		c.Powered = true
		s.Storage.Set(pos, c)
		return
	}
	if _, pending := s.Storage.PendingTickAt(pos); !pending {
		s.Storage.ScheduleTick(pos, LampOffDelay, cell.PriorityNormal)
	}
}

func (s *Sim) tickLamp(c cell.Cell, pos cell.Pos) {
	if s.LampShouldBeLit(pos) {
		return
	}
	c.Powered = false
	s.Storage.Set(pos, c)
}
