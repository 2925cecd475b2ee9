// Package naive implements the reference, non-JIT redstone simulator: the
// update()/tick() rules a backend-compiled graph must agree with. It is
// grounded directly on the reference MCHPRS implementation
// (blocks/redstone/mod.rs, redstone/repeater.rs, redstone/comparator.rs,
// redstone/wire/mod.rs, redstone/wire/turbo.rs) and exists both as the
// correctness oracle for parity tests and as the fallback path for
// components the graph builder can't compile.
package naive

import "github.com/sarchlab/redpiler/internal/cell"

// Sim bundles a Storage with the naive update/tick rules. It holds no state
// of its own; everything lives in Storage.
type Sim struct {
	Storage cell.Storage
}

func New(s cell.Storage) *Sim {
	return &Sim{Storage: s}
}

// getWeakPower is the per-block weak power contribution towards a neighbor
// on the given face, mirroring Block::get_weak_power. dustPower controls
// whether redstone wire itself is allowed to contribute (naive world update
// calls this with dustPower=true; link-strength analysis for diagonal wire
// climbing calls it with false, matching get_redstone_power_no_dust).
func (s *Sim) getWeakPower(pos cell.Pos, side cell.Face, dustPower bool) uint8 {
	c, ok := s.Storage.Get(pos)
	if !ok {
		return 0
	}
	switch c.Kind {
	case cell.Torch:
		if c.Powered {
			return 15
		}
	case cell.WallTorch:
		if c.Powered && c.Facing.Face() != side {
			return 15
		}
	case cell.Block15:
		return 15
	case cell.PressurePlate:
		if c.Powered {
			return 15
		}
	case cell.Lever:
		if c.Powered {
			return 15
		}
	case cell.Button:
		if c.Powered {
			return 15
		}
	case cell.Repeater:
		if c.Facing.Face() == side && c.Powered {
			return 15
		}
	case cell.Comparator:
		if c.Facing.Face() == side {
			if be, ok := s.Storage.GetBlockEntity(pos); ok {
				if comp, ok := be.(cell.ComparatorEntity); ok {
					return comp.OutputStrength
				}
			}
			return 0
		}
	case cell.Wire:
		if dustPower {
			switch side {
			case cell.Up:
				return c.Output
			case cell.Down:
				return 0
			default:
				dir := cell.DirectionFromFace(side)
				if c.Sides[dir.Opposite()].IsNone() {
					return 0
				}
				return c.Output
			}
		}
	}
	return 0
}

// getStrongPower mirrors Block::get_strong_power.
func (s *Sim) getStrongPower(pos cell.Pos, side cell.Face, dustPower bool) uint8 {
	c, ok := s.Storage.Get(pos)
	if !ok {
		return 0
	}
	switch c.Kind {
	case cell.Torch:
		if c.Powered && side == cell.Down {
			return 15
		}
	case cell.WallTorch:
		if c.Powered && side == cell.Down {
			return 15
		}
	case cell.Lever:
		if c.Powered && side == c.Facing.Face() {
			return 15
		}
	case cell.Button:
		if c.Powered && side == c.Facing.Face() {
			return 15
		}
	case cell.PressurePlate:
		if c.Powered && side == cell.Up {
			return 15
		}
	case cell.Wire, cell.Repeater, cell.Comparator:
		return s.getWeakPower(pos, side, dustPower)
	}
	return 0
}

// getMaxStrongPower mirrors Block::get_max_strong_power: the strongest
// strong-power contribution any of pos's six neighbors offers back into pos.
func (s *Sim) getMaxStrongPower(pos cell.Pos, dustPower bool) uint8 {
	var max uint8
	for _, f := range cell.AllFaces {
		np := f.Offset(pos)
		if p := s.getStrongPower(np, f, dustPower); p > max {
			max = p
		}
	}
	return max
}

// GetRedstonePower mirrors Block::get_redstone_power: a solid block reads
// the strongest strong-power signal reaching it from any side; everything
// else reads only its own weak-power contribution on the given facing.
func (s *Sim) GetRedstonePower(pos cell.Pos, facing cell.Face) uint8 {
	c, ok := s.Storage.Get(pos)
	if !ok {
		return 0
	}
	if c.Solid {
		return s.getMaxStrongPower(pos, true)
	}
	return s.getWeakPower(pos, facing, true)
}

// getRedstonePowerNoDust is GetRedstonePower with wire contributions
// excluded, used by wire's own power calculation so it doesn't double-count
// neighboring dust.
func (s *Sim) getRedstonePowerNoDust(pos cell.Pos, facing cell.Face) uint8 {
	c, ok := s.Storage.Get(pos)
	if !ok {
		return 0
	}
	if c.Solid {
		return s.getMaxStrongPower(pos, false)
	}
	return s.getWeakPower(pos, facing, false)
}

// diodeInputStrength is the signal a repeater/comparator reads from directly
// in front of it, mirroring diode_get_input_strength: falls back to a wire's
// own stored power if the general computation reads zero (weak power to a
// solid-adjacent diode's own face direction can legitimately be zero while
// the wire sitting there is still lit).
func (s *Sim) diodeInputStrength(pos cell.Pos, facing cell.Direction) uint8 {
	inputPos := facing.Face().Offset(pos)
	power := s.GetRedstonePower(inputPos, facing.Face())
	if power == 0 {
		if c, ok := s.Storage.Get(inputPos); ok && c.Kind == cell.Wire {
			power = c.Output
		}
	}
	return power
}

func maxU8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

func subSat(a, b uint8) uint8 {
	if a <= b {
		return 0
	}
	return a - b
}
