package naive

import "github.com/sarchlab/redpiler/internal/cell"

// torchAttachmentPos returns the position of the block a torch is mounted
// against: straight down for a floor torch, the wall behind it for a wall
// torch.
func torchAttachmentPos(c cell.Cell, pos cell.Pos) cell.Pos {
	if c.Kind == cell.WallTorch {
		return c.Facing.Opposite().Face().Offset(pos)
	}
	return cell.Down.Offset(pos)
}

// TorchShouldBeOff mirrors Block::torch_should_be_off /
// wall_torch_should_be_off: a torch burns out when its attachment block is
// receiving redstone power.
func (s *Sim) TorchShouldBeOff(c cell.Cell, pos cell.Pos) bool {
	attach := torchAttachmentPos(c, pos)
	var face cell.Face
	if c.Kind == cell.WallTorch {
		face = c.Facing.Opposite().Face()
	} else {
		face = cell.Up
	}
	return s.GetRedstonePower(attach, face) > 0
}

func (s *Sim) torchOnStateChange(pos cell.Pos) {
	for _, f := range cell.AllFaces {
		s.Update(f.Offset(pos))
	}
}

// updateTorch schedules a tick whenever the attachment block's power state
// disagrees with the torch's current lit state, provided none is already
// pending.
func (s *Sim) updateTorch(c cell.Cell, pos cell.Pos) {
	if _, pending := s.Storage.PendingTickAt(pos); pending {
		return
	}
	shouldBeOff := s.TorchShouldBeOff(c, pos)
	if shouldBeOff == c.Powered {
		s.Storage.ScheduleTick(pos, 1, cell.PriorityNormal)
	}
}

func (s *Sim) tickTorch(c cell.Cell, pos cell.Pos) {
	shouldBeOff := s.TorchShouldBeOff(c, pos)
	if shouldBeOff == c.Powered {
		c.Powered = !shouldBeOff
		s.Storage.Set(pos, c)
		s.torchOnStateChange(pos)
	}
}
