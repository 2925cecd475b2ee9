package naive

import "github.com/sarchlab/redpiler/internal/cell"

// Update is the generic "neighbor changed, recompute" entry point, mirroring
// the reference dispatch over Block::update/on_neighbor_updated for every
// component kind. It is a no-op for kinds with no reactive behavior
// (terrain, constant sources, containers).
func (s *Sim) Update(pos cell.Pos) {
	c, ok := s.Storage.Get(pos)
	if !ok {
		return
	}
	switch c.Kind {
	case cell.Repeater:
		s.updateRepeater(c, pos)
	case cell.Comparator:
		s.updateComparator(c, pos)
	case cell.Torch, cell.WallTorch:
		s.updateTorch(c, pos)
	case cell.Lamp:
		s.updateLamp(c, pos)
	case cell.Wire:
		s.updateWire(c, pos)
	}
}

// updateWire mirrors wire::on_neighbor_updated: recompute power, and if it
// changed, store it and flood the change via turbo.
func (s *Sim) updateWire(c cell.Cell, pos cell.Pos) {
	newPower := s.CalculatePower(pos)
	if newPower != c.Output {
		c.Output = newPower
		s.Storage.Set(pos, c)
		s.UpdateSurroundingNeighbors(pos)
	}
}

// Tick runs the scheduled-tick behavior for pos, mirroring the per-kind
// tick() methods. Call this once a pending tick's delay has elapsed; the
// caller (or the execution backend) owns the schedule itself.
func (s *Sim) Tick(pos cell.Pos) {
	c, ok := s.Storage.Get(pos)
	if !ok {
		return
	}
	switch c.Kind {
	case cell.Repeater:
		s.tickRepeater(c, pos)
	case cell.Comparator:
		s.tickComparator(c, pos)
	case cell.Torch, cell.WallTorch:
		s.tickTorch(c, pos)
	case cell.Lamp:
		s.tickLamp(c, pos)
	case cell.Button:
		s.tickButton(c, pos)
	}
}

// UpdateSurrounding calls Update on all six face neighbors of pos, the
// common "something changed here, tell the neighborhood" fan-out used after
// a block is placed or broken.
func (s *Sim) UpdateSurrounding(pos cell.Pos) {
	for _, f := range cell.AllFaces {
		s.Update(f.Offset(pos))
	}
}
