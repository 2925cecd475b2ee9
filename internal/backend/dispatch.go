package backend

import "github.com/sarchlab/redpiler/internal/cell"

// This file carries the per-NodeType decision logic, the backend's
// counterpart to internal/naive's update*/tick* functions — same rules,
// read from histograms instead of cell.Storage.

// --- repeater ---------------------------------------------------------

func (e *Engine) repeaterShouldBePowered(n *Node) bool { return n.defaultMax() > 0 }

func (e *Engine) repeaterPriority(n *Node, shouldBePowered bool) cell.TickPriority {
	switch {
	case n.FacingDiode:
		return cell.PriorityHighest
	case !shouldBePowered:
		return cell.PriorityHigher
	default:
		return cell.PriorityHigh
	}
}

func (e *Engine) updateRepeater(idx NodeIndex) {
	n := &e.nodes[idx]
	locked := n.sideMax() > 0
	if locked != n.Locked {
		n.changed = true
	}
	n.Locked = locked
	if locked || n.pendingTick {
		return
	}
	shouldBePowered := e.repeaterShouldBePowered(n)
	if shouldBePowered != n.Powered {
		e.schedule(idx, n.Delay, e.repeaterPriority(n, shouldBePowered))
	}
}

func (e *Engine) tickRepeater(idx NodeIndex) {
	n := &e.nodes[idx]
	if n.Locked {
		return
	}
	shouldBePowered := e.repeaterShouldBePowered(n)
	if n.Powered == shouldBePowered {
		return
	}
	n.Powered = shouldBePowered
	if shouldBePowered {
		e.SetNode(idx, 15)
	} else {
		e.SetNode(idx, 0)
	}
}

// --- comparator ---------------------------------------------------------

// comparatorInput mirrors Sim.calculateInputStrength's far-input
// look-through: the normal default-input histogram max, unless this
// comparator's facing neighbor is a solid non-overriding cube with a
// container override one cell further (graph.State.HasFarInput, folded at
// compile time by internal/builder), in which case that value replaces the
// histogram reading entirely rather than competing with it.
func (e *Engine) comparatorInput(n *Node) uint8 {
	base := n.defaultMax()
	if n.HasFarInput && base < 15 {
		return n.FarInput
	}
	return base
}

func (e *Engine) comparatorOutput(n *Node) uint8 {
	input := e.comparatorInput(n)
	sides := n.sideMax()
	if n.Mode == cell.Subtract {
		return subSat(input, sides)
	}
	if input >= sides {
		return input
	}
	return 0
}

func (e *Engine) comparatorShouldBePowered(n *Node) bool {
	input := e.comparatorInput(n)
	if input == 0 {
		return false
	}
	sides := n.sideMax()
	if input > sides {
		return true
	}
	return sides == input && n.Mode == cell.Compare
}

func (e *Engine) updateComparator(idx NodeIndex) {
	n := &e.nodes[idx]
	if n.pendingTick {
		return
	}
	output := e.comparatorOutput(n)
	shouldBePowered := e.comparatorShouldBePowered(n)
	if output != n.Output || n.Powered != shouldBePowered {
		priority := cell.PriorityNormal
		if n.FacingDiode {
			priority = cell.PriorityHigh
		}
		e.schedule(idx, 1, priority)
	}
}

func (e *Engine) tickComparator(idx NodeIndex) {
	n := &e.nodes[idx]
	newStrength := e.comparatorOutput(n)
	if newStrength != n.Output || n.Mode == cell.Compare {
		n.Powered = e.comparatorShouldBePowered(n)
		n.changed = true
		e.SetNode(idx, newStrength)
	}
}

// --- torch ---------------------------------------------------------

func (e *Engine) torchShouldBeOff(n *Node) bool { return n.defaultMax() > 0 }

func (e *Engine) updateTorch(idx NodeIndex) {
	n := &e.nodes[idx]
	if n.pendingTick {
		return
	}
	shouldBeOff := e.torchShouldBeOff(n)
	if shouldBeOff == n.Powered {
		e.schedule(idx, 1, cell.PriorityNormal)
	}
}

func (e *Engine) tickTorch(idx NodeIndex) {
	n := &e.nodes[idx]
	shouldBeOff := e.torchShouldBeOff(n)
	if shouldBeOff != n.Powered {
		return
	}
	n.Powered = !shouldBeOff
	if n.Powered {
		e.SetNode(idx, 15)
	} else {
		e.SetNode(idx, 0)
	}
}

// --- lamp ---------------------------------------------------------

// lampOffDelay mirrors naive.LampOffDelay: lamps light instantly but
// extinguish on a short delay.
const lampOffDelay uint8 = 2

func (e *Engine) lampShouldBeLit(n *Node) bool { return n.defaultMax() > 0 }

func (e *Engine) updateLamp(idx NodeIndex) {
	n := &e.nodes[idx]
	shouldBeLit := e.lampShouldBeLit(n)
	if shouldBeLit == n.Powered {
		return
	}
	if shouldBeLit {
		n.Powered = true
		e.SetNode(idx, 15)
		return
	}
	if !n.pendingTick {
		e.schedule(idx, lampOffDelay, cell.PriorityNormal)
	}
}

func (e *Engine) tickLamp(idx NodeIndex) {
	n := &e.nodes[idx]
	if e.lampShouldBeLit(n) {
		return
	}
	n.Powered = false
	e.SetNode(idx, 0)
}

// --- button ---------------------------------------------------------

// buttonTickDelay mirrors naive.ButtonTickDelay.
const buttonTickDelay uint8 = 10

// PressButton powers a button node immediately and schedules its release,
// the host-driven entry point for a player interaction (there is no
// neighbor-triggered update for a button, only this and the tick it
// schedules).
func (e *Engine) PressButton(idx NodeIndex) {
	n := &e.nodes[idx]
	if n.Powered {
		return
	}
	n.Powered = true
	e.SetNode(idx, 15)
	e.schedule(idx, buttonTickDelay, cell.PriorityNormal)
}

func (e *Engine) tickButton(idx NodeIndex) {
	n := &e.nodes[idx]
	if !n.Powered {
		return
	}
	n.Powered = false
	e.SetNode(idx, 0)
}
