package backend

import (
	"fmt"

	"github.com/sarchlab/redpiler/internal/cell"
	"github.com/sarchlab/redpiler/internal/graph"
	"github.com/sarchlab/redpiler/internal/rlog"
)

// Engine is the compiled execution backend: a dense node array plus the
// ring scheduler, entirely self-contained after Build — it never touches
// cell.Storage again until Flush.
type Engine struct {
	nodes    []Node
	sched    ring
	posIndex map[cell.Pos]NodeIndex
}

// IndexAt returns the dense index of the node compiled from pos, if any.
func (e *Engine) IndexAt(pos cell.Pos) (NodeIndex, bool) {
	idx, ok := e.posIndex[pos]
	return idx, ok
}

// ErrBackendAbsent is returned by Tick/Flush when called on an Engine with
// no nodes (never built, or built from an empty graph), matching spec.md
// §7's BackendAbsent case.
var ErrBackendAbsent = fmt.Errorf("backend: no compiled graph loaded")

// NodeCount returns the number of live nodes in the engine.
func (e *Engine) NodeCount() int { return len(e.nodes) }

// SetNode assigns idx's output level and propagates the change to every
// downstream node's input histograms, recursively re-evaluating anything
// whose decided state might now differ — the sole place power actually
// moves through the compiled graph. This mirrors spec.md §4.G's
// synchronous recursive set_node: no queuing, no deferred work, the whole
// fan-out happens on the calling stack before SetNode returns.
func (e *Engine) SetNode(idx NodeIndex, output uint8) {
	n := &e.nodes[idx]
	if n.Output == output {
		return
	}
	old := n.Output
	n.Output = output
	n.changed = true

	for _, link := range n.Outputs {
		oldLevel := subSat(old, link.Weight)
		newLevel := subSat(output, link.Weight)
		if oldLevel == newLevel {
			continue
		}
		dst := &e.nodes[link.Target]
		if link.Type == graph.LinkSide {
			dst.sideHist.remove(oldLevel)
			dst.sideHist.add(newLevel)
		} else {
			dst.defaultHist.remove(oldLevel)
			dst.defaultHist.add(newLevel)
		}
		e.updateNode(link.Target)
	}
}

// updateNode re-evaluates idx given its current histograms, mirroring the
// naive simulator's per-kind update(): repeaters, comparators and torches
// schedule a tick rather than changing state inline, and a lamp lights
// inline but schedules its turn-off. Wire and trapdoor nodes have no
// scheduling delay of their own, so they apply immediately.
func (e *Engine) updateNode(idx NodeIndex) {
	n := &e.nodes[idx]
	switch n.Type {
	case graph.NodeRepeater:
		e.updateRepeater(idx)
	case graph.NodeComparator:
		e.updateComparator(idx)
	case graph.NodeTorch, graph.NodeWallTorch:
		e.updateTorch(idx)
	case graph.NodeLamp:
		e.updateLamp(idx)
	case graph.NodeWire:
		newOutput := n.defaultMax()
		if newOutput != n.Output {
			e.SetNode(idx, newOutput)
		}
	case graph.NodeTrapdoor:
		powered := n.defaultMax() > 0
		if powered != n.Powered {
			n.Powered = powered
			if powered {
				e.SetNode(idx, 15)
			} else {
				e.SetNode(idx, 0)
			}
		}
	}
}

// schedule registers a pending tick for idx, refusing a duplicate if one is
// already pending — matching every diode/torch/lamp's "don't double
// schedule" guard in the reference rules. A delay of 16 or more is not
// representable in the 16-slot ring; per spec.md §7's OutOfBoundsTick, it
// is clamped to 15 and logged rather than rejected.
func (e *Engine) schedule(idx NodeIndex, delay uint8, priority cell.TickPriority) {
	n := &e.nodes[idx]
	if n.pendingTick {
		return
	}
	n.pendingTick = true
	e.sched.schedule(clampDelay(idx, delay), priority, idx)
}

func clampDelay(idx NodeIndex, delay uint8) uint8 {
	if delay >= ringSlots {
		rlog.Trace("clamped out-of-range tick delay", "node", int32(idx), "delay", delay, "clamped_to", ringSlots-1)
		return ringSlots - 1
	}
	return delay
}

// Tick advances the scheduler by one step: every node due this tick runs,
// strictly in Highest/Higher/High/Normal order, and may itself schedule
// further ticks (which land in a future slot, never the one being
// processed right now).
func (e *Engine) Tick() error {
	if e == nil || len(e.nodes) == 0 {
		return ErrBackendAbsent
	}
	buckets := e.sched.popCurrent()
	for priority := 0; priority < priorityClasses; priority++ {
		for _, idx := range buckets[priority] {
			e.nodes[idx].pendingTick = false
			e.runTick(idx)
		}
	}
	e.sched.advance()
	return nil
}

// runTick executes the scheduled-tick behavior for idx.
func (e *Engine) runTick(idx NodeIndex) {
	switch e.nodes[idx].Type {
	case graph.NodeRepeater:
		e.tickRepeater(idx)
	case graph.NodeComparator:
		e.tickComparator(idx)
	case graph.NodeTorch, graph.NodeWallTorch:
		e.tickTorch(idx)
	case graph.NodeLamp:
		e.tickLamp(idx)
	case graph.NodeButton:
		e.tickButton(idx)
	}
}

// PendingTick is one tick still outstanding when the engine is torn down,
// reported at the granularity the voxel storage's ScheduleTick expects.
type PendingTick struct {
	Pos      cell.Pos
	Delay    uint8
	Priority cell.TickPriority
}

// Drain empties the scheduler and returns every still-pending tick as
// (pos, remaining delay, priority), for the driver to reissue through
// storage.ScheduleTick — spec.md §4.G's Reset behavior ("reissue any still
// pending tick entries ... Clear the ring"). Writing the node states
// themselves back to storage is Flush's job, not Drain's.
func (e *Engine) Drain() []PendingTick {
	entries := e.sched.drain()
	out := make([]PendingTick, 0, len(entries))
	for _, ent := range entries {
		if e.nodes[ent.idx].Synthetic {
			// A synthetic node (e.g. AnalogRepeaters' folded comparator)
			// has no backing voxel to reissue a tick against; it is
			// rebuilt fresh on the next Compile instead.
			continue
		}
		out = append(out, PendingTick{Pos: e.nodes[ent.idx].Pos, Delay: ent.delay, Priority: ent.priority})
	}
	for i := range e.nodes {
		e.nodes[i].pendingTick = false
	}
	return out
}

// LoadPendingTick seeds idx with an already-pending tick restored from
// storage at compile time (spec.md §4.H's initial_pending_ticks), bypassing
// the normal schedule() dedup guard since the engine has no prior state to
// guard against yet.
func (e *Engine) LoadPendingTick(idx NodeIndex, delay uint8, priority cell.TickPriority) {
	n := &e.nodes[idx]
	n.pendingTick = true
	e.sched.schedule(clampDelay(idx, delay), priority, idx)
}

// SetSource assigns a source node's (button/lever/pressure plate) output
// directly — the host-driven entry point analogous to ActivateButton /
// ToggleLever / SetPressurePlate in the naive simulator.
func (e *Engine) SetSource(idx NodeIndex, output uint8) {
	e.nodes[idx].Powered = output > 0
	e.SetNode(idx, output)
}

// Inspect returns a read-only snapshot of idx's current state for
// debugging/tooling (internal/debugsrv, CLI dumps). The second return value
// is false if idx is out of range, spec.md §7's InspectionMiss case.
func (e *Engine) Inspect(idx NodeIndex) (Node, bool) {
	if idx < 0 || int(idx) >= len(e.nodes) {
		return Node{}, false
	}
	n := e.nodes[idx]
	n.Outputs = append([]Link(nil), n.Outputs...)
	return n, true
}

// Flush writes every changed node's current decoded state back to storage,
// re-encoding it through the cell package's state-id codec, then clears
// each written node's changed flag. When ioOnly is set, only externally
// visible kinds (see ioKind) are written, matching spec.md §4.G's optional
// io_only restriction.
func (e *Engine) Flush(storage cell.Storage, ioOnly bool) error {
	if e == nil || len(e.nodes) == 0 {
		return ErrBackendAbsent
	}
	for i := range e.nodes {
		n := &e.nodes[i]
		if n.Synthetic {
			continue
		}
		if !n.changed {
			continue
		}
		if ioOnly && !ioKind(n.Type) {
			continue
		}
		storage.Set(n.Pos, decodeNode(storage, *n))
		n.changed = false
	}
	return nil
}

// FlushAll writes every node unconditionally, used by the driver's Reset
// teardown which must persist the whole world state regardless of the
// changed flag, per spec.md §4.G's Reset description.
func (e *Engine) FlushAll(storage cell.Storage) {
	for i := range e.nodes {
		n := &e.nodes[i]
		if n.Synthetic {
			n.changed = false
			continue
		}
		storage.Set(n.Pos, decodeNode(storage, *n))
		n.changed = false
	}
}

func decodeNode(storage cell.Storage, n Node) cell.Cell {
	switch n.Type {
	case graph.NodeRepeater:
		return cell.Cell{Kind: cell.Repeater, Powered: n.Powered, Locked: n.Locked, Facing: n.Facing, Delay: n.Delay}
	case graph.NodeComparator:
		return cell.Cell{Kind: cell.Comparator, Powered: n.Powered, Facing: n.Facing, Mode: n.Mode}
	case graph.NodeTorch:
		return cell.Cell{Kind: cell.Torch, Powered: n.Powered}
	case graph.NodeWallTorch:
		return cell.Cell{Kind: cell.WallTorch, Powered: n.Powered, Facing: n.Facing}
	case graph.NodeLamp:
		return cell.Cell{Kind: cell.Lamp, Powered: n.Powered}
	case graph.NodeTrapdoor:
		return cell.Cell{Kind: cell.Trapdoor, Powered: n.Powered}
	case graph.NodeButton:
		return cell.Cell{Kind: cell.Button, Powered: n.Powered}
	case graph.NodeLever:
		return cell.Cell{Kind: cell.Lever, Powered: n.Powered}
	case graph.NodePressurePlate:
		return cell.Cell{Kind: cell.PressurePlate, Powered: n.Powered}
	case graph.NodeWire:
		// Sides are not carried by the compiled Node; they are copied from
		// the wire cell currently in storage, so the writeback changes only
		// the wire's power level.
		c := cell.Cell{Kind: cell.Wire, Output: n.Output}
		if prev, ok := storage.Get(n.Pos); ok && prev.Kind == cell.Wire {
			c.Sides = prev.Sides
		}
		return c
	default:
		return cell.Cell{Kind: cell.Block15, Output: n.Output}
	}
}
