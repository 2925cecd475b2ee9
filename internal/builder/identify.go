package builder

import (
	"github.com/sarchlab/redpiler/internal/cell"
	"github.com/sarchlab/redpiler/internal/graph"
)

// Options configures a compile pass over a region.
type Options struct {
	Bounds Bounds
	// IgnoreWires skips creating Wire nodes entirely; link search still
	// walks through wire networks to find their real sources, it just never
	// materializes the wires themselves as graph nodes. This is the normal
	// production setting (matches identify_nodes.rs's `ignore_wires`
	// optimize flag); the debug/"parity" path keeps wires as nodes so the
	// graph can be inspected block-for-block against the naive simulator.
	IgnoreWires bool
}

// identifyNode maps a decoded cell to a graph node, or reports ok=false for
// positions that hold no compilable component (terrain, or a wire being
// skipped under IgnoreWires). facingDiode is resolved by the caller once all
// nodes exist, since it requires a second storage lookup.
//
// Every source kind seeds State.Output from its already-settled world state
// (Powered for binary components, the comparator's stored output_strength
// entity for comparators) rather than leaving it zero: backend.Build seeds
// every downstream histogram directly from each node's initial Output, so a
// torch that is lit, or a lever already held on, at compile time must
// contribute its power immediately — matching the naive simulator's settled
// state instead of requiring some later event to re-tick it into place.
func identifyNode(storage cell.Storage, pos cell.Pos, c cell.Cell, opts Options) (graph.Node, bool) {
	switch c.Kind {
	case cell.Repeater:
		return graph.Node{
			Pos:  pos,
			Type: graph.NodeRepeater,
			State: graph.State{
				Powered: c.Powered,
				Facing:  c.Facing,
				Delay:   c.Delay,
				Locked:  c.Locked,
				Output:  poweredOutput(c.Powered),
			},
		}, true

	case cell.Comparator:
		return graph.Node{
			Pos:  pos,
			Type: graph.NodeComparator,
			State: graph.State{
				Powered: c.Powered,
				Facing:  c.Facing,
				Mode:    c.Mode,
				Output:  comparatorStoredOutput(storage, pos),
			},
			IsOutput: false,
		}, true

	case cell.Torch:
		return graph.Node{
			Pos:   pos,
			Type:  graph.NodeTorch,
			State: graph.State{Powered: c.Powered, Output: poweredOutput(c.Powered)},
		}, true

	case cell.WallTorch:
		return graph.Node{
			Pos:   pos,
			Type:  graph.NodeWallTorch,
			State: graph.State{Powered: c.Powered, Facing: c.Facing, Output: poweredOutput(c.Powered)},
		}, true

	case cell.Wire:
		if opts.IgnoreWires {
			return graph.Node{}, false
		}
		return graph.Node{
			Pos:   pos,
			Type:  graph.NodeWire,
			State: graph.State{Output: c.Output},
		}, true

	case cell.Button:
		return graph.Node{Pos: pos, Type: graph.NodeButton, State: graph.State{Powered: c.Powered, Output: poweredOutput(c.Powered)}, IsOutput: true}, true

	case cell.Lever:
		return graph.Node{Pos: pos, Type: graph.NodeLever, State: graph.State{Powered: c.Powered, Output: poweredOutput(c.Powered)}, IsOutput: true}, true

	case cell.PressurePlate:
		return graph.Node{Pos: pos, Type: graph.NodePressurePlate, State: graph.State{Powered: c.Powered, Output: poweredOutput(c.Powered)}, IsOutput: true}, true

	case cell.Lamp:
		return graph.Node{Pos: pos, Type: graph.NodeLamp, State: graph.State{Powered: c.Powered, Output: poweredOutput(c.Powered)}, IsOutput: true}, true

	case cell.Trapdoor:
		return graph.Node{Pos: pos, Type: graph.NodeTrapdoor, State: graph.State{Powered: c.Powered, Output: poweredOutput(c.Powered)}, IsOutput: true}, true

	case cell.Block15:
		return graph.Node{Pos: pos, Type: graph.NodeConstant, State: graph.State{Output: 15}}, true

	case cell.ContainerOverride:
		return graph.Node{Pos: pos, Type: graph.NodeConstant, State: graph.State{Output: c.Output}}, true

	default: // Terrain and anything else carries no signal of its own.
		return graph.Node{}, false
	}
}

// poweredOutput maps a binary component's Powered flag to the 0/15 signal
// strength it contributes as a source: levers, buttons, torches, plates,
// lamps and trapdoors are all-or-nothing emitters in the reference rules,
// never an intermediate strength.
func poweredOutput(powered bool) uint8 {
	if powered {
		return 15
	}
	return 0
}

// comparatorStoredOutput reads a comparator's last computed output_strength
// from its block entity, recovering with 0 (spec.md §7's MissingBlockEntity
// default) if the entity is absent or of the wrong type.
func comparatorStoredOutput(storage cell.Storage, pos cell.Pos) uint8 {
	be, ok := storage.GetBlockEntity(pos)
	if !ok {
		return 0
	}
	comp, ok := be.(cell.ComparatorEntity)
	if !ok {
		return 0
	}
	return comp.OutputStrength
}

// containerNode folds a container block entity's derived signal into a
// Constant node at compile time, mirroring identify_nodes.rs's treatment of
// any block with has_comparator_override: the inventory is not live
// re-simulated by the compiled graph, only its value at compile time.
func containerNode(pos cell.Pos, be cell.ContainerEntity) graph.Node {
	return graph.Node{Pos: pos, Type: graph.NodeConstant, State: graph.State{Output: be.ComputeOverride()}}
}
