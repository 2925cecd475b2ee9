// Package backend is the compiled execution engine: a dense array of nodes
// and a 16-slot, 4-priority ring scheduler, operating purely on values
// carried over from the compiled graph.Graph — no further voxel storage
// reads until Flush. Grounded on spec.md §4.G; the data-oriented node
// layout (histograms of incoming power levels instead of per-edge rescans)
// is the idiomatic Go rendering of the same "don't walk the whole graph
// every tick" goal the reference dense-array/ring-buffer design states.
package backend

import (
	"github.com/sarchlab/redpiler/internal/cell"
	"github.com/sarchlab/redpiler/internal/graph"
)

// NodeIndex indexes Engine.nodes.
type NodeIndex int32

// Link is a compiled outgoing edge: by the time the backend is built, the
// target is a flat array index rather than a graph.NodeID.
type Link struct {
	Target NodeIndex
	Type   graph.LinkType
	Weight uint8
}

// histogram counts, at each of the 16 possible power levels, how many live
// incoming edges currently deliver exactly that level — the trick that lets
// SetNode find a node's new max input without rescanning every edge.
type histogram [16]uint16

func (h *histogram) add(level uint8)    { h[level]++ }
func (h *histogram) remove(level uint8) { h[level]-- }

func (h *histogram) max() uint8 {
	for lvl := 15; lvl >= 0; lvl-- {
		if h[lvl] > 0 {
			return uint8(lvl)
		}
	}
	return 0
}

// Node is one dense execution record. Only the fields relevant to Type are
// meaningful, matching cell.Cell's own "decoded union" shape.
type Node struct {
	Pos      cell.Pos
	Type     graph.NodeType
	Output   uint8
	Powered  bool
	Locked   bool
	Facing   cell.Direction
	Delay    uint8
	Mode     cell.ComparatorMode
	FacingDiode bool
	IsOutput bool
	// Synthetic marks a node with no backing voxel (see graph.Node.Synthetic):
	// excluded from the position index and never written back on Flush.
	Synthetic bool

	// HasFarInput/FarInput carry a comparator's folded distance-2
	// look-through override; see graph.State's fields of the same name.
	HasFarInput bool
	FarInput    uint8

	defaultHist histogram
	sideHist    histogram

	Outputs []Link

	pendingTick bool
	changed     bool
}

// ioKind reports whether t is externally visible enough that Flush's
// io_only mode should write it back: anything a player or another system
// can directly observe without walking the dataflow graph. Comparators are
// written in this mode; repeaters, torches and wires are not.
func ioKind(t graph.NodeType) bool {
	switch t {
	case graph.NodeLamp, graph.NodeTrapdoor, graph.NodeButton, graph.NodeLever,
		graph.NodePressurePlate, graph.NodeComparator:
		return true
	default:
		return false
	}
}

func (n *Node) defaultMax() uint8 { return n.defaultHist.max() }
func (n *Node) sideMax() uint8    { return n.sideHist.max() }

func subSat(a, b uint8) uint8 {
	if a <= b {
		return 0
	}
	return a - b
}

func addSat15(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 15 {
		return 15
	}
	return uint8(sum)
}
