// Package graph defines the compiler's intermediate representation: a
// directed multigraph of redstone components and the weighted links that
// carry signal strength between them. It is grounded on the reference
// redpiler's use of petgraph::StableGraph — a directed graph with tombstoned
// node/edge removal — simplified to the operations the pass manager and
// backend actually need.
package graph

import "github.com/sarchlab/redpiler/internal/cell"

// NodeType classifies what a graph node represents. Every component kind the
// naive simulator understands gets one, plus Constant for coalesced/folded
// sources and Wire for the (usually optimized away) case where a wire must
// remain a real node.
type NodeType int

const (
	NodeRepeater NodeType = iota
	NodeComparator
	NodeTorch
	NodeWallTorch
	NodeWire
	NodeConstant
	NodeButton
	NodeLever
	NodePressurePlate
	NodeLamp
	NodeTrapdoor
)

func (t NodeType) String() string {
	switch t {
	case NodeRepeater:
		return "Repeater"
	case NodeComparator:
		return "Comparator"
	case NodeTorch:
		return "Torch"
	case NodeWallTorch:
		return "WallTorch"
	case NodeWire:
		return "Wire"
	case NodeConstant:
		return "Constant"
	case NodeButton:
		return "Button"
	case NodeLever:
		return "Lever"
	case NodePressurePlate:
		return "PressurePlate"
	case NodeLamp:
		return "Lamp"
	case NodeTrapdoor:
		return "Trapdoor"
	default:
		return "NodeType(?)"
	}
}

// IsDiode reports whether t has directional input/output semantics.
func (t NodeType) IsDiode() bool {
	return t == NodeRepeater || t == NodeComparator
}

// State carries the decoded component attributes a node needs at compile
// time and at reset time, mirroring cell.Cell's component fields.
type State struct {
	Powered     bool
	Output      uint8 // constant value, or a comparator/repeater's initial output
	Facing      cell.Direction
	Delay       uint8
	Locked      bool
	Mode        cell.ComparatorMode
	FacingDiode bool // true if the block on the node's output side (opposite Facing) is itself a diode

	// HasFarInput/FarInput fold a comparator's distance-2 look-through
	// override (spec.md §4.E "Comparator-override detection") into a
	// compile-time constant: when the comparator's facing neighbor is a
	// solid, non-overriding cube, and the cell one further in the same
	// direction is a container override, that container's current value is
	// captured here instead of becoming a graph node of its own.
	HasFarInput bool
	FarInput    uint8
}

// LinkType distinguishes a comparator's default (rear) input from its two
// side inputs, the two cases the component logic treats differently.
type LinkType int

const (
	LinkDefault LinkType = iota
	LinkSide
)

func (t LinkType) String() string {
	if t == LinkSide {
		return "Side"
	}
	return "Default"
}

// Node is one compiled component.
type Node struct {
	Pos      cell.Pos
	Type     NodeType
	State    State
	IsOutput bool // has an externally visible effect (lamp, trapdoor, ...)
	// Synthetic marks a node fabricated by a pass rather than identified
	// from a real voxel (e.g. AnalogRepeaters' folded comparator). It
	// carries no real cell in storage: the backend must not index it by
	// position and must never write it back on Flush.
	Synthetic bool
	removed   bool
}

// Removed reports whether the node has been tombstoned by a pass. Tombstoned
// nodes keep their NodeID valid (so edge endpoints don't dangle) but carry
// no signal and are swept by Compact.
func (n Node) Removed() bool { return n.removed }

// NodeID indexes Graph.node. Stable across edge mutation; invalidated only
// by Compact.
type NodeID int

// EdgeID indexes Graph.edge. Stable until RemoveEdge tombstones it.
type EdgeID int

// Edge is one weighted, typed link between two nodes.
type Edge struct {
	Source, Target NodeID
	Type           LinkType
	Weight         uint8 // signal strength subtracted between source and target
	removed        bool
}

// EdgeDirection selects which adjacency a traversal follows.
type EdgeDirection int

const (
	Outgoing EdgeDirection = iota
	Incoming
)

// Graph is a directed multigraph: more than one edge may connect the same
// ordered pair of nodes (two links of the same type at different weights,
// before dedup_links keeps only the lightest, or a Default and a Side link
// from the same source, which dedup_links leaves in place).
type Graph struct {
	nodes []Node
	edges []Edge
	out   [][]EdgeID
	in    [][]EdgeID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddNode appends a node and returns its id.
func (g *Graph) AddNode(n Node) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return id
}

// Node returns a copy of the node at id.
func (g *Graph) Node(id NodeID) Node {
	return g.nodes[id]
}

// SetNode replaces the node at id.
func (g *Graph) SetNode(id NodeID, n Node) {
	g.nodes[id] = n
}

// RemoveNode tombstones a node without touching its edges; callers that
// want a dangling-free graph should remove its edges first, or rely on
// Compact, which drops every edge touching a tombstoned node.
func (g *Graph) RemoveNode(id NodeID) {
	n := g.nodes[id]
	n.removed = true
	g.nodes[id] = n
}

// NodeCount returns the number of node slots, including tombstoned ones.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// AddEdge appends a directed edge and indexes it on both endpoints.
func (g *Graph) AddEdge(src, dst NodeID, t LinkType, weight uint8) EdgeID {
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, Edge{Source: src, Target: dst, Type: t, Weight: weight})
	g.out[src] = append(g.out[src], id)
	g.in[dst] = append(g.in[dst], id)
	return id
}

// Edge returns a copy of the edge at id.
func (g *Graph) Edge(id EdgeID) Edge {
	return g.edges[id]
}

// EdgeRemoved reports whether id has been tombstoned.
func (g *Graph) EdgeRemoved(id EdgeID) bool {
	return g.edges[id].removed
}

// SetEdgeWeight updates the weight of an existing edge in place.
func (g *Graph) SetEdgeWeight(id EdgeID, weight uint8) {
	g.edges[id].Weight = weight
}

// RemoveEdge tombstones an edge; it is skipped by all traversal helpers but
// its id remains reserved.
func (g *Graph) RemoveEdge(id EdgeID) {
	g.edges[id].removed = true
}

// EdgesDirected returns the ids of all live edges incident to id in the
// given direction.
func (g *Graph) EdgesDirected(id NodeID, dir EdgeDirection) []EdgeID {
	var idx [][]EdgeID
	if dir == Outgoing {
		idx = g.out
	} else {
		idx = g.in
	}
	result := make([]EdgeID, 0, len(idx[id]))
	for _, eid := range idx[id] {
		if !g.edges[eid].removed {
			result = append(result, eid)
		}
	}
	return result
}

// Neighbors returns the other endpoint of every live edge incident to id in
// the given direction (may contain duplicates for a multi-edge pair).
func (g *Graph) Neighbors(id NodeID, dir EdgeDirection) []NodeID {
	edges := g.EdgesDirected(id, dir)
	result := make([]NodeID, len(edges))
	for i, eid := range edges {
		e := g.edges[eid]
		if dir == Outgoing {
			result[i] = e.Target
		} else {
			result[i] = e.Source
		}
	}
	return result
}

// AllNodeIDs returns every node id, including tombstoned ones; callers must
// check Removed() themselves if they care.
func (g *Graph) AllNodeIDs() []NodeID {
	ids := make([]NodeID, len(g.nodes))
	for i := range g.nodes {
		ids[i] = NodeID(i)
	}
	return ids
}

// Compact rebuilds the graph with all tombstoned nodes and edges physically
// removed and node/edge ids renumbered densely, returning the old->new node
// id mapping (tombstoned nodes map to -1). The pass Manager runs this after
// every pass so the execution backend never has to reason about holes.
func (g *Graph) Compact() map[NodeID]NodeID {
	remap := make(map[NodeID]NodeID, len(g.nodes))
	next := New()
	for old, n := range g.nodes {
		if n.removed {
			remap[NodeID(old)] = -1
			continue
		}
		remap[NodeID(old)] = next.AddNode(Node{Pos: n.Pos, Type: n.Type, State: n.State, IsOutput: n.IsOutput, Synthetic: n.Synthetic})
	}
	for _, e := range g.edges {
		if e.removed {
			continue
		}
		src, ok1 := remap[e.Source]
		dst, ok2 := remap[e.Target]
		if !ok1 || !ok2 || src == -1 || dst == -1 {
			continue
		}
		next.AddEdge(src, dst, e.Type, e.Weight)
	}
	*g = *next
	return remap
}
