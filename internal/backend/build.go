package backend

import (
	"github.com/sarchlab/redpiler/internal/cell"
	"github.com/sarchlab/redpiler/internal/graph"
)

// Build compiles a (presumably already pass-optimized) graph.Graph into a
// dense Engine. Tombstoned nodes are skipped; callers should Compact g
// first so ids are dense, though Build tolerates holes either way.
func Build(g *graph.Graph) *Engine {
	remap := make(map[graph.NodeID]NodeIndex, g.NodeCount())
	e := &Engine{posIndex: make(map[cell.Pos]NodeIndex, g.NodeCount())}

	for _, id := range g.AllNodeIDs() {
		n := g.Node(id)
		if n.Removed() {
			continue
		}
		idx := NodeIndex(len(e.nodes))
		remap[id] = idx
		if !n.Synthetic {
			e.posIndex[n.Pos] = idx
		}
		e.nodes = append(e.nodes, Node{
			Pos:         n.Pos,
			Type:        n.Type,
			Output:      n.State.Output,
			Powered:     n.State.Powered,
			Locked:      n.State.Locked,
			Facing:      n.State.Facing,
			Delay:       n.State.Delay,
			Mode:        n.State.Mode,
			FacingDiode: n.State.FacingDiode,
			IsOutput:    n.IsOutput,
			Synthetic:   n.Synthetic,
			HasFarInput: n.State.HasFarInput,
			FarInput:    n.State.FarInput,
		})
	}

	for _, id := range g.AllNodeIDs() {
		n := g.Node(id)
		if n.Removed() {
			continue
		}
		srcIdx := remap[id]
		for _, eid := range g.EdgesDirected(id, graph.Outgoing) {
			edge := g.Edge(eid)
			dstIdx, ok := remap[edge.Target]
			if !ok {
				continue
			}
			e.nodes[srcIdx].Outputs = append(e.nodes[srcIdx].Outputs, Link{
				Target: dstIdx,
				Type:   edge.Type,
				Weight: edge.Weight,
			})
		}
	}

	for i := range e.nodes {
		src := &e.nodes[i]
		for _, link := range src.Outputs {
			level := subSat(src.Output, link.Weight)
			dst := &e.nodes[link.Target]
			if link.Type == graph.LinkSide {
				dst.sideHist.add(level)
			} else {
				dst.defaultHist.add(level)
			}
		}
	}

	return e
}
