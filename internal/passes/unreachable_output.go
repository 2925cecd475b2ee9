package passes

import "github.com/sarchlab/redpiler/internal/cell"
import "github.com/sarchlab/redpiler/internal/graph"

// UnreachableOutput trims outgoing edges that a Subtract-mode comparator can
// provably never power, when its only side input is a constant: the
// comparator's maximum possible output is 15 minus that constant, so any
// outgoing edge whose own weight already decays at least that much can
// never carry a signal. Grounded on redpiler/passes/unreachable_output.rs.
type UnreachableOutput struct{}

func (UnreachableOutput) Name() string { return "unreachable_output" }

func (UnreachableOutput) Run(g *graph.Graph) {
	for _, id := range g.AllNodeIDs() {
		n := g.Node(id)
		if n.Removed() || n.Type != graph.NodeComparator || n.State.Mode != cell.Subtract {
			continue
		}

		var sideConstant *uint8
		sideCount := 0
		for _, eid := range g.EdgesDirected(id, graph.Incoming) {
			e := g.Edge(eid)
			if e.Type != graph.LinkSide {
				continue
			}
			sideCount++
			src := g.Node(e.Source)
			if src.Type == graph.NodeConstant {
				v := src.State.Output
				sideConstant = &v
			}
		}
		if sideCount != 1 || sideConstant == nil {
			continue
		}

		maxOutput := uint8(15)
		if *sideConstant < 15 {
			maxOutput = 15 - *sideConstant
		} else {
			maxOutput = 0
		}

		for _, eid := range g.EdgesDirected(id, graph.Outgoing) {
			if g.Edge(eid).Weight >= maxOutput {
				g.RemoveEdge(eid)
			}
		}
	}
}
