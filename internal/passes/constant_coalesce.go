package passes

import "github.com/sarchlab/redpiler/internal/graph"

// ConstantCoalesce merges every Constant node sharing the same output
// strength into a single canonical node: constants are context-free (a
// redstone block is a redstone block no matter where it sits), so any two
// with equal value are interchangeable from every consumer's point of view.
// Grounded on redpiler/passes/constant_coalesce.rs; the reference pass
// scopes the merge to one weakly-connected component at a time, a chunking
// detail that only matters for how much of a large world gets walked in one
// pass — merging across the whole graph in one step is still semantically
// equivalent and simpler, see DESIGN.md.
type ConstantCoalesce struct{}

func (ConstantCoalesce) Name() string { return "constant_coalesce" }

func (ConstantCoalesce) Run(g *graph.Graph) {
	canonical := make(map[uint8]graph.NodeID)

	for _, id := range g.AllNodeIDs() {
		n := g.Node(id)
		if n.Removed() || n.Type != graph.NodeConstant {
			continue
		}
		if canon, ok := canonical[n.State.Output]; ok {
			rewireOutgoing(g, id, canon)
			g.RemoveNode(id)
		} else {
			canonical[n.State.Output] = id
		}
	}
}

// rewireOutgoing redirects every live outgoing edge of from to instead
// originate at to, preserving type and weight.
func rewireOutgoing(g *graph.Graph, from, to graph.NodeID) {
	for _, eid := range g.EdgesDirected(from, graph.Outgoing) {
		e := g.Edge(eid)
		g.RemoveEdge(eid)
		g.AddEdge(to, e.Target, e.Type, e.Weight)
	}
}
