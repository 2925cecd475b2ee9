package passes

import "github.com/sarchlab/redpiler/internal/graph"

// Coalesce folds a node with exactly one incoming Default-typed edge into
// its single predecessor, summing the two edge weights into one: a run of
// such nodes (the common case is a materialized wire chain) is functionally
// identical to one edge carrying the cumulative decay. Comparators and
// output nodes are never folding targets — a comparator's behavior depends
// on more than a single pass-through input, and output nodes must keep their
// own identity for inspection. Grounded on redpiler/passes/coalesce.rs.
type Coalesce struct{}

func (Coalesce) Name() string { return "coalesce" }

func (Coalesce) Run(g *graph.Graph) {
	changed := true
	for changed {
		changed = false
		for _, id := range g.AllNodeIDs() {
			n := g.Node(id)
			if n.Removed() || n.Type == graph.NodeComparator || n.IsOutput {
				continue
			}
			incoming := liveEdges(g, id, graph.Incoming)
			if len(incoming) != 1 {
				continue
			}
			inEdge := g.Edge(incoming[0])
			if inEdge.Type != graph.LinkDefault {
				continue
			}
			pred := g.Node(inEdge.Source)
			if pred.Removed() || pred.Type == graph.NodeComparator {
				continue
			}

			for _, outID := range liveEdges(g, id, graph.Outgoing) {
				out := g.Edge(outID)
				g.RemoveEdge(outID)
				g.AddEdge(inEdge.Source, out.Target, out.Type, addSat15(inEdge.Weight, out.Weight))
			}
			g.RemoveEdge(incoming[0])
			g.RemoveNode(id)
			changed = true
		}
	}
}

func liveEdges(g *graph.Graph, id graph.NodeID, dir graph.EdgeDirection) []graph.EdgeID {
	return g.EdgesDirected(id, dir)
}

func addSat15(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 15 {
		return 15
	}
	return uint8(sum)
}
