package passes

import "github.com/sarchlab/redpiler/internal/graph"

// DedupLinks removes a redundant incoming edge when another edge from the
// same source, of the same link type, with a weight no greater, already
// reaches the same target: the larger-weight edge can never be the deciding
// one, since the smaller-weight edge always carries at least as much
// signal. Grounded on redpiler/passes/dedup_links.rs.
type DedupLinks struct{}

func (DedupLinks) Name() string { return "dedup_links" }

func (DedupLinks) Run(g *graph.Graph) {
	for _, id := range g.AllNodeIDs() {
		if g.Node(id).Removed() {
			continue
		}
		incoming := g.EdgesDirected(id, graph.Incoming)
		for _, eid := range incoming {
			if g.EdgeRemoved(eid) {
				continue
			}
			e := g.Edge(eid)
			for _, otherID := range incoming {
				if otherID == eid || g.EdgeRemoved(otherID) {
					continue
				}
				other := g.Edge(otherID)
				if other.Source == e.Source && other.Type == e.Type &&
					(other.Weight < e.Weight || (other.Weight == e.Weight && otherID < eid)) {
					g.RemoveEdge(eid)
					break
				}
			}
		}
	}
}
