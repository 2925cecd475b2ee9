package passes

import "github.com/sarchlab/redpiler/internal/graph"

// ClampWeights drops any link whose weight has decayed to 15 or more: a
// redstone signal that has lost all 15 strength levels along the way can
// never contribute, so the edge is dead weight. Grounded on
// redpiler/passes/clamp_weights.rs; this pass is mandatory, not an
// optimize-only pass, since a correctly-decayed weight of 15+ is simply
// wrong to keep.
type ClampWeights struct{}

func (ClampWeights) Name() string { return "clamp_weights" }

func (ClampWeights) Run(g *graph.Graph) {
	for _, id := range g.AllNodeIDs() {
		if g.Node(id).Removed() {
			continue
		}
		for _, eid := range g.EdgesDirected(id, graph.Incoming) {
			if g.Edge(eid).Weight >= 15 {
				g.RemoveEdge(eid)
			}
		}
	}
}
