package passes

import "github.com/sarchlab/redpiler/internal/graph"

// PruneOrphans removes every node that cannot reach an output node (a lamp,
// trapdoor, or anything else with IsOutput set): a component whose signal
// never has any externally visible effect contributes nothing to the
// compiled simulation. It walks backwards from every output node following
// Incoming edges, and drops anything never visited. Grounded on
// redpiler/passes/prune_orphans.rs.
type PruneOrphans struct{}

func (PruneOrphans) Name() string { return "prune_orphans" }

func (PruneOrphans) Run(g *graph.Graph) {
	reachable := make(map[graph.NodeID]bool)
	var stack []graph.NodeID

	for _, id := range g.AllNodeIDs() {
		n := g.Node(id)
		if !n.Removed() && n.IsOutput {
			stack = append(stack, id)
			reachable[id] = true
		}
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, pred := range g.Neighbors(id, graph.Incoming) {
			if !reachable[pred] {
				reachable[pred] = true
				stack = append(stack, pred)
			}
		}
	}

	for _, id := range g.AllNodeIDs() {
		n := g.Node(id)
		if n.Removed() {
			continue
		}
		if !reachable[id] {
			g.RemoveNode(id)
		}
	}
}
