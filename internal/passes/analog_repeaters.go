package passes

import (
	"github.com/sarchlab/redpiler/internal/cell"
	"github.com/sarchlab/redpiler/internal/graph"
)

// AnalogRepeaters recognizes the "analog lever" idiom: a comparator whose
// 0..15 output is fanned out across fifteen parallel one-tick repeaters,
// each carrying a complementary pair of input/output weights that sum to
// 14, all converging back on the same downstream comparator. Together the
// fifteen paths reconstruct the exact analog value at the far end with no
// added delay; once recognized, the whole fan-out is redundant and is
// replaced with a single synthetic Compare-mode comparator chained
// source -> new -> end at zero weight, matching
// redpiler/passes/analog_repeaters.rs exactly (it inserts a new comparator
// node rather than a direct edge, preserving the one-tick delay the
// repeater fan itself contributed).
type AnalogRepeaters struct{}

func (AnalogRepeaters) Name() string { return "analog_repeaters" }

func (AnalogRepeaters) Run(g *graph.Graph) {
	for _, id := range g.AllNodeIDs() {
		n := g.Node(id)
		if n.Removed() || n.Type != graph.NodeComparator {
			continue
		}
		out := liveEdges(g, id, graph.Outgoing)
		if len(out) != 15 {
			continue
		}

		end, repeaters, ok := matchAnalogFanOut(g, id, out)
		if !ok {
			continue
		}

		for _, eid := range out {
			g.RemoveEdge(eid)
		}
		for _, r := range repeaters {
			for _, eid := range liveEdges(g, r, graph.Outgoing) {
				g.RemoveEdge(eid)
			}
			g.RemoveNode(r)
		}

		// Fold the fan into a single new Compare-mode comparator, cloning
		// the source comparator's state (it has no voxel of its own, so it
		// is marked Synthetic: excluded from position lookups and never
		// flushed back to storage).
		foldedState := n.State
		foldedState.Mode = cell.Compare
		foldedState.FacingDiode = false
		foldedState.HasFarInput = false
		folded := g.AddNode(graph.Node{
			Pos:       n.Pos,
			Type:      graph.NodeComparator,
			State:     foldedState,
			Synthetic: true,
		})
		g.AddEdge(id, folded, graph.LinkDefault, 0)
		g.AddEdge(folded, end, graph.LinkDefault, 0)
	}
}

// matchAnalogFanOut verifies the fifteen-repeater pattern and returns the
// shared downstream comparator and the fifteen repeater node ids to fold.
func matchAnalogFanOut(g *graph.Graph, src graph.NodeID, out []graph.EdgeID) (graph.NodeID, []graph.NodeID, bool) {
	var end graph.NodeID
	haveEnd := false
	seenSums := make(map[uint8]bool)
	repeaters := make([]graph.NodeID, 0, 15)

	for _, eid := range out {
		e := g.Edge(eid)
		rep := g.Node(e.Target)
		if rep.Removed() || rep.Type != graph.NodeRepeater || rep.State.Delay != 1 || rep.State.FacingDiode {
			return 0, nil, false
		}

		repIn := liveEdges(g, e.Target, graph.Incoming)
		repOut := liveEdges(g, e.Target, graph.Outgoing)
		if len(repIn) != 1 || len(repOut) != 1 || repIn[0] != eid {
			return 0, nil, false
		}

		outEdge := g.Edge(repOut[0])
		if haveEnd && outEdge.Target != end {
			return 0, nil, false
		}
		end = outEdge.Target
		haveEnd = true

		sum := e.Weight + outEdge.Weight
		if sum != 14 || seenSums[e.Weight] {
			return 0, nil, false
		}
		seenSums[e.Weight] = true
		repeaters = append(repeaters, e.Target)
	}

	if len(seenSums) != 15 {
		return 0, nil, false
	}
	return end, repeaters, true
}
