package passes_test

import (
	"testing"

	"github.com/sarchlab/redpiler/internal/cell"
	"github.com/sarchlab/redpiler/internal/graph"
	"github.com/sarchlab/redpiler/internal/passes"
)

func TestDefaultGatesOptimizeOnlyPasses(t *testing.T) {
	mandatory := passes.Default(false)
	if len(mandatory) != 3 {
		t.Fatalf("expected 3 mandatory passes when optimize=false, got %d", len(mandatory))
	}
	for _, p := range mandatory {
		switch p.Name() {
		case "constant_coalesce", "unreachable_output", "coalesce", "analog_repeaters":
			t.Errorf("pass %q should be gated out when optimize=false", p.Name())
		}
	}

	full := passes.Default(true)
	if len(full) != 7 {
		t.Fatalf("expected all 7 passes when optimize=true, got %d", len(full))
	}
}

func TestClampWeightsDropsSaturatedEdges(t *testing.T) {
	g := graph.New()
	a := g.AddNode(graph.Node{Type: graph.NodeLever})
	b := g.AddNode(graph.Node{Type: graph.NodeLamp, IsOutput: true})
	live := g.AddEdge(a, b, graph.LinkDefault, 14)
	dead := g.AddEdge(a, b, graph.LinkDefault, 15)

	passes.ClampWeights{}.Run(g)

	if g.EdgeRemoved(live) {
		t.Errorf("expected weight-14 edge to survive")
	}
	if !g.EdgeRemoved(dead) {
		t.Errorf("expected weight-15 edge to be dropped")
	}
}

func TestDedupLinksKeepsOnlyTheLightestDuplicate(t *testing.T) {
	g := graph.New()
	src := g.AddNode(graph.Node{Type: graph.NodeConstant})
	dst := g.AddNode(graph.Node{Type: graph.NodeLamp, IsOutput: true})
	light := g.AddEdge(src, dst, graph.LinkDefault, 2)
	heavy := g.AddEdge(src, dst, graph.LinkDefault, 5)

	passes.DedupLinks{}.Run(g)

	if g.EdgeRemoved(light) {
		t.Errorf("expected the lighter duplicate edge to survive")
	}
	if !g.EdgeRemoved(heavy) {
		t.Errorf("expected the heavier duplicate edge to be removed")
	}
}

func TestConstantCoalesceMergesEqualValuedConstants(t *testing.T) {
	g := graph.New()
	c1 := g.AddNode(graph.Node{Type: graph.NodeConstant, State: graph.State{Output: 15}})
	c2 := g.AddNode(graph.Node{Type: graph.NodeConstant, State: graph.State{Output: 15}})
	lamp := g.AddNode(graph.Node{Type: graph.NodeLamp, IsOutput: true})
	g.AddEdge(c1, lamp, graph.LinkDefault, 0)
	g.AddEdge(c2, lamp, graph.LinkDefault, 0)

	passes.ConstantCoalesce{}.Run(g)
	g.Compact()

	live := 0
	for _, id := range g.AllNodeIDs() {
		if !g.Node(id).Removed() && g.Node(id).Type == graph.NodeConstant {
			live++
		}
	}
	if live != 1 {
		t.Fatalf("expected exactly 1 surviving constant node, got %d", live)
	}
}

func TestUnreachableOutputTrimsEdgesBeyondSubtractMax(t *testing.T) {
	g := graph.New()
	side := g.AddNode(graph.Node{Type: graph.NodeConstant, State: graph.State{Output: 10}})
	comp := g.AddNode(graph.Node{Type: graph.NodeComparator, State: graph.State{Mode: cell.Subtract}})
	downA := g.AddNode(graph.Node{Type: graph.NodeLamp, IsOutput: true})
	downB := g.AddNode(graph.Node{Type: graph.NodeLamp, IsOutput: true})

	g.AddEdge(side, comp, graph.LinkSide, 0)
	// max output is 15-10 = 5: an edge decaying by 5 or more can never carry signal.
	reachable := g.AddEdge(comp, downA, graph.LinkDefault, 4)
	unreachable := g.AddEdge(comp, downB, graph.LinkDefault, 5)

	passes.UnreachableOutput{}.Run(g)

	if g.EdgeRemoved(reachable) {
		t.Errorf("expected weight-4 edge (below the max output) to survive")
	}
	if !g.EdgeRemoved(unreachable) {
		t.Errorf("expected weight-5 edge (at the max output) to be trimmed")
	}
}

func TestCoalesceFoldsSingleInputChain(t *testing.T) {
	g := graph.New()
	a := g.AddNode(graph.Node{Type: graph.NodeConstant})
	b := g.AddNode(graph.Node{Type: graph.NodeWire})
	c := g.AddNode(graph.Node{Type: graph.NodeLamp, IsOutput: true})
	g.AddEdge(a, b, graph.LinkDefault, 2)
	g.AddEdge(b, c, graph.LinkDefault, 3)

	passes.Coalesce{}.Run(g)
	g.Compact()

	var survivingEdgeWeight uint8
	found := false
	for _, id := range g.AllNodeIDs() {
		if g.Node(id).Removed() {
			continue
		}
		for _, eid := range g.EdgesDirected(id, graph.Outgoing) {
			survivingEdgeWeight = g.Edge(eid).Weight
			found = true
		}
	}
	if !found {
		t.Fatalf("expected one surviving edge after folding the chain")
	}
	if survivingEdgeWeight != 5 {
		t.Errorf("expected the folded edge to carry the summed weight 2+3=5, got %d", survivingEdgeWeight)
	}
	if g.NodeCount() != 2 {
		t.Errorf("expected the intermediate wire node to be compacted away, got %d nodes", g.NodeCount())
	}
}

func TestAnalogRepeatersFoldsFifteenWayFanOut(t *testing.T) {
	g := graph.New()
	src := g.AddNode(graph.Node{Type: graph.NodeComparator})
	end := g.AddNode(graph.Node{Type: graph.NodeComparator, IsOutput: true})

	for w := uint8(0); w < 15; w++ {
		rep := g.AddNode(graph.Node{Type: graph.NodeRepeater, State: graph.State{Delay: 1}})
		g.AddEdge(src, rep, graph.LinkDefault, w)
		g.AddEdge(rep, end, graph.LinkDefault, 14-w)
	}

	passes.AnalogRepeaters{}.Run(g)
	g.Compact()

	if g.NodeCount() != 3 {
		t.Fatalf("expected src, end and one folded comparator to survive folding, got %d nodes", g.NodeCount())
	}
	out := g.EdgesDirected(0, graph.Outgoing)
	if len(out) != 1 {
		t.Fatalf("expected src to carry a single edge into the folded comparator, got %d", len(out))
	}
	folded := g.Edge(out[0]).Target
	if g.Edge(out[0]).Weight != 0 {
		t.Errorf("expected the edge into the folded comparator to carry weight 0, got %d", g.Edge(out[0]).Weight)
	}
	if g.Node(folded).Type != graph.NodeComparator || g.Node(folded).State.Mode != cell.Compare {
		t.Fatalf("expected the folded node to be a Compare-mode comparator, got %+v", g.Node(folded))
	}
	if !g.Node(folded).Synthetic {
		t.Errorf("expected the folded comparator to be marked Synthetic")
	}
	foldedOut := g.EdgesDirected(folded, graph.Outgoing)
	if len(foldedOut) != 1 {
		t.Fatalf("expected the folded comparator to carry a single edge to end, got %d", len(foldedOut))
	}
	if g.Edge(foldedOut[0]).Target != end {
		t.Errorf("expected the folded comparator's edge to reach end, got node %d", g.Edge(foldedOut[0]).Target)
	}
	if g.Edge(foldedOut[0]).Weight != 0 {
		t.Errorf("expected the edge out of the folded comparator to carry weight 0, got %d", g.Edge(foldedOut[0]).Weight)
	}
}

func TestAnalogRepeatersLeavesMismatchedFanOutAlone(t *testing.T) {
	g := graph.New()
	src := g.AddNode(graph.Node{Type: graph.NodeComparator})
	end := g.AddNode(graph.Node{Type: graph.NodeComparator, IsOutput: true})

	for w := uint8(0); w < 15; w++ {
		rep := g.AddNode(graph.Node{Type: graph.NodeRepeater, State: graph.State{Delay: 2}}) // wrong delay breaks the match
		g.AddEdge(src, rep, graph.LinkDefault, w)
		g.AddEdge(rep, end, graph.LinkDefault, 14-w)
	}

	passes.AnalogRepeaters{}.Run(g)
	g.Compact()

	if g.NodeCount() != 17 {
		t.Fatalf("expected the non-matching fan-out to be left untouched, got %d nodes", g.NodeCount())
	}
}

func TestPruneOrphansDropsComponentsThatNeverReachAnOutput(t *testing.T) {
	g := graph.New()
	dead := g.AddNode(graph.Node{Type: graph.NodeLever})
	deadLamp := g.AddNode(graph.Node{Type: graph.NodeWire})
	g.AddEdge(dead, deadLamp, graph.LinkDefault, 0)

	live := g.AddNode(graph.Node{Type: graph.NodeLever})
	output := g.AddNode(graph.Node{Type: graph.NodeLamp, IsOutput: true})
	g.AddEdge(live, output, graph.LinkDefault, 0)

	passes.PruneOrphans{}.Run(g)
	g.Compact()

	if g.NodeCount() != 2 {
		t.Fatalf("expected only the live -> output component to survive, got %d nodes", g.NodeCount())
	}
}
