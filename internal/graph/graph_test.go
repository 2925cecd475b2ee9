package graph_test

import (
	"testing"

	"github.com/sarchlab/redpiler/internal/graph"
)

func TestAddEdgeIndexesBothEndpoints(t *testing.T) {
	g := graph.New()
	a := g.AddNode(graph.Node{Type: graph.NodeLever})
	b := g.AddNode(graph.Node{Type: graph.NodeLamp})
	g.AddEdge(a, b, graph.LinkDefault, 1)

	out := g.EdgesDirected(a, graph.Outgoing)
	in := g.EdgesDirected(b, graph.Incoming)
	if len(out) != 1 || len(in) != 1 {
		t.Fatalf("expected one edge on each side, got out=%d in=%d", len(out), len(in))
	}
	if out[0] != in[0] {
		t.Fatalf("expected the same edge id from both endpoints, got %d and %d", out[0], in[0])
	}
}

func TestRemoveEdgeIsExcludedFromTraversal(t *testing.T) {
	g := graph.New()
	a := g.AddNode(graph.Node{Type: graph.NodeLever})
	b := g.AddNode(graph.Node{Type: graph.NodeLamp})
	eid := g.AddEdge(a, b, graph.LinkDefault, 1)

	g.RemoveEdge(eid)

	if len(g.EdgesDirected(a, graph.Outgoing)) != 0 {
		t.Errorf("expected no live outgoing edges after RemoveEdge")
	}
	if !g.EdgeRemoved(eid) {
		t.Errorf("expected EdgeRemoved to report true")
	}
}

func TestCompactDropsTombstonesAndDanglingEdges(t *testing.T) {
	g := graph.New()
	a := g.AddNode(graph.Node{Type: graph.NodeLever})
	b := g.AddNode(graph.Node{Type: graph.NodeWire})
	c := g.AddNode(graph.Node{Type: graph.NodeLamp, IsOutput: true})
	g.AddEdge(a, b, graph.LinkDefault, 0)
	g.AddEdge(b, c, graph.LinkDefault, 1)

	g.RemoveNode(b)
	remap := g.Compact()

	if g.NodeCount() != 2 {
		t.Fatalf("expected 2 surviving nodes after Compact, got %d", g.NodeCount())
	}
	if remap[b] != -1 {
		t.Errorf("expected tombstoned node to remap to -1, got %d", remap[b])
	}
	newA, ok := remap[a]
	if !ok || newA == -1 {
		t.Fatalf("expected a to survive Compact")
	}
	// the edges through b dangled and must not have survived.
	if len(g.EdgesDirected(newA, graph.Outgoing)) != 0 {
		t.Errorf("expected no surviving edges through a removed intermediate node")
	}
}

func TestNeighborsReturnsOtherEndpoint(t *testing.T) {
	g := graph.New()
	a := g.AddNode(graph.Node{Type: graph.NodeLever})
	b := g.AddNode(graph.Node{Type: graph.NodeLamp})
	g.AddEdge(a, b, graph.LinkDefault, 0)

	if ns := g.Neighbors(a, graph.Outgoing); len(ns) != 1 || ns[0] != b {
		t.Errorf("expected a's outgoing neighbor to be b, got %v", ns)
	}
	if ns := g.Neighbors(b, graph.Incoming); len(ns) != 1 || ns[0] != a {
		t.Errorf("expected b's incoming neighbor to be a, got %v", ns)
	}
}
