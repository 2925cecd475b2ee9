package builder

import (
	"github.com/sarchlab/redpiler/internal/cell"
	"github.com/sarchlab/redpiler/internal/graph"
)

// Build scans bounds in storage, identifies every compilable component as a
// graph node, and wires up the signal edges between them. The returned
// graph is unoptimized raw IR: running it through the pass manager
// (internal/passes) is expected before handing it to the execution backend.
func Build(storage cell.Storage, opts Options) *graph.Graph {
	g := graph.New()
	nodeAt := make(map[cell.Pos]graph.NodeID)

	opts.Bounds.ForEach(func(pos cell.Pos) {
		c, ok := storage.Get(pos)
		if !ok {
			return
		}
		if c.Kind == cell.Terrain {
			if be, ok := storage.GetBlockEntity(pos); ok {
				if container, ok := be.(cell.ContainerEntity); ok && container.ComputeOverride() > 0 {
					nodeAt[pos] = g.AddNode(containerNode(pos, container))
				}
			}
			return
		}
		n, ok := identifyNode(storage, pos, c, opts)
		if !ok {
			return
		}
		nodeAt[pos] = g.AddNode(n)
	})

	resolveFacingDiode(g, nodeAt, storage)
	connectEdges(g, nodeAt, storage, opts)
	return g
}

// resolveFacingDiode fills in State.FacingDiode for every repeater and
// comparator, mirroring identify_nodes.rs's check of whether the block
// immediately behind a diode's facing is itself a diode (used to pick
// PriorityHighest scheduling).
func resolveFacingDiode(g *graph.Graph, nodeAt map[cell.Pos]graph.NodeID, storage cell.Storage) {
	for pos, id := range nodeAt {
		n := g.Node(id)
		if !n.Type.IsDiode() {
			continue
		}
		behind := n.State.Facing.Opposite().Face().Offset(pos)
		if c, ok := storage.Get(behind); ok {
			n.State.FacingDiode = c.Kind.IsDiode()
		}
		g.SetNode(id, n)
	}
}

// connectEdges is the link search phase: for every node that consumes
// power, find its real sources (walking through wire networks when
// opts.IgnoreWires elides wire nodes, or through direct wire-to-wire
// adjacency otherwise) and add the corresponding edges.
func connectEdges(g *graph.Graph, nodeAt map[cell.Pos]graph.NodeID, storage cell.Storage, opts Options) {
	for pos, id := range nodeAt {
		n := g.Node(id)
		switch n.Type {
		case graph.NodeRepeater, graph.NodeComparator:
			connectDiodeInputs(g, nodeAt, storage, opts, pos, id, n)
		case graph.NodeTorch, graph.NodeWallTorch:
			connectTorchInput(g, nodeAt, storage, opts, pos, id, n)
		case graph.NodeLamp, graph.NodeTrapdoor:
			connectOutputInputs(g, nodeAt, storage, opts, pos, id)
		case graph.NodeWire:
			connectWireAdjacency(g, nodeAt, storage, pos, id)
		}
	}
}

// addSourceEdge links src -> dst, preferring an already-identified node at
// src's position; if none exists (e.g. link search found a live position
// that for some reason wasn't identified) the edge is skipped rather than
// fabricating a node.
func addSourceEdge(g *graph.Graph, nodeAt map[cell.Pos]graph.NodeID, srcPos cell.Pos, dst graph.NodeID, t graph.LinkType, weight uint8) {
	srcID, ok := nodeAt[srcPos]
	if !ok {
		return
	}
	g.AddEdge(srcID, dst, t, weight)
}

// hasContainerEntity mirrors naive's hasComparatorOverride: true whenever
// pos carries a container block entity at all, regardless of its computed
// value (an empty chest still "has" an override, it's just worth 0).
func hasContainerEntity(storage cell.Storage, pos cell.Pos) bool {
	be, ok := storage.GetBlockEntity(pos)
	if !ok {
		return false
	}
	_, ok = be.(cell.ContainerEntity)
	return ok
}

func connectDiodeInputs(g *graph.Graph, nodeAt map[cell.Pos]graph.NodeID, storage cell.Storage, opts Options, pos cell.Pos, id graph.NodeID, n graph.Node) {
	facing := n.State.Facing

	inputPos, inputCell, ok := directNeighbor(storage, pos, facing)
	if ok {
		switch {
		case inputCell.Kind == cell.Wire && opts.IgnoreWires:
			for _, src := range wireSources(storage, inputPos) {
				addSourceEdge(g, nodeAt, src.pos, id, graph.LinkDefault, src.distance)
			}
		case inputCell.Kind == cell.Wire && !opts.IgnoreWires:
			addSourceEdge(g, nodeAt, inputPos, id, graph.LinkDefault, 0)
		default:
			addSourceEdge(g, nodeAt, inputPos, id, graph.LinkDefault, 0)
		}

		if n.Type == graph.NodeComparator && inputCell.Kind != cell.Wire &&
			inputCell.Solid && !hasContainerEntity(storage, inputPos) {
			farPos := facing.Face().Offset(inputPos)
			if be, ok := storage.GetBlockEntity(farPos); ok {
				if container, ok := be.(cell.ContainerEntity); ok {
					n.State.HasFarInput = true
					n.State.FarInput = container.ComputeOverride()
					g.SetNode(id, n)
				}
			}
		}
	}

	for _, side := range [2]cell.Direction{facing.Rotate(), facing.RotateCCW()} {
		sidePos, sideCell, ok := directNeighbor(storage, pos, side)
		if !ok {
			continue
		}
		if sideCell.Kind.IsDiode() ||
			(n.Type == graph.NodeComparator && (sideCell.Kind == cell.Wire || sideCell.Kind == cell.Block15)) {
			addSourceEdge(g, nodeAt, sidePos, id, graph.LinkSide, 0)
		}
	}
}

func connectTorchInput(g *graph.Graph, nodeAt map[cell.Pos]graph.NodeID, storage cell.Storage, opts Options, pos cell.Pos, id graph.NodeID, n graph.Node) {
	attach := cell.Down.Offset(pos)
	if self, ok := storage.Get(pos); ok && self.Kind == cell.WallTorch {
		attach = n.State.Facing.Opposite().Face().Offset(pos)
	}
	c, ok := storage.Get(attach)
	if !ok {
		return
	}
	if c.Kind == cell.Wire && opts.IgnoreWires {
		for _, src := range wireSources(storage, attach) {
			addSourceEdge(g, nodeAt, src.pos, id, graph.LinkDefault, src.distance)
		}
		return
	}
	addSourceEdge(g, nodeAt, attach, id, graph.LinkDefault, 0)
}

func connectOutputInputs(g *graph.Graph, nodeAt map[cell.Pos]graph.NodeID, storage cell.Storage, opts Options, pos cell.Pos, id graph.NodeID) {
	for _, f := range cell.AllFaces {
		np := f.Offset(pos)
		c, ok := storage.Get(np)
		if !ok {
			continue
		}
		if c.Kind == cell.Wire && opts.IgnoreWires {
			for _, src := range wireSources(storage, np) {
				addSourceEdge(g, nodeAt, src.pos, id, graph.LinkDefault, src.distance)
			}
			continue
		}
		addSourceEdge(g, nodeAt, np, id, graph.LinkDefault, 0)
	}
}

// connectWireAdjacency links a live Wire node to each adjacent wire it
// electrically connects to (weight 1, one signal strength of decay), used
// only when wires are materialized as real nodes (opts.IgnoreWires false).
func connectWireAdjacency(g *graph.Graph, nodeAt map[cell.Pos]graph.NodeID, storage cell.Storage, pos cell.Pos, id graph.NodeID) {
	for _, dir := range [4]cell.Direction{cell.DirNorth, cell.DirEast, cell.DirSouth, cell.DirWest} {
		if wireSide(storage, pos, dir) == cell.SideNone {
			continue
		}
		np := dir.Face().Offset(pos)
		neighbor, ok := storage.Get(np)
		if !ok {
			continue
		}
		if neighbor.Kind == cell.Wire {
			addSourceEdge(g, nodeAt, np, id, graph.LinkDefault, 1)
		} else if canFeedWire(neighbor, dir) {
			addSourceEdge(g, nodeAt, np, id, graph.LinkDefault, 0)
		}
	}
}
