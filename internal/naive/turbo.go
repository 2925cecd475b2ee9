package naive

import "github.com/sarchlab/redpiler/internal/cell"

// turbo implements "redstone wire turbo", the breadth-first wire flood that
// propagates a power change outward without recomputing every touched
// block's full neighborhood from scratch more than once. It is grounded
// directly on redstone/wire/turbo.rs, credited there to theosib's
// accelerator (see https://bugs.mojang.com/browse/MC-81098). The algorithm,
// its 24-position neighbor layout and its four REORDING permutation tables
// are reproduced verbatim; only the bookkeeping differs, since Go has no
// need for turbo.rs's cached-state indirection (this package always reads
// the live Storage).

type turboNodeID int

type turboNode struct {
	pos       cell.Pos
	visited   bool
	xbias     int32
	zbias     int32
	layer     uint32
	neighbors []turboNodeID // oriented 24-neighbor list, nil until identified
}

type turbo struct {
	sim    *Sim
	nodes  []turboNode
	cache  map[cell.Pos]turboNodeID
	queue  [3][]turboNodeID
	layer  uint32
}

// Internal cardinal numbering used only to index REORDING; unrelated to
// cell.Direction's ordering.
const (
	headingNorth = 0
	headingEast  = 1
	headingSouth = 2
	headingWest  = 3
)

// computeAllNeighbors mirrors RedstoneWireTurbo::compute_all_neighbors: the
// six face neighbors followed by 18 second-ring neighbors, in a fixed order
// that REORDING depends on.
func computeAllNeighbors(pos cell.Pos) [24]cell.Pos {
	x, y, z := pos.X, pos.Y, pos.Z
	return [24]cell.Pos{
		{x - 1, y, z}, {x + 1, y, z}, {x, y - 1, z}, {x, y + 1, z}, {x, y, z - 1}, {x, y, z + 1},
		{x - 2, y, z}, {x - 1, y - 1, z}, {x - 1, y + 1, z}, {x - 1, y, z - 1}, {x - 1, y, z + 1},
		{x + 2, y, z}, {x + 1, y - 1, z}, {x + 1, y + 1, z}, {x + 1, y, z - 1}, {x + 1, y, z + 1},
		{x, y - 2, z}, {x, y - 1, z - 1}, {x, y - 1, z + 1}, {x, y + 2, z}, {x, y + 1, z - 1}, {x, y + 1, z + 1},
		{x, y, z - 2}, {x, y, z + 2},
	}
}

// computeHeading mirrors RedstoneWireTurbo::compute_heading's 9-entry table.
func computeHeading(rx, rz int32) int {
	code := (rx + 1) + 3*(rz+1)
	switch code {
	case 0, 1:
		return headingNorth
	case 2, 5:
		return headingEast
	case 3, 4:
		return headingWest
	case 6, 7, 8:
		return headingSouth
	default:
		panic("naive: unreachable compute_heading code")
	}
}

// reordering holds the four permutation tables, reproduced verbatim from
// RedstoneWireTurbo::REORDING.
var reordering = [4][24]int{
	{2, 3, 16, 19, 0, 4, 1, 5, 7, 8, 17, 20, 12, 13, 18, 21, 6, 9, 22, 14, 11, 10, 23, 15},
	{2, 3, 16, 19, 4, 1, 5, 0, 17, 20, 12, 13, 18, 21, 7, 8, 22, 14, 11, 15, 23, 9, 6, 10},
	{2, 3, 16, 19, 1, 5, 0, 4, 12, 13, 18, 21, 7, 8, 17, 20, 11, 15, 23, 10, 6, 14, 22, 9},
	{2, 3, 16, 19, 5, 0, 4, 1, 18, 21, 7, 8, 17, 20, 12, 13, 23, 10, 6, 9, 22, 15, 11, 14},
}

var rsNeighbors = [4]int{4, 5, 6, 7}
var rsNeighborsUp = [4]int{9, 11, 13, 15}
var rsNeighborsDn = [4]int{8, 10, 12, 14}

func (t *turbo) nodeID(pos cell.Pos) turboNodeID {
	if id, ok := t.cache[pos]; ok {
		return id
	}
	id := turboNodeID(len(t.nodes))
	t.cache[pos] = id
	t.nodes = append(t.nodes, turboNode{pos: pos})
	return id
}

func (t *turbo) isSolid(pos cell.Pos) bool {
	c, ok := t.sim.Storage.Get(pos)
	return ok && c.Solid
}

func (t *turbo) isTransparent(pos cell.Pos) bool {
	c, ok := t.sim.Storage.Get(pos)
	if !ok {
		return true
	}
	return c.Transparent
}

// identifyNeighbors mirrors RedstoneWireTurbo::identify_neighbors: it builds
// the raw 24-neighbor ring for upd1, derives a heading from which directions
// were already visited (inheriting or recomputing a directional bias), and
// stores the heading-oriented neighbor list via orientNeighbors.
func (t *turbo) identifyNeighbors(upd1 turboNodeID) {
	pos := t.nodes[upd1].pos
	raw := computeAllNeighbors(pos)

	neighborIDs := make([]turboNodeID, 24)
	visited := make([]bool, 24)
	for i, p := range raw {
		id := t.nodeID(p)
		neighborIDs[i] = id
		visited[i] = t.nodes[id].visited
	}

	fromWest := visited[0] || visited[7] || visited[8]
	fromEast := visited[1] || visited[12] || visited[13]
	fromNorth := visited[4] || visited[17] || visited[20]
	fromSouth := visited[5] || visited[18] || visited[21]

	var cx, cz int32
	if fromWest {
		cx++
	}
	if fromEast {
		cx--
	}
	if fromNorth {
		cz++
	}
	if fromSouth {
		cz--
	}

	xbias := t.nodes[upd1].xbias
	zbias := t.nodes[upd1].zbias

	var heading int
	if cx == 0 && cz == 0 {
		heading = computeHeading(xbias, zbias)
		for _, id := range neighborIDs {
			t.nodes[id].xbias = xbias
			t.nodes[id].zbias = zbias
		}
	} else {
		if cx != 0 && cz != 0 {
			if xbias != 0 {
				cz = 0
			}
			if zbias != 0 {
				cx = 0
			}
		}
		heading = computeHeading(cx, cz)
		for _, id := range neighborIDs {
			t.nodes[id].xbias = cx
			t.nodes[id].zbias = cz
		}
	}

	t.orientNeighbors(neighborIDs, upd1, heading)
}

func (t *turbo) orientNeighbors(src []turboNodeID, dst turboNodeID, heading int) {
	re := reordering[heading]
	oriented := make([]turboNodeID, 24)
	for i, rawIdx := range re {
		oriented[i] = src[rawIdx]
	}
	t.nodes[dst].neighbors = oriented
}

func (t *turbo) neighborsOf(id turboNodeID) []turboNodeID {
	if t.nodes[id].neighbors == nil {
		t.identifyNeighbors(id)
	}
	return t.nodes[id].neighbors
}

// propagateChanges mirrors RedstoneWireTurbo::propagate_changes: all 24
// neighbors are queued one layer deeper, and the first four oriented
// neighbors (the cells one and two blocks directly below and above) are
// additionally queued two layers deeper (they may need a second look once
// the first-layer wire settles).
func (t *turbo) propagateChanges(upd1 turboNodeID, layer uint32) {
	neighbors := t.neighborsOf(upd1)

	layer1 := layer + 1
	for _, id := range neighbors {
		if layer1 > t.nodes[id].layer {
			t.nodes[id].layer = layer1
			t.queue[1] = append(t.queue[1], id)
		}
	}

	layer2 := layer + 2
	for _, id := range neighbors[0:4] {
		if layer2 > t.nodes[id].layer {
			t.nodes[id].layer = layer2
			t.queue[2] = append(t.queue[2], id)
		}
	}
}

func (t *turbo) shiftQueue() {
	t.queue[0] = t.queue[1]
	t.queue[1] = t.queue[2]
	t.queue[2] = nil
}

// breadthFirstWalk mirrors RedstoneWireTurbo::breadth_first_walk.
func (t *turbo) breadthFirstWalk() {
	t.shiftQueue()
	t.layer = 1

	for len(t.queue[0]) > 0 || len(t.queue[1]) > 0 {
		layer0 := t.queue[0]
		for _, id := range layer0 {
			pos := t.nodes[id].pos
			if c, ok := t.sim.Storage.Get(pos); ok && c.Kind == cell.Wire {
				t.updateNode(id, t.layer)
			} else {
				t.sim.Update(pos)
			}
		}
		t.shiftQueue()
		t.layer++
	}
	t.layer = 0
}

// updateNode mirrors RedstoneWireTurbo::update_node.
func (t *turbo) updateNode(upd1 turboNodeID, layer uint32) {
	t.nodes[upd1].visited = true
	pos := t.nodes[upd1].pos
	oldCell, _ := t.sim.Storage.Get(pos)
	oldPower := oldCell.Output

	newPower := t.calculateCurrentChanges(upd1)
	if oldPower != newPower {
		t.propagateChanges(upd1, layer)
	}
}

func (t *turbo) maxCurrentStrength(id turboNodeID, strength uint8) uint8 {
	c, ok := t.sim.Storage.Get(t.nodes[id].pos)
	if ok && c.Kind == cell.Wire {
		return maxU8(c.Output, strength)
	}
	return strength
}

// calculateCurrentChanges mirrors RedstoneWireTurbo::calculate_current_changes:
// it recomputes a wire's power the same way wire::calculate_power does, but
// walking the pre-oriented 24-neighbor list instead of re-deriving positions,
// and stores the new power if it changed.
func (t *turbo) calculateCurrentChanges(upd turboNodeID) uint8 {
	pos := t.nodes[upd].pos
	wire, ok := t.sim.Storage.Get(pos)
	if !ok || wire.Kind != cell.Wire {
		return 0
	}
	i := wire.Output

	var blockPower uint8
	for _, f := range cell.AllFaces {
		np := f.Offset(pos)
		if p := t.sim.getRedstonePowerNoDust(np, f); p > blockPower {
			blockPower = p
		}
	}

	var wirePower uint8
	if blockPower < 15 {
		neighbors := t.neighborsOf(upd)
		centerUpID := neighbors[1]
		centerUpSolid := t.isSolid(t.nodes[centerUpID].pos)

		for m := 0; m < 4; m++ {
			n := rsNeighbors[m]
			neighborID := neighbors[n]
			wirePower = t.maxCurrentStrength(neighborID, wirePower)

			if !t.isSolid(t.nodes[neighborID].pos) {
				downID := neighbors[rsNeighborsDn[m]]
				wirePower = t.maxCurrentStrength(downID, wirePower)
			} else if !centerUpSolid && !t.isTransparent(t.nodes[neighborID].pos) {
				upID := neighbors[rsNeighborsUp[m]]
				wirePower = t.maxCurrentStrength(upID, wirePower)
			}
		}
	}

	j := subSat(wirePower, 1)
	if blockPower > j {
		j = blockPower
	}
	if i != j {
		wire.Output = j
		t.sim.Storage.Set(pos, wire)
	}
	return j
}

// UpdateSurroundingNeighbors mirrors
// RedstoneWireTurbo::update_surrounding_neighbors: the entry point called
// whenever a wire's own power just changed, to flood the change outward.
func (s *Sim) UpdateSurroundingNeighbors(pos cell.Pos) {
	t := &turbo{
		sim:   s,
		cache: make(map[cell.Pos]turboNodeID),
		queue: [3][]turboNodeID{{}, {}, {}},
	}
	root := t.nodeID(pos)
	t.nodes[root].visited = true
	t.propagateChanges(root, 0)
	t.breadthFirstWalk()
}
