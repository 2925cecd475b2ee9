package backend

import "github.com/sarchlab/redpiler/internal/cell"

// ringSlots is the number of delay buckets the scheduler keeps: one tick's
// worth of lookahead per slot, enough to hold every repeater delay (1-4)
// and comparator/torch/lamp delay (1-2) with room to spare, the same as
// spec.md §4.G's fixed-size ring.
const ringSlots = 16

// priorityClasses is the number of distinct tick priorities a single slot
// keeps separate, matching cell.TickPriority's four values.
const priorityClasses = 4

// ring is the 16-slot, 4-priority scheduler. Each slot holds, per priority
// class, the nodes due to tick once the cursor reaches that slot.
type ring struct {
	slots  [ringSlots][priorityClasses][]NodeIndex
	cursor int
}

// schedule registers idx to tick delay ticks from now, at the given
// priority. delay must be in [1, ringSlots-1]; ring buffers never need a
// same-tick (delay 0) entry since every component's own schedule_tick call
// always picks at least 1.
func (r *ring) schedule(delay uint8, priority cell.TickPriority, idx NodeIndex) {
	slot := (r.cursor + int(delay)) % ringSlots
	r.slots[slot][priority] = append(r.slots[slot][priority], idx)
}

// popCurrent drains and clears the slot at the cursor, returning its four
// priority buckets in priority order (Highest first).
func (r *ring) popCurrent() [priorityClasses][]NodeIndex {
	cur := r.slots[r.cursor]
	r.slots[r.cursor] = [priorityClasses][]NodeIndex{}
	return cur
}

// advance moves the cursor to the next slot, wrapping around.
func (r *ring) advance() {
	r.cursor = (r.cursor + 1) % ringSlots
}

// reset clears every slot and rewinds the cursor to 0.
func (r *ring) reset() {
	*r = ring{}
}

// pendingEntry is one still-scheduled tick, as drained from the ring for
// round-tripping back through the voxel storage interface.
type pendingEntry struct {
	idx      NodeIndex
	delay    uint8
	priority cell.TickPriority
}

// drain empties every slot and returns its contents as (idx, remaining
// delay, priority) triples, remaining delay computed relative to the
// current cursor position. The ring is left zeroed afterward, matching
// spec.md §4.G's "reissue pending ticks, then clear the ring".
func (r *ring) drain() []pendingEntry {
	var out []pendingEntry
	for slot := 0; slot < ringSlots; slot++ {
		remaining := uint8((slot - r.cursor + ringSlots) % ringSlots)
		for priority := 0; priority < priorityClasses; priority++ {
			for _, idx := range r.slots[slot][priority] {
				out = append(out, pendingEntry{idx: idx, delay: remaining, priority: cell.TickPriority(priority)})
			}
		}
	}
	*r = ring{}
	return out
}
