package backend

import (
	"testing"

	"github.com/sarchlab/redpiler/internal/cell"
)

func TestRingSchedulesIntoTheCorrectSlot(t *testing.T) {
	var r ring
	r.schedule(3, cell.PriorityHigh, 7)

	r.advance()
	r.advance()
	r.advance()
	bucket := r.popCurrent()

	if len(bucket[cell.PriorityHigh]) != 1 || bucket[cell.PriorityHigh][0] != 7 {
		t.Fatalf("expected node 7 in the PriorityHigh bucket after advancing to its slot, got %v", bucket)
	}
}

func TestRingPopCurrentOrdersByPriority(t *testing.T) {
	var r ring
	r.schedule(1, cell.PriorityNormal, 1)
	r.schedule(1, cell.PriorityHighest, 2)

	r.advance()
	bucket := r.popCurrent()

	if len(bucket[cell.PriorityHighest]) != 1 || bucket[cell.PriorityHighest][0] != 2 {
		t.Fatalf("expected node 2 in PriorityHighest bucket, got %v", bucket[cell.PriorityHighest])
	}
	if len(bucket[cell.PriorityNormal]) != 1 || bucket[cell.PriorityNormal][0] != 1 {
		t.Fatalf("expected node 1 in PriorityNormal bucket, got %v", bucket[cell.PriorityNormal])
	}
}

func TestRingDrainReportsRemainingDelay(t *testing.T) {
	var r ring
	r.schedule(5, cell.PriorityNormal, 42)
	r.advance()
	r.advance()

	entries := r.drain()
	if len(entries) != 1 {
		t.Fatalf("expected 1 pending entry, got %d", len(entries))
	}
	if entries[0].idx != 42 {
		t.Fatalf("expected idx 42, got %d", entries[0].idx)
	}
	if entries[0].delay != 3 {
		t.Fatalf("expected remaining delay 3 (5 scheduled - 2 advanced), got %d", entries[0].delay)
	}

	// the ring must be fully cleared after drain.
	r.advance()
	bucket := r.popCurrent()
	for p := 0; p < priorityClasses; p++ {
		if len(bucket[p]) != 0 {
			t.Fatalf("expected ring to be empty after drain, found entries in priority %d", p)
		}
	}
}

func TestClampDelayLogsAndClampsOutOfRangeDelay(t *testing.T) {
	got := clampDelay(0, 30)
	if got != ringSlots-1 {
		t.Fatalf("clampDelay(30) = %d, want %d", got, ringSlots-1)
	}
	if got := clampDelay(0, 4); got != 4 {
		t.Fatalf("clampDelay(4) = %d, want 4 (unclamped)", got)
	}
}
