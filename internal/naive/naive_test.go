package naive_test

import (
	"testing"

	"github.com/sarchlab/redpiler/internal/cell"
	"github.com/sarchlab/redpiler/internal/naive"
	"github.com/sarchlab/redpiler/internal/voxelstore"
)

// A lever sitting at a repeater's input position (pos offset by its own
// Facing, mirroring diode_get_input_strength) should power the repeater once
// its scheduled one-tick-delay tick fires.
func TestRepeaterFollowsItsInputAfterOneDelayTick(t *testing.T) {
	storage := voxelstore.NewMemory()
	repeaterPos := cell.Pos{X: 0, Y: 0, Z: 1}
	leverPos := cell.DirNorth.Face().Offset(repeaterPos)

	storage.Set(leverPos, cell.Cell{Kind: cell.Lever, Powered: true})
	storage.Set(repeaterPos, cell.Cell{Kind: cell.Repeater, Facing: cell.DirNorth, Delay: 1})

	sim := naive.New(storage)
	sim.Update(repeaterPos)

	pt, pending := storage.PendingTickAt(repeaterPos)
	if !pending {
		t.Fatalf("expected a pending tick to be scheduled after the repeater sees its input powered")
	}

	sim.Tick(repeaterPos)

	got, _ := storage.Get(repeaterPos)
	if !got.Powered {
		t.Errorf("expected repeater to be powered after its scheduled tick fires, pending was %+v", pt)
	}
}

// get_power_on_side queries the side neighbor's own weak power in the query
// direction itself (mirroring RedstoneRepeater::get_power_on_side), so a
// repeater sitting to the rotate_ccw side only contributes if its own
// Facing matches that same outward direction.
func TestRepeaterLocksWhenSideNeighborIsAPoweredDiode(t *testing.T) {
	storage := voxelstore.NewMemory()
	repeaterPos := cell.Pos{X: 0, Y: 0, Z: 0}
	sidePos := cell.DirEast.Face().Offset(repeaterPos)

	storage.Set(repeaterPos, cell.Cell{Kind: cell.Repeater, Facing: cell.DirSouth})
	storage.Set(sidePos, cell.Cell{Kind: cell.Repeater, Facing: cell.DirEast, Powered: true})

	sim := naive.New(storage)
	locked := sim.ShouldBeLocked(cell.DirSouth, repeaterPos)

	if !locked {
		t.Errorf("expected repeater to be locked by a powered diode on its side")
	}
}
