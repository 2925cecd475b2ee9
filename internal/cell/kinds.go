package cell

import "errors"

// Kind enumerates the closed set of component kinds the core understands.
// Everything else is opaque terrain, carried only as Solid/Transparent.
type Kind int

const (
	Wire Kind = iota
	Repeater
	Comparator
	Torch
	WallTorch
	Lever
	Button
	PressurePlate
	Lamp
	Trapdoor
	Block15          // redstone block: a constant power source, always 15
	ContainerOverride // furnace/barrel/hopper signal derived from inventory
	Terrain          // opaque, non-component voxel
)

func (k Kind) String() string {
	switch k {
	case Wire:
		return "Wire"
	case Repeater:
		return "Repeater"
	case Comparator:
		return "Comparator"
	case Torch:
		return "Torch"
	case WallTorch:
		return "WallTorch"
	case Lever:
		return "Lever"
	case Button:
		return "Button"
	case PressurePlate:
		return "PressurePlate"
	case Lamp:
		return "Lamp"
	case Trapdoor:
		return "Trapdoor"
	case Block15:
		return "Block"
	case ContainerOverride:
		return "ContainerOverride"
	case Terrain:
		return "Terrain"
	default:
		return "Kind(?)"
	}
}

// IsDiode reports whether k has a single forward direction and doesn't feed
// back on itself (repeaters and comparators).
func (k Kind) IsDiode() bool {
	return k == Repeater || k == Comparator
}

// WireSide is the connection state of one of a wire's four horizontal sides.
type WireSide int

const (
	SideNone WireSide = iota
	SideUp
	SideConnected
)

func (s WireSide) String() string {
	switch s {
	case SideNone:
		return "None"
	case SideUp:
		return "Up"
	case SideConnected:
		return "Side"
	default:
		return "WireSide(?)"
	}
}

// IsNone reports whether the side is disconnected.
func (s WireSide) IsNone() bool { return s == SideNone }

// ComparatorMode selects between a comparator's two behaviors.
type ComparatorMode int

const (
	Compare ComparatorMode = iota
	Subtract
)

func (m ComparatorMode) String() string {
	if m == Subtract {
		return "Subtract"
	}
	return "Compare"
}

// Cell is the decoded, typed representation of a voxel's state id. Only the
// fields relevant to Kind are meaningful; the rest are zero.
type Cell struct {
	Kind Kind

	Output  uint8 // 0..=15, signal strength
	Powered bool  // binary-semantic power flag

	// Repeater only.
	Delay  uint8 // 1..=4
	Locked bool

	// Repeater, Comparator, WallTorch.
	Facing Direction

	// Comparator only.
	Mode ComparatorMode

	// Wire only, indexed by Direction.
	Sides [4]WireSide

	// Terrain predicates. Meaningful for any kind; a component's cube is
	// always solid and opaque except where the reference rules say
	// otherwise (trapdoors, torches sit on/against solid cubes).
	Solid       bool
	Transparent bool
}

// ErrMalformedCell is returned by DecodeCell when a state id fails to decode
// into a known property combination. Storage implementations that decode
// ids in Get (voxelstore.SQLite) report such a cell as absent rather than
// passing the error on, so it does not stop a compile.
var ErrMalformedCell = errors.New("cell: malformed state id")

// NewTerrain builds an opaque terrain cell with the given predicates.
func NewTerrain(solid, transparent bool) Cell {
	return Cell{Kind: Terrain, Solid: solid, Transparent: transparent}
}

// IsCross reports whether all four sides are connected (the canonical
// "dot" pattern regulates to a cross when all sides would otherwise be
// None).
func (c Cell) IsCross() bool {
	for _, s := range c.Sides {
		if s != SideConnected {
			return false
		}
	}
	return true
}

// IsDot reports whether all four sides are disconnected.
func (c Cell) IsDot() bool {
	for _, s := range c.Sides {
		if s != SideNone {
			return false
		}
	}
	return true
}
