package cell

// EncodeCell and DecodeCell realize the single-integer state-id bijection
// spec.md §4.A refers to ("the core decodes state ids into typed cells via
// a bijection defined by the component kind and its properties; the
// encoding is fixed"): a contiguous range of the id space per Kind, each
// range internally packed by the per-kind Encode*/Decode* helpers above.
// Storage implementations that persist a single integer (internal/
// voxelstore's SQLite backing) go through these; the in-memory store keeps
// decoded Cells directly and never needs them.
const (
	baseWire              = 0
	baseRepeater          = baseWire + 3*3*3*3*16          // 1296
	baseComparator        = baseRepeater + 4*4*2*2         // 1360
	baseTorch             = baseComparator + 4*2*2         // 1376
	baseWallTorch         = baseTorch + 2                  // 1378
	baseLever             = baseWallTorch + 4*2            // 1386
	baseButton            = baseLever + 2                  // 1388
	basePressurePlate     = baseButton + 2                 // 1390
	baseLamp              = basePressurePlate + 2          // 1392
	baseTrapdoor          = baseLamp + 2                   // 1394
	baseBlock15           = baseTrapdoor + 2                // 1396
	baseContainerOverride = baseBlock15 + 1                 // 1397
	baseTerrain           = baseContainerOverride + 16       // 1413
	stateSpaceSize        = baseTerrain + 4                 // 1417
)

// EncodeCell maps a decoded Cell to its state id.
func EncodeCell(c Cell) int {
	switch c.Kind {
	case Wire:
		return EncodeWire(baseWire, c.Sides, c.Output)
	case Repeater:
		return EncodeRepeater(baseRepeater, c.Delay, c.Facing, c.Locked, c.Powered)
	case Comparator:
		return EncodeComparator(baseComparator, c.Facing, c.Mode, c.Powered)
	case Torch:
		return EncodeSimplePowered(baseTorch, c.Powered)
	case WallTorch:
		notPowered := 0
		if !c.Powered {
			notPowered = 1
		}
		return baseWallTorch + int(c.Facing)*2 + notPowered
	case Lever:
		return EncodeSimplePowered(baseLever, c.Powered)
	case Button:
		return EncodeSimplePowered(baseButton, c.Powered)
	case PressurePlate:
		return EncodeSimplePowered(basePressurePlate, c.Powered)
	case Lamp:
		return EncodeSimplePowered(baseLamp, c.Powered)
	case Trapdoor:
		return EncodeSimplePowered(baseTrapdoor, c.Powered)
	case Block15:
		return baseBlock15
	case ContainerOverride:
		return baseContainerOverride + int(c.Output)
	case Terrain:
		solid := 0
		if c.Solid {
			solid = 1
		}
		transparent := 0
		if c.Transparent {
			transparent = 1
		}
		return baseTerrain + solid*2 + transparent
	default:
		return -1
	}
}

// DecodeCell inverts EncodeCell, reporting ErrMalformedCell for any id
// outside every known kind's range.
func DecodeCell(id int) (Cell, error) {
	switch {
	case id >= baseWire && id < baseRepeater:
		sides, power := DecodeWire(id - baseWire)
		return Cell{Kind: Wire, Sides: sides, Output: power}, nil

	case id >= baseRepeater && id < baseComparator:
		delay, facing, locked, powered := DecodeRepeater(id - baseRepeater)
		return Cell{Kind: Repeater, Delay: delay, Facing: facing, Locked: locked, Powered: powered}, nil

	case id >= baseComparator && id < baseTorch:
		facing, mode, powered := DecodeComparator(id - baseComparator)
		return Cell{Kind: Comparator, Facing: facing, Mode: mode, Powered: powered}, nil

	case id >= baseTorch && id < baseWallTorch:
		return Cell{Kind: Torch, Powered: DecodeSimplePowered(id - baseTorch)}, nil

	case id >= baseWallTorch && id < baseLever:
		code := id - baseWallTorch
		notPowered := code % 2
		facing := Direction(code / 2)
		return Cell{Kind: WallTorch, Facing: facing, Powered: notPowered == 0}, nil

	case id >= baseLever && id < baseButton:
		return Cell{Kind: Lever, Powered: DecodeSimplePowered(id - baseLever)}, nil

	case id >= baseButton && id < basePressurePlate:
		return Cell{Kind: Button, Powered: DecodeSimplePowered(id - baseButton)}, nil

	case id >= basePressurePlate && id < baseLamp:
		return Cell{Kind: PressurePlate, Powered: DecodeSimplePowered(id - basePressurePlate)}, nil

	case id >= baseLamp && id < baseTrapdoor:
		return Cell{Kind: Lamp, Powered: DecodeSimplePowered(id - baseLamp)}, nil

	case id >= baseTrapdoor && id < baseBlock15:
		return Cell{Kind: Trapdoor, Powered: DecodeSimplePowered(id - baseTrapdoor)}, nil

	case id >= baseBlock15 && id < baseContainerOverride:
		return Cell{Kind: Block15, Output: 15}, nil

	case id >= baseContainerOverride && id < baseTerrain:
		return Cell{Kind: ContainerOverride, Output: uint8(id - baseContainerOverride)}, nil

	case id >= baseTerrain && id < stateSpaceSize:
		code := id - baseTerrain
		return Cell{Kind: Terrain, Solid: code&2 != 0, Transparent: code&1 != 0}, nil

	default:
		return Cell{}, ErrMalformedCell
	}
}
