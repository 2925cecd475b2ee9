// Package compiler is the driver (§4.H): it orchestrates
// builder.Build → passes.Manager.Run → backend.Build and owns the single
// active Engine, exposing the compile/reset/tick/flush lifecycle the host
// game loop drives. Grounded on zeonica's engine/driver split, adapted from
// an instruction-scheduling driver to a redstone one.
package compiler

import "errors"

// ErrAlreadyActive is returned by Compile when a compiled graph is already
// loaded; Reset (or a prior Compile failing) is required first.
var ErrAlreadyActive = errors.New("compiler: already active, reset before recompiling")

// ErrNotActive is returned by Tick, OnUseBlock, SetPressurePlate and Flush
// when no graph has been compiled, matching spec.md §7's BackendAbsent case.
// Inspect reports the same condition as (Node{}, false) instead.
var ErrNotActive = errors.New("compiler: no compiled graph, call Compile first")

// ErrMalformedCell names a compile region holding a state id that does not
// decode into any known cell. No code path in this package returns it:
// cell.Storage.Get reports such a position as absent (voxelstore.SQLite
// does so), and Compile skips it like an empty position.
var ErrMalformedCell = errors.New("compiler: malformed cell in compile region")
