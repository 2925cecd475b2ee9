// Package voxelstore provides reference implementations of cell.Storage: an
// in-memory map-backed one for unit tests, and a SQLite-backed one
// (github.com/mattn/go-sqlite3) for parity/integration tests that want a
// real persistence boundary. Neither is part of the compiler core's
// contract; the core only ever depends on cell.Storage.
package voxelstore

import "github.com/sarchlab/redpiler/internal/cell"

// Memory is a map-backed cell.Storage: no persistence, no concurrency
// control, intended for unit tests and the CLI demo's scratch world.
type Memory struct {
	cells         map[cell.Pos]cell.Cell
	blockEntities map[cell.Pos]cell.BlockEntity
	pendingTicks  map[cell.Pos]cell.PendingTick
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		cells:         make(map[cell.Pos]cell.Cell),
		blockEntities: make(map[cell.Pos]cell.BlockEntity),
		pendingTicks:  make(map[cell.Pos]cell.PendingTick),
	}
}

func (m *Memory) Get(pos cell.Pos) (cell.Cell, bool) {
	c, ok := m.cells[pos]
	return c, ok
}

func (m *Memory) Set(pos cell.Pos, c cell.Cell) {
	m.cells[pos] = c
}

func (m *Memory) GetBlockEntity(pos cell.Pos) (cell.BlockEntity, bool) {
	be, ok := m.blockEntities[pos]
	return be, ok
}

func (m *Memory) SetBlockEntity(pos cell.Pos, be cell.BlockEntity) {
	m.blockEntities[pos] = be
}

func (m *Memory) DeleteBlockEntity(pos cell.Pos) {
	delete(m.blockEntities, pos)
}

func (m *Memory) ScheduleTick(pos cell.Pos, delay uint8, priority cell.TickPriority) {
	m.pendingTicks[pos] = cell.PendingTick{Pos: pos, Delay: delay, Priority: priority}
}

func (m *Memory) PendingTickAt(pos cell.Pos) (cell.PendingTick, bool) {
	pt, ok := m.pendingTicks[pos]
	return pt, ok
}

func (m *Memory) CancelTick(pos cell.Pos) {
	delete(m.pendingTicks, pos)
}

// AllPendingTicks returns every currently scheduled tick, for seeding a
// compiler.Driver's Compile call with the region's initial_pending_ticks.
func (m *Memory) AllPendingTicks() []cell.PendingTick {
	out := make([]cell.PendingTick, 0, len(m.pendingTicks))
	for _, pt := range m.pendingTicks {
		out = append(out, pt)
	}
	return out
}

var _ cell.Storage = (*Memory)(nil)
