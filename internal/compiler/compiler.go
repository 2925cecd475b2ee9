package compiler

import (
	"github.com/sarchlab/redpiler/internal/backend"
	"github.com/sarchlab/redpiler/internal/builder"
	"github.com/sarchlab/redpiler/internal/cell"
	"github.com/sarchlab/redpiler/internal/graph"
	"github.com/sarchlab/redpiler/internal/naive"
	"github.com/sarchlab/redpiler/internal/passes"
	"github.com/sarchlab/redpiler/internal/rlog"
)

// Options configures a single compile. Optimize gates both the builder's
// IgnoreWires behavior and the optimize-only passes (ConstantCoalesce,
// UnreachableOutput, Coalesce, AnalogRepeaters) — a single knob, matching
// spec.md §4.F/§4.H treating them as one "optimize" option rather than
// separate flags.
type Options struct {
	Bounds   builder.Bounds
	Optimize bool
}

// Driver owns at most one active compiled graph over storage at a time,
// implementing the compile/reset/tick/on_use_block/set_pressure_plate/flush
// lifecycle of spec.md §4.H.
type Driver struct {
	storage cell.Storage
	engine  *backend.Engine
	opts    Options
	active  bool
	session rlog.Session
}

// New creates a driver bound to storage. It starts inactive; Compile must
// be called before Tick, OnUseBlock, SetPressurePlate or Flush.
func New(storage cell.Storage) *Driver {
	return &Driver{storage: storage}
}

// Active reports whether a graph is currently compiled.
func (d *Driver) Active() bool { return d.active }

// Compile builds, optimizes and lowers the region in opts.Bounds, then
// seeds the engine with any ticks already pending in storage. Compile is
// only valid while inactive (ErrAlreadyActive otherwise); errors leave the
// driver inactive and never commit a partial graph, per spec.md §7.
func (d *Driver) Compile(opts Options, pendingTicks []cell.PendingTick) error {
	if d.active {
		return ErrAlreadyActive
	}

	d.session = rlog.NewSession()
	d.session.Tracef("compile starting", "optimize", opts.Optimize)

	g := builder.Build(d.storage, builder.Options{Bounds: opts.Bounds, IgnoreWires: opts.Optimize})
	passes.NewManager(opts.Optimize).Run(g)

	engine := backend.Build(g)
	for _, pt := range pendingTicks {
		idx, ok := engine.IndexAt(pt.Pos)
		if !ok {
			continue
		}
		engine.LoadPendingTick(idx, pt.Delay, pt.Priority)
	}

	d.engine = engine
	d.opts = opts
	d.active = true
	d.session.Infof("compile finished", "nodes", engine.NodeCount())
	return nil
}

// Tick advances the compiled engine by one scheduler step.
func (d *Driver) Tick() error {
	if !d.active {
		return ErrNotActive
	}
	return d.engine.Tick()
}

// OnUseBlock handles a player interaction with a button or lever at pos: a
// button presses (and self-schedules its release), a lever toggles
// instantly. Positions outside the compiled region, or holding neither, are
// silently ignored (the host is expected to handle those itself).
func (d *Driver) OnUseBlock(pos cell.Pos) error {
	if !d.active {
		return ErrNotActive
	}
	idx, ok := d.engine.IndexAt(pos)
	if !ok {
		return nil
	}
	n, _ := d.engine.Inspect(idx)
	switch n.Type {
	case graph.NodeButton:
		d.engine.PressButton(idx)
	case graph.NodeLever:
		if n.Powered {
			d.engine.SetSource(idx, 0)
		} else {
			d.engine.SetSource(idx, 15)
		}
	}
	return nil
}

// SetPressurePlate drives a pressure plate's powered state externally
// (weight detection is the host's responsibility, not this core's).
func (d *Driver) SetPressurePlate(pos cell.Pos, powered bool) error {
	if !d.active {
		return ErrNotActive
	}
	idx, ok := d.engine.IndexAt(pos)
	if !ok {
		return nil
	}
	n, _ := d.engine.Inspect(idx)
	if n.Type != graph.NodePressurePlate || n.Powered == powered {
		return nil
	}
	if powered {
		d.engine.SetSource(idx, 15)
	} else {
		d.engine.SetSource(idx, 0)
	}
	return nil
}

// Flush writes every changed compiled node's state back to storage. When
// ioOnly is set, only externally visible kinds are written.
func (d *Driver) Flush(ioOnly bool) error {
	if !d.active {
		return ErrNotActive
	}
	return d.engine.Flush(d.storage, ioOnly)
}

// NodeCount reports how many nodes the active compiled graph holds, or 0
// when inactive.
func (d *Driver) NodeCount() int {
	if !d.active {
		return 0
	}
	return d.engine.NodeCount()
}

// Inspect reports the live state of the node compiled from pos, for
// debugging tools (internal/debugsrv). The second result is false for a
// position outside the compiled region — spec.md §7's InspectionMiss,
// returned as an option rather than an error.
func (d *Driver) Inspect(pos cell.Pos) (backend.Node, bool) {
	if !d.active {
		return backend.Node{}, false
	}
	idx, ok := d.engine.IndexAt(pos)
	if !ok {
		return backend.Node{}, false
	}
	return d.engine.Inspect(idx)
}

// Reset tears the compiled session down: every node's current state and
// every still-pending tick are written back to storage (with its remaining
// delay, per spec.md §4.G), and the driver returns to inactive. Reset is
// idempotent — resetting an inactive driver is a no-op. If the compile used
// Optimize (which drops wire nodes under IgnoreWires), the wire network in
// bounds is re-normalized against the naive simulator afterward, since its
// state may now be stale relative to what the backend actually simulated.
func (d *Driver) Reset() {
	if !d.active {
		return
	}
	engine := d.engine
	opts := d.opts
	storage := d.storage

	engine.FlushAll(storage)
	for _, pt := range engine.Drain() {
		storage.ScheduleTick(pt.Pos, pt.Delay, pt.Priority)
	}

	d.engine = nil
	d.active = false

	if opts.Optimize {
		renormalizeWires(storage, opts.Bounds)
	}
	d.session.Tracef("reset complete")
}

// renormalizeWires re-derives every wire's power level directly from the
// naive simulator, needed after an Optimize compile since IgnoreWires never
// gave those cells a chance to simulate themselves.
func renormalizeWires(storage cell.Storage, bounds builder.Bounds) {
	sim := naive.New(storage)
	bounds.ForEach(func(pos cell.Pos) {
		c, ok := storage.Get(pos)
		if !ok || c.Kind != cell.Wire {
			return
		}
		sim.UpdateSurroundingNeighbors(pos)
	})
}
