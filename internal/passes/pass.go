// Package passes implements the post-build graph optimizations: clamping
// saturated weights, deduplicating redundant links, folding constant
// sources, trimming provably-dead comparator outputs, coalescing
// single-input chains, folding the common 15-repeater "analog" fan-out
// idiom, and pruning anything unreachable from an output. Each is grounded
// on the corresponding file in redpiler/passes/*.rs; the pass manager runs
// them in the same fixed order the reference compiler does, since later
// passes depend on earlier ones having already normalized the graph.
package passes

import "github.com/sarchlab/redpiler/internal/graph"

// Pass is one graph-to-graph rewrite. Passes mutate g in place; Compact is
// left to the Manager so dangling ids never leak between passes. optimizeOnly
// reports whether should_run gates this pass on the driver's optimize
// option — false for the three passes that run unconditionally.
type Pass interface {
	Name() string
	Run(g *graph.Graph)
	optimizeOnly() bool
}

func (ClampWeights) optimizeOnly() bool      { return false }
func (DedupLinks) optimizeOnly() bool        { return false }
func (ConstantCoalesce) optimizeOnly() bool  { return true }
func (UnreachableOutput) optimizeOnly() bool { return true }
func (Coalesce) optimizeOnly() bool          { return true }
func (AnalogRepeaters) optimizeOnly() bool   { return true }
func (PruneOrphans) optimizeOnly() bool      { return false }

// Default is the fixed pass pipeline the compiler driver runs after
// builder.Build, in the order the reference implementation depends on:
// weight clamping and link dedup first (they only ever shrink the graph and
// make every later pass's job smaller), then the three coalescing passes,
// then the analog-repeater idiom (which needs a clean, deduplicated
// neighborhood to pattern-match against), and finally orphan pruning, which
// wants the fully optimized graph so it doesn't prune a node a later pass
// would have folded into something reachable. When optimize is false, only
// the three mandatory passes run; the four "(optimize)"-gated ones are
// skipped entirely rather than running as no-ops.
func Default(optimize bool) []Pass {
	all := []Pass{
		ClampWeights{},
		DedupLinks{},
		ConstantCoalesce{},
		UnreachableOutput{},
		Coalesce{},
		AnalogRepeaters{},
		PruneOrphans{},
	}
	if optimize {
		return all
	}
	var gated []Pass
	for _, p := range all {
		if !p.optimizeOnly() {
			gated = append(gated, p)
		}
	}
	return gated
}

// Manager runs a fixed pipeline of passes over a graph, compacting tombstoned
// nodes/edges out between each one so every pass sees a dense graph.
type Manager struct {
	Passes []Pass
}

// NewManager builds a Manager running the Default pipeline gated by
// optimize, matching each pass's should_run(options).
func NewManager(optimize bool) *Manager {
	return &Manager{Passes: Default(optimize)}
}

// Run applies every pass in order, compacting after each.
func (m *Manager) Run(g *graph.Graph) {
	for _, p := range m.Passes {
		p.Run(g)
		g.Compact()
	}
}
