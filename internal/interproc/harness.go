package interproc

import (
	"github.com/facebook/redex-core/internal/fixpoint"
	"github.com/facebook/redex-core/internal/graph"
	"github.com/facebook/redex-core/internal/lattice"
)

// Harness runs the call-graph-level fixpoint of spec.md §4.5: each
// round it refreshes the call graph from the current summary registry
// and runs a fixpoint.Iterator over it, whose AnalyzeNode constructs an
// intraprocedural fixpoint (the caller's responsibility, via Analyze)
// and publishes a new summary. The harness stops either when the
// registry reports no update for a round or MaxIterations is reached.
//
// D is the CallerContext domain threaded along callsite edges.
type Harness[G any, K comparable, E any, V any, D lattice.Domain[D]] struct {
	Registry      *Registry[K, V]
	MaxIterations int

	// BuildCallGraph refreshes the call graph from the registry's current
	// snapshot (e.g. re-resolving virtual calls now that more purity
	// summaries are known).
	BuildCallGraph func(snapshot map[K]V) G
	GI             graph.Interface[G, K, E]

	NewBottom func() D
	Initial   D

	// Analyze runs the intraprocedural fixpoint for function k (using g
	// and the registry for callee summaries), computes its
	// per-function fact, publishes a summary via Registry.Update, and
	// returns the CallerContext state to propagate to k's callers.
	Analyze func(g G, k K, callerContext D) D

	// AnalyzeEdge transforms the CallerContext exiting a caller into its
	// contribution at a callsite edge.
	AnalyzeEdge func(g G, e E, exitAtSource D) D

	// SummariesEqual compares two summaries. Run does not consult it: the
	// registry's dirty bit is set by the equals function each Analyze
	// passes to Registry.Update.
	SummariesEqual func(a, b V) bool
}

// Result is the outcome of a Harness.Run call.
type Result[K comparable, V any] struct {
	Summaries map[K]V
	Rounds    int
	Converged bool
}

// Run executes the bounded interprocedural fixpoint loop.
func (h *Harness[G, K, E, V, D]) Run() Result[K, V] {
	rounds := 0
	for ; rounds < h.MaxIterations; rounds++ {
		g := h.BuildCallGraph(h.Registry.Snapshot())
		it := &fixpoint.Iterator[G, K, E, D]{
			GI:        h.GI,
			G:         g,
			NewBottom: h.NewBottom,
			Initial:   h.Initial,
			AnalyzeNode: func(k K, entryState D) D {
				return h.Analyze(g, k, entryState)
			},
			AnalyzeEdge: func(e E, exitAtSource D) D {
				return h.AnalyzeEdge(g, e, exitAtSource)
			},
		}
		it.Run()

		if !h.Registry.HasUpdate() {
			return Result[K, V]{Summaries: h.Registry.Snapshot(), Rounds: rounds + 1, Converged: true}
		}
		h.Registry.MaterializeUpdate()
	}
	return Result[K, V]{Summaries: h.Registry.Snapshot(), Rounds: rounds, Converged: false}
}
