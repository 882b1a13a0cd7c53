// Package fixpoint implements chaotic iteration with widening over a
// weak topological ordering, grounded on
// sparta/include/MonotonicFixpointIterator.h. Iterator is parametric in
// a graph.Interface and a lattice.Domain; the caller supplies
// AnalyzeNode and AnalyzeEdge, both of which must be monotone.
package fixpoint

import (
	"github.com/facebook/redex-core/internal/graph"
	"github.com/facebook/redex-core/internal/lattice"
	"github.com/facebook/redex-core/internal/wto"
)

// Context exposes, read-only, the per-node iteration counters that an
// Extrapolate override can use to decide when to escalate from join to
// widen (or to apply a bounded number of plain joins before widening, as
// spec.md §4.4 allows per-node).
type Context[N comparable] struct {
	local  map[N]int
	global map[N]int
}

func newContext[N comparable]() *Context[N] {
	return &Context[N]{local: make(map[N]int), global: make(map[N]int)}
}

// LocalIterationCount is the number of times the current SCC visit has
// re-analyzed n (0 on the first pass through the SCC this visit).
func (c *Context[N]) LocalIterationCount(n N) int { return c.local[n] }

// GlobalIterationCount is the number of times n has been analyzed across
// the iterator's entire run.
func (c *Context[N]) GlobalIterationCount(n N) int { return c.global[n] }

// Extrapolate decides the next entry state for an SCC head h given its
// current value and the freshly recomputed join over incoming edges.
// The default (DefaultExtrapolate) joins on the SCC's first local
// iteration and widens afterward.
type Extrapolate[N comparable, D lattice.Domain[D]] func(ctx *Context[N], n N, current, recomputed D) D

// DefaultExtrapolate implements spec.md §4.4's default policy.
func DefaultExtrapolate[N comparable, D lattice.Domain[D]](ctx *Context[N], n N, current, recomputed D) D {
	if ctx.LocalIterationCount(n) == 0 {
		return lattice.Join(current, recomputed)
	}
	return lattice.Widen(current, recomputed)
}

// Iterator runs a monotonic fixpoint computation over a graph.
type Iterator[G any, N comparable, E any, D lattice.Domain[D]] struct {
	GI graph.Interface[G, N, E]
	G  G

	// NewBottom constructs a fresh bottom value; used to seed every
	// node's exit state before it has been analyzed.
	NewBottom func() D
	// Initial is joined into the entry node's entry state.
	Initial D

	// AnalyzeNode computes exit_state from entry_state; must be monotone.
	AnalyzeNode func(n N, entryState D) D
	// AnalyzeEdge transforms the exit state at an edge's source into its
	// contribution to the target's entry state; must be monotone.
	AnalyzeEdge func(e E, exitStateAtSource D) D

	// Extrapolate overrides the default per-node extrapolation policy.
	// A nil entry for a node uses DefaultExtrapolate.
	Extrapolate map[N]Extrapolate[N, D]

	ctx        *Context[N]
	entryState map[N]D
	exitState  map[N]D
}

// Run executes the fixpoint computation and returns the final
// entry/exit state maps.
func (it *Iterator[G, N, E, D]) Run() (entry map[N]D, exit map[N]D) {
	it.ctx = newContext[N]()
	it.entryState = make(map[N]D)
	it.exitState = make(map[N]D)

	components := wto.Build[G, N, E](it.GI, it.G)
	it.processAll(components)
	return it.entryState, it.exitState
}

func (it *Iterator[G, N, E, D]) getExit(n N) D {
	if v, ok := it.exitState[n]; ok {
		return v
	}
	return it.NewBottom()
}

func (it *Iterator[G, N, E, D]) computeEntryState(n N) D {
	state := it.NewBottom()
	for _, e := range it.GI.Predecessors(it.G, n) {
		src := it.GI.Source(it.G, e)
		state.JoinWith(it.AnalyzeEdge(e, it.getExit(src)))
	}
	if n == it.GI.Entry(it.G) {
		state.JoinWith(it.Initial)
	}
	return state
}

func (it *Iterator[G, N, E, D]) analyze(n N) {
	it.entryState[n] = it.computeEntryState(n)
	it.exitState[n] = it.AnalyzeNode(n, it.entryState[n].Copy())
	it.ctx.global[n]++
}

func (it *Iterator[G, N, E, D]) processAll(components []wto.Component[N]) {
	for _, c := range components {
		if c.IsSCC {
			it.processSCC(c)
		} else {
			it.analyze(c.Vertex)
		}
	}
}

func (it *Iterator[G, N, E, D]) processSCC(c wto.Component[N]) {
	h := c.Head
	it.ctx.local[h] = 0
	it.entryState[h] = it.computeEntryState(h)
	for {
		it.exitState[h] = it.AnalyzeNode(h, it.entryState[h].Copy())
		it.ctx.global[h]++
		it.processAll(c.Inner)

		recomputed := it.computeEntryState(h)
		if recomputed.Leq(it.entryState[h]) {
			break
		}
		extrapolate := it.Extrapolate[h]
		if extrapolate == nil {
			extrapolate = DefaultExtrapolate[N, D]
		}
		it.entryState[h] = extrapolate(it.ctx, h, it.entryState[h], recomputed)
		it.ctx.local[h]++
	}
	delete(it.ctx.local, h)
}
