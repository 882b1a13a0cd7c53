package interproc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facebook/redex-core/internal/interproc"
)

// unit is a one-element domain used where this harness's CallerContext
// carries no information (the purity scenarios below only need the
// summary registry, not a propagated caller-context fact).
type unit struct{}

func (u *unit) IsBottom() bool         { return false }
func (u *unit) IsTop() bool            { return true }
func (u *unit) Leq(*unit) bool         { return true }
func (u *unit) Equals(*unit) bool      { return true }
func (u *unit) SetToBottom()           {}
func (u *unit) SetToTop()              {}
func (u *unit) JoinWith(*unit)         {}
func (u *unit) WidenWith(*unit)        {}
func (u *unit) MeetWith(*unit)         {}
func (u *unit) NarrowWith(*unit)       {}
func (u *unit) Copy() *unit            { return &unit{} }

type callEdge struct{ from, to string }

type callGraph struct {
	entry string
	calls map[string][]string
}

func (g *callGraph) Entry(_ *callGraph) string { return g.entry }
func (g *callGraph) Successors(_ *callGraph, n string) []callEdge {
	var out []callEdge
	for _, to := range g.calls[n] {
		out = append(out, callEdge{n, to})
	}
	return out
}
func (g *callGraph) Predecessors(_ *callGraph, n string) []callEdge {
	var out []callEdge
	for from, tos := range g.calls {
		for _, to := range tos {
			if to == n {
				out = append(out, callEdge{from, to})
			}
		}
	}
	return out
}
func (g *callGraph) Source(_ *callGraph, e callEdge) string { return e.from }
func (g *callGraph) Target(_ *callGraph, e callEdge) string { return e.to }

// TestPurityPropagatesThroughCallChain models spec.md §8's
// "interprocedural purity pure-chain" scenario: A calls B calls C, C is
// a pure leaf; purity should propagate up to A.
func TestPurityPropagatesThroughCallChain(t *testing.T) {
	calls := map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {},
	}
	leafPurity := map[string]bool{"C": true}

	registry := interproc.NewRegistry[string, bool]()
	h := &interproc.Harness[*callGraph, string, callEdge, bool, *unit]{
		Registry:      registry,
		MaxIterations: 10,
		BuildCallGraph: func(_ map[string]bool) *callGraph {
			return &callGraph{entry: "A", calls: calls}
		},
		GI:        &callGraph{},
		NewBottom: func() *unit { return &unit{} },
		Initial:   &unit{},
		Analyze: func(g *callGraph, k string, _ *unit) *unit {
			pure, known := leafPurity[k]
			if !known {
				pure = true
				for _, callee := range calls[k] {
					if p, ok := registry.Get(callee); !ok || !p {
						pure = false
						break
					}
				}
			}
			registry.Update(k, func(a, b bool) bool { return a == b }, func(_ bool, _ bool) bool { return pure })
			return &unit{}
		},
		AnalyzeEdge: func(_ *callGraph, _ callEdge, exit *unit) *unit { return exit },
		SummariesEqual: func(a, b bool) bool { return a == b },
	}

	result := h.Run()
	assert.True(t, result.Converged)
	assert.True(t, result.Summaries["A"], "purity should propagate through the whole call chain")
	assert.True(t, result.Summaries["B"])
	assert.True(t, result.Summaries["C"])
}

// TestRecursiveCallIsNeverPure models the "recursive-impurity" scenario:
// a recursive function can never be proven pure by this simple analysis
// since its own summary is never available before it is first computed
// (it starts unknown, i.e. impure, and a self-call keeps it that way).
func TestRecursiveCallIsNeverPure(t *testing.T) {
	calls := map[string][]string{
		"Rec": {"Rec"},
	}
	registry := interproc.NewRegistry[string, bool]()
	h := &interproc.Harness[*callGraph, string, callEdge, bool, *unit]{
		Registry:      registry,
		MaxIterations: 10,
		BuildCallGraph: func(_ map[string]bool) *callGraph {
			return &callGraph{entry: "Rec", calls: calls}
		},
		GI:        &callGraph{},
		NewBottom: func() *unit { return &unit{} },
		Initial:   &unit{},
		Analyze: func(g *callGraph, k string, _ *unit) *unit {
			pure := true
			for _, callee := range calls[k] {
				if p, ok := registry.Get(callee); !ok || !p {
					pure = false
					break
				}
			}
			registry.Update(k, func(a, b bool) bool { return a == b }, func(_ bool, _ bool) bool { return pure })
			return &unit{}
		},
		AnalyzeEdge: func(_ *callGraph, _ callEdge, exit *unit) *unit { return exit },
		SummariesEqual: func(a, b bool) bool { return a == b },
	}

	result := h.Run()
	assert.True(t, result.Converged)
	assert.False(t, result.Summaries["Rec"])
}
