package fixpoint

import "github.com/facebook/redex-core/internal/graph"

// Reverse wraps a graph.Interface so that Entry/Successors/Predecessors
// and Source/Target are flipped, turning a forward iterator into a
// backward one. The reversed graph's "entry" is supplied explicitly
// since a backward analysis's root (e.g. a CFG's exit block) is not
// generally derivable from the forward graph's Entry.
type Reverse[G any, N comparable, E any] struct {
	Inner     graph.Interface[G, N, E]
	RootNode  N
}

func (r Reverse[G, N, E]) Entry(g G) N                { return r.RootNode }
func (r Reverse[G, N, E]) Successors(g G, n N) []E    { return r.Inner.Predecessors(g, n) }
func (r Reverse[G, N, E]) Predecessors(g G, n N) []E  { return r.Inner.Successors(g, n) }
func (r Reverse[G, N, E]) Source(g G, e E) N          { return r.Inner.Target(g, e) }
func (r Reverse[G, N, E]) Target(g G, e E) N          { return r.Inner.Source(g, e) }
