// Package wto computes a Weak Topological Ordering of a directed graph
// per Bourdoncle's algorithm ("Efficient chaotic iteration strategies
// with widenings", 1993), grounded on
// sparta/include/WeakTopologicalOrdering.h. This is the decomposition
// internal/fixpoint iterates over: a sequence of components, each
// either a single vertex or a nested SCC with a designated head.
package wto

import "github.com/facebook/redex-core/internal/graph"

// Component is one element of a weak topological ordering: either a
// single vertex (IsSCC == false) or a strongly-connected component with
// a head vertex and a nested ordering of the rest of the component
// (IsSCC == true).
type Component[N comparable] struct {
	IsSCC  bool
	Vertex N   // valid when !IsSCC
	Head   N   // valid when IsSCC
	Inner  []Component[N]
}

// Build returns the weak topological ordering of g, rooted at
// gi.Entry(g).
func Build[G any, N comparable, E any](gi graph.Interface[G, N, E], g G) []Component[N] {
	b := &builder[G, N, E]{
		gi:    gi,
		g:     g,
		dfn:   make(map[N]int),
		stack: nil,
	}
	var partition []Component[N]
	b.visit(gi.Entry(g), &partition)
	return partition
}

const infinity = 1 << 62

type builder[G any, N comparable, E any] struct {
	gi    graph.Interface[G, N, E]
	g     G
	dfn   map[N]int
	num   int
	stack []N
}

func (b *builder[G, N, E]) successors(n N) []N {
	edges := b.gi.Successors(b.g, n)
	out := make([]N, len(edges))
	for i, e := range edges {
		out[i] = b.gi.Target(b.g, e)
	}
	return out
}

// visit implements Bourdoncle's recursive `visit`, prepending completed
// components onto partition and returning the vertex's head value
// (the lowest dfn reachable via a back-edge still on the stack).
func (b *builder[G, N, E]) visit(v N, partition *[]Component[N]) int {
	b.stack = append(b.stack, v)
	b.num++
	b.dfn[v] = b.num
	head := b.dfn[v]
	loop := false
	for _, succ := range b.successors(v) {
		var min int
		if d, ok := b.dfn[succ]; ok && d != 0 {
			min = d
		} else {
			min = b.visit(succ, partition)
		}
		if min <= head {
			head = min
			loop = true
		}
	}
	if head == b.dfn[v] {
		b.dfn[v] = infinity
		element := b.pop()
		if loop {
			for element != v {
				b.dfn[element] = 0
				element = b.pop()
			}
			b.buildComponent(v, partition)
		} else {
			*partition = append([]Component[N]{{Vertex: v}}, *partition...)
		}
	}
	return head
}

// buildComponent implements Bourdoncle's `component`: re-explores the
// successors of the SCC head that have not yet been assigned a
// permanent dfn, nesting their resulting partition inside the SCC.
func (b *builder[G, N, E]) buildComponent(v N, partition *[]Component[N]) {
	var inner []Component[N]
	for _, succ := range b.successors(v) {
		if d, ok := b.dfn[succ]; !ok || d == 0 {
			b.visit(succ, &inner)
		}
	}
	scc := Component[N]{IsSCC: true, Head: v, Inner: inner}
	*partition = append([]Component[N]{scc}, *partition...)
}

func (b *builder[G, N, E]) pop() N {
	n := len(b.stack) - 1
	v := b.stack[n]
	b.stack = b.stack[:n]
	return v
}
