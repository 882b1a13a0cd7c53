package wto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facebook/redex-core/internal/wto"
)

// edge is a (from, to) pair; testGraph is an adjacency-list graph over
// int vertex ids, satisfying graph.Interface[*testGraph, int, edge].
type edge struct{ from, to int }

type testGraph struct {
	entry int
	adj   map[int][]int
}

func (g *testGraph) Entry(_ *testGraph) int { return g.entry }
func (g *testGraph) Successors(_ *testGraph, n int) []edge {
	var out []edge
	for _, to := range g.adj[n] {
		out = append(out, edge{n, to})
	}
	return out
}
func (g *testGraph) Predecessors(_ *testGraph, n int) []edge {
	var out []edge
	for from, tos := range g.adj {
		for _, to := range tos {
			if to == n {
				out = append(out, edge{from, to})
			}
		}
	}
	return out
}
func (g *testGraph) Source(_ *testGraph, e edge) int { return e.from }
func (g *testGraph) Target(_ *testGraph, e edge) int { return e.to }

func countVertices(components []wto.Component[int]) int {
	n := 0
	for _, c := range components {
		if c.IsSCC {
			n += 1 + countVertices(c.Inner)
		} else {
			n++
		}
	}
	return n
}

func findSCCHeads(components []wto.Component[int]) []int {
	var heads []int
	for _, c := range components {
		if c.IsSCC {
			heads = append(heads, c.Head)
			heads = append(heads, findSCCHeads(c.Inner)...)
		}
	}
	return heads
}

func TestLinearChainHasNoSCCs(t *testing.T) {
	g := &testGraph{entry: 1, adj: map[int][]int{1: {2}, 2: {3}, 3: {}}}
	components := wto.Build[*testGraph, int, edge](g, g)
	assert.Equal(t, 3, countVertices(components))
	assert.Empty(t, findSCCHeads(components))
}

func TestSimpleLoopIsDetectedAsSCC(t *testing.T) {
	// 1 -> 2 -> 3 -> 2 (loop on 2,3), 3 -> 4 (exit)
	g := &testGraph{entry: 1, adj: map[int][]int{
		1: {2},
		2: {3},
		3: {2, 4},
		4: {},
	}}
	components := wto.Build[*testGraph, int, edge](g, g)
	heads := findSCCHeads(components)
	assert.Equal(t, []int{2}, heads)
	assert.Equal(t, 4, countVertices(components))
}

func TestDirectSelfLoopIsDetectedAsSCC(t *testing.T) {
	// 1 -> 2 -> 2 (self-loop), 2 -> 3 (exit).
	g := &testGraph{entry: 1, adj: map[int][]int{
		1: {2},
		2: {2, 3},
		3: {},
	}}
	components := wto.Build[*testGraph, int, edge](g, g)
	heads := findSCCHeads(components)
	assert.Equal(t, []int{2}, heads, "a vertex with a direct self-edge must form its own size-1 SCC")
	assert.Equal(t, 3, countVertices(components))
}

func TestNestedLoopsProduceNestedSCCs(t *testing.T) {
	// Outer loop 1<->2, inner loop 2<->3.
	g := &testGraph{entry: 1, adj: map[int][]int{
		1: {2},
		2: {3, 1},
		3: {2},
	}}
	components := wto.Build[*testGraph, int, edge](g, g)
	assert.Len(t, components, 1)
	assert.True(t, components[0].IsSCC)
	assert.Equal(t, 1, components[0].Head)
	innerHeads := findSCCHeads(components[0].Inner)
	assert.Equal(t, []int{2}, innerHeads)
}
