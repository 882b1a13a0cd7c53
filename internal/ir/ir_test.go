package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facebook/redex-core/internal/ir"
)

func barProto() ir.Proto { return ir.Proto{Return: "V"} }

func buildScope() *ir.Scope {
	base := &ir.Class{
		Name:   "Lcom/foo/Base;",
		Access: ir.AccPublic,
		Methods: []*ir.Method{
			{Ref: ir.MethodRef{Class: "Lcom/foo/Base;", Name: "bar", Proto: barProto()}, Access: ir.AccPublic, Class: "Lcom/foo/Base;"},
		},
	}
	derived := &ir.Class{
		Name:   "Lcom/foo/Derived;",
		Super:  "Lcom/foo/Base;",
		Access: ir.AccPublic,
	}
	return ir.NewScope([]*ir.Class{base, derived})
}

func TestResolverDirectOnlyLooksInExactClass(t *testing.T) {
	scope := buildScope()
	r := ir.NewScopeResolver(scope)

	_, ok := r.ResolveMethod(ir.MethodRef{Class: "Lcom/foo/Derived;", Name: "bar", Proto: barProto()}, ir.SearchDirect)
	assert.False(t, ok, "Direct search must not walk the superclass chain")
}

func TestResolverVirtualWalksSuperclassChain(t *testing.T) {
	scope := buildScope()
	r := ir.NewScopeResolver(scope)

	m, ok := r.ResolveMethod(ir.MethodRef{Class: "Lcom/foo/Derived;", Name: "bar", Proto: barProto()}, ir.SearchVirtual)
	assert.True(t, ok)
	assert.Equal(t, ir.Type("Lcom/foo/Base;"), m.Class)
}

func TestResolverUnknownMethodFails(t *testing.T) {
	scope := buildScope()
	r := ir.NewScopeResolver(scope)

	_, ok := r.ResolveMethod(ir.MethodRef{Class: "Lcom/foo/Derived;", Name: "missing", Proto: barProto()}, ir.SearchAny)
	assert.False(t, ok)
}

func TestCFGEdgesWireBothAdjacencyLists(t *testing.T) {
	cfg := ir.NewCFG()
	a := cfg.AddBlock()
	b := cfg.AddBlock()
	cfg.EntryBlock = a
	edge := cfg.AddEdge(a, b, ir.EdgeFallthrough, "")

	assert.Equal(t, []*ir.BlockEdge{edge}, a.Succs)
	assert.Equal(t, []*ir.BlockEdge{edge}, b.Preds)
	assert.Equal(t, a, cfg.Entry(cfg))
	assert.Equal(t, b, cfg.Target(cfg, edge))
	assert.Equal(t, a, cfg.Source(cfg, edge))
}

func TestBlockAppendAssignsSequenceNumbers(t *testing.T) {
	b := &ir.Block{}
	i0 := &ir.Instruction{Op: ir.OpConst, Dest: 0}
	i1 := &ir.Instruction{Op: ir.OpReturnVoid}
	b.Append(i0)
	b.Append(i1)

	assert.Equal(t, 0, i0.Seq())
	assert.Equal(t, 1, i1.Seq())
	assert.Equal(t, i1, b.Last())
}

func TestOpcodeClassification(t *testing.T) {
	assert.True(t, ir.OpAddInt.IsCommutative())
	assert.False(t, ir.OpIgetObject.IsCommutative())
	assert.True(t, ir.OpInvokeVirtual.IsPositional())
	assert.True(t, ir.OpIgetObject.IsIget())
	assert.True(t, ir.OpIputObject.IsIput())
	assert.True(t, ir.OpMove.IsInternal())
	assert.True(t, ir.OpReturnObject.IsReturn())
	assert.True(t, ir.OpIputObject.IsBarrierCandidate())
	assert.False(t, ir.OpIgetObject.IsBarrierCandidate())
}
