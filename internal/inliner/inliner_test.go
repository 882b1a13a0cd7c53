package inliner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facebook/redex-core/internal/asmtext"
	"github.com/facebook/redex-core/internal/inliner"
	"github.com/facebook/redex-core/internal/ir"
)

func buildMethod(t *testing.T, class ir.Type, name string, proto ir.Proto, src string, registerSize int) *ir.Method {
	t.Helper()
	code, err := asmtext.Build(src, registerSize)
	require.NoError(t, err)
	return &ir.Method{
		Ref:      ir.MethodRef{Class: class, Name: name, Proto: proto},
		Class:    class,
		CodeBody: code,
	}
}

func TestInlinerCrossContainerRefusal(t *testing.T) {
	// spec.md §8 scenario 7: a caller in container A invokes a callee in
	// container B that itself references a type in B.
	callee := buildMethod(t, "B.Callee", "helper", ir.Proto{Return: "V"}, `
		new-instance v0, B.Helper
		return-void
	`, 1)

	caller := buildMethod(t, "A.Caller", "run", ir.Proto{Return: "V"}, `
		invoke-static {}, B.Callee.helper()V
		return-void
	`, 0)

	classA := &ir.Class{Name: "A.Caller", Methods: []*ir.Method{caller}, Container: "A"}
	classB := &ir.Class{Name: "B.Callee", Methods: []*ir.Method{callee}, Container: "B"}
	classHelper := &ir.Class{Name: "B.Helper", Container: "B"}
	scope := ir.NewScope([]*ir.Class{classA, classB, classHelper})
	resolver := ir.NewScopeResolver(scope)

	candidates := map[ir.MethodRef]*ir.Method{callee.Ref: callee}
	before := len(caller.Code().Instructions())
	calleeInsnsBefore := len(callee.Code().Instructions())

	legality := inliner.NewLegality(scope, resolver, inliner.DefaultConfig(), inliner.Intra)
	cm := inliner.BuildCandidateMap(scope, candidates, resolver, inliner.Intra)

	assert.False(t, cm.IsCallee(callee.Ref), "Intra mode drops a cross-container edge before legality is even consulted")

	reason := legality.Check(caller, callee, caller.Code().Instructions()[0])
	assert.Equal(t, inliner.CrossStoreReference, reason)

	assert.Equal(t, before, len(caller.Code().Instructions()), "caller untouched")
	assert.Equal(t, calleeInsnsBefore, len(callee.Code().Instructions()), "callee untouched")
}

func TestInlinerMakeStaticOrdering(t *testing.T) {
	// spec.md §8 scenario 8: two candidate direct methods in class Foo,
	// bar() and bar(Foo), both promoted to static deterministically.
	barNoArg := buildMethod(t, "Foo", "bar", ir.Proto{Return: "V"}, `return-void`, 1)
	barNoArg.Access = ir.AccPrivate

	barOneArg := buildMethod(t, "Foo", "bar", ir.Proto{Return: "V", Params: []ir.Type{"Foo"}}, `return-void`, 2)
	barOneArg.Access = ir.AccPrivate

	// helperA/helperB stand in for the two distinct callee bodies that,
	// once inlined into a caller outside Foo, would carry bar()/bar(Foo)'s
	// invoke-direct calls out of Foo with them.
	helperA := buildMethod(t, "Foo", "helperA", ir.Proto{Return: "V"}, `
		invoke-direct {v0}, Foo.bar()V
		return-void
	`, 1)
	helperB := buildMethod(t, "Foo", "helperB", ir.Proto{Return: "V"}, `
		invoke-direct {v0, v1}, Foo.bar(Foo)V
		return-void
	`, 2)

	caller := buildMethod(t, "Bar", "run", ir.Proto{Return: "V"}, `
		invoke-static {}, Foo.helperA()V
		invoke-static {}, Foo.helperB()V
		return-void
	`, 0)

	classFoo := &ir.Class{Name: "Foo", Methods: []*ir.Method{barNoArg, barOneArg, helperA, helperB}}
	classBar := &ir.Class{Name: "Bar", Methods: []*ir.Method{caller}}
	scope := ir.NewScope([]*ir.Class{classFoo, classBar})
	resolver := ir.NewScopeResolver(scope)

	legality := inliner.NewLegality(scope, resolver, inliner.DefaultConfig(), inliner.Intra)
	callsite := caller.Code().Instructions()[0]
	assert.Equal(t, inliner.CreateVMethod, legality.Check(caller, helperA, callsite))
	assert.Equal(t, inliner.CreateVMethod, legality.Check(caller, helperB, callsite))
	require.Len(t, legality.ToPromote, 2)

	promoted := inliner.PromoteToStatic(scope, legality.ToPromote)
	require.Len(t, promoted, 2)

	assert.True(t, promoted[0].Ref.Proto.Equals(ir.Proto{Return: "V"}), "no-arg bar sorts before the one-arg overload")
	assert.True(t, promoted[1].Ref.Proto.Equals(ir.Proto{Return: "V", Params: []ir.Type{"Foo"}}))
	for _, m := range promoted {
		assert.True(t, m.Access.IsStatic())
	}

	assert.Equal(t, ir.OpInvokeStatic, helperA.Code().Instructions()[0].Op, "every call site targeting a promoted method is rewritten")
	assert.Equal(t, ir.OpInvokeStatic, helperB.Code().Instructions()[0].Op)
}

func TestInlinerSplicesSingleCallsiteCallee(t *testing.T) {
	callee := buildMethod(t, "Foo", "square", ir.Proto{Return: "I", Params: []ir.Type{"I"}}, `
		load-param v0
		mul-int v1, v0, v0
		return v1
	`, 2)

	caller := buildMethod(t, "Foo", "run", ir.Proto{Return: "I"}, `
		const v0, 5
		invoke-static {v0}, Foo.square(I)I
		move-result v1
		return v1
	`, 2)

	class := &ir.Class{Name: "Foo", Methods: []*ir.Method{callee, caller}}
	scope := ir.NewScope([]*ir.Class{class})
	resolver := ir.NewScopeResolver(scope)

	callsite := caller.Code().Instructions()[1]
	require.True(t, callsite.Op.IsInvoke())

	legality := inliner.NewLegality(scope, resolver, inliner.DefaultConfig(), inliner.Intra)
	reason := legality.Check(caller, callee, callsite)
	require.Equal(t, inliner.Ok, reason)

	inliner.Splice(caller, callee, callsite)

	cfg := caller.Code().CFG()
	var ops []ir.Opcode
	for _, b := range cfg.Blocks {
		for _, insn := range b.Instructions {
			ops = append(ops, insn.Op)
		}
	}
	assert.Contains(t, ops, ir.OpMulInt, "callee body is now spliced into the caller")
	assert.NotContains(t, ops, ir.OpInvokeStatic, "the original call site is gone")
	assert.NotContains(t, ops, ir.OpMoveResult, "move-result is erased along with the call")

	var foundReturn int
	for _, b := range cfg.Blocks {
		for _, insn := range b.Instructions {
			if insn.Op.IsReturn() {
				foundReturn++
			}
		}
	}
	assert.Equal(t, 1, foundReturn, "caller's own return is the only return instruction left")
}
