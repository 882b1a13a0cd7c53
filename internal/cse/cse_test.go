package cse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facebook/redex-core/internal/asmtext"
	"github.com/facebook/redex-core/internal/cse"
	"github.com/facebook/redex-core/internal/ir"
)

func newMethod(t *testing.T, src string, registerSize int) *ir.Method {
	t.Helper()
	code, err := asmtext.Build(src, registerSize)
	require.NoError(t, err)
	return &ir.Method{
		Ref:      ir.MethodRef{Class: "Foo", Name: "m", Proto: ir.Proto{Return: "V"}},
		Class:    "Foo",
		CodeBody: code,
	}
}

func TestAnalyzeMethodForwardsRepeatedFieldRead(t *testing.T) {
	// spec.md §8 scenario 3: the second iget-object reads the same field
	// off the same base with no intervening barrier, so it must forward
	// from the first.
	m := newMethod(t, `
		const v0, 0
		iget-object v1, v2, Foo.field
		iget-object v3, v2, Foo.field
		return-object v1
	`, 4)

	scope := ir.NewScope([]*ir.Class{{Name: "Foo", Methods: []*ir.Method{m}}})
	ss := cse.NewSharedState(scope, ir.NewScopeResolver(scope), nil, cse.DefaultSafeTypes)

	result := cse.AnalyzeMethod(m, ss)
	require.Len(t, result.Forwards, 1, "exactly one redundant recomputation: the second iget-object")

	insns := m.Code().Instructions()
	fwd := result.Forwards[0]
	assert.Same(t, insns[1], fwd.Earlier, "the first iget-object is the definer")
	assert.Same(t, insns[2], fwd.Later, "the second iget-object is the redundant consumer")
	assert.Equal(t, ir.Reg(3), fwd.Dest)
	assert.False(t, fwd.Wide)

	n := cse.Apply(m, result.Forwards)
	assert.Equal(t, 1, n)

	cfg := m.Code().CFG()
	require.Len(t, cfg.Blocks, 1)
	block := cfg.Blocks[0]
	// original 4 instructions + one save move after the definer + one
	// restore move after the consumer; nothing deleted, control flow
	// untouched.
	require.Len(t, block.Instructions, 6)
	assert.Same(t, insns[0], block.Instructions[0])
	assert.Same(t, insns[1], block.Instructions[1])
	save := block.Instructions[2]
	assert.Equal(t, ir.OpMoveObject, save.Op, "iget-object's field type is a reference type")
	assert.Equal(t, []ir.Reg{insns[1].Dest}, save.Srcs)
	temp := save.Dest
	assert.Same(t, insns[2], block.Instructions[3])
	restore := block.Instructions[4]
	assert.Equal(t, ir.OpMoveObject, restore.Op)
	assert.Equal(t, []ir.Reg{temp}, restore.Srcs)
	assert.Equal(t, insns[2].Dest, restore.Dest)
	assert.Same(t, insns[3], block.Instructions[5])
}

func TestAnalyzeMethodDoesNotForwardAcrossBarrier(t *testing.T) {
	// spec.md §8 scenario 4: the intervening invoke to an unknown method
	// may mutate the field, so the second iget must not reuse the first.
	m := newMethod(t, `
		iget v0, v2, Foo.field
		invoke-virtual {v2}, Foo.mutate()V
		iget v1, v2, Foo.field
	`, 3)

	scope := ir.NewScope([]*ir.Class{{Name: "Foo", Methods: []*ir.Method{m}}})
	ss := cse.NewSharedState(scope, ir.NewScopeResolver(scope), nil, cse.DefaultSafeTypes)

	result := cse.AnalyzeMethod(m, ss)
	assert.Empty(t, result.Forwards, "the invoke to an unresolvable external method is a conservative barrier")

	n := cse.Apply(m, result.Forwards)
	assert.Equal(t, 0, n)
	assert.Len(t, m.Code().CFG().Blocks[0].Instructions, 3, "no rewrite means no instructions inserted")
}

func TestAnalyzeMethodForwardsAcrossSafeMethodCall(t *testing.T) {
	// An invoke to a method the caller explicitly lists as safe is not a
	// barrier, so the redundant read downstream of it still forwards.
	m := newMethod(t, `
		iget v0, v2, Foo.field
		invoke-static {}, java.lang.Math.abs(I)I
		iget v1, v2, Foo.field
	`, 3)

	safeAbs := ir.MethodRef{Class: "java.lang.Math", Name: "abs", Proto: ir.Proto{Return: "I", Params: []ir.Type{"I"}}}
	scope := ir.NewScope([]*ir.Class{{Name: "Foo", Methods: []*ir.Method{m}}})
	ss := cse.NewSharedState(scope, ir.NewScopeResolver(scope), []ir.MethodRef{safeAbs}, cse.DefaultSafeTypes)

	result := cse.AnalyzeMethod(m, ss)
	require.Len(t, result.Forwards, 1)

	insns := m.Code().Instructions()
	assert.Same(t, insns[0], result.Forwards[0].Earlier)
	assert.Same(t, insns[2], result.Forwards[0].Later)
}
