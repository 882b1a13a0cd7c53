package asmtext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facebook/redex-core/internal/asmtext"
	"github.com/facebook/redex-core/internal/ir"
)

func TestBuildSimpleMethodHasOneBlock(t *testing.T) {
	// spec.md §8 scenario 3: "CSE on a simple method".
	src := `
		const v0, 0
		iget-object v1, v2, Foo.field
		iget-object v3, v2, Foo.field
		return-object v1
	`
	code, err := asmtext.Build(src, 4)
	require.NoError(t, err)

	cfg := code.CFG()
	require.Len(t, cfg.Blocks, 1, "no branches, so the whole listing is one block")
	assert.Same(t, cfg.Blocks[0], cfg.EntryBlock)

	insns := code.Instructions()
	require.Len(t, insns, 4)

	assert.Equal(t, ir.OpConst, insns[0].Op)
	assert.Equal(t, ir.Reg(0), insns[0].Dest)
	assert.True(t, insns[0].HasLiteral())
	assert.Equal(t, int64(0), insns[0].Operand.Literal)

	assert.Equal(t, ir.OpIgetObject, insns[1].Op)
	assert.Equal(t, ir.Reg(1), insns[1].Dest)
	assert.Equal(t, []ir.Reg{2}, insns[1].Srcs)
	require.True(t, insns[1].HasField())
	assert.Equal(t, ir.FieldRef{Class: "Foo", Name: "field", FType: "Ljava/lang/Object;"}, insns[1].Operand.Field)

	assert.True(t, insns[2].Operand.Field.Equals(insns[1].Operand.Field), "both igets read the same field")

	assert.Equal(t, ir.OpReturnObject, insns[3].Op)
	assert.Equal(t, []ir.Reg{1}, insns[3].Srcs)
}

func TestBuildCseBarrierScenario(t *testing.T) {
	// spec.md §8 scenario 4: "CSE barrier" — an intervening call that
	// may mutate the field must prevent the second iget from reusing
	// the first's value.
	src := `
		iget v0, v2, Foo.field
		invoke-virtual {v2}, Foo.mutate()V
		iget v1, v2, Foo.field
	`
	code, err := asmtext.Build(src, 3)
	require.NoError(t, err)

	insns := code.Instructions()
	require.Len(t, insns, 3)

	assert.True(t, insns[0].Op.IsIget())
	require.True(t, insns[1].Op.IsInvoke())
	require.True(t, insns[1].HasMethod())
	assert.Equal(t, ir.MethodRef{Class: "Foo", Name: "mutate", Proto: ir.Proto{Return: "V"}}, insns[1].Operand.Method)
	assert.Equal(t, []ir.Reg{2}, insns[1].Srcs)
	assert.True(t, insns[2].Op.IsIget())
}

func TestBuildSplitsBlocksOnLabelsAndBranches(t *testing.T) {
	src := `
		if-eq v0, v1, L1
		const v2, 1
		goto L2
	L1:
		const v2, 2
	L2:
		return v2
	`
	code, err := asmtext.Build(src, 3)
	require.NoError(t, err)

	cfg := code.CFG()
	require.Len(t, cfg.Blocks, 4, "if-eq, fallthrough-arm, L1-arm, and the shared return block")

	entry := cfg.EntryBlock
	require.Len(t, entry.Succs, 2, "if-eq keeps its fallthrough plus its branch target")

	kinds := map[ir.EdgeKind]int{}
	for _, e := range entry.Succs {
		kinds[e.Kind]++
	}
	assert.Equal(t, 1, kinds[ir.EdgeFallthrough])
	assert.Equal(t, 1, kinds[ir.EdgeBranch])

	returnBlock := cfg.Blocks[3]
	assert.Equal(t, ir.OpReturn, returnBlock.Last().Op)
	assert.Len(t, returnBlock.Preds, 2, "both arms rejoin at the return block")
}

func TestBuildRejectsUndefinedBranchTarget(t *testing.T) {
	_, err := asmtext.Build("goto Nowhere", 1)
	assert.Error(t, err)
}
