package inliner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facebook/redex-core/internal/asmtext"
	"github.com/facebook/redex-core/internal/inliner"
)

// TestInlinedCostSwitchSurchargeScalesWithSuccessors guards against
// spec.md §4.6's switch surcharge ("+4+3·successors") collapsing to a
// flat +4, per original_source/libredex/Inliner.cpp:552-558's
// `4 + 3 * block->succs().size()`.
func TestInlinedCostSwitchSurchargeScalesWithSuccessors(t *testing.T) {
	oneArm, err := asmtext.Build(`
		switch v0, L1
		return-void
	L1:
		return-void
	`, 1)
	require.NoError(t, err)

	threeArms, err := asmtext.Build(`
		switch v0, L1, L2, L3
		return-void
	L1:
		return-void
	L2:
		return-void
	L3:
		return-void
	`, 1)
	require.NoError(t, err)

	costOne := inliner.InlinedCost(oneArm)
	costThree := inliner.InlinedCost(threeArms)

	// Only the switch block's successor count differs (1 vs 3 targets);
	// every return-void still costs 0 (internal opcode), so the whole
	// delta must come from the 3-per-successor term of the surcharge.
	assert.Equal(t, 3*(3-1), costThree-costOne, "switch cost must scale with successor count, not stay flat")
}
