package domains_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facebook/redex-core/internal/domains"
	"github.com/facebook/redex-core/internal/patricia"
)

func TestConstantJoinMeet(t *testing.T) {
	five := domains.NewConstant(5)
	six := domains.NewConstant(6)
	sameFive := domains.NewConstant(5)

	assert.True(t, domains.ConstantBottom[int]().Leq(five))
	assert.True(t, five.Equals(sameFive))
	joined := five.Copy()
	joined.JoinWith(six)
	assert.True(t, joined.IsTop(), "joining distinct constants escalates to top")

	met := five.Copy()
	met.MeetWith(six)
	assert.True(t, met.IsBottom(), "meeting distinct constants collapses to bottom")

	met2 := five.Copy()
	met2.MeetWith(sameFive)
	assert.True(t, met2.Equals(five))
}

func TestIntervalArithmeticAndWidening(t *testing.T) {
	a := domains.NewInterval(0, 10)
	b := domains.NewInterval(5, 20)

	sum := domains.Add(a, b)
	lo, hi := sum.Bounds()
	assert.Equal(t, int64(5), lo)
	assert.Equal(t, int64(30), hi)

	joined := a.Copy()
	joined.JoinWith(b)
	jlo, jhi := joined.Bounds()
	assert.Equal(t, int64(0), jlo)
	assert.Equal(t, int64(20), jhi)

	widened := a.Copy()
	growing := domains.NewInterval(-5, 10)
	widened.WidenWith(growing)
	wlo, whi := widened.Bounds()
	assert.Equal(t, int64(10), whi, "upper bound unchanged since it did not grow")
	assert.Less(t, wlo, int64(-1000), "lower bound that decreased escapes to -infinity")
}

func TestIntervalBottomIsIdentityForJoin(t *testing.T) {
	bot := domains.IntervalBottom()
	v := domains.NewInterval(1, 2)
	joined := bot.Copy()
	joined.JoinWith(v)
	assert.True(t, joined.Equals(v))
}

func TestPowersetJoinMeetInvariant(t *testing.T) {
	codec := patricia.IntCodec{}
	a := domains.NewPowerset[int](codec, 1, 2, 3).WithUnder(patricia.NewSet[int](codec).Add(2))
	b := domains.NewPowerset[int](codec, 2, 3, 4).WithUnder(patricia.NewSet[int](codec).Add(2))

	joined := a.Copy()
	joined.JoinWith(b)
	assert.True(t, joined.Over().Equals(patricia.NewSet[int](codec).Add(1).Add(2).Add(3).Add(4)))
	assert.True(t, joined.Under().Equals(patricia.NewSet[int](codec).Add(2)))

	met := a.Copy()
	met.MeetWith(b)
	assert.True(t, met.Over().Equals(patricia.NewSet[int](codec).Add(2).Add(3)))
	assert.True(t, met.Under().Equals(patricia.NewSet[int](codec).Add(2)))
}

func TestPowersetMeetCollapsesToBottomOnBrokenInvariant(t *testing.T) {
	codec := patricia.IntCodec{}
	// Both sides are their own tightest over/under pair (under == over),
	// so meeting them shrinks the over-approximation without shrinking
	// the under-approximation, breaking U ⊆ O.
	a := domains.NewPowerset[int](codec, 1, 2)
	b := domains.NewPowerset[int](codec, 2, 3)

	met := a.Copy()
	met.MeetWith(b)
	assert.True(t, met.IsBottom())
}

func TestSetDomainLattice(t *testing.T) {
	codec := patricia.IntCodec{}
	a := domains.NewSetDomain[int](codec, 1, 2)
	b := domains.NewSetDomain[int](codec, 2, 3)

	joined := a.Copy()
	joined.JoinWith(b)
	assert.Equal(t, 3, joined.Size())

	met := a.Copy()
	met.MeetWith(b)
	assert.Equal(t, 1, met.Size())
	assert.True(t, met.Contains(2))

	assert.True(t, domains.SetDomainBottom[int](codec).IsBottom())
	assert.True(t, domains.SetDomainTop[int](codec).IsTop())
}

func TestEitherCrossVariantJoinIsTop(t *testing.T) {
	type A = *domains.Constant[int]
	type B = *domains.Constant[string]

	left := domains.NewFirst[A, B](domains.NewConstant(1))
	right := domains.NewSecond[A, B](domains.NewConstant("x"))

	joined := left.Copy()
	joined.JoinWith(right)
	assert.True(t, joined.IsTop())

	met := left.Copy()
	met.MeetWith(right)
	assert.True(t, met.IsBottom())
}

func TestEitherSameVariantJoinsWithinIt(t *testing.T) {
	type A = *domains.Constant[int]
	type B = *domains.Constant[string]

	a := domains.NewFirst[A, B](domains.NewConstant(1))
	b := domains.NewFirst[A, B](domains.NewConstant(2))

	joined := a.Copy()
	joined.JoinWith(b)
	_, ok := joined.First()
	assert.False(t, ok, "a variant that joins to its own top is no longer held as that variant")
	assert.True(t, joined.IsTop(), "distinct constants in the same variant escalate per Constant's own join, and the variant's top is the union's top")
}

func TestEnvironmentMissingKeyIsTop(t *testing.T) {
	codec := patricia.Uint64Codec{}
	env := domains.NewEnvironment[uint64, *domains.Interval](codec, domains.IntervalTop)
	assert.True(t, env.Get(1).IsTop())

	env2 := env.Set(1, domains.NewInterval(0, 5))
	lo, hi := env2.Get(1).Bounds()
	assert.Equal(t, int64(0), lo)
	assert.Equal(t, int64(5), hi)
	assert.True(t, env2.Get(2).IsTop())
}

func TestEnvironmentBindingBottomCollapsesWhole(t *testing.T) {
	codec := patricia.Uint64Codec{}
	env := domains.NewEnvironment[uint64, *domains.Interval](codec, domains.IntervalTop)
	env = env.Set(1, domains.IntervalBottom())
	assert.True(t, env.IsBottom())
}

func TestEnvironmentJoinIsIntersectionLike(t *testing.T) {
	codec := patricia.Uint64Codec{}
	a := domains.NewEnvironment[uint64, *domains.Interval](codec, domains.IntervalTop).
		Set(1, domains.NewInterval(0, 1)).Set(2, domains.NewInterval(0, 1))
	b := domains.NewEnvironment[uint64, *domains.Interval](codec, domains.IntervalTop).
		Set(1, domains.NewInterval(5, 6))

	joined := a.Copy()
	joined.JoinWith(b)
	lo, hi := joined.Get(1).Bounds()
	assert.Equal(t, int64(0), lo)
	assert.Equal(t, int64(6), hi)
	assert.True(t, joined.Get(2).IsTop(), "key only bound on one side reverts to top")
}

func TestEnvironmentMeetCollapsesWholeOnDisjointBinding(t *testing.T) {
	codec := patricia.Uint64Codec{}
	a := domains.NewEnvironment[uint64, *domains.Interval](codec, domains.IntervalTop).
		Set(1, domains.NewInterval(0, 1))
	b := domains.NewEnvironment[uint64, *domains.Interval](codec, domains.IntervalTop).
		Set(1, domains.NewInterval(2, 3))

	a.MeetWith(b)
	assert.True(t, a.IsBottom(), "meeting disjoint bindings at the same key must collapse the whole environment to bottom, not just drop the binding")
}

func TestPartitionMissingLabelIsBottom(t *testing.T) {
	codec := patricia.Uint64Codec{}
	part := domains.NewPartition[uint64, *domains.Interval](codec, domains.IntervalBottom)
	assert.True(t, part.Get(1).IsBottom())

	part2 := part.Set(1, domains.NewInterval(0, 5))
	lo, hi := part2.Get(1).Bounds()
	assert.Equal(t, int64(0), lo)
	assert.Equal(t, int64(5), hi)
	assert.True(t, part2.Get(2).IsBottom())
}

func TestPartitionJoinIsUnionLike(t *testing.T) {
	codec := patricia.Uint64Codec{}
	a := domains.NewPartition[uint64, *domains.Interval](codec, domains.IntervalBottom).
		Set(1, domains.NewInterval(0, 1))
	b := domains.NewPartition[uint64, *domains.Interval](codec, domains.IntervalBottom).
		Set(2, domains.NewInterval(5, 6))

	joined := a.Copy()
	joined.JoinWith(b)
	lo1, hi1 := joined.Get(1).Bounds()
	assert.Equal(t, int64(0), lo1)
	assert.Equal(t, int64(1), hi1)
	lo2, hi2 := joined.Get(2).Bounds()
	assert.Equal(t, int64(5), lo2)
	assert.Equal(t, int64(6), hi2)
}

func TestFiniteLatticeDiamond(t *testing.T) {
	// Diamond: 0 (bottom) < {1,2} < 3 (top)
	lat := domains.NewFiniteLattice(4, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}})
	bottom := lat.Element(0)
	top := lat.Element(3)
	a := lat.Element(1)
	b := lat.Element(2)

	assert.True(t, bottom.IsBottom())
	assert.True(t, top.IsTop())
	assert.True(t, a.Leq(top))
	assert.True(t, bottom.Leq(a))

	joined := a.Copy()
	joined.JoinWith(b)
	assert.True(t, joined.Equals(top))

	met := a.Copy()
	met.MeetWith(b)
	assert.True(t, met.Equals(bottom))
}
