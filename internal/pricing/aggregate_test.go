package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var aggNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func activeWindow() func(*ProductSnapshot) {
	return withWindow(aggNow.Add(-time.Hour), aggNow.Add(time.Hour))
}

func line(qty int, opts ...func(*ProductSnapshot)) LineItem {
	p := snapshot(opts...)
	return LineItem{Product: &p, Quantity: qty}
}

func eq(t *testing.T, want int64, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(want).Equal(got), "%s: got %s want %d", msg, got, want)
}

func TestAggregateActivePromotionMemberCart(t *testing.T) {
	// regular 100 / member 80 / promo 60, promotion active, user is member:
	// pays the promotional price and accrues nothing.
	sum := Aggregate([]LineItem{line(1, activeWindow())}, true, DefaultMembershipConfig(), aggNow)

	require.Len(t, sum.Lines, 1)
	eq(t, 60, sum.Lines[0].UnitPrice, "unit price")
	assert.Equal(t, KindPromotional, sum.Lines[0].PriceKind)
	assert.False(t, sum.Lines[0].Qualifies)
	eq(t, 60, sum.ApplicableSubtotal, "applicable subtotal")
	eq(t, 0, sum.QualifyingTotal, "qualifying total")
	assert.Equal(t, 0, sum.MembershipProgress)
}

func TestAggregateScheduledPromotion(t *testing.T) {
	items := []LineItem{line(1, withWindow(aggNow.Add(time.Hour), aggNow.Add(48*time.Hour)))}
	cfg := DefaultMembershipConfig()

	guest := Aggregate(items, false, cfg, aggNow)
	require.Len(t, guest.Lines, 1)
	eq(t, 100, guest.Lines[0].UnitPrice, "guest unit price")
	assert.Equal(t, KindRegular, guest.Lines[0].PriceKind)
	assert.True(t, guest.Lines[0].Qualifies)

	member := Aggregate(items, true, cfg, aggNow)
	require.Len(t, member.Lines, 1)
	eq(t, 80, member.Lines[0].UnitPrice, "member unit price")
	assert.Equal(t, KindMember, member.Lines[0].PriceKind)
	assert.True(t, member.Lines[0].Qualifies)
}

func TestAggregateExpiredPromotion(t *testing.T) {
	items := []LineItem{line(1, withWindow(aggNow.Add(-48*time.Hour), aggNow.Add(-time.Hour)))}
	cfg := DefaultMembershipConfig()

	guest := Aggregate(items, false, cfg, aggNow)
	eq(t, 100, guest.Lines[0].UnitPrice, "guest unit price")
	assert.True(t, guest.Lines[0].Qualifies)

	member := Aggregate(items, true, cfg, aggNow)
	eq(t, 80, member.Lines[0].UnitPrice, "member unit price")
	assert.True(t, member.Lines[0].Qualifies)
}

func TestAggregateThresholdExactlyMet(t *testing.T) {
	// qualifying total 80 against threshold 80.
	items := []LineItem{line(1, func(p *ProductSnapshot) {
		p.RegularPrice = decimal.NewFromInt(80)
		p.MemberPrice = decimal.NewFromInt(80)
	})}
	sum := Aggregate(items, false, DefaultMembershipConfig(), aggNow)

	eq(t, 80, sum.QualifyingTotal, "qualifying total")
	assert.True(t, sum.IsEligibleForMembership)
	assert.Equal(t, 100, sum.MembershipProgress)
	eq(t, 0, sum.AmountNeededForMembership, "amount needed")
}

func TestAggregateHalfwayToThreshold(t *testing.T) {
	items := []LineItem{line(1, func(p *ProductSnapshot) {
		p.RegularPrice = decimal.NewFromInt(40)
		p.MemberPrice = decimal.NewFromInt(40)
	})}
	sum := Aggregate(items, false, DefaultMembershipConfig(), aggNow)

	eq(t, 40, sum.QualifyingTotal, "qualifying total")
	assert.False(t, sum.IsEligibleForMembership)
	assert.Equal(t, 50, sum.MembershipProgress)
	eq(t, 40, sum.AmountNeededForMembership, "amount needed")
}

func TestAggregateSkipsStaleEntries(t *testing.T) {
	inactive := snapshot(func(p *ProductSnapshot) { p.IsActive = false })
	items := []LineItem{
		{Product: nil, Quantity: 2},
		{Product: &inactive, Quantity: 1},
		{Product: func() *ProductSnapshot { p := snapshot(); return &p }(), Quantity: 0},
		line(2),
	}
	sum := Aggregate(items, false, DefaultMembershipConfig(), aggNow)

	require.Len(t, sum.Lines, 1)
	assert.Equal(t, 2, sum.Lines[0].Quantity)
	eq(t, 200, sum.Subtotal, "subtotal")
}

func TestAggregateQuantitiesAndSavings(t *testing.T) {
	items := []LineItem{
		line(3),               // 3 x 100/80
		line(2, activeWindow()), // 2 x 60 promo
	}
	sum := Aggregate(items, false, DefaultMembershipConfig(), aggNow)

	eq(t, 420, sum.Subtotal, "subtotal")             // 300 + 120
	eq(t, 360, sum.MemberSubtotal, "member subtotal") // 240 + 120
	eq(t, 420, sum.ApplicableSubtotal, "applicable subtotal")
	eq(t, 300, sum.QualifyingTotal, "qualifying total") // promo lines excluded
	eq(t, 60, sum.PotentialSavings, "potential savings")
	assert.True(t, sum.IsEligibleForMembership)
}

func TestAggregateProgressMonotonicAndClamped(t *testing.T) {
	cfg := DefaultMembershipConfig()
	prev := -1
	for qty := 0; qty <= 5; qty++ {
		items := []LineItem{line(qty, func(p *ProductSnapshot) {
			p.RegularPrice = decimal.NewFromInt(30)
			p.MemberPrice = decimal.NewFromInt(30)
		})}
		sum := Aggregate(items, false, cfg, aggNow)
		assert.GreaterOrEqual(t, sum.MembershipProgress, prev, "progress must not decrease as spend grows")
		assert.LessOrEqual(t, sum.MembershipProgress, 100)
		assert.GreaterOrEqual(t, sum.MembershipProgress, 0)
		prev = sum.MembershipProgress
	}
}

func TestAggregateEmptyCart(t *testing.T) {
	sum := Aggregate(nil, false, DefaultMembershipConfig(), aggNow)
	eq(t, 0, sum.Subtotal, "subtotal")
	eq(t, 0, sum.QualifyingTotal, "qualifying total")
	assert.False(t, sum.IsEligibleForMembership)
	assert.Equal(t, 0, sum.MembershipProgress)
	eq(t, 80, sum.AmountNeededForMembership, "amount needed")
}

func TestAggregateProgressRounding(t *testing.T) {
	// 33.33% of RM 80 is RM 26.66 -> progress rounds to 33.
	items := []LineItem{line(1, func(p *ProductSnapshot) {
		p.RegularPrice = decimal.RequireFromString("26.66")
		p.MemberPrice = decimal.RequireFromString("26.66")
	})}
	sum := Aggregate(items, false, DefaultMembershipConfig(), aggNow)
	assert.Equal(t, 33, sum.MembershipProgress)
}
