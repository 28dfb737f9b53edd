package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		p           ProductSnapshot
		isMember    bool
		status      PromotionStatus
		wantPrice   int64
		wantKind    PriceKind
		wantSavings int64
	}{
		{"active promo beats member price", snapshot(), true, StatusActive, 60, KindPromotional, 40},
		{"active promo for guest", snapshot(), false, StatusActive, 60, KindPromotional, 40},
		{"scheduled promo, member", snapshot(), true, StatusScheduled, 80, KindMember, 20},
		{"scheduled promo, guest", snapshot(), false, StatusScheduled, 100, KindRegular, 0},
		{"expired promo, member", snapshot(), true, StatusExpired, 80, KindMember, 20},
		{"expired promo, guest", snapshot(), false, StatusExpired, 100, KindRegular, 0},
		{"no promo, member", snapshot(), true, StatusNone, 80, KindMember, 20},
		{"no promo, guest", snapshot(), false, StatusNone, 100, KindRegular, 0},
		{"active status but promo price missing", snapshot(func(p *ProductSnapshot) {
			p.PromotionalPrice = nil
		}), true, StatusActive, 80, KindMember, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.p, tt.isMember, tt.status)
			assert.True(t, decimal.NewFromInt(tt.wantPrice).Equal(got.Price), "price = %s", got.Price)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.True(t, decimal.NewFromInt(tt.wantSavings).Equal(got.Savings), "savings = %s", got.Savings)
			assert.True(t, tt.p.RegularPrice.Equal(got.OriginalPrice))
			assert.True(t, got.Price.LessThanOrEqual(tt.p.RegularPrice), "resolved price must never exceed regular")
		})
	}
}

func TestResolveNeverPromotionalWhenNotActive(t *testing.T) {
	for _, status := range []PromotionStatus{StatusNone, StatusScheduled, StatusExpired} {
		for _, isMember := range []bool{true, false} {
			got := Resolve(snapshot(), isMember, status)
			assert.NotEqual(t, KindPromotional, got.Kind, "status %s member %v", status, isMember)
		}
	}
}
