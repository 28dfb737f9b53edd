package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func snapshot(opts ...func(*ProductSnapshot)) ProductSnapshot {
	promo := decimal.NewFromInt(60)
	p := ProductSnapshot{
		ProductID:        1,
		Name:             "Tongkat Ali Coffee",
		RegularPrice:     decimal.NewFromInt(100),
		MemberPrice:      decimal.NewFromInt(80),
		PromotionalPrice: &promo,
		IsQualifying:     true,
		IsActive:         true,
	}
	for _, o := range opts {
		o(&p)
	}
	return p
}

func withWindow(start, end time.Time) func(*ProductSnapshot) {
	return func(p *ProductSnapshot) {
		p.IsPromotional = true
		p.PromotionStartsAt = &start
		p.PromotionEndsAt = &end
	}
}

func TestPromotionStatusAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-24 * time.Hour)
	later := now.Add(24 * time.Hour)

	tests := []struct {
		name string
		p    ProductSnapshot
		want PromotionStatus
	}{
		{"not promotional", snapshot(), StatusNone},
		{"not promotional with window set", snapshot(func(p *ProductSnapshot) {
			p.PromotionStartsAt = &earlier
			p.PromotionEndsAt = &later
		}), StatusNone},
		{"promotional but no dates", snapshot(func(p *ProductSnapshot) { p.IsPromotional = true }), StatusNone},
		{"promotional missing end", snapshot(func(p *ProductSnapshot) {
			p.IsPromotional = true
			p.PromotionStartsAt = &earlier
		}), StatusNone},
		{"promotional missing start", snapshot(func(p *ProductSnapshot) {
			p.IsPromotional = true
			p.PromotionEndsAt = &later
		}), StatusNone},
		{"before window", snapshot(withWindow(later, later.Add(48*time.Hour))), StatusScheduled},
		{"inside window", snapshot(withWindow(earlier, later)), StatusActive},
		{"at start boundary", snapshot(withWindow(now, later)), StatusActive},
		{"at end boundary", snapshot(withWindow(earlier, now)), StatusActive},
		{"after window", snapshot(withWindow(earlier.Add(-48*time.Hour), earlier)), StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PromotionStatusAt(tt.p, now))
		})
	}
}
