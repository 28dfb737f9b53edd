package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQualifies(t *testing.T) {
	cfg := DefaultMembershipConfig()

	tests := []struct {
		name   string
		p      ProductSnapshot
		status PromotionStatus
		cfg    MembershipConfig
		want   bool
	}{
		{"qualifying product, no promo", snapshot(), StatusNone, cfg, true},
		{"qualifying product, scheduled promo", snapshot(), StatusScheduled, cfg, true},
		{"qualifying product, expired promo", snapshot(), StatusExpired, cfg, true},
		{"active promo overrides qualifying flag", snapshot(), StatusActive, cfg, false},
		{"non-qualifying product", snapshot(func(p *ProductSnapshot) { p.IsQualifying = false }), StatusNone, cfg, false},
		{"exclusion disabled keeps active promo qualifying", snapshot(), StatusActive, MembershipConfig{
			Threshold:         decimal.NewFromInt(80),
			RequireQualifying: true,
		}, true},
		{"qualifying requirement disabled", snapshot(func(p *ProductSnapshot) { p.IsQualifying = false }), StatusNone, MembershipConfig{
			Threshold:          decimal.NewFromInt(80),
			ExcludePromotional: true,
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Qualifies(tt.p, tt.status, tt.cfg))
		})
	}
}

// Active promotions never accrue under the default rules, whatever the
// product's own flag says.
func TestActivePromotionNeverQualifies(t *testing.T) {
	cfg := DefaultMembershipConfig()
	for _, qualifying := range []bool{true, false} {
		p := snapshot(func(p *ProductSnapshot) { p.IsQualifying = qualifying })
		assert.False(t, Qualifies(p, StatusActive, cfg))
	}
}
