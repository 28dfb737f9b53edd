package pricing

import "github.com/shopspring/decimal"

// MembershipConfig holds the membership-threshold rules applied during cart
// aggregation. It is loaded from persisted settings per request and passed in
// explicitly; there is no package-level default in use at runtime.
type MembershipConfig struct {
	// Threshold is the cumulative qualifying spend (RM) that unlocks
	// member pricing.
	Threshold decimal.Decimal `json:"threshold"`

	// ExcludePromotional, when set, stops purchases made at an active
	// promotional price from counting toward the threshold.
	ExcludePromotional bool `json:"excludePromotional"`

	// RequireQualifying, when set, restricts accrual to products flagged as
	// qualifying. When unset every product counts.
	RequireQualifying bool `json:"requireQualifying"`
}

// DefaultMembershipConfig returns the fallback rules used when no settings
// row exists yet: RM 80 threshold with both restrictions enforced.
func DefaultMembershipConfig() MembershipConfig {
	return MembershipConfig{
		Threshold:          decimal.NewFromInt(80),
		ExcludePromotional: true,
		RequireQualifying:  true,
	}
}

// Qualifies reports whether spend on the product counts toward the membership
// threshold. An active promotion overrides everything: promotional purchases
// never accrue, so the threshold cannot be gamed through temporary discounts.
// Otherwise the product's own denormalized qualifying flag decides.
func Qualifies(p ProductSnapshot, status PromotionStatus, cfg MembershipConfig) bool {
	if cfg.ExcludePromotional && status == StatusActive {
		return false
	}
	if !cfg.RequireQualifying {
		return true
	}
	return p.IsQualifying
}
