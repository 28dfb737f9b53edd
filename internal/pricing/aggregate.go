// Package pricing implements the promotional/member price resolution rules
// and the cart aggregation that drives membership accrual. It is pure,
// request-scoped computation: callers pass product snapshots and the current
// membership settings in, nothing here touches the database or the clock.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one cart entry to aggregate. Product may be nil when the cart
// references a product that has since been removed; such entries are treated
// as stale and skipped.
type LineItem struct {
	Product  *ProductSnapshot
	Quantity int
}

// LineSummary is the per-item breakdown included in the cart summary, used by
// the cart API and product badges.
type LineSummary struct {
	ProductID       int             `json:"productId"`
	Name            string          `json:"name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	PriceKind       PriceKind       `json:"priceKind"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
	PromotionStatus PromotionStatus `json:"promotionStatus"`
	Qualifies       bool            `json:"qualifiesForMembership"`
	Savings         decimal.Decimal `json:"savings"`
}

// Summary is the aggregate output for a cart.
type Summary struct {
	Lines []LineSummary `json:"items"`

	// Subtotal is what a non-member pays (active promotions applied).
	Subtotal decimal.Decimal `json:"subtotal"`
	// MemberSubtotal is what a member pays for the same cart.
	MemberSubtotal decimal.Decimal `json:"memberSubtotal"`
	// ApplicableSubtotal is the subtotal matching the requesting user's
	// membership state.
	ApplicableSubtotal decimal.Decimal `json:"applicableSubtotal"`

	// QualifyingTotal is the portion of ApplicableSubtotal that counts
	// toward the membership threshold.
	QualifyingTotal           decimal.Decimal `json:"qualifyingTotal"`
	MembershipThreshold       decimal.Decimal `json:"membershipThreshold"`
	IsEligibleForMembership   bool            `json:"isEligibleForMembership"`
	MembershipProgress        int             `json:"membershipProgress"`
	AmountNeededForMembership decimal.Decimal `json:"amountNeededForMembership"`

	// PotentialSavings is Subtotal minus MemberSubtotal: what membership
	// would save on this cart.
	PotentialSavings decimal.Decimal `json:"potentialSavings"`
}

// Aggregate evaluates every line item against the promotion window, resolves
// both the member and non-member price, decides membership qualification, and
// sums the cart. Stale entries (nil, inactive product, non-positive quantity)
// are skipped without error.
func Aggregate(items []LineItem, isMember bool, cfg MembershipConfig, now time.Time) Summary {
	sum := Summary{
		Lines:               make([]LineSummary, 0, len(items)),
		MembershipThreshold: cfg.Threshold,
	}

	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive || item.Quantity <= 0 {
			continue
		}
		p := *item.Product
		qty := decimal.NewFromInt(int64(item.Quantity))

		status := PromotionStatusAt(p, now)
		guest := Resolve(p, false, status)
		member := Resolve(p, true, status)

		applicable := guest
		if isMember {
			applicable = member
		}

		lineTotal := applicable.Price.Mul(qty)
		qualifies := Qualifies(p, status, cfg)

		sum.Subtotal = sum.Subtotal.Add(guest.Price.Mul(qty))
		sum.MemberSubtotal = sum.MemberSubtotal.Add(member.Price.Mul(qty))
		sum.ApplicableSubtotal = sum.ApplicableSubtotal.Add(lineTotal)
		if qualifies {
			sum.QualifyingTotal = sum.QualifyingTotal.Add(lineTotal)
		}

		sum.Lines = append(sum.Lines, LineSummary{
			ProductID:       p.ProductID,
			Name:            p.Name,
			Quantity:        item.Quantity,
			UnitPrice:       applicable.Price,
			PriceKind:       applicable.Kind,
			LineTotal:       lineTotal,
			PromotionStatus: status,
			Qualifies:       qualifies,
			Savings:         applicable.Savings.Mul(qty),
		})
	}

	sum.PotentialSavings = sum.Subtotal.Sub(sum.MemberSubtotal)
	sum.IsEligibleForMembership = sum.QualifyingTotal.GreaterThanOrEqual(cfg.Threshold)
	sum.AmountNeededForMembership = cfg.Threshold.Sub(sum.QualifyingTotal)
	if sum.AmountNeededForMembership.IsNegative() {
		sum.AmountNeededForMembership = decimal.Zero
	}
	sum.MembershipProgress = progress(sum.QualifyingTotal, cfg.Threshold)

	return sum
}

// progress returns qualifying/threshold as a rounded percentage clamped to
// [0, 100]. A non-positive threshold means membership is effectively free.
func progress(qualifying, threshold decimal.Decimal) int {
	if !threshold.IsPositive() {
		return 100
	}
	pct := qualifying.Div(threshold).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}
