package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceKind identifies which price tier won the resolution.
type PriceKind string

const (
	KindPromotional PriceKind = "PROMOTIONAL"
	KindMember      PriceKind = "MEMBER"
	KindRegular     PriceKind = "REGULAR"
)

// ProductSnapshot carries the pricing-relevant fields of a product at the
// moment a cart or order is evaluated. It is built from the persisted product
// row; the resolver never goes back to the database.
type ProductSnapshot struct {
	ProductID        int
	Name             string
	RegularPrice     decimal.Decimal
	MemberPrice      decimal.Decimal
	IsPromotional    bool
	PromotionalPrice *decimal.Decimal
	PromotionStartsAt *time.Time
	PromotionEndsAt   *time.Time

	// IsQualifying is the denormalized membership-qualification flag. It is
	// synced from the category's qualifying flag at product-save time so past
	// orders keep the qualification semantics that applied when they were
	// placed.
	IsQualifying bool
	IsActive     bool
}

// ResolvedPrice is the outcome of price resolution for a single product.
type ResolvedPrice struct {
	Price         decimal.Decimal `json:"price"`
	Kind          PriceKind       `json:"priceKind"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Savings       decimal.Decimal `json:"savings"`
}

// Resolve picks the single active price for a product. Priority order, first
// match wins: an active promotion with a promotional price set beats
// everything (members included), then member price, then regular price.
//
// promotionalPrice < regularPrice is enforced at product-save time and is not
// re-checked here.
func Resolve(p ProductSnapshot, isMember bool, status PromotionStatus) ResolvedPrice {
	price := p.RegularPrice
	kind := KindRegular

	switch {
	case status == StatusActive && p.PromotionalPrice != nil:
		price = *p.PromotionalPrice
		kind = KindPromotional
	case isMember:
		price = p.MemberPrice
		kind = KindMember
	}

	return ResolvedPrice{
		Price:         price,
		Kind:          kind,
		OriginalPrice: p.RegularPrice,
		Savings:       p.RegularPrice.Sub(price),
	}
}
