package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pasarlink/pasar-api/internal/pricing"
)

// Product represents a catalog product. Prices are RM decimals. The
// qualifying flag is denormalized from the category at save time so orders
// placed in the past keep the qualification rules that applied then.
type Product struct {
	ID                int              `db:"id" json:"id"`
	Slug              string           `db:"slug" json:"slug"`
	Name              string           `db:"name" json:"name"`
	Description       string           `db:"description" json:"description"`
	CategoryID        int              `db:"category_id" json:"categoryId"`
	RegularPrice      decimal.Decimal  `db:"regular_price" json:"regularPrice"`
	MemberPrice       decimal.Decimal  `db:"member_price" json:"memberPrice"`
	IsPromotional     bool             `db:"is_promotional" json:"isPromotional"`
	PromotionalPrice  *decimal.Decimal `db:"promotional_price" json:"promotionalPrice,omitempty"`
	PromotionStartsAt *time.Time       `db:"promotion_starts_at" json:"promotionStartsAt,omitempty"`
	PromotionEndsAt   *time.Time       `db:"promotion_ends_at" json:"promotionEndsAt,omitempty"`
	IsQualifying      bool             `db:"is_qualifying" json:"isQualifyingForMembership"`
	ImageURL          string           `db:"image_url" json:"imageUrl"`
	Stock             int              `db:"stock" json:"stock"`
	IsActive          bool             `db:"is_active" json:"isActive"`
	CreatedAt         time.Time        `db:"created_at" json:"-"`
	UpdatedAt         time.Time        `db:"updated_at" json:"updatedAt"`

	// Joined from categories for display.
	CategoryName string `db:"category_name" json:"categoryName,omitempty"`
}

// Snapshot converts the product row into the pricing core's input form.
func (p *Product) Snapshot() pricing.ProductSnapshot {
	return pricing.ProductSnapshot{
		ProductID:         p.ID,
		Name:              p.Name,
		RegularPrice:      p.RegularPrice,
		MemberPrice:       p.MemberPrice,
		IsPromotional:     p.IsPromotional,
		PromotionalPrice:  p.PromotionalPrice,
		PromotionStartsAt: p.PromotionStartsAt,
		PromotionEndsAt:   p.PromotionEndsAt,
		IsQualifying:      p.IsQualifying,
		IsActive:          p.IsActive,
	}
}
