package pricing

import "time"

// PromotionStatus classifies a product's promotion window relative to a
// point in time.
type PromotionStatus string

const (
	StatusNone      PromotionStatus = "NONE"
	StatusScheduled PromotionStatus = "SCHEDULED"
	StatusActive    PromotionStatus = "ACTIVE"
	StatusExpired   PromotionStatus = "EXPIRED"
)

// PromotionStatusAt classifies the product's promotion window at the given
// time. A product that is not flagged promotional, or whose window is missing
// either bound, is NONE: incomplete promotion data never activates pricing.
// The window is inclusive on both ends.
func PromotionStatusAt(p ProductSnapshot, now time.Time) PromotionStatus {
	if !p.IsPromotional {
		return StatusNone
	}
	if p.PromotionStartsAt == nil || p.PromotionEndsAt == nil {
		return StatusNone
	}
	if now.Before(*p.PromotionStartsAt) {
		return StatusScheduled
	}
	if now.After(*p.PromotionEndsAt) {
		return StatusExpired
	}
	return StatusActive
}
