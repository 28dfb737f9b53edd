package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a storefront customer. MembershipTotal accumulates
// qualifying spend from paid orders; IsMember flips once it crosses the
// configured threshold.
type User struct {
	ID              int             `db:"id" json:"id"`
	Email           string          `db:"email" json:"email"`
	PasswordHash    string          `db:"password_hash" json:"-"`
	Name            string          `db:"name" json:"name"`
	Phone           string          `db:"phone" json:"phone"`
	IsMember        bool            `db:"is_member" json:"isMember"`
	MembershipTotal decimal.Decimal `db:"membership_total" json:"membershipTotal"`
	MemberSince     *time.Time      `db:"member_since" json:"memberSince,omitempty"`
	IsActive        bool            `db:"is_active" json:"isActive"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `db:"updated_at" json:"-"`
}
