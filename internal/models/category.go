package models

import "time"

// Category groups products and carries the qualifying flag that seeds each
// product's denormalized is_qualifying field.
type Category struct {
	ID           int       `db:"id" json:"id"`
	Slug         string    `db:"slug" json:"slug"`
	Name         string    `db:"name" json:"name"`
	IsQualifying bool      `db:"is_qualifying" json:"isQualifyingCategory"`
	SortOrder    int       `db:"sort_order" json:"sortOrder"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
