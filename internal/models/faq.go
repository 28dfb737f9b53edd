package models

import "time"

// FAQ is an admin-managed question/answer entry shown on the storefront.
type FAQ struct {
	ID          int       `db:"id" json:"id"`
	Question    string    `db:"question" json:"question"`
	Answer      string    `db:"answer" json:"answer"`
	SortOrder   int       `db:"sort_order" json:"sortOrder"`
	IsPublished bool      `db:"is_published" json:"isPublished"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
