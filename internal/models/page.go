package models

import (
	"encoding/json"
	"time"
)

// PageKind distinguishes CMS page types.
type PageKind string

const (
	PageLanding PageKind = "landing"
	PageClick   PageKind = "click"
)

// Page is an admin-managed CMS page. Content holds the page-builder blocks
// as raw JSON; the API never interprets them.
type Page struct {
	ID          int             `db:"id" json:"id"`
	Slug        string          `db:"slug" json:"slug"`
	Kind        PageKind        `db:"kind" json:"kind"`
	Title       string          `db:"title" json:"title"`
	Content     json.RawMessage `db:"content" json:"content"`
	IsPublished bool            `db:"is_published" json:"isPublished"`
	CreatedAt   time.Time       `db:"created_at" json:"-"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}
