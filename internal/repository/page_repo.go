package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/pasarlink/pasar-api/internal/models"
)

// PageRepository handles data access for CMS pages.
type PageRepository struct {
	db *sqlx.DB
}

// NewPageRepository creates a new PageRepository.
func NewPageRepository(db *sqlx.DB) *PageRepository {
	return &PageRepository{db: db}
}

// GetPublishedBySlug returns a published page for the storefront.
func (r *PageRepository) GetPublishedBySlug(slug string) (*models.Page, error) {
	var p models.Page
	const q = `SELECT * FROM pages WHERE slug = $1 AND is_published = true LIMIT 1`
	if err := r.db.Get(&p, q, slug); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID returns a page by id, published or not.
func (r *PageRepository) GetByID(id int) (*models.Page, error) {
	var p models.Page
	if err := r.db.Get(&p, `SELECT * FROM pages WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListAll returns all pages for admin, optionally filtered by kind.
func (r *PageRepository) ListAll(kind string) ([]models.Page, error) {
	const q = `
		SELECT * FROM pages
		WHERE ($1 = '' OR kind = $1)
		ORDER BY updated_at DESC`
	var pages []models.Page
	if err := r.db.Select(&pages, q, kind); err != nil {
		return nil, err
	}
	return pages, nil
}

// Create creates a new page.
func (r *PageRepository) Create(page *models.Page) error {
	const q = `
		INSERT INTO pages (slug, kind, title, content, is_published)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		page.Slug,
		page.Kind,
		page.Title,
		page.Content,
		page.IsPublished,
	).Scan(&page.ID, &page.CreatedAt, &page.UpdatedAt)
}

// Update updates an existing page.
func (r *PageRepository) Update(page *models.Page) error {
	const q = `
		UPDATE pages
		SET slug = $1, kind = $2, title = $3, content = $4, is_published = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`

	return r.db.QueryRowx(q,
		page.Slug,
		page.Kind,
		page.Title,
		page.Content,
		page.IsPublished,
		page.ID,
	).Scan(&page.UpdatedAt)
}

// Delete deletes a page by ID.
func (r *PageRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM pages WHERE id = $1`, id)
	return err
}
