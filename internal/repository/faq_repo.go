package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/pasarlink/pasar-api/internal/models"
)

// FAQRepository handles data access for FAQ entries.
type FAQRepository struct {
	db *sqlx.DB
}

// NewFAQRepository creates a new FAQRepository.
func NewFAQRepository(db *sqlx.DB) *FAQRepository {
	return &FAQRepository{db: db}
}

// ListPublished returns published FAQs in display order.
func (r *FAQRepository) ListPublished() ([]models.FAQ, error) {
	const q = `SELECT * FROM faqs WHERE is_published = true ORDER BY sort_order, id`
	var faqs []models.FAQ
	if err := r.db.Select(&faqs, q); err != nil {
		return nil, err
	}
	return faqs, nil
}

// ListAll returns all FAQs for admin.
func (r *FAQRepository) ListAll() ([]models.FAQ, error) {
	const q = `SELECT * FROM faqs ORDER BY sort_order, id`
	var faqs []models.FAQ
	if err := r.db.Select(&faqs, q); err != nil {
		return nil, err
	}
	return faqs, nil
}

// GetByID returns a FAQ by id.
func (r *FAQRepository) GetByID(id int) (*models.FAQ, error) {
	var f models.FAQ
	if err := r.db.Get(&f, `SELECT * FROM faqs WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create creates a new FAQ.
func (r *FAQRepository) Create(faq *models.FAQ) error {
	const q = `
		INSERT INTO faqs (question, answer, sort_order, is_published)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		faq.Question,
		faq.Answer,
		faq.SortOrder,
		faq.IsPublished,
	).Scan(&faq.ID, &faq.CreatedAt, &faq.UpdatedAt)
}

// Update updates an existing FAQ.
func (r *FAQRepository) Update(faq *models.FAQ) error {
	const q = `
		UPDATE faqs
		SET question = $1, answer = $2, sort_order = $3, is_published = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`

	return r.db.QueryRowx(q,
		faq.Question,
		faq.Answer,
		faq.SortOrder,
		faq.IsPublished,
		faq.ID,
	).Scan(&faq.UpdatedAt)
}

// Delete deletes a FAQ by ID.
func (r *FAQRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM faqs WHERE id = $1`, id)
	return err
}
