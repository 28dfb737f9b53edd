package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/pasarlink/pasar-api/internal/models"
)

// CategoryRepository handles data access for product categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListActive returns active categories in display order.
func (r *CategoryRepository) ListActive() ([]models.Category, error) {
	const q = `SELECT * FROM categories WHERE is_active = true ORDER BY sort_order, name`
	var categories []models.Category
	if err := r.db.Select(&categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListAll returns all categories for admin.
func (r *CategoryRepository) ListAll() ([]models.Category, error) {
	const q = `SELECT * FROM categories ORDER BY sort_order, name`
	var categories []models.Category
	if err := r.db.Select(&categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID returns a category by id.
func (r *CategoryRepository) GetByID(id int) (*models.Category, error) {
	var c models.Category
	if err := r.db.Get(&c, `SELECT * FROM categories WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new category.
func (r *CategoryRepository) Create(category *models.Category) error {
	const q = `
		INSERT INTO categories (slug, name, is_qualifying, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		category.Slug,
		category.Name,
		category.IsQualifying,
		category.SortOrder,
		category.IsActive,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

// Update updates an existing category.
func (r *CategoryRepository) Update(category *models.Category) error {
	const q = `
		UPDATE categories
		SET slug = $1, name = $2, is_qualifying = $3, sort_order = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`

	return r.db.QueryRowx(q,
		category.Slug,
		category.Name,
		category.IsQualifying,
		category.SortOrder,
		category.IsActive,
		category.ID,
	).Scan(&category.UpdatedAt)
}

// Delete deletes a category by ID.
func (r *CategoryRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	return err
}
