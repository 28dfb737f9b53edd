package repository

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pasarlink/pasar-api/internal/models"
)

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `
	p.*, c.name AS category_name`

// GetAllPaged returns active products with filters and pagination and also
// returns total count. Filters: category (slug), search (ILIKE on name).
// If a filter is empty it will be ignored. Page begins at 1.
func (r *ProductRepository) GetAllPaged(category, search string, page, limit int) ([]models.Product, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 24
	}
	offset := (page - 1) * limit

	const baseWhere = `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE ($1 = '' OR c.slug = $1)
		AND ($2 = '' OR p.name ILIKE '%%' || $2 || '%%')
		AND p.is_active = true AND c.is_active = true`

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(1) `+baseWhere, category, search); err != nil {
		return nil, 0, err
	}

	listQuery := `SELECT ` + productColumns + baseWhere + `
		ORDER BY c.sort_order, p.name LIMIT $3 OFFSET $4`
	var products []models.Product
	if err := r.db.Select(&products, listQuery, category, search, limit, offset); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	const q = `SELECT ` + productColumns + `
		FROM products p JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1 LIMIT 1`

	var p models.Product
	if err := r.db.Get(&p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBySlug returns a single product by slug.
func (r *ProductRepository) GetBySlug(slug string) (*models.Product, error) {
	const q = `SELECT ` + productColumns + `
		FROM products p JOIN categories c ON c.id = p.category_id
		WHERE p.slug = $1 LIMIT 1`

	var p models.Product
	if err := r.db.Get(&p, q, slug); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByIDs returns products matching the given ids, in no particular order.
// Missing ids are silently absent from the result; the cart treats those
// entries as stale.
func (r *ProductRepository) GetByIDs(ids []int) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const q = `SELECT ` + productColumns + `
		FROM products p JOIN categories c ON c.id = p.category_id
		WHERE p.id = ANY($1)`

	var products []models.Product
	if err := r.db.Select(&products, q, pq.Array(ids)); err != nil {
		return nil, err
	}
	return products, nil
}

// Create creates a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	const q = `
		INSERT INTO products (slug, name, description, category_id, regular_price, member_price,
			is_promotional, promotional_price, promotion_starts_at, promotion_ends_at,
			is_qualifying, image_url, stock, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		product.Slug,
		product.Name,
		product.Description,
		product.CategoryID,
		product.RegularPrice,
		product.MemberPrice,
		product.IsPromotional,
		product.PromotionalPrice,
		product.PromotionStartsAt,
		product.PromotionEndsAt,
		product.IsQualifying,
		product.ImageURL,
		product.Stock,
		product.IsActive,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

// Update updates an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	const q = `
		UPDATE products
		SET slug = $1, name = $2, description = $3, category_id = $4, regular_price = $5,
			member_price = $6, is_promotional = $7, promotional_price = $8,
			promotion_starts_at = $9, promotion_ends_at = $10, is_qualifying = $11,
			image_url = $12, stock = $13, is_active = $14, updated_at = NOW()
		WHERE id = $15
		RETURNING updated_at`

	return r.db.QueryRowx(q,
		product.Slug,
		product.Name,
		product.Description,
		product.CategoryID,
		product.RegularPrice,
		product.MemberPrice,
		product.IsPromotional,
		product.PromotionalPrice,
		product.PromotionStartsAt,
		product.PromotionEndsAt,
		product.IsQualifying,
		product.ImageURL,
		product.Stock,
		product.IsActive,
		product.ID,
	).Scan(&product.UpdatedAt)
}

// UpdateStatus sets the active flag of a product.
func (r *ProductRepository) UpdateStatus(id int, isActive bool) error {
	const q = `UPDATE products SET is_active = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id, isActive)
	return err
}

// Delete deletes a product by ID.
func (r *ProductRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	return err
}

// SyncQualifyingByCategory rewrites the denormalized qualifying flag on all
// products of a category after the category's flag changed. Orders already
// placed keep their own snapshot.
func (r *ProductRepository) SyncQualifyingByCategory(categoryID int, isQualifying bool) (int64, error) {
	res, err := r.db.Exec(
		`UPDATE products SET is_qualifying = $2, updated_at = NOW() WHERE category_id = $1`,
		categoryID, isQualifying,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DecrementStock reduces stock for a product, refusing to go below zero.
func (r *ProductRepository) DecrementStock(tx *sqlx.Tx, productID, qty int) error {
	res, err := tx.Exec(
		`UPDATE products SET stock = stock - $2, updated_at = NOW() WHERE id = $1 AND stock >= $2`,
		productID, qty,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RestoreStock gives reserved stock back when an unpaid order expires.
func (r *ProductRepository) RestoreStock(tx *sqlx.Tx, productID, qty int) error {
	_, err := tx.Exec(
		`UPDATE products SET stock = stock + $2, updated_at = NOW() WHERE id = $1`,
		productID, qty,
	)
	return err
}

// AdminProductFilter holds filters for admin product queries.
type AdminProductFilter struct {
	CategoryID int
	Search     string
	IsActive   *bool
	Promotional *bool
	Page       int
	Limit      int
}

// AdminProductResult contains paginated product results for admin.
type AdminProductResult struct {
	Products   []models.Product
	TotalItems int
	TotalPages int
	Page       int
	Limit      int
}

// GetAllAdmin returns all products for admin with filters and pagination (includes inactive).
func (r *ProductRepository) GetAllAdmin(filter *AdminProductFilter) (*AdminProductResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	offset := (filter.Page - 1) * filter.Limit

	// Build dynamic WHERE clause
	baseWhere := `WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.CategoryID > 0 {
		baseWhere += fmt.Sprintf(" AND p.category_id = $%d", argIdx)
		args = append(args, filter.CategoryID)
		argIdx++
	}
	if filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.slug ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.IsActive != nil {
		baseWhere += fmt.Sprintf(" AND p.is_active = $%d", argIdx)
		args = append(args, *filter.IsActive)
		argIdx++
	}
	if filter.Promotional != nil {
		baseWhere += fmt.Sprintf(" AND p.is_promotional = $%d", argIdx)
		args = append(args, *filter.Promotional)
		argIdx++
	}

	countQuery := `SELECT COUNT(1) FROM products p ` + baseWhere
	var total int
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, err
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit

	listQuery := fmt.Sprintf(`
		SELECT `+productColumns+`
		FROM products p
		JOIN categories c ON c.id = p.category_id
		%s
		ORDER BY p.updated_at DESC
		LIMIT $%d OFFSET $%d`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	var products []models.Product
	if err := r.db.Select(&products, listQuery, args...); err != nil {
		return nil, err
	}

	return &AdminProductResult{
		Products:   products,
		TotalItems: total,
		TotalPages: totalPages,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}
