package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/pasarlink/pasar-api/internal/models"
)

// UserRepository handles data access for storefront customers.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID returns a user by id.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	var u models.User
	if err := r.db.Get(&u, `SELECT * FROM users WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns a user by email.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Get(&u, `SELECT * FROM users WHERE email = $1 LIMIT 1`, email); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create creates a new user.
func (r *UserRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (email, password_hash, name, phone, is_member, membership_total, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Phone,
		user.IsMember,
		user.MembershipTotal,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// AccrueMembership adds qualifying spend to the user's accumulator inside the
// caller's transaction and returns the updated row. Flipping is_member is the
// service's decision; this only moves the total.
func (r *UserRepository) AccrueMembership(tx *sqlx.Tx, userID int, amount decimal.Decimal) (*models.User, error) {
	const q = `
		UPDATE users
		SET membership_total = membership_total + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING *`

	var u models.User
	if err := tx.Get(&u, q, userID, amount); err != nil {
		return nil, err
	}
	return &u, nil
}

// PromoteToMember flips the membership flag and stamps member_since.
func (r *UserRepository) PromoteToMember(tx *sqlx.Tx, userID int) error {
	const q = `
		UPDATE users
		SET is_member = true, member_since = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_member = false`
	_, err := tx.Exec(q, userID)
	return err
}
