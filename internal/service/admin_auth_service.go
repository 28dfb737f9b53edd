package service

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"

	"github.com/pasarlink/pasar-api/internal/models"
	"github.com/pasarlink/pasar-api/internal/repository"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// AdminAuthService handles admin panel authentication.
type AdminAuthService struct {
	adminRepo *repository.AdminUserRepository
}

// NewAdminAuthService constructs a new AdminAuthService.
func NewAdminAuthService(adminRepo *repository.AdminUserRepository) *AdminAuthService {
	return &AdminAuthService{adminRepo: adminRepo}
}

// Login verifies admin credentials and returns the admin with a session token.
func (s *AdminAuthService) Login(email, password string) (*models.AdminUser, string, error) {
	admin, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", utils.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !admin.IsActive {
		return nil, "", utils.ErrAccountInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(admin.ID, admin.Email, "admin")
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}
