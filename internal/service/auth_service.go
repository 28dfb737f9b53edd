package service

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"

	"github.com/pasarlink/pasar-api/internal/models"
	"github.com/pasarlink/pasar-api/internal/repository"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// AuthService handles customer registration and login.
type AuthService struct {
	userRepo *repository.UserRepository
}

// NewAuthService constructs a new AuthService.
func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// RegisterInput is the payload for customer registration.
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

// Register creates a customer account and returns it with a session token.
func (s *AuthService) Register(input RegisterInput) (*models.User, string, error) {
	if existing, err := s.userRepo.GetByEmail(input.Email); err == nil && existing != nil {
		return nil, "", utils.ErrEmailTaken
	} else if err != nil && err != sql.ErrNoRows {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         input.Name,
		Phone:        input.Phone,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, "customer")
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", utils.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", utils.ErrAccountInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, "customer")
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetProfile returns the current account.
func (s *AuthService) GetProfile(userID int) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}
