package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasar-api/internal/middleware"
	"github.com/pasarlink/pasar-api/internal/service"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// AuthHandler handles customer registration and login endpoints.
type AuthHandler struct {
	authService *service.AuthService
	cartService *service.CartService
	rateLimiter *middleware.LoginRateLimiter
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService, cartService *service.CartService, rateLimiter *middleware.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, cartService: cartService, rateLimiter: rateLimiter}
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}

	user, token, err := h.authService.Register(input)
	if err != nil {
		if err == utils.ErrEmailTaken {
			utils.Error(c, 409, "EMAIL_TAKEN", "An account with this email already exists")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to register")
		return
	}

	utils.Success(c, 201, "Account created", gin.H{
		"user":  user,
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /v1/auth/login
// A valid guest cart token in the request is merged into the user's cart.
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.rateLimiter.Allow(c.ClientIP()) {
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many login attempts, try again later")
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		switch err {
		case utils.ErrInvalidCredentials:
			utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
		case utils.ErrAccountInactive:
			utils.Error(c, 403, "ACCOUNT_INACTIVE", "Account is disabled")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to login")
		}
		return
	}
	h.rateLimiter.Reset(c.ClientIP())

	cartToken := ""
	if guestToken := middleware.CartToken(c); guestToken != "" {
		if cart, err := h.cartService.Merge(c.Request.Context(), guestToken, user.ID); err == nil {
			cartToken = cart.Token
			middleware.SetCartCookie(c, cart.Token)
		}
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"user":      user,
		"token":     token,
		"cartToken": cartToken,
	})
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == nil {
		utils.Error(c, 401, "UNAUTHORIZED", "Authentication required")
		return
	}
	user, err := h.authService.GetProfile(*userID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load profile")
		return
	}
	utils.Success(c, 200, "Profile retrieved", gin.H{"user": user})
}
