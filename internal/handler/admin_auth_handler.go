package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasar-api/internal/middleware"
	"github.com/pasarlink/pasar-api/internal/service"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// AdminAuthHandler handles admin panel login.
type AdminAuthHandler struct {
	adminAuthService *service.AdminAuthService
	rateLimiter      *middleware.LoginRateLimiter
}

// NewAdminAuthHandler constructs an AdminAuthHandler.
func NewAdminAuthHandler(adminAuthService *service.AdminAuthService, rateLimiter *middleware.LoginRateLimiter) *AdminAuthHandler {
	return &AdminAuthHandler{adminAuthService: adminAuthService, rateLimiter: rateLimiter}
}

// Login handles POST /v1/admin/auth/login
func (h *AdminAuthHandler) Login(c *gin.Context) {
	if !h.rateLimiter.Allow(c.ClientIP()) {
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many login attempts, try again later")
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		return
	}

	admin, token, err := h.adminAuthService.Login(req.Email, req.Password)
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

	utils.Success(c, 200, "Login successful", gin.H{
		"admin": admin,
		"token": token,
	})
}
