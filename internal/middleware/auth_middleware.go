package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasar-api/internal/utils"
)

// Context keys set by the auth middlewares.
const (
	CtxUserID    = "user_id"
	CtxEmail     = "email"
	CtxRole      = "role"
	CtxCartToken = "cart_token"
)

// cartTokenCookie is the cookie carrying the guest cart token.
const cartTokenCookie = "pl_cart"

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// RequireCustomer rejects requests without a valid customer token.
func RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing authorization header")
			c.Abort()
			return
		}
		claims, err := utils.ValidateJWT(token)
		if err != nil || claims.Role != "customer" {
			utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// OptionalCustomer resolves the customer identity when a valid token is
// present but lets guests through. It also surfaces the guest cart token
// from the cookie or the X-Cart-Token header.
func OptionalCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := utils.ValidateJWT(token); err == nil && claims.Role == "customer" {
				c.Set(CtxUserID, claims.UserID)
				c.Set(CtxEmail, claims.Email)
				c.Set(CtxRole, claims.Role)
			}
		}

		cartToken := c.GetHeader("X-Cart-Token")
		if cartToken == "" {
			if cookie, err := c.Cookie(cartTokenCookie); err == nil {
				cartToken = cookie
			}
		}
		if cartToken != "" {
			c.Set(CtxCartToken, cartToken)
		}
		c.Next()
	}
}

// RequireAdmin rejects requests without a valid admin panel token.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing authorization header")
			c.Abort()
			return
		}
		claims, err := utils.ValidateJWT(token)
		if err != nil || claims.Role != "admin" {
			utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// UserID returns the authenticated user id, or nil for guests.
func UserID(c *gin.Context) *int {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(int); ok {
			return &id
		}
	}
	return nil
}

// CartToken returns the guest cart token extracted by OptionalCustomer.
func CartToken(c *gin.Context) string {
	return c.GetString(CtxCartToken)
}

// SetCartCookie refreshes the cart token cookie on responses that touched
// the cart.
func SetCartCookie(c *gin.Context, token string) {
	c.SetCookie(cartTokenCookie, token, 7*24*3600, "/", "", false, true)
}
