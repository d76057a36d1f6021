package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/chefcommunity/client/internal/types"
)

// Context keys set by the auth middleware.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// bearer extracts the token of an "Authorization: Bearer <token>" header.
func bearer(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func identify(c *gin.Context, validator TokenValidator, token string) error {
	claims, err := validator.ValidateToken(token)
	if err != nil {
		return err
	}
	userID, err := claims.UserID()
	if err != nil {
		return err
	}
	c.Set(ContextUserID, userID)
	c.Set(ContextUsername, claims.Username)
	return nil
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}
		if err := identify(c, validator, token); err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired", "message": "Please login again"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid token", "message": err.Error()})
			return
		}
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and
// lets anonymous requests through otherwise.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearer(c); ok {
			_ = identify(c, validator, token)
		}
		c.Next()
	}
}

// UserID returns the authenticated caller, or 0.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
