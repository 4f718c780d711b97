package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// Context keys set by the JWT middleware
const (
	ContextUserID = "user_id"
	ContextRole   = "user_role"
)

// AuthMW wraps the token service for middleware
type AuthMW struct {
	tokenSvc domain.TokenService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc}
}

// WithJWT returns the JWT middleware function
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc)
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// AuthMiddleware validates the bearer token and stores its claims on the context
func AuthMiddleware(tokenSvc domain.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token, ok := BearerToken(authHeader)
		if !ok {
			abort(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := tokenSvc.ValidateAccessToken(token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				abort(c, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenMalformed):
				abort(c, http.StatusUnauthorized, "Invalid token")
			default:
				abort(c, http.StatusUnauthorized, "Token validation failed")
			}
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// UserID returns the authenticated user id, or 0
func UserID(c *gin.Context) uint {
	id, _ := c.Get(ContextUserID)
	v, _ := id.(uint)
	return v
}

// Role returns the authenticated role, or ""
func Role(c *gin.Context) domain.Role {
	r, _ := c.Get(ContextRole)
	v, _ := r.(domain.Role)
	return v
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg, "error": msg})
}
