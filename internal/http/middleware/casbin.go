package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// CasbinMiddleware defines the interface for role authorization middleware
type CasbinMiddleware interface {
	Enforce() gin.HandlerFunc
}

// CasbinMW checks the caller's role against the route pattern
type CasbinMW struct {
	policy domain.PolicyService
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policy domain.PolicyService) *CasbinMW {
	return &CasbinMW{policy: policy}
}

// Enforce returns the casbin authorization middleware. It must run after the
// JWT middleware.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		if role == "" || UserID(c) == 0 {
			abort(c, http.StatusUnauthorized, "User ID or role not found in token")
			return
		}

		path := c.FullPath() // route pattern, e.g. /api/bookings/:id/status
		if path == "" {
			path = c.Request.URL.Path
		}

		allowed, err := mw.policy.CheckPermission(string(role), path, c.Request.Method)
		if err != nil {
			log.Printf("AUTHZ_ERROR: user_id=%d role=%s path=%s error=%v", UserID(c), role, path, err)
			abort(c, http.StatusInternalServerError, "Authorization check failed")
			return
		}
		if !allowed {
			log.Printf("AUTHZ_DENIED: user_id=%d role=%s method=%s path=%s", UserID(c), role, c.Request.Method, path)
			abort(c, http.StatusForbidden, "Access denied")
			return
		}

		c.Next()
	}
}

var _ CasbinMiddleware = (*CasbinMW)(nil)
