package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vendorhub/internal/domain"
	"vendorhub/internal/pkg/response"
)

// RequireRole enforces exact role-set membership. There is no hierarchy:
// admin does not implicitly satisfy a vendor-only check. A missing role in
// the context means Authenticate never ran, which is an authentication
// failure rather than a forbidden one.
func RequireRole(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(CtxRole)
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		role := domain.Role(roleVal.(string))
		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}

// RequireReviewer is shorthand for the manager/admin review surface.
func RequireReviewer() gin.HandlerFunc {
	return RequireRole(domain.ReviewerRoles...)
}
