package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vendorhub/internal/domain"
	"vendorhub/internal/pkg/jwt"
	"vendorhub/internal/pkg/response"
)

// Context keys set by Authenticate for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxVendorID = "vendor_id"
	CtxEmail    = "email"
	CtxRole     = "role"
)

// Authenticate extracts and verifies the bearer token and attaches the
// identity context. It must run before any role check or workflow logic;
// failure short-circuits the request. VendorID is set to 0 explicitly
// when the token carries no vendor binding.
func Authenticate(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing credential")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header format")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := tokens.Validate(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired credential")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxVendorID, claims.VendorID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}

// ActorFrom rebuilds the acting identity from the context keys set by
// Authenticate. Zero values mean the middleware did not run.
func ActorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID:   c.GetInt64(CtxUserID),
		VendorID: c.GetInt64(CtxVendorID),
		Email:    c.GetString(CtxEmail),
		Role:     domain.Role(c.GetString(CtxRole)),
	}
}
