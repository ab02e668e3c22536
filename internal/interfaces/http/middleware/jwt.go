package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/invoicehub/backend/internal/infrastructure/auth"
	"github.com/invoicehub/backend/internal/infrastructure/logger"
)

const (
	jwtUserIDKey = "jwt_user_id"
	bearerPrefix = "Bearer "
)

// OptionalJWTAuthMiddleware extracts the caller identity from a bearer token
// when one is presented. Invoice endpoints also accept the X-User-ID header
// for development setups, so an absent or invalid token is not rejected
// here; each handler requires that some identity arrived.
func OptionalJWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			c.Next()
			return
		}

		c.Set(jwtUserIDKey, claims.UserID)

		// Tag the request-scoped logger so invoice writes log under the
		// authenticated user.
		ctx := c.Request.Context()
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetJWTUserID returns the user id a validated token carried, or "".
func GetJWTUserID(c *gin.Context) string {
	id, _ := c.Get(jwtUserIDKey)
	s, _ := id.(string)
	return s
}
