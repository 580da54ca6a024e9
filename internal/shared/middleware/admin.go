package middleware

import (
	"github.com/gin-gonic/gin"

	"metalpedia-backend/internal/shared/response"
)

// AdminMiddleware checks if the resolved principal has the ADMIN role.
// Must run after RequireIdentity.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFrom(c)
		if principal == nil {
			response.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		if !principal.IsAdmin() {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
