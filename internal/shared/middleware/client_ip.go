package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"metalpedia-backend/internal/shared/utils"
)

type clientIPKey struct{}

// ClientIPMiddleware resolves the caller IP once (X-Forwarded-For, X-Real-IP,
// then RemoteAddr) and stores it on the request context for the access log.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := utils.ExtractClientIP(c)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), clientIPKey{}, ip))
		c.Next()
	}
}

// GetClientIPFromContext returns "" when ClientIPMiddleware did not run
func GetClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
