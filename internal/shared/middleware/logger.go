package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// quietRoutes are logged at debug level on success
var quietRoutes = map[string]struct{}{
	"/api/health": {},
	"/metrics":    {},
}

// Logger writes one access log line per request, levelled by status
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()

		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			if _, quiet := quietRoutes[c.FullPath()]; quiet {
				event = log.Debug()
			} else {
				event = log.Info()
			}
		}

		ip := GetClientIPFromContext(c.Request.Context())
		if ip == "" {
			ip = c.ClientIP()
		}

		event.
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("route", c.FullPath()).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Str("ip", ip).
			Str("address", c.GetString("address")).
			Msg("HTTP Request")
	}
}
