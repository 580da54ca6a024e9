package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"metalpedia-backend/internal/infrastructure/metrics"
	"metalpedia-backend/internal/shared/apperr"
	"metalpedia-backend/internal/shared/response"
)

// Recovery turns a panic into the standard JSON 500 body
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			log.Error().
				Str("request_id", c.GetString("request_id")).
				Str("method", c.Request.Method).
				Str("route", c.FullPath()).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Panic recovered")
			metrics.PanicsTotal.Inc()

			c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorBody{
				Error: apperr.ErrInternal.Message,
				Code:  apperr.ErrInternal.Code,
			})
		}()

		c.Next()
	}
}
