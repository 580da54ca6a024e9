package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"metalpedia-backend/internal/shared/apperr"
)

// ErrorBody is the wire shape of every failed request
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// MessageBody is returned by deletes and other operations with no resource to return
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes data as the bare response body
func JSON(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

func OK(c *gin.Context, data any) {
	JSON(c, http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	JSON(c, http.StatusCreated, data)
}

func Message(c *gin.Context, message string) {
	JSON(c, http.StatusOK, MessageBody{Message: message})
}

// Error maps err onto its status and code. Server errors are logged with their cause.
func Error(c *gin.Context, err error) {
	appErr := apperr.As(err)
	status := apperr.HTTPStatus(appErr)

	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("code", appErr.Code).
			Msg("Request failed")
	}

	c.JSON(status, ErrorBody{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

// Common error responses
func Unauthorized(c *gin.Context, message string) {
	Error(c, apperr.Unauthenticated("UNAUTHORIZED", message))
}

func Forbidden(c *gin.Context, message string) {
	Error(c, apperr.Forbidden("FORBIDDEN", message))
}
