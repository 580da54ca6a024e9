package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"metalpedia-backend/internal/domains/link/model"
	"metalpedia-backend/internal/domains/link/service"
	"metalpedia-backend/internal/shared/apperr"
	"metalpedia-backend/internal/shared/middleware"
	"metalpedia-backend/internal/shared/response"
	"metalpedia-backend/internal/shared/utils"
)

var errInvalidBody = apperr.Validation("INVALID_REQUEST", "Invalid request body")

type LinkHandler struct {
	linkService service.ServiceInterface
}

func NewLinkHandler(linkService service.ServiceInterface) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

// Create - POST /api/band-links
func (h *LinkHandler) Create(c *gin.Context) {
	var req model.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.FromBind(errInvalidBody, err))
		return
	}

	l, err := h.linkService.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, l)
}

// Delete - DELETE /api/band-links/:id
func (h *LinkHandler) Delete(c *gin.Context) {
	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.Error(c, apperr.ErrInvalidID)
		return
	}

	if err := h.linkService.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Link deleted successfully")
}
