package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"metalpedia-backend/internal/domains/member/model"
	"metalpedia-backend/internal/domains/member/service"
	"metalpedia-backend/internal/shared/apperr"
	"metalpedia-backend/internal/shared/middleware"
	"metalpedia-backend/internal/shared/response"
	"metalpedia-backend/internal/shared/utils"
)

var errInvalidBody = apperr.Validation("INVALID_REQUEST", "Invalid request body")

type MemberHandler struct {
	memberService service.ServiceInterface
}

func NewMemberHandler(memberService service.ServiceInterface) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// Create - POST /api/band-members
func (h *MemberHandler) Create(c *gin.Context) {
	var req model.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.FromBind(errInvalidBody, err))
		return
	}

	m, err := h.memberService.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, m)
}

// Update - PUT /api/band-members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.Error(c, apperr.ErrInvalidID)
		return
	}

	var req model.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.FromBind(errInvalidBody, err))
		return
	}

	m, err := h.memberService.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, m)
}

// Delete - DELETE /api/band-members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.Error(c, apperr.ErrInvalidID)
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Member deleted")
}
