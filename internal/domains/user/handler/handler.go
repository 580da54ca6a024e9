package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mediaHandler "metalpedia-backend/internal/domains/media/handler"
	mediaModel "metalpedia-backend/internal/domains/media/model"
	"metalpedia-backend/internal/domains/user/model"
	"metalpedia-backend/internal/domains/user/service"
	"metalpedia-backend/internal/shared/apperr"
	"metalpedia-backend/internal/shared/middleware"
	"metalpedia-backend/internal/shared/response"
)

var errInvalidBody = apperr.Validation("INVALID_REQUEST", "Invalid request body")

type UserHandler struct {
	userService service.ServiceInterface
}

func NewUserHandler(userService service.ServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUser fetches a profile, creating it on first access
// GET /api/users/:address
func (h *UserHandler) GetUser(c *gin.Context) {
	u, created, err := h.userService.GetOrCreate(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(c, status, u)
}

// GetProfile returns the profile summary
// GET /api/users?address=
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), c.Query("address"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}

// UpdateUser updates username, avatar_url or has_account
// PUT /api/users/:address
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.FromBind(errInvalidBody, err))
		return
	}

	u, err := h.userService.UpdateProfile(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("address"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, u)
}

// SaveProfile creates or updates the caller's profile
// POST /api/users
func (h *UserHandler) SaveProfile(c *gin.Context) {
	var req model.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.FromBind(errInvalidBody, err))
		return
	}

	resp, err := h.userService.SaveProfile(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// DeleteUser deletes the caller's own profile
// DELETE /api/users/:address
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("address")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "User deleted")
}

// UploadAvatar stores an avatar image and links it to the profile
// POST /api/upload-avatar (multipart: address, file)
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	file, err := mediaHandler.FormFile(c, "file", mediaModel.KindAvatar)
	if err != nil {
		response.Error(c, err)
		return
	}

	url, err := h.userService.UploadAvatar(c.Request.Context(), middleware.PrincipalFrom(c), c.PostForm("address"), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, model.AvatarResponse{URL: url})
}
