package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"metalpedia-backend/internal/domains/band/model"
	"metalpedia-backend/internal/domains/band/service"
	mediaHandler "metalpedia-backend/internal/domains/media/handler"
	mediaModel "metalpedia-backend/internal/domains/media/model"
	"metalpedia-backend/internal/shared/apperr"
	"metalpedia-backend/internal/shared/middleware"
	"metalpedia-backend/internal/shared/response"
	"metalpedia-backend/internal/shared/utils"
)

var errInvalidBody = apperr.Validation("INVALID_REQUEST", "Invalid request body")

type BandHandler struct {
	bandService service.ServiceInterface
}

func NewBandHandler(bandService service.ServiceInterface) *BandHandler {
	return &BandHandler{bandService: bandService}
}

func bandID(c *gin.Context) (uuid.UUID, bool) {
	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.Error(c, apperr.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// ========================================
// PUBLIC
// ========================================

// GetBand returns the band page aggregate
// GET /api/bands/:id
// GET /api/bands/:id/details
func (h *BandHandler) GetBand(c *gin.Context) {
	id, ok := bandID(c)
	if !ok {
		return
	}

	detail, err := h.bandService.GetDetail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, detail)
}

// Recent lists the newest bands
// GET /api/bands/recent?limit=12
func (h *BandHandler) Recent(c *gin.Context) {
	limit := utils.ClampInt(c.Query("limit"), model.DefaultRecentLimit, 1, model.MaxRecentLimit)

	bands, err := h.bandService.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, bands)
}

// Search matches band names ignoring case and accents
// GET /api/bands/search?query=
func (h *BandHandler) Search(c *gin.Context) {
	bands, err := h.bandService.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, bands)
}

// Check reports whether a band name is taken
// GET /api/bands/check?name=
func (h *BandHandler) Check(c *gin.Context) {
	exists, err := h.bandService.Exists(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, model.CheckResponse{Exists: exists})
}

// ========================================
// AUTHENTICATED
// ========================================

// Create adds a band, optionally with a logo file
// POST /api/bands/add (multipart)
func (h *BandHandler) Create(c *gin.Context) {
	var req model.CreateBandRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperr.FromBind(errInvalidBody, err))
		return
	}

	file, err := mediaHandler.FormFile(c, "logo_file", mediaModel.KindBandLogo)
	if err != nil {
		response.Error(c, err)
		return
	}
	req.LogoFile = file

	band, err := h.bandService.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, band)
}

// Update merges the provided fields into the band
// PUT /api/bands/:id
func (h *BandHandler) Update(c *gin.Context) {
	id, ok := bandID(c)
	if !ok {
		return
	}

	var req model.UpdateBandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.FromBind(errInvalidBody, err))
		return
	}

	band, err := h.bandService.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, band)
}

// Delete removes the band with its albums, members and links
// DELETE /api/bands/:id
func (h *BandHandler) Delete(c *gin.Context) {
	id, ok := bandID(c)
	if !ok {
		return
	}

	if err := h.bandService.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Band deleted successfully")
}

// UploadLogo replaces the band logo with a grayscale copy of the upload
// POST /api/bands/:id/logo (multipart: logo)
func (h *BandHandler) UploadLogo(c *gin.Context) {
	id, ok := bandID(c)
	if !ok {
		return
	}

	file, err := mediaHandler.FormFile(c, "logo", mediaModel.KindBandLogo)
	if err != nil {
		response.Error(c, err)
		return
	}

	url, err := h.bandService.UploadLogo(c.Request.Context(), middleware.PrincipalFrom(c), id, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, model.LogoResponse{LogoURL: url})
}

// DeleteLogo
// DELETE /api/bands/:id/logo
func (h *BandHandler) DeleteLogo(c *gin.Context) {
	id, ok := bandID(c)
	if !ok {
		return
	}

	if err := h.bandService.DeleteLogo(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Logo deleted")
}

// UploadImage replaces the band photo with a grayscale copy of the upload
// POST /api/bands/:id/image (multipart: image)
func (h *BandHandler) UploadImage(c *gin.Context) {
	id, ok := bandID(c)
	if !ok {
		return
	}

	file, err := mediaHandler.FormFile(c, "image", mediaModel.KindBandImage)
	if err != nil {
		response.Error(c, err)
		return
	}

	url, err := h.bandService.UploadImage(c.Request.Context(), middleware.PrincipalFrom(c), id, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, model.ImageResponse{ImageURL: url})
}

// DeleteImage
// DELETE /api/bands/:id/image
func (h *BandHandler) DeleteImage(c *gin.Context) {
	id, ok := bandID(c)
	if !ok {
		return
	}

	if err := h.bandService.DeleteImage(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Band image deleted")
}
