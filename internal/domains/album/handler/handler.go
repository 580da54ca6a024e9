package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"metalpedia-backend/internal/domains/album/model"
	"metalpedia-backend/internal/domains/album/service"
	mediaHandler "metalpedia-backend/internal/domains/media/handler"
	mediaModel "metalpedia-backend/internal/domains/media/model"
	"metalpedia-backend/internal/shared/apperr"
	"metalpedia-backend/internal/shared/middleware"
	"metalpedia-backend/internal/shared/response"
	"metalpedia-backend/internal/shared/utils"
)

var errInvalidBody = apperr.Validation("INVALID_REQUEST", "Invalid request body")

type AlbumHandler struct {
	albumService service.ServiceInterface
}

func NewAlbumHandler(albumService service.ServiceInterface) *AlbumHandler {
	return &AlbumHandler{albumService: albumService}
}

func albumID(c *gin.Context) (uuid.UUID, bool) {
	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.Error(c, apperr.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// optionalField returns nil when the multipart field was not sent
func optionalField(c *gin.Context, name string) *string {
	if v, ok := c.GetPostForm(name); ok {
		return &v
	}
	return nil
}

// Create adds an album with its cover
// POST /api/albums (multipart: band_id, title, release_date, type, cover, added_by)
func (h *AlbumHandler) Create(c *gin.Context) {
	var req model.CreateAlbumRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperr.FromBind(errInvalidBody, err))
		return
	}

	cover, err := mediaHandler.FormFile(c, "cover", mediaModel.KindAlbumCover)
	if err != nil {
		response.Error(c, err)
		return
	}
	req.Cover = cover

	album, err := h.albumService.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, album)
}

// GetAlbum - GET /api/albums/:id
func (h *AlbumHandler) GetAlbum(c *gin.Context) {
	id, ok := albumID(c)
	if !ok {
		return
	}

	album, err := h.albumService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, album)
}

// Update changes album fields and optionally the cover
// PUT /api/albums/:id (multipart: title?, release_date?, type?, cover?)
func (h *AlbumHandler) Update(c *gin.Context) {
	id, ok := albumID(c)
	if !ok {
		return
	}

	cover, err := mediaHandler.FormFile(c, "cover", mediaModel.KindAlbumCover)
	if err != nil {
		response.Error(c, err)
		return
	}

	req := model.UpdateAlbumRequest{
		Title:       optionalField(c, "title"),
		ReleaseDate: optionalField(c, "release_date"),
		Type:        optionalField(c, "type"),
		Cover:       cover,
	}

	album, err := h.albumService.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, album)
}

// Delete - DELETE /api/albums/:id
func (h *AlbumHandler) Delete(c *gin.Context) {
	id, ok := albumID(c)
	if !ok {
		return
	}

	if err := h.albumService.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Album deleted")
}
