package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metalpedia-backend/internal/domains/media/service"
	"metalpedia-backend/internal/shared/response"
)

type MediaHandler struct {
	mediaService service.ServiceInterface
}

func NewMediaHandler(mediaService service.ServiceInterface) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// TriggerSweep queues an orphan sweep
// POST /api/admin/media/sweep
func (h *MediaHandler) TriggerSweep(c *gin.Context) {
	if err := h.mediaService.EnqueueSweep(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, gin.H{"message": "Orphan sweep queued"})
}
