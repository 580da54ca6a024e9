package handler

import (
	"github.com/gin-gonic/gin"

	"metalpedia-backend/internal/domains/stats/service"
	"metalpedia-backend/internal/shared/response"
)

type StatsHandler struct {
	statsService service.ServiceInterface
}

func NewStatsHandler(statsService service.ServiceInterface) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats returns the bands, albums and fans counters
// GET /api/stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}
