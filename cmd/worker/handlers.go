package main

import (
	"github.com/hibiken/asynq"

	mediaJob "metalpedia-backend/internal/domains/media/job"
	"metalpedia-backend/internal/shared"
	"metalpedia-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	mediaCleanup *mediaJob.CleanupHandler
	orphanSweep  *mediaJob.OrphanSweepHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		mediaCleanup: mediaJob.NewCleanupHandler(c.MediaService),
		orphanSweep:  mediaJob.NewOrphanSweepHandler(c.MediaService, c.Config.Jobs.OrphanGracePeriod),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeMediaCleanup, h.mediaCleanup.ProcessTask)
	mux.HandleFunc(shared.TypeMediaOrphanSweep, h.orphanSweep.ProcessTask)
}
