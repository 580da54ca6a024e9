package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	mediaModel "metalpedia-backend/internal/domains/media/model"
	mediaService "metalpedia-backend/internal/domains/media/service"
	"metalpedia-backend/internal/shared"
)

// OrphanSweepHandler deletes media nothing references anymore
type OrphanSweepHandler struct {
	mediaService mediaService.ServiceInterface
	defaultGrace time.Duration
}

func NewOrphanSweepHandler(mediaService mediaService.ServiceInterface, defaultGrace time.Duration) *OrphanSweepHandler {
	return &OrphanSweepHandler{
		mediaService: mediaService,
		defaultGrace: defaultGrace,
	}
}

func (h *OrphanSweepHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.OrphanSweepPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal OrphanSweep payload")
			return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
		}
	}

	grace := h.defaultGrace
	if payload.GracePeriodSeconds > 0 {
		grace = time.Duration(payload.GracePeriodSeconds) * time.Second
	}

	start := time.Now()
	removed, err := h.mediaService.SweepOrphans(ctx, grace)
	if err != nil {
		log.Error().Err(err).Int("removed", removed).Msg("Orphan sweep failed")
		if errors.Is(err, mediaModel.ErrSweepAborted) {
			return fmt.Errorf("sweep orphans: %w: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("sweep orphans: %w", err)
	}

	log.Info().
		Int("removed", removed).
		Dur("grace", grace).
		Dur("took", time.Since(start)).
		Msg("Orphan sweep finished")

	return nil
}
