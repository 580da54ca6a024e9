package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	mediaService "metalpedia-backend/internal/domains/media/service"
	"metalpedia-backend/internal/shared"
)

// CleanupHandler retries deletions that failed on the request path
type CleanupHandler struct {
	mediaService mediaService.ServiceInterface
}

func NewCleanupHandler(mediaService mediaService.ServiceInterface) *CleanupHandler {
	return &CleanupHandler{mediaService: mediaService}
}

func (h *CleanupHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.MediaCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal MediaCleanup payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	if payload.Key == "" {
		return fmt.Errorf("empty key: %w", asynq.SkipRetry)
	}

	if err := h.mediaService.RemoveKey(ctx, payload.Key); err != nil {
		log.Error().
			Err(err).
			Str("key", payload.Key).
			Msg("Failed to delete media object")
		return fmt.Errorf("delete object: %w", err)
	}

	log.Info().
		Str("key", payload.Key).
		Str("reason", payload.Reason).
		Msg("Media object deleted")

	return nil
}
