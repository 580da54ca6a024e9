package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"metalpedia-backend/internal/domains/media/model"
	"metalpedia-backend/internal/domains/media/repository"
	"metalpedia-backend/internal/infrastructure/metrics"
	"metalpedia-backend/internal/infrastructure/storage"
	"metalpedia-backend/internal/shared"
)

type mediaService struct {
	store    ObjectStore
	images   ImageTransformer
	repo     repository.Repository
	queue    TaskEnqueuer
	maxRetry int
	now      func() time.Time
}

func NewMediaService(
	store ObjectStore,
	images ImageTransformer,
	repo repository.Repository,
	queue TaskEnqueuer,
	maxRetry int,
) ServiceInterface {
	return &mediaService{
		store:    store,
		images:   images,
		repo:     repo,
		queue:    queue,
		maxRetry: maxRetry,
		now:      time.Now,
	}
}

func (s *mediaService) CheckSize(kind model.Kind, file *model.File) error {
	if file == nil || len(file.Data) == 0 {
		return model.ErrFileRequired
	}

	rule := model.RuleFor(kind)
	if file.Size() > model.MaxUploadBytes {
		return model.ErrFileTooLarge
	}
	if rule.MaxBytes > 0 && file.Size() > rule.MaxBytes {
		return model.TooLarge(kind)
	}
	return nil
}

func (s *mediaService) Upload(
	ctx context.Context,
	kind model.Kind,
	key string,
	file *model.File,
	upsert bool,
) (string, error) {
	// Step 1: size cap before anything is written
	if err := s.CheckSize(kind, file); err != nil {
		metrics.MediaUploadsTotal.WithLabelValues(string(kind), "rejected").Inc()
		return "", err
	}

	// Step 2: transform
	data, contentType := file.Data, file.ContentType
	if model.RuleFor(kind).Grayscale {
		gray, err := s.images.Grayscale(file.Data)
		if err != nil {
			metrics.MediaUploadsTotal.WithLabelValues(string(kind), "rejected").Inc()
			return "", model.ErrInvalidImage.Wrap(err)
		}
		data, contentType = gray, "image/jpeg"
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Step 3: store
	url, err := s.store.Upload(ctx, key, data, contentType, upsert)
	if err != nil {
		if errors.Is(err, storage.ErrObjectExists) {
			metrics.MediaUploadsTotal.WithLabelValues(string(kind), "rejected").Inc()
			return "", model.ErrObjectExists
		}
		metrics.MediaUploadsTotal.WithLabelValues(string(kind), "failed").Inc()
		return "", model.ErrUploadFailed.Wrap(err)
	}

	metrics.MediaUploadsTotal.WithLabelValues(string(kind), "stored").Inc()
	log.Debug().Str("kind", string(kind)).Str("key", key).Int("bytes", len(data)).Msg("Media stored")
	return url, nil
}

func (s *mediaService) Remove(ctx context.Context, url string) {
	if url == "" {
		return
	}

	key, ok := s.store.KeyFromURL(url)
	if !ok {
		// externally hosted, e.g. a logo_url submitted as a link
		log.Debug().Str("url", url).Msg("Skipping removal of foreign media URL")
		return
	}

	err := s.store.Delete(ctx, key)
	if err == nil {
		metrics.MediaRemovalsTotal.WithLabelValues("removed").Inc()
		return
	}

	log.Warn().Err(err).Str("key", key).Msg("Media removal failed, scheduling retry")

	if err := s.enqueueCleanup(ctx, key); err != nil {
		metrics.MediaRemovalsTotal.WithLabelValues("failed").Inc()
		log.Error().Err(err).Str("key", key).Msg("Failed to enqueue media cleanup, object left for orphan sweep")
		return
	}
	metrics.MediaRemovalsTotal.WithLabelValues("deferred").Inc()
}

func (s *mediaService) enqueueCleanup(ctx context.Context, key string) error {
	if s.queue == nil {
		return errors.New("no task queue configured")
	}

	payload, err := json.Marshal(shared.MediaCleanupPayload{Key: key, Reason: "remove_failed"})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeMediaCleanup, payload)
	_, err = s.queue.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(s.maxRetry),
	)
	return err
}

func (s *mediaService) EnqueueSweep(ctx context.Context) error {
	if s.queue == nil {
		return model.ErrEnqueueFailed
	}

	task := asynq.NewTask(shared.TypeMediaOrphanSweep, nil)
	_, err := s.queue.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Unique(time.Hour),
	)
	if err != nil {
		return model.ErrEnqueueFailed.Wrap(err)
	}
	return nil
}

func (s *mediaService) RemoveKey(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return err
	}
	metrics.MediaRemovalsTotal.WithLabelValues("removed").Inc()
	return nil
}

func (s *mediaService) SweepOrphans(ctx context.Context, grace time.Duration) (int, error) {
	urls, err := s.repo.ReferencedURLs(ctx)
	if err != nil {
		return 0, err
	}

	referenced := make(map[string]struct{}, len(urls))
	unmapped := 0
	for _, u := range urls {
		if key, ok := s.store.KeyFromURL(u); ok {
			referenced[key] = struct{}{}
			continue
		}
		unmapped++
	}

	// References exist but none resolve to a key: the bucket base moved
	if len(urls) > 0 && len(referenced) == 0 {
		log.Error().
			Int("references", len(urls)).
			Msg("No media reference maps to a bucket key, orphan sweep aborted")
		return 0, model.ErrSweepAborted
	}
	if unmapped > 0 {
		log.Debug().Int("unmapped", unmapped).Msg("Skipping references outside the media bucket")
	}

	cutoff := s.now().Add(-grace)
	removed := 0

	for _, prefix := range model.Prefixes {
		objects, err := s.store.List(ctx, prefix)
		if err != nil {
			return removed, err
		}

		for _, obj := range objects {
			if obj.LastModified.After(cutoff) {
				continue
			}
			if _, ok := referenced[obj.Key]; ok {
				continue
			}

			if err := s.store.Delete(ctx, obj.Key); err != nil {
				log.Warn().Err(err).Str("key", obj.Key).Msg("Failed to delete orphaned media")
				continue
			}
			removed++
			metrics.OrphansSweptTotal.Inc()
		}
	}

	return removed, nil
}
