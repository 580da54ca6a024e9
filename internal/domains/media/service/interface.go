package service

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"metalpedia-backend/internal/domains/media/model"
	"metalpedia-backend/internal/infrastructure/storage"
)

// ObjectStore is the object storage the pipeline writes to.
// *storage.MinIOStorage satisfies it.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string, upsert bool) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error)
	KeyFromURL(rawURL string) (string, bool)
}

// ImageTransformer is satisfied by *storage.ImageProcessor
type ImageTransformer interface {
	Grayscale(data []byte) ([]byte, error)
}

// TaskEnqueuer is satisfied by *asynq.Client
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type ServiceInterface interface {
	// CheckSize rejects a file over the cap of its kind.
	// Callers run it before any database or storage write.
	CheckSize(kind model.Kind, file *model.File) error

	// Upload validates, transforms and stores file under key, returning its public URL.
	// With upsert=false an existing key is a validation error.
	Upload(ctx context.Context, kind model.Kind, key string, file *model.File, upsert bool) (string, error)

	// Remove deletes the object behind url. It never fails: errors are
	// logged and the deletion is retried by the worker.
	Remove(ctx context.Context, url string)

	// RemoveKey deletes one object and reports the error (worker side)
	RemoveKey(ctx context.Context, key string) error

	// SweepOrphans deletes objects older than grace that no row references
	SweepOrphans(ctx context.Context, grace time.Duration) (int, error)

	// EnqueueSweep queues an out-of-schedule orphan sweep with the worker's default grace
	EnqueueSweep(ctx context.Context) error
}
