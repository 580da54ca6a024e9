package repository

import (
	"context"

	"metalpedia-backend/internal/domains/stats/model"
)

type RepositoryInterface interface {
	// Counts returns the counters, served from cache when fresh
	Counts(ctx context.Context) (*model.Stats, error)

	// Invalidate drops the cached counters
	Invalidate(ctx context.Context)
}
