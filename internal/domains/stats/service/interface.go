package service

import (
	"context"

	"metalpedia-backend/internal/domains/stats/model"
)

type ServiceInterface interface {
	Get(ctx context.Context) (*model.Stats, error)
	Invalidate(ctx context.Context)
}

// Invalidator is what mutating services need to keep the counters fresh
type Invalidator interface {
	Invalidate(ctx context.Context)
}
