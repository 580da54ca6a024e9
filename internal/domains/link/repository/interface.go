package repository

import (
	"context"

	"github.com/google/uuid"

	"metalpedia-backend/internal/domains/link/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, l *model.Link) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Link, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByBand(ctx context.Context, bandID uuid.UUID) ([]model.Link, error)
}
