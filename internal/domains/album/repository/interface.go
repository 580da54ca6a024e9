package repository

import (
	"context"

	"github.com/google/uuid"

	"metalpedia-backend/internal/domains/album/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Album) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Album, error)
	Update(ctx context.Context, a *model.Album) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByBand(ctx context.Context, bandID uuid.UUID) ([]model.Album, error)
}
