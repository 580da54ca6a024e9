package service

import (
	"context"

	"github.com/google/uuid"

	"metalpedia-backend/internal/domains/album/model"
	bandModel "metalpedia-backend/internal/domains/band/model"
	"metalpedia-backend/internal/shared/auth"
)

type ServiceInterface interface {
	Create(ctx context.Context, p *auth.Principal, req model.CreateAlbumRequest) (*model.Album, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Album, error)
	Update(ctx context.Context, p *auth.Principal, id uuid.UUID, req model.UpdateAlbumRequest) (*model.Album, error)
	Delete(ctx context.Context, p *auth.Principal, id uuid.UUID) error
}

type BandReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*bandModel.Band, error)
}
