package service

import (
	"context"

	"github.com/google/uuid"

	bandModel "metalpedia-backend/internal/domains/band/model"
	"metalpedia-backend/internal/domains/link/model"
	"metalpedia-backend/internal/shared/auth"
)

type ServiceInterface interface {
	Create(ctx context.Context, p *auth.Principal, req model.CreateLinkRequest) (*model.Link, error)
	Delete(ctx context.Context, p *auth.Principal, id uuid.UUID) error
}

type BandReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*bandModel.Band, error)
}
