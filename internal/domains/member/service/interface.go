package service

import (
	"context"

	"github.com/google/uuid"

	bandModel "metalpedia-backend/internal/domains/band/model"
	"metalpedia-backend/internal/domains/member/model"
	"metalpedia-backend/internal/shared/auth"
)

type ServiceInterface interface {
	Create(ctx context.Context, p *auth.Principal, req model.CreateMemberRequest) (*model.Member, error)
	Update(ctx context.Context, p *auth.Principal, id uuid.UUID, req model.UpdateMemberRequest) (*model.Member, error)
	Delete(ctx context.Context, p *auth.Principal, id uuid.UUID) error
}

// BandReader is the band existence check, satisfied by the band repository
type BandReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*bandModel.Band, error)
}
