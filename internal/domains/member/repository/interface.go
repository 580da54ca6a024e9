package repository

import (
	"context"

	"github.com/google/uuid"

	"metalpedia-backend/internal/domains/member/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, m *model.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	Update(ctx context.Context, m *model.Member) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByBand returns the line-up in insertion order
	ListByBand(ctx context.Context, bandID uuid.UUID) ([]model.Member, error)
}
