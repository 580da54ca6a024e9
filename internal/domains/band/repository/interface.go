package repository

import (
	"context"

	"github.com/google/uuid"

	"metalpedia-backend/internal/domains/band/model"
)

type RepositoryInterface interface {
	// Create inserts the band and bumps the submitter's bands_added in one transaction
	Create(ctx context.Context, b *model.Band) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Band, error)

	// ExistsByName compares case-insensitively, ignoring excludeID when set
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	Update(ctx context.Context, b *model.Band) error
	SetLogoURL(ctx context.Context, id uuid.UUID, url *string) error
	SetImageURL(ctx context.Context, id uuid.UUID, url *string) error

	// DeleteCascade removes albums, members, links and the band in one transaction
	// and returns the cover URLs of the deleted albums. A non-empty owner limits
	// the band delete to rows added by owner.
	DeleteCascade(ctx context.Context, id uuid.UUID, owner string) ([]string, error)

	Recent(ctx context.Context, limit int) ([]model.Band, error)
	Search(ctx context.Context, query string, limit int) ([]model.Band, error)
}
