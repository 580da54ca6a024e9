package service

import (
	"context"

	mediaModel "metalpedia-backend/internal/domains/media/model"
	"metalpedia-backend/internal/domains/user/model"
	"metalpedia-backend/internal/shared/auth"
)

type ServiceInterface interface {
	// GetOrCreate fetches a profile, creating an empty one for unknown addresses
	GetOrCreate(ctx context.Context, address string) (*model.User, bool, error)

	// GetProfile returns the summary view, with defaults for unknown addresses
	GetProfile(ctx context.Context, address string) (*model.ProfileSummary, error)

	// UpdateProfile is restricted to the caller's own address
	UpdateProfile(ctx context.Context, p *auth.Principal, address string, req model.UpdateUserRequest) (*model.User, error)

	SaveProfile(ctx context.Context, p *auth.Principal, req model.SaveProfileRequest) (*model.SaveProfileResponse, error)

	Delete(ctx context.Context, p *auth.Principal, address string) error

	UploadAvatar(ctx context.Context, p *auth.Principal, address string, file *mediaModel.File) (string, error)
}
