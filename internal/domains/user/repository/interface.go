package repository

import (
	"context"

	"metalpedia-backend/internal/domains/user/model"
	"metalpedia-backend/internal/shared/auth"
)

type RepositoryInterface interface {
	// RoleOf implements auth.RoleLookup. found is false when no row exists.
	RoleOf(ctx context.Context, address string) (auth.Role, bool, error)

	GetByAddress(ctx context.Context, address string) (*model.User, error)

	// GetOrCreate inserts an empty profile when the address is unknown.
	// created reports whether a row was inserted.
	GetOrCreate(ctx context.Context, address string) (user *model.User, created bool, err error)

	// UpdateProfile upserts the profile in one statement.
	// Unless unlimited is set, renaming past MaxUsernameChanges returns ErrUsernameChangeLimit.
	UpdateProfile(ctx context.Context, address string, upd model.ProfileUpdate, unlimited bool) (*model.User, error)

	Delete(ctx context.Context, address string) error

	// Usernames maps addresses to non-empty usernames. Unknown addresses are absent.
	Usernames(ctx context.Context, addresses []string) (map[string]string, error)
}
