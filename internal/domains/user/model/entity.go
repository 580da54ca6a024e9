package model

import (
	"time"

	"metalpedia-backend/internal/shared/auth"
)

// MaxUsernameChanges is how many times a non-admin may rename
const MaxUsernameChanges = 2

type User struct {
	Address         string    `json:"address"`
	Username        string    `json:"username"`
	AvatarURL       *string   `json:"avatar_url"`
	HasAccount      bool      `json:"has_account"`
	UsernameChanges int       `json:"username_changes"`
	Role            auth.Role `json:"role"`
	BandsAdded      int       `json:"bands_added"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProfileSummary is the camelCase profile view used by the wallet panel
type ProfileSummary struct {
	Username        string    `json:"username"`
	AvatarURL       *string   `json:"avatarUrl"`
	HasAccount      bool      `json:"hasAccount"`
	UsernameChanges int       `json:"usernameChanges"`
	Role            auth.Role `json:"role"`
}

// DefaultProfile is returned for addresses with no row
func DefaultProfile() *ProfileSummary {
	return &ProfileSummary{Role: auth.RoleUser}
}

func (u *User) Summary() *ProfileSummary {
	return &ProfileSummary{
		Username:        u.Username,
		AvatarURL:       u.AvatarURL,
		HasAccount:      u.HasAccount,
		UsernameChanges: u.UsernameChanges,
		Role:            u.Role,
	}
}

// ProfileUpdate is a partial write. Nil fields are left unchanged.
// A username change only counts against the limit when the previous
// username was non-empty and differs.
type ProfileUpdate struct {
	Username   *string
	AvatarURL  *string
	HasAccount *bool
}
