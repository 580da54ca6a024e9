package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// UpdateUserRequest - PUT /api/users/:address
// Unknown JSON fields are ignored.
type UpdateUserRequest struct {
	Username   *string `json:"username"`
	AvatarURL  *string `json:"avatar_url"`
	HasAccount *bool   `json:"has_account"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.Username != nil {
		trimmed := strings.TrimSpace(*r.Username)
		r.Username = &trimmed
	}
}

func (r UpdateUserRequest) Empty() bool {
	return r.Username == nil && r.AvatarURL == nil && r.HasAccount == nil
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.NilOrNotEmpty.Error("username cannot be empty"), validation.Length(1, 50)),
		validation.Field(&r.AvatarURL, validation.When(r.AvatarURL != nil && *r.AvatarURL != "", is.URL.Error("avatar_url must be a valid URL"))),
	)
}

// ToUpdate applies the account rule: setting a username or avatar marks the account as created
func (r UpdateUserRequest) ToUpdate() ProfileUpdate {
	upd := ProfileUpdate{Username: r.Username, AvatarURL: r.AvatarURL, HasAccount: r.HasAccount}
	if (r.Username != nil && *r.Username != "") || (r.AvatarURL != nil && *r.AvatarURL != "") {
		hasAccount := true
		upd.HasAccount = &hasAccount
	}
	return upd
}

// SaveProfileRequest - POST /api/users
type SaveProfileRequest struct {
	Address   string  `json:"bech32Address"`
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatarUrl"`
}

func (r SaveProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Address, validation.Required.Error("Address is required")),
		validation.Field(&r.Username, validation.When(r.Username != nil && *r.Username != "", validation.Length(1, 50))),
		validation.Field(&r.AvatarURL, validation.When(r.AvatarURL != nil && *r.AvatarURL != "", is.URL.Error("avatarUrl must be a valid URL"))),
	)
}

// SaveProfileResponse keeps the wallet panel's {success, data: [...]} shape
type SaveProfileResponse struct {
	Success bool              `json:"success"`
	Data    []*ProfileSummary `json:"data"`
}

// AvatarResponse - POST /api/upload-avatar
type AvatarResponse struct {
	URL string `json:"url"`
}
