package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateMemberRequest - POST /api/band-members
type CreateMemberRequest struct {
	BandID    string `json:"band_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	IsCurrent *bool  `json:"is_current"`
	AddedBy   string `json:"added_by"`
}

func (r *CreateMemberRequest) Normalize() {
	r.BandID = strings.TrimSpace(r.BandID)
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.TrimSpace(r.Role)
}

func (r CreateMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BandID, validation.Required, is.UUID),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Role, validation.Required, validation.Length(1, 100)),
	)
}

// Current defaults to true when is_current is omitted
func (r CreateMemberRequest) Current() bool {
	return r.IsCurrent == nil || *r.IsCurrent
}

// UpdateMemberRequest - PUT /api/band-members/:id
type UpdateMemberRequest struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	IsCurrent *bool  `json:"is_current"`
}

func (r *UpdateMemberRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.TrimSpace(r.Role)
}

func (r UpdateMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("Name and role are required"), validation.Length(1, 100)),
		validation.Field(&r.Role, validation.Required.Error("Name and role are required"), validation.Length(1, 100)),
	)
}
