package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateLinkRequest - POST /api/band-links
type CreateLinkRequest struct {
	BandID  string `json:"band_id"`
	Type    string `json:"type"`
	URL     string `json:"url"`
	AddedBy string `json:"added_by"`
}

func (r *CreateLinkRequest) Normalize() {
	r.BandID = strings.TrimSpace(r.BandID)
	r.Type = strings.TrimSpace(r.Type)
	r.URL = strings.TrimSpace(r.URL)
}

func (r CreateLinkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BandID, validation.Required, is.UUID),
		validation.Field(&r.Type, validation.Required.Error("Link type is required"), validation.Length(1, 50)),
		validation.Field(&r.URL, validation.Required, is.URL.Error("must be a valid URL"), validation.Length(1, 2048)),
	)
}
