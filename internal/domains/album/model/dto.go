package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	mediaModel "metalpedia-backend/internal/domains/media/model"
)

const dateLayout = "2006-01-02"

// CreateAlbumRequest - POST /api/albums (multipart)
type CreateAlbumRequest struct {
	BandID      string `json:"band_id" form:"band_id"`
	Title       string `json:"title" form:"title"`
	ReleaseDate string `json:"release_date" form:"release_date"`
	Type        string `json:"type" form:"type"`
	AddedBy     string `json:"added_by" form:"added_by"`

	Cover *mediaModel.File `json:"cover" form:"-"`
}

func (r *CreateAlbumRequest) Normalize() {
	r.BandID = strings.TrimSpace(r.BandID)
	r.Title = strings.TrimSpace(r.Title)
	r.ReleaseDate = strings.TrimSpace(r.ReleaseDate)
	r.Type = strings.TrimSpace(r.Type)
}

func (r CreateAlbumRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BandID, validation.Required, is.UUID),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.ReleaseDate, validation.Date(dateLayout).Error("must be a date in YYYY-MM-DD format")),
		validation.Field(&r.Type, validation.Required, validation.In(Types...).Error("must be a valid album type")),
		validation.Field(&r.Cover, validation.Required.Error("cover is required")),
	)
}

// UpdateAlbumRequest - PUT /api/albums/:id (multipart).
// Nil fields were absent from the form and stay unchanged.
type UpdateAlbumRequest struct {
	Title       *string          `json:"title"`
	ReleaseDate *string          `json:"release_date"`
	Type        *string          `json:"type"`
	Cover       *mediaModel.File `json:"cover"`
}

func (r *UpdateAlbumRequest) Normalize() {
	for _, f := range []*string{r.Title, r.ReleaseDate, r.Type} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

func (r UpdateAlbumRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.When(r.Title != nil && *r.Title != "", validation.Length(1, 200))),
		validation.Field(&r.ReleaseDate, validation.When(r.ReleaseDate != nil && *r.ReleaseDate != "",
			validation.Date(dateLayout).Error("must be a date in YYYY-MM-DD format"))),
		validation.Field(&r.Type, validation.When(r.Type != nil && *r.Type != "",
			validation.In(Types...).Error("must be a valid album type"))),
	)
}

// Apply merges the request into a, returning true when anything changed.
// An empty release_date clears it; empty title or type are ignored.
func (r UpdateAlbumRequest) Apply(a *Album) bool {
	changed := false
	if r.Title != nil && *r.Title != "" {
		a.Title = *r.Title
		changed = true
	}
	if r.Type != nil && *r.Type != "" {
		a.Type = *r.Type
		changed = true
	}
	if r.ReleaseDate != nil {
		if *r.ReleaseDate == "" {
			a.ReleaseDate = nil
		} else {
			date := *r.ReleaseDate
			a.ReleaseDate = &date
		}
		changed = true
	}
	return changed
}
