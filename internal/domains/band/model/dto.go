package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	mediaModel "metalpedia-backend/internal/domains/media/model"
)

// ====================================
// Year founded
// ====================================

// Year accepts both 1991 and "1991" in JSON bodies
type Year int

func (y *Year) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	if s == "" || s == "null" {
		*y = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string", Type: reflect.TypeOf(*y)}
	}
	*y = Year(v)
	return nil
}

// YearField keeps year_founded as sent. JSON bodies may carry 1991 or "1991",
// form fields bind as plain strings. Validate checks the digits.
type YearField string

func (y *YearField) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		*y = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*y = YearField(s)
	default:
		*y = YearField(raw)
	}
	return nil
}

func checkYear(year int) error {
	if year < MinYearFounded || year > time.Now().Year() {
		return fmt.Errorf("must be between %d and %d", MinYearFounded, time.Now().Year())
	}
	return nil
}

var errYearNotNumber = errors.New("must be a number")

// ====================================
// Create
// ====================================

// CreateBandRequest - POST /api/bands/add (multipart)
type CreateBandRequest struct {
	Name        string `json:"name" form:"name"`
	Genre       string `json:"genre" form:"genre"`
	Country     string `json:"country" form:"country"`
	YearFounded YearField `json:"year_founded" form:"year_founded"`
	LogoURL     string `json:"logo_url" form:"logo_url"`
	Address     string `json:"bech32Address" form:"bech32Address"`

	LogoFile *mediaModel.File `json:"-" form:"-"`
}

func (r *CreateBandRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Genre = strings.TrimSpace(r.Genre)
	r.Country = strings.TrimSpace(r.Country)
	r.YearFounded = YearField(strings.TrimSpace(string(r.YearFounded)))
	r.LogoURL = strings.TrimSpace(r.LogoURL)
	r.Address = strings.TrimSpace(r.Address)
}

func (r CreateBandRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Genre, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Country, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.YearFounded, validation.Required, validation.By(func(value interface{}) error {
			year, err := strconv.Atoi(string(value.(YearField)))
			if err != nil {
				return errYearNotNumber
			}
			return checkYear(year)
		})),
		validation.Field(&r.LogoURL, is.URL),
	)
}

// Year is the parsed year_founded, valid after Validate
func (r CreateBandRequest) Year() int {
	year, _ := strconv.Atoi(string(r.YearFounded))
	return year
}

// ====================================
// Update
// ====================================

// UpdateBandRequest - PUT /api/bands/:id
type UpdateBandRequest struct {
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	Genre       string  `json:"genre"`
	YearFounded *Year   `json:"year_founded"`
	Bio         *string `json:"bio"`
}

func (r *UpdateBandRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Country = strings.TrimSpace(r.Country)
	r.Genre = strings.TrimSpace(r.Genre)
	if r.Bio != nil {
		bio := strings.TrimSpace(*r.Bio)
		r.Bio = &bio
	}
}

func (r UpdateBandRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 200)),
		validation.Field(&r.Country, validation.Length(1, 100)),
		validation.Field(&r.Genre, validation.Length(1, 100)),
		validation.Field(&r.YearFounded, validation.When(r.YearFounded != nil && *r.YearFounded != 0,
			validation.By(func(interface{}) error { return checkYear(int(*r.YearFounded)) }))),
		validation.Field(&r.Bio, validation.When(r.Bio != nil, validation.Length(0, 5000))),
	)
}

// Apply merges non-empty fields into b. An empty bio clears it.
func (r UpdateBandRequest) Apply(b *Band) {
	if r.Name != "" {
		b.Name = r.Name
	}
	if r.Country != "" {
		b.Country = r.Country
	}
	if r.Genre != "" {
		b.Genre = r.Genre
	}
	if r.YearFounded != nil && *r.YearFounded != 0 {
		b.YearFounded = int(*r.YearFounded)
	}
	if r.Bio != nil {
		if *r.Bio == "" {
			b.Bio = nil
		} else {
			bio := *r.Bio
			b.Bio = &bio
		}
	}
}

// ====================================
// Responses
// ====================================

type CheckResponse struct {
	Exists bool `json:"exists"`
}

type LogoResponse struct {
	LogoURL string `json:"logo_url"`
}

type ImageResponse struct {
	ImageURL string `json:"image_url"`
}
