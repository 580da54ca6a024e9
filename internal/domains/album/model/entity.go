package model

import (
	"time"

	"github.com/google/uuid"
)

// Album types accepted by the albums.type check constraint
const (
	TypeFullAlbum   = "Full Album"
	TypeLP          = "LP"
	TypeSingle      = "Single"
	TypeEP          = "EP"
	TypeDemo        = "Demo"
	TypeCompilation = "Compilation"
	TypeLive        = "Live"
	TypeSplit       = "Split"
)

var Types = []any{
	TypeFullAlbum,
	TypeLP,
	TypeSingle,
	TypeEP,
	TypeDemo,
	TypeCompilation,
	TypeLive,
	TypeSplit,
}

type Album struct {
	ID          uuid.UUID  `json:"id"`
	BandID      uuid.UUID  `json:"band_id"`
	Title       string     `json:"title"`
	ReleaseDate *string    `json:"release_date"` // YYYY-MM-DD
	Type        string     `json:"type"`
	CoverURL    *string    `json:"cover_url"`
	AddedBy     string     `json:"added_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
