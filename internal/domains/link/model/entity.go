package model

import (
	"time"

	"github.com/google/uuid"
)

// Link is an external page for a band (official site, Bandcamp, ...)
type Link struct {
	ID        uuid.UUID `json:"id"`
	BandID    uuid.UUID `json:"band_id"`
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	AddedBy   string    `json:"added_by"`
	CreatedAt time.Time `json:"created_at"`
}
