package model

import (
	"time"

	"github.com/google/uuid"

	albumModel "metalpedia-backend/internal/domains/album/model"
	linkModel "metalpedia-backend/internal/domains/link/model"
	memberModel "metalpedia-backend/internal/domains/member/model"
)

// MinYearFounded is the earliest accepted founding year
const MinYearFounded = 1900

type Band struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Country     string     `json:"country"`
	Genre       string     `json:"genre"`
	YearFounded int        `json:"year_founded"`
	Bio         *string    `json:"bio"`
	ImageURL    *string    `json:"image_url"`
	LogoURL     *string    `json:"logo_url"`
	AddedBy     string     `json:"added_by"`
	UpdatedBy   *string    `json:"updated_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// Detail is the band page aggregate
type Detail struct {
	Band              *Band                `json:"band"`
	Members           []memberModel.Member `json:"members"`
	PastMembers       []memberModel.Member `json:"pastMembers"`
	Albums            []albumModel.Album   `json:"albums"`
	Links             []linkModel.Link     `json:"links"`
	AddedByUsername   string               `json:"addedByUsername"`
	UpdatedByUsername *string              `json:"updatedByUsername"`
}

// UnknownUser is shown when a submitter has no username
const UnknownUser = "Unknown User"

// RecentBand is a row of the "recently added" list
type RecentBand struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	LogoURL   *string   `json:"logo_url"`
	AddedBy   string    `json:"addedBy"`
}

// Read limits
const (
	SearchLimit        = 5
	DefaultRecentLimit = 12
	MaxRecentLimit     = 50
)
