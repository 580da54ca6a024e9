package model

import "metalpedia-backend/internal/shared/apperr"

// Stats are the site-wide counters shown on the landing page
type Stats struct {
	Bands  int64 `json:"bands"`
	Albums int64 `json:"albums"`
	Fans   int64 `json:"fans"`
}

var ErrStatsUnavailable = apperr.Dependency("STATS_UNAVAILABLE", "Failed to fetch stats", nil)
