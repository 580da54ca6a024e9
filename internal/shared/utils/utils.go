package utils

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ParseStringToUUID returns uuid.Nil for empty or malformed input
func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil
	}
	return uid
}

// ClampInt parses s and clamps it into [lo, hi], def when s is empty or invalid
func ClampInt(s string, def, lo, hi int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		v = def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// StringPtr returns nil for blank strings
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
