package model

import "metalpedia-backend/internal/shared/apperr"

var (
	ErrLinkNotFound    = apperr.NotFound("LINK_NOT_FOUND", "Link not found")
	ErrInvalidLink     = apperr.Validation("INVALID_FIELDS", "Missing required fields")
	ErrForbidden       = apperr.Forbidden("FORBIDDEN", "You can only delete links you added")
	ErrAddressMismatch = apperr.Forbidden("ADDRESS_MISMATCH", "added_by must match the authenticated address")

	ErrLinkQuery = apperr.Dependency("LINK_QUERY_FAILED", "Failed to load links", nil)
	ErrLinkWrite = apperr.Dependency("LINK_WRITE_FAILED", "Failed to save link", nil)
)
