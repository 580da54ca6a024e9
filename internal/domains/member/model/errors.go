package model

import "metalpedia-backend/internal/shared/apperr"

var (
	ErrMemberNotFound  = apperr.NotFound("MEMBER_NOT_FOUND", "Band member not found")
	ErrInvalidMember   = apperr.Validation("INVALID_FIELDS", "Missing or invalid required fields")
	ErrForbidden       = apperr.Forbidden("FORBIDDEN", "You can only modify members you added")
	ErrAddressMismatch = apperr.Forbidden("ADDRESS_MISMATCH", "added_by must match the authenticated address")

	ErrMemberQuery = apperr.Dependency("MEMBER_QUERY_FAILED", "Failed to load band members", nil)
	ErrMemberWrite = apperr.Dependency("MEMBER_WRITE_FAILED", "Failed to save band member", nil)
)
