package model

import "metalpedia-backend/internal/shared/apperr"

var (
	ErrBandNotFound      = apperr.NotFound("BAND_NOT_FOUND", "Band not found")
	ErrInvalidFields     = apperr.Validation("INVALID_FIELDS", "Missing or invalid required fields")
	ErrDuplicateBandName = apperr.Validation("DUPLICATE_BAND_NAME", "A band with this name already exists")
	ErrQueryRequired     = apperr.Validation("QUERY_REQUIRED", "Query parameter is required")
	ErrNameRequired      = apperr.Validation("NAME_REQUIRED", "Band name is required")
	ErrLogoRequired      = apperr.Validation("LOGO_REQUIRED", "Logo is required")
	ErrImageRequired     = apperr.Validation("IMAGE_REQUIRED", "Image is required")
	ErrForbidden         = apperr.Forbidden("FORBIDDEN", "You can only modify bands you added")
	ErrAddressMismatch   = apperr.Forbidden("ADDRESS_MISMATCH", "bech32Address must match the authenticated address")

	ErrBandQuery = apperr.Dependency("BAND_QUERY_FAILED", "Failed to fetch band", nil)
	ErrBandWrite = apperr.Dependency("BAND_WRITE_FAILED", "Failed to save band", nil)
)
