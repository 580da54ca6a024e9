package model

import "metalpedia-backend/internal/shared/apperr"

var (
	ErrAlbumNotFound   = apperr.NotFound("ALBUM_NOT_FOUND", "Album not found")
	ErrInvalidAlbum    = apperr.Validation("INVALID_FIELDS", "Missing required fields: title, cover, and type are mandatory")
	ErrForbidden       = apperr.Forbidden("FORBIDDEN", "You can only modify albums you added")
	ErrAddressMismatch = apperr.Forbidden("ADDRESS_MISMATCH", "added_by must match the authenticated address")

	ErrAlbumQuery = apperr.Dependency("ALBUM_QUERY_FAILED", "Failed to load albums", nil)
	ErrAlbumWrite = apperr.Dependency("ALBUM_WRITE_FAILED", "Failed to save album", nil)
)
