package model

import "metalpedia-backend/internal/shared/apperr"

var (
	ErrUserNotFound        = apperr.NotFound("USER_NOT_FOUND", "User not found")
	ErrAddressRequired     = apperr.Validation("ADDRESS_REQUIRED", "Address is required")
	ErrNoValidFields       = apperr.Validation("NO_VALID_FIELDS", "No valid fields to update")
	ErrInvalidProfile      = apperr.Validation("INVALID_PROFILE", "Invalid profile fields")
	ErrUsernameChangeLimit = apperr.Validation("USERNAME_CHANGE_LIMIT", "Username can only be changed 2 times")
	ErrNotSelf             = apperr.Forbidden("FORBIDDEN", "You can only modify your own profile")
	ErrAvatarRequired      = apperr.Validation("AVATAR_REQUIRED", "Address and file are required")

	ErrUserQuery = apperr.Dependency("USER_QUERY_FAILED", "Failed to load user", nil)
	ErrUserWrite = apperr.Dependency("USER_WRITE_FAILED", "Failed to update user", nil)
)
