package model

import "metalpedia-backend/internal/shared/apperr"

var (
	ErrFileRequired  = apperr.Validation("FILE_REQUIRED", "No file uploaded")
	ErrFileTooLarge  = apperr.Validation("FILE_TOO_LARGE", "File is too large")
	ErrInvalidImage  = apperr.Validation("INVALID_IMAGE", "File is not a supported image")
	ErrObjectExists  = apperr.Validation("FILE_EXISTS", "A file with this name already exists")
	ErrUploadFailed  = apperr.Dependency("UPLOAD_FAILED", "Failed to upload file", nil)
	ErrRefLookup     = apperr.Dependency("MEDIA_REFERENCES_FAILED", "Failed to load media references", nil)
	ErrInvalidUpload = apperr.Validation("INVALID_UPLOAD", "Invalid multipart upload")
	ErrEnqueueFailed = apperr.Dependency("ENQUEUE_FAILED", "Failed to queue media job", nil)
	ErrSweepAborted  = apperr.Dependency("SWEEP_ABORTED", "No media reference matches the bucket URL", nil)
)

// TooLarge is the validation error for a file over its kind's cap
func TooLarge(kind Kind) *apperr.Error {
	rule := RuleFor(kind)
	if rule.TooLarge == "" {
		return ErrFileTooLarge
	}
	return apperr.Validation("FILE_TOO_LARGE", rule.TooLarge)
}
