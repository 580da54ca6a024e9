package repository

import "context"

// Repository reads which stored objects are still referenced by a row
type Repository interface {
	// ReferencedURLs returns every non-empty logo, image, cover and avatar URL
	ReferencedURLs(ctx context.Context) ([]string, error)
}
