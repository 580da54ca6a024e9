package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"metalpedia-backend/internal/domains/media/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const referencedURLsQuery = `
	SELECT logo_url FROM bands WHERE logo_url IS NOT NULL AND logo_url <> ''
	UNION
	SELECT image_url FROM bands WHERE image_url IS NOT NULL AND image_url <> ''
	UNION
	SELECT cover_url FROM albums WHERE cover_url IS NOT NULL AND cover_url <> ''
	UNION
	SELECT avatar_url FROM users WHERE avatar_url IS NOT NULL AND avatar_url <> ''
`

func (r *postgresRepository) ReferencedURLs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, referencedURLsQuery)
	if err != nil {
		return nil, model.ErrRefLookup.Wrap(err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, model.ErrRefLookup.Wrap(err)
		}
		urls = append(urls, u)
	}
	if err := rows.Err(); err != nil {
		return nil, model.ErrRefLookup.Wrap(err)
	}
	return urls, nil
}
