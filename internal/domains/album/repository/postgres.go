package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"metalpedia-backend/internal/domains/album/model"
	bandModel "metalpedia-backend/internal/domains/band/model"
	"metalpedia-backend/pkg/database"
)

type postgresRepository struct {
	pool database.Querier
}

func NewPostgresRepository(pool database.Querier) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// release_date is a DATE column, read back as YYYY-MM-DD text
const albumColumns = `id, band_id, title, release_date::text, type, cover_url, added_by, created_at, updated_at`

func scanAlbum(row pgx.Row, a *model.Album) error {
	return row.Scan(
		&a.ID,
		&a.BandID,
		&a.Title,
		&a.ReleaseDate,
		&a.Type,
		&a.CoverURL,
		&a.AddedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Album) error {
	query := `
		INSERT INTO albums (id, band_id, title, release_date, type, cover_url, added_by, created_at)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.BandID,
		a.Title,
		a.ReleaseDate,
		a.Type,
		a.CoverURL,
		a.AddedBy,
		a.CreatedAt,
	)
	if err != nil {
		switch {
		case database.IsForeignKeyViolation(err):
			// band deleted after the service looked it up
			return bandModel.ErrBandNotFound
		case database.IsCheckViolation(err):
			return model.ErrInvalidAlbum.Wrap(err)
		}
		return model.ErrAlbumWrite.Wrap(err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Album, error) {
	query := `SELECT ` + albumColumns + ` FROM albums WHERE id = $1`

	var a model.Album
	if err := scanAlbum(r.pool.QueryRow(ctx, query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAlbumNotFound
		}
		return nil, model.ErrAlbumQuery.Wrap(err)
	}
	return &a, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Album) error {
	query := `
		UPDATE albums
		SET title = $2, release_date = $3::date, type = $4, cover_url = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, a.ID, a.Title, a.ReleaseDate, a.Type, a.CoverURL, a.UpdatedAt)
	if err != nil {
		if database.IsCheckViolation(err) {
			return model.ErrInvalidAlbum.Wrap(err)
		}
		return model.ErrAlbumWrite.Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAlbumNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return model.ErrAlbumWrite.Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAlbumNotFound
	}
	return nil
}

func (r *postgresRepository) ListByBand(ctx context.Context, bandID uuid.UUID) ([]model.Album, error) {
	query := `
		SELECT ` + albumColumns + `
		FROM albums
		WHERE band_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, bandID)
	if err != nil {
		return nil, model.ErrAlbumQuery.Wrap(err)
	}
	defer rows.Close()

	albums := make([]model.Album, 0)
	for rows.Next() {
		var a model.Album
		if err := scanAlbum(rows, &a); err != nil {
			return nil, model.ErrAlbumQuery.Wrap(err)
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, model.ErrAlbumQuery.Wrap(err)
	}
	return albums, nil
}
