package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	bandModel "metalpedia-backend/internal/domains/band/model"
	"metalpedia-backend/internal/domains/link/model"
	"metalpedia-backend/pkg/database"
)

type postgresRepository struct {
	pool database.Querier
}

func NewPostgresRepository(pool database.Querier) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const linkColumns = `id, band_id, type, url, added_by, created_at`

func (r *postgresRepository) Create(ctx context.Context, l *model.Link) error {
	query := `
		INSERT INTO band_links (id, band_id, type, url, added_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := r.pool.Exec(ctx, query, l.ID, l.BandID, l.Type, l.URL, l.AddedBy, l.CreatedAt); err != nil {
		if database.IsForeignKeyViolation(err) {
			return bandModel.ErrBandNotFound
		}
		return model.ErrLinkWrite.Wrap(err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM band_links WHERE id = $1`

	var l model.Link
	err := r.pool.QueryRow(ctx, query, id).Scan(&l.ID, &l.BandID, &l.Type, &l.URL, &l.AddedBy, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLinkNotFound
		}
		return nil, model.ErrLinkQuery.Wrap(err)
	}
	return &l, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM band_links WHERE id = $1`, id)
	if err != nil {
		return model.ErrLinkWrite.Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrLinkNotFound
	}
	return nil
}

func (r *postgresRepository) ListByBand(ctx context.Context, bandID uuid.UUID) ([]model.Link, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM band_links
		WHERE band_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, bandID)
	if err != nil {
		return nil, model.ErrLinkQuery.Wrap(err)
	}

	links, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Link])
	if err != nil {
		return nil, model.ErrLinkQuery.Wrap(err)
	}
	if links == nil {
		links = []model.Link{}
	}
	return links, nil
}
