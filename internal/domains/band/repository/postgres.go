package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"metalpedia-backend/internal/domains/band/model"
	"metalpedia-backend/pkg/database"
)

type postgresRepository struct {
	pool database.Querier
}

func NewPostgresRepository(pool database.Querier) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const bandColumns = `id, name, country, genre, year_founded, bio, image_url, logo_url, added_by, updated_by, created_at, updated_at`

func scanBand(row pgx.Row, b *model.Band) error {
	return row.Scan(
		&b.ID,
		&b.Name,
		&b.Country,
		&b.Genre,
		&b.YearFounded,
		&b.Bio,
		&b.ImageURL,
		&b.LogoURL,
		&b.AddedBy,
		&b.UpdatedBy,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

func collectBands(rows pgx.Rows) ([]model.Band, error) {
	defer rows.Close()

	bands := make([]model.Band, 0)
	for rows.Next() {
		var b model.Band
		if err := scanBand(rows, &b); err != nil {
			return nil, model.ErrBandQuery.Wrap(err)
		}
		bands = append(bands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, model.ErrBandQuery.Wrap(err)
	}
	return bands, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Band) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// Step 1: band row, uniqueness is enforced by the lower(name) index
		insertQuery := `
			INSERT INTO bands (id, name, country, genre, year_founded, bio, image_url, logo_url, added_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		_, err := tx.Exec(ctx, insertQuery,
			b.ID,
			b.Name,
			b.Country,
			b.Genre,
			b.YearFounded,
			b.Bio,
			b.ImageURL,
			b.LogoURL,
			b.AddedBy,
			b.CreatedAt,
		)
		if err != nil {
			if database.IsUniqueViolation(err) {
				return model.ErrDuplicateBandName
			}
			return model.ErrBandWrite.Wrap(err)
		}

		// Step 2: submitter counter, created on first contribution
		counterQuery := `
			INSERT INTO users (address, bands_added)
			VALUES ($1, 1)
			ON CONFLICT (address) DO UPDATE
			SET bands_added = users.bands_added + 1, updated_at = NOW()
		`
		if _, err := tx.Exec(ctx, counterQuery, b.AddedBy); err != nil {
			return model.ErrBandWrite.Wrap(err)
		}
		return nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Band, error) {
	query := `SELECT ` + bandColumns + ` FROM bands WHERE id = $1`

	var b model.Band
	if err := scanBand(r.pool.QueryRow(ctx, query, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBandNotFound
		}
		return nil, model.ErrBandQuery.Wrap(err)
	}
	return &b, nil
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bands
			WHERE lower(name) = lower($1)
			  AND ($2::uuid IS NULL OR id <> $2::uuid)
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, model.ErrBandQuery.Wrap(err)
	}
	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Band) error {
	query := `
		UPDATE bands
		SET name = $2, country = $3, genre = $4, year_founded = $5, bio = $6,
		    updated_by = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Name,
		b.Country,
		b.Genre,
		b.YearFounded,
		b.Bio,
		b.UpdatedBy,
		b.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrDuplicateBandName
		}
		return model.ErrBandWrite.Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBandNotFound
	}
	return nil
}

func (r *postgresRepository) setColumn(ctx context.Context, column string, id uuid.UUID, url *string) error {
	// column is one of two constants below, never user input
	query := `UPDATE bands SET ` + column + ` = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, url)
	if err != nil {
		return model.ErrBandWrite.Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBandNotFound
	}
	return nil
}

func (r *postgresRepository) SetLogoURL(ctx context.Context, id uuid.UUID, url *string) error {
	return r.setColumn(ctx, "logo_url", id, url)
}

func (r *postgresRepository) SetImageURL(ctx context.Context, id uuid.UUID, url *string) error {
	return r.setColumn(ctx, "image_url", id, url)
}

func (r *postgresRepository) DeleteCascade(ctx context.Context, id uuid.UUID, owner string) ([]string, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]string, error) {
		// Step 1: albums, keeping their covers for storage cleanup
		rows, err := tx.Query(ctx, `DELETE FROM albums WHERE band_id = $1 RETURNING cover_url`, id)
		if err != nil {
			return nil, model.ErrBandWrite.Wrap(err)
		}
		covers := make([]string, 0)
		for rows.Next() {
			var cover *string
			if err := rows.Scan(&cover); err != nil {
				rows.Close()
				return nil, model.ErrBandWrite.Wrap(err)
			}
			if cover != nil && *cover != "" {
				covers = append(covers, *cover)
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, model.ErrBandWrite.Wrap(err)
		}

		// Step 2: members and links
		if _, err := tx.Exec(ctx, `DELETE FROM band_members WHERE band_id = $1`, id); err != nil {
			return nil, model.ErrBandWrite.Wrap(err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM band_links WHERE band_id = $1`, id); err != nil {
			return nil, model.ErrBandWrite.Wrap(err)
		}

		// Step 3: the band itself, limited to the owner for non-admins
		tag, err := tx.Exec(ctx,
			`DELETE FROM bands WHERE id = $1 AND ($2 = '' OR added_by = $2)`,
			id, owner,
		)
		if err != nil {
			return nil, model.ErrBandWrite.Wrap(err)
		}
		if tag.RowsAffected() == 0 {
			return nil, model.ErrBandNotFound
		}
		return covers, nil
	})
}

func (r *postgresRepository) Recent(ctx context.Context, limit int) ([]model.Band, error) {
	query := `
		SELECT ` + bandColumns + `
		FROM bands
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, model.ErrBandQuery.Wrap(err)
	}
	return collectBands(rows)
}

// likeEscaper makes user input literal inside an ILIKE pattern
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *postgresRepository) Search(ctx context.Context, query string, limit int) ([]model.Band, error) {
	sql := `
		SELECT ` + bandColumns + `
		FROM bands
		WHERE unaccent(name) ILIKE '%' || unaccent($1) || '%'
		ORDER BY lower(name), id
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, sql, likeEscaper.Replace(strings.ToLower(query)), limit)
	if err != nil {
		return nil, model.ErrBandQuery.Wrap(err)
	}
	return collectBands(rows)
}
