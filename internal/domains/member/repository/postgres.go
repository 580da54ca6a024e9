package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	bandModel "metalpedia-backend/internal/domains/band/model"
	"metalpedia-backend/internal/domains/member/model"
	"metalpedia-backend/pkg/database"
)

type postgresRepository struct {
	pool database.Querier
}

func NewPostgresRepository(pool database.Querier) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const memberColumns = `id, band_id, name, role, is_current, added_by, created_at, updated_at`

func scanMember(row pgx.Row, m *model.Member) error {
	return row.Scan(
		&m.ID,
		&m.BandID,
		&m.Name,
		&m.Role,
		&m.IsCurrent,
		&m.AddedBy,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, m *model.Member) error {
	query := `
		INSERT INTO band_members (id, band_id, name, role, is_current, added_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.BandID,
		m.Name,
		m.Role,
		m.IsCurrent,
		m.AddedBy,
		m.CreatedAt,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return bandModel.ErrBandNotFound
		}
		return model.ErrMemberWrite.Wrap(err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM band_members WHERE id = $1`

	var m model.Member
	if err := scanMember(r.pool.QueryRow(ctx, query, id), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMemberNotFound
		}
		return nil, model.ErrMemberQuery.Wrap(err)
	}
	return &m, nil
}

func (r *postgresRepository) Update(ctx context.Context, m *model.Member) error {
	query := `
		UPDATE band_members
		SET name = $2, role = $3, is_current = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, m.ID, m.Name, m.Role, m.IsCurrent, m.UpdatedAt)
	if err != nil {
		return model.ErrMemberWrite.Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMemberNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM band_members WHERE id = $1`, id)
	if err != nil {
		return model.ErrMemberWrite.Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMemberNotFound
	}
	return nil
}

func (r *postgresRepository) ListByBand(ctx context.Context, bandID uuid.UUID) ([]model.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM band_members
		WHERE band_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, bandID)
	if err != nil {
		return nil, model.ErrMemberQuery.Wrap(err)
	}
	defer rows.Close()

	members := make([]model.Member, 0)
	for rows.Next() {
		var m model.Member
		if err := scanMember(rows, &m); err != nil {
			return nil, model.ErrMemberQuery.Wrap(err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, model.ErrMemberQuery.Wrap(err)
	}
	return members, nil
}
