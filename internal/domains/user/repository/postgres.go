package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"metalpedia-backend/internal/domains/user/model"
	"metalpedia-backend/internal/shared/auth"
	"metalpedia-backend/pkg/database"
)

type postgresRepository struct {
	pool database.Querier
}

func NewPostgresRepository(pool database.Querier) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const userColumns = `address, username, avatar_url, has_account, username_changes, role, bands_added, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.Address,
		&u.Username,
		&u.AvatarURL,
		&u.HasAccount,
		&u.UsernameChanges,
		&u.Role,
		&u.BandsAdded,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *postgresRepository) RoleOf(ctx context.Context, address string) (auth.Role, bool, error) {
	var role auth.Role
	err := r.pool.QueryRow(ctx, `SELECT role FROM users WHERE address = $1`, address).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.RoleUser, false, nil
		}
		return "", false, err
	}
	if !role.Valid() {
		role = auth.RoleUser
	}
	return role, true, nil
}

func (r *postgresRepository) GetByAddress(ctx context.Context, address string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE address = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, address))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, model.ErrUserQuery.Wrap(err)
	}
	return u, nil
}

func (r *postgresRepository) GetOrCreate(ctx context.Context, address string) (*model.User, bool, error) {
	query := `
		INSERT INTO users (address)
		VALUES ($1)
		ON CONFLICT (address) DO NOTHING
		RETURNING ` + userColumns

	u, err := scanUser(r.pool.QueryRow(ctx, query, address))
	if err == nil {
		return u, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, model.ErrUserWrite.Wrap(err)
	}

	// Row already existed
	u, err = r.GetByAddress(ctx, address)
	if err != nil {
		return nil, false, err
	}
	return u, false, nil
}

// The WHERE clause of the conflict branch enforces the rename limit under
// the row lock, so concurrent renames cannot exceed it. When it rejects the
// update no row is returned.
const updateProfileQuery = `
	INSERT INTO users (address, username, avatar_url, has_account)
	VALUES ($1, COALESCE($2::text, ''), NULLIF($3::text, ''), COALESCE($4::boolean, false))
	ON CONFLICT (address) DO UPDATE SET
		username = COALESCE($2::text, users.username),
		avatar_url = CASE WHEN $3::text IS NULL THEN users.avatar_url ELSE NULLIF($3::text, '') END,
		has_account = COALESCE($4::boolean, users.has_account),
		username_changes = users.username_changes + CASE
			WHEN $2::text IS NOT NULL AND users.username <> '' AND $2::text <> users.username THEN 1
			ELSE 0
		END,
		updated_at = NOW()
	WHERE $5::boolean
		OR $2::text IS NULL
		OR users.username = ''
		OR $2::text = users.username
		OR users.username_changes < $6
	RETURNING ` + userColumns

func (r *postgresRepository) UpdateProfile(
	ctx context.Context,
	address string,
	upd model.ProfileUpdate,
	unlimited bool,
) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, updateProfileQuery,
		address,
		upd.Username,
		upd.AvatarURL,
		upd.HasAccount,
		unlimited,
		model.MaxUsernameChanges,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUsernameChangeLimit
		}
		return nil, model.ErrUserWrite.Wrap(err)
	}
	return u, nil
}

func (r *postgresRepository) Delete(ctx context.Context, address string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE address = $1`, address)
	if err != nil {
		return model.ErrUserWrite.Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) Usernames(ctx context.Context, addresses []string) (map[string]string, error) {
	out := make(map[string]string, len(addresses))
	if len(addresses) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT address, username FROM users WHERE address = ANY($1) AND username <> ''`,
		addresses,
	)
	if err != nil {
		return nil, model.ErrUserQuery.Wrap(err)
	}
	defer rows.Close()

	for rows.Next() {
		var address, username string
		if err := rows.Scan(&address, &username); err != nil {
			return nil, model.ErrUserQuery.Wrap(err)
		}
		out[address] = username
	}
	if err := rows.Err(); err != nil {
		return nil, model.ErrUserQuery.Wrap(err)
	}
	return out, nil
}
