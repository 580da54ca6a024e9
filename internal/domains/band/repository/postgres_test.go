package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metalpedia-backend/internal/domains/band/model"
)

var bandRowColumns = []string{
	"id", "name", "country", "genre", "year_founded", "bio", "image_url",
	"logo_url", "added_by", "updated_by", "created_at", "updated_at",
}

var (
	insertBandSQL   = regexp.QuoteMeta("INSERT INTO bands (id, name, country, genre, year_founded, bio, image_url, logo_url, added_by, created_at)")
	bandsAddedSQL   = regexp.QuoteMeta("SET bands_added = users.bands_added + 1")
	deleteAlbumsSQL = regexp.QuoteMeta("DELETE FROM albums WHERE band_id = $1 RETURNING cover_url")
	deleteMembers   = regexp.QuoteMeta("DELETE FROM band_members WHERE band_id = $1")
	deleteLinks     = regexp.QuoteMeta("DELETE FROM band_links WHERE band_id = $1")
	deleteBandSQL   = regexp.QuoteMeta("DELETE FROM bands WHERE id = $1 AND ($2 = '' OR added_by = $2)")
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, RepositoryInterface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresRepository(mock)
}

func strPtr(s string) *string { return &s }

func newBand(addedBy string) *model.Band {
	return &model.Band{
		ID:          uuid.New(),
		Name:        "Voidreaper",
		Country:     "Norway",
		Genre:       "Black Metal",
		YearFounded: 1991,
		AddedBy:     addedBy,
		CreatedAt:   time.Now(),
	}
}

func insertArgs(b *model.Band) []any {
	return []any{b.ID, b.Name, b.Country, b.Genre, b.YearFounded, b.Bio, b.ImageURL, b.LogoURL, b.AddedBy, b.CreatedAt}
}

// ========================================
// CREATE
// ========================================

func TestCreateBand(t *testing.T) {
	t.Run("insert and counter share one transaction", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		b := newBand("cosmos1aaa")

		mock.ExpectBegin()
		mock.ExpectExec(insertBandSQL).WithArgs(insertArgs(b)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(bandsAddedSQL).WithArgs("cosmos1aaa").WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Create(context.Background(), b))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("name index conflict", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		b := newBand("cosmos1aaa")

		mock.ExpectBegin()
		mock.ExpectExec(insertBandSQL).WithArgs(insertArgs(b)...).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_bands_name_lower"})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), b)

		assert.ErrorIs(t, err, model.ErrDuplicateBandName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("counter failure rolls back the band", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		b := newBand("cosmos1aaa")

		mock.ExpectBegin()
		mock.ExpectExec(insertBandSQL).WithArgs(insertArgs(b)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(bandsAddedSQL).WithArgs("cosmos1aaa").WillReturnError(&pgconn.PgError{Code: "40001"})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), b)

		assert.ErrorIs(t, err, model.ErrBandWrite)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// ========================================
// DELETE
// ========================================

func TestDeleteCascade(t *testing.T) {
	id := uuid.New()

	expectChildren := func(mock pgxmock.PgxPoolIface) {
		mock.ExpectBegin()
		mock.ExpectQuery(deleteAlbumsSQL).WithArgs(id).
			WillReturnRows(pgxmock.NewRows([]string{"cover_url"}).
				AddRow(strPtr("http://minio.test/media/album-covers/a.jpg")).
				AddRow(nil))
		mock.ExpectExec(deleteMembers).WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 4))
		mock.ExpectExec(deleteLinks).WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 2))
	}

	t.Run("owner filter is bound for regular users", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		expectChildren(mock)
		mock.ExpectExec(deleteBandSQL).WithArgs(id, "cosmos1owner").WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		covers, err := repo.DeleteCascade(context.Background(), id, "cosmos1owner")

		require.NoError(t, err)
		assert.Equal(t, []string{"http://minio.test/media/album-covers/a.jpg"}, covers)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty owner deletes any band", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		expectChildren(mock)
		mock.ExpectExec(deleteBandSQL).WithArgs(id, "").WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		_, err := repo.DeleteCascade(context.Background(), id, "")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no band row rolls back the children", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		expectChildren(mock)
		mock.ExpectExec(deleteBandSQL).WithArgs(id, "cosmos1other").WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectRollback()

		covers, err := repo.DeleteCascade(context.Background(), id, "cosmos1other")

		assert.ErrorIs(t, err, model.ErrBandNotFound)
		assert.Nil(t, covers)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// ========================================
// READ
// ========================================

func TestSearchEscapesPattern(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Void", "void"},
		{"percent and underscore", "100%_Pure", `100\%\_pure`},
		{"backslash", `Black\Death`, `black\\death`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMockRepo(t)
			mock.ExpectQuery(regexp.QuoteMeta("WHERE unaccent(name) ILIKE '%' || unaccent($1) || '%'")).
				WithArgs(tt.want, model.SearchLimit).
				WillReturnRows(pgxmock.NewRows(bandRowColumns).
					AddRow(uuid.New(), "Voidreaper", "Norway", "Black Metal", 1991, nil, nil, nil, "cosmos1aaa", nil, time.Now(), nil))

			bands, err := repo.Search(context.Background(), tt.input, model.SearchLimit)

			require.NoError(t, err)
			require.Len(t, bands, 1)
			assert.Equal(t, "Voidreaper", bands[0].Name)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdateBandConflict(t *testing.T) {
	mock, repo := newMockRepo(t)
	b := newBand("cosmos1aaa")
	b.UpdatedBy = strPtr("cosmos1aaa")
	now := time.Now()
	b.UpdatedAt = &now

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bands")).
		WithArgs(b.ID, b.Name, b.Country, b.Genre, b.YearFounded, b.Bio, b.UpdatedBy, b.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Update(context.Background(), b)

	assert.ErrorIs(t, err, model.ErrDuplicateBandName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
