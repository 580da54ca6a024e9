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

	bandModel "metalpedia-backend/internal/domains/band/model"
	"metalpedia-backend/internal/domains/link/model"
)

func TestCreateLinkRow(t *testing.T) {
	l := &model.Link{
		ID:        uuid.New(),
		BandID:    uuid.New(),
		Type:      "bandcamp",
		URL:       "https://voidreaper.bandcamp.com",
		AddedBy:   "cosmos1aaa",
		CreatedAt: time.Now(),
	}

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO band_links")).
		WithArgs(l.ID, l.BandID, l.Type, l.URL, l.AddedBy, l.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err = NewPostgresRepository(mock).Create(context.Background(), l)

	assert.ErrorIs(t, err, bandModel.ErrBandNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
