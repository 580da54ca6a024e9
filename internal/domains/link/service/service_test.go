package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metalpedia-backend/internal/domains/band/bandtest"
	bandModel "metalpedia-backend/internal/domains/band/model"
	"metalpedia-backend/internal/domains/link/model"
	"metalpedia-backend/internal/domains/link/service"
	"metalpedia-backend/internal/shared/auth"
)

var (
	userA = &auth.Principal{Address: "cosmos1a", Role: auth.RoleUser}
	userB = &auth.Principal{Address: "cosmos1b", Role: auth.RoleUser}
	admin = &auth.Principal{Address: "cosmos1m", Role: auth.RoleAdmin}
)

type memRepo struct {
	links map[uuid.UUID]model.Link
}

func (r *memRepo) Create(_ context.Context, l *model.Link) error {
	r.links[l.ID] = *l
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Link, error) {
	l, ok := r.links[id]
	if !ok {
		return nil, model.ErrLinkNotFound
	}
	return &l, nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.links[id]; !ok {
		return model.ErrLinkNotFound
	}
	delete(r.links, id)
	return nil
}

func (r *memRepo) ListByBand(context.Context, uuid.UUID) ([]model.Link, error) {
	return nil, nil
}

func TestLinks(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{links: map[uuid.UUID]model.Link{}}
	bands := bandtest.NewRepo()
	band := bands.Put(bandModel.Band{Name: "Voidreaper", AddedBy: userA.Address, CreatedAt: time.Now()})
	svc := service.NewLinkService(repo, bands)

	req := model.CreateLinkRequest{BandID: band.ID.String(), Type: "Bandcamp", URL: "https://voidreaper.bandcamp.com"}

	t.Run("invalid url", func(t *testing.T) {
		bad := req
		bad.URL = "http://%zz"
		_, err := svc.Create(ctx, userA, bad)
		assert.ErrorIs(t, err, model.ErrInvalidLink)
	})

	t.Run("missing type", func(t *testing.T) {
		bad := req
		bad.Type = ""
		_, err := svc.Create(ctx, userA, bad)
		assert.ErrorIs(t, err, model.ErrInvalidLink)
	})

	t.Run("missing band", func(t *testing.T) {
		bad := req
		bad.BandID = uuid.NewString()
		_, err := svc.Create(ctx, userA, bad)
		assert.ErrorIs(t, err, bandModel.ErrBandNotFound)
	})

	link, err := svc.Create(ctx, userB, req)
	require.NoError(t, err)
	assert.Equal(t, userB.Address, link.AddedBy)
	assert.Equal(t, "Bandcamp", link.Type)

	assert.ErrorIs(t, svc.Delete(ctx, userA, uuid.New()), model.ErrLinkNotFound)
	// the band owner does not own the link
	assert.ErrorIs(t, svc.Delete(ctx, userA, link.ID), model.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, admin, link.ID))
	assert.Empty(t, repo.links)
}
