package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metalpedia-backend/internal/domains/album/model"
	"metalpedia-backend/internal/domains/album/service"
	"metalpedia-backend/internal/domains/band/bandtest"
	bandModel "metalpedia-backend/internal/domains/band/model"
	mediaModel "metalpedia-backend/internal/domains/media/model"
	"metalpedia-backend/internal/domains/media/mediatest"
	"metalpedia-backend/internal/shared/apperr"
	"metalpedia-backend/internal/shared/auth"
)

var (
	userA = &auth.Principal{Address: "cosmos1a", Role: auth.RoleUser}
	userB = &auth.Principal{Address: "cosmos1b", Role: auth.RoleUser}
	admin = &auth.Principal{Address: "cosmos1m", Role: auth.RoleAdmin}
)

type memRepo struct {
	mu        sync.Mutex
	albums    map[uuid.UUID]model.Album
	createErr error
	updateErr error
}

func newMemRepo() *memRepo {
	return &memRepo{albums: map[uuid.UUID]model.Album{}}
}

func (r *memRepo) Create(_ context.Context, a *model.Album) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.albums[a.ID] = *a
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.albums[id]
	if !ok {
		return nil, model.ErrAlbumNotFound
	}
	return &a, nil
}

func (r *memRepo) Update(_ context.Context, a *model.Album) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.albums[a.ID]; !ok {
		return model.ErrAlbumNotFound
	}
	r.albums[a.ID] = *a
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.albums[id]; !ok {
		return model.ErrAlbumNotFound
	}
	delete(r.albums, id)
	return nil
}

func (r *memRepo) ListByBand(_ context.Context, bandID uuid.UUID) ([]model.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Album{}
	for _, a := range r.albums {
		if a.BandID == bandID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fixture struct {
	repo  *memRepo
	bands *bandtest.Repo
	store *mediatest.Store
	stats *bandtest.Invalidations
	svc   service.ServiceInterface
	band  *bandModel.Band
}

func newFixture() *fixture {
	f := &fixture{
		repo:  newMemRepo(),
		bands: bandtest.NewRepo(),
		store: mediatest.NewStore(),
		stats: &bandtest.Invalidations{},
	}
	f.band = f.bands.Put(bandModel.Band{Name: "Voidreaper", AddedBy: userA.Address, CreatedAt: time.Now()})
	f.svc = service.NewAlbumService(f.repo, f.bands, mediatest.NewService(f.store, nil, nil), f.stats)
	return f
}

func cover(size int) *mediaModel.File {
	return &mediaModel.File{Name: "Cover Art.JPG", ContentType: "image/jpeg", Data: bytes.Repeat([]byte{7}, size)}
}

func (f *fixture) request() model.CreateAlbumRequest {
	return model.CreateAlbumRequest{
		BandID:      f.band.ID.String(),
		Title:       "Ashen Liturgy",
		ReleaseDate: "1994-10-31",
		Type:        model.TypeFullAlbum,
		Cover:       cover(100 * mediaModel.KB),
	}
}

func TestCreateAlbum(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads cover then inserts", func(t *testing.T) {
		f := newFixture()

		album, err := f.svc.Create(ctx, userB, f.request())
		require.NoError(t, err)

		assert.Equal(t, userB.Address, album.AddedBy)
		require.NotNil(t, album.ReleaseDate)
		assert.Equal(t, "1994-10-31", *album.ReleaseDate)
		require.NotNil(t, album.CoverURL)

		keys := f.store.Keys()
		require.Len(t, keys, 1)
		assert.True(t, strings.HasPrefix(keys[0], "album-covers/"+f.band.ID.String()+"/"), keys[0])
		assert.True(t, strings.HasSuffix(keys[0], "-cover-art.jpg"), keys[0])
		assert.Len(t, f.repo.albums, 1)
		assert.Equal(t, 1, f.stats.Count)
	})

	t.Run("250 KB cover is rejected with no row", func(t *testing.T) {
		f := newFixture()
		req := f.request()
		req.Cover = cover(250 * mediaModel.KB)

		_, err := f.svc.Create(ctx, userA, req)
		require.Error(t, err)
		assert.Equal(t, 400, apperr.HTTPStatus(err))
		assert.Equal(t, "Cover image must be less than 200 KB", apperr.As(err).Message)
		assert.Empty(t, f.repo.albums)
		assert.Empty(t, f.store.Keys())
	})

	t.Run("missing band", func(t *testing.T) {
		f := newFixture()
		req := f.request()
		req.BandID = uuid.NewString()

		_, err := f.svc.Create(ctx, userA, req)
		assert.ErrorIs(t, err, bandModel.ErrBandNotFound)
		assert.Empty(t, f.store.Keys())
	})

	t.Run("field validation", func(t *testing.T) {
		cases := map[string]func(r *model.CreateAlbumRequest){
			"title":        func(r *model.CreateAlbumRequest) { r.Title = "" },
			"type":         func(r *model.CreateAlbumRequest) { r.Type = "Mixtape" },
			"band_id":      func(r *model.CreateAlbumRequest) { r.BandID = "nope" },
			"release_date": func(r *model.CreateAlbumRequest) { r.ReleaseDate = "31/10/1994" },
			"cover":        func(r *model.CreateAlbumRequest) { r.Cover = nil },
		}
		for field, edit := range cases {
			f := newFixture()
			req := f.request()
			edit(&req)

			_, err := f.svc.Create(ctx, userA, req)
			require.ErrorIs(t, err, model.ErrInvalidAlbum, field)
			details, ok := apperr.As(err).Details.(map[string]string)
			require.True(t, ok, field)
			assert.Contains(t, details, field)
		}
	})

	t.Run("every album type is accepted", func(t *testing.T) {
		for _, typ := range model.Types {
			f := newFixture()
			req := f.request()
			req.Type = typ.(string)
			_, err := f.svc.Create(ctx, userA, req)
			assert.NoError(t, err, typ)
		}
	})

	t.Run("added_by must be the caller", func(t *testing.T) {
		f := newFixture()
		req := f.request()
		req.AddedBy = userA.Address

		_, err := f.svc.Create(ctx, userB, req)
		assert.ErrorIs(t, err, model.ErrAddressMismatch)
	})

	t.Run("failed insert removes the cover", func(t *testing.T) {
		f := newFixture()
		f.repo.createErr = model.ErrAlbumWrite.Wrap(errors.New("boom"))

		_, err := f.svc.Create(ctx, userA, f.request())
		assert.Equal(t, 500, apperr.HTTPStatus(err))
		assert.Empty(t, f.store.Keys())
	})
}

func (f *fixture) seedAlbum(t *testing.T, owner *auth.Principal) *model.Album {
	t.Helper()
	album, err := f.svc.Create(context.Background(), owner, f.request())
	require.NoError(t, err)
	return album
}

func TestUpdateAlbum(t *testing.T) {
	ctx := context.Background()

	t.Run("404 before 403", func(t *testing.T) {
		f := newFixture()
		title := "X"
		_, err := f.svc.Update(ctx, userB, uuid.New(), model.UpdateAlbumRequest{Title: &title})
		assert.ErrorIs(t, err, model.ErrAlbumNotFound)

		album := f.seedAlbum(t, userA)
		_, err = f.svc.Update(ctx, userB, album.ID, model.UpdateAlbumRequest{Title: &title})
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("merges fields and clears release date", func(t *testing.T) {
		f := newFixture()
		album := f.seedAlbum(t, userA)

		title, typ, date := "Ashen Liturgy (Remaster)", model.TypeEP, ""
		updated, err := f.svc.Update(ctx, userA, album.ID, model.UpdateAlbumRequest{
			Title:       &title,
			Type:        &typ,
			ReleaseDate: &date,
		})
		require.NoError(t, err)
		assert.Equal(t, title, updated.Title)
		assert.Equal(t, model.TypeEP, updated.Type)
		assert.Nil(t, updated.ReleaseDate)
		assert.NotNil(t, updated.UpdatedAt)
		assert.Equal(t, album.CoverURL, updated.CoverURL)
	})

	t.Run("cover replacement removes the old cover", func(t *testing.T) {
		f := newFixture()
		album := f.seedAlbum(t, userA)
		oldKey := f.store.Keys()[0]

		// distinct millisecond for the new key
		time.Sleep(2 * time.Millisecond)
		updated, err := f.svc.Update(ctx, admin, album.ID, model.UpdateAlbumRequest{Cover: cover(50 * mediaModel.KB)})
		require.NoError(t, err)

		require.NotNil(t, updated.CoverURL)
		assert.NotEqual(t, *album.CoverURL, *updated.CoverURL)
		assert.Contains(t, f.store.Deleted, oldKey)
		assert.Len(t, f.store.Keys(), 1)
	})

	t.Run("oversized replacement changes nothing", func(t *testing.T) {
		f := newFixture()
		album := f.seedAlbum(t, userA)

		_, err := f.svc.Update(ctx, userA, album.ID, model.UpdateAlbumRequest{Cover: cover(201 * mediaModel.KB)})
		assert.Equal(t, 400, apperr.HTTPStatus(err))

		stored, err := f.repo.GetByID(ctx, album.ID)
		require.NoError(t, err)
		assert.Equal(t, album.CoverURL, stored.CoverURL)
	})

	t.Run("failed update removes the new cover", func(t *testing.T) {
		f := newFixture()
		album := f.seedAlbum(t, userA)
		f.repo.updateErr = model.ErrAlbumWrite

		time.Sleep(2 * time.Millisecond)
		_, err := f.svc.Update(ctx, userA, album.ID, model.UpdateAlbumRequest{Cover: cover(10)})
		assert.Error(t, err)
		assert.Len(t, f.store.Keys(), 1)
		assert.Equal(t, mediatest.BaseURL+"/"+f.store.Keys()[0], *album.CoverURL)
	})
}

func TestDeleteAlbum(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	album := f.seedAlbum(t, userA)

	assert.ErrorIs(t, f.svc.Delete(ctx, userA, uuid.New()), model.ErrAlbumNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, userB, album.ID), model.ErrForbidden)
	assert.Equal(t, 401, apperr.HTTPStatus(f.svc.Delete(ctx, nil, album.ID)))

	require.NoError(t, f.svc.Delete(ctx, userA, album.ID))
	assert.Empty(t, f.repo.albums)
	assert.Empty(t, f.store.Keys())

	_, err := f.svc.GetByID(ctx, album.ID)
	assert.ErrorIs(t, err, model.ErrAlbumNotFound)
}
