package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metalpedia-backend/internal/domains/media/mediatest"
	"metalpedia-backend/internal/domains/media/model"
	"metalpedia-backend/internal/domains/media/service"
	"metalpedia-backend/internal/infrastructure/storage"
	"metalpedia-backend/internal/shared"
	"metalpedia-backend/internal/shared/apperr"
)

func colourPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 24, 24))
	for x := 0; x < 24; x++ {
		for y := 0; y < 24; y++ {
			img.Set(x, y, color.RGBA{R: 255, G: uint8(x * 10), B: uint8(y * 10), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadGrayscaleRoundTrip(t *testing.T) {
	store := mediatest.NewStore()
	svc := mediatest.NewService(store, storage.NewImageProcessor(), nil)

	key := model.BandLogoKey("band-1", time.UnixMilli(1700000000000))
	url, err := svc.Upload(context.Background(), model.KindBandLogo, key,
		&model.File{Name: "logo.png", ContentType: "image/png", Data: colourPNG(t)}, true)
	require.NoError(t, err)
	assert.Equal(t, mediatest.BaseURL+"/band-logos/band-1-1700000000000-logo-bw.jpg", url)

	stored := store.Objects[key]
	assert.Equal(t, "image/jpeg", stored.ContentType)

	decoded, _, err := image.Decode(bytes.NewReader(stored.Data))
	require.NoError(t, err)
	b := decoded.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			r, g, bl, _ := decoded.At(x, y).RGBA()
			require.Equal(t, r, g)
			require.Equal(t, g, bl)
		}
	}
}

func TestCheckSize(t *testing.T) {
	svc := mediatest.NewService(mediatest.NewStore(), nil, nil)

	tests := []struct {
		name    string
		kind    model.Kind
		size    int
		wantMsg string
	}{
		{"logo at cap", model.KindBandLogo, 200 * model.KB, ""},
		{"logo over cap", model.KindBandLogo, 200*model.KB + 1, "Logo must be less than 200 KB"},
		{"band image at cap", model.KindBandImage, 500 * model.KB, ""},
		{"band image over cap", model.KindBandImage, 500*model.KB + 1, "Band image must be less than 500 KB"},
		{"cover 250KB", model.KindAlbumCover, 250 * model.KB, "Cover image must be less than 200 KB"},
		{"cover 10KB", model.KindAlbumCover, 10 * model.KB, ""},
		{"avatar 1MB", model.KindAvatar, 1024 * model.KB, ""},
		{"avatar over infra cap", model.KindAvatar, model.MaxUploadBytes + 1, "File is too large"},
		{"empty file", model.KindAvatar, 0, "No file uploaded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CheckSize(tt.kind, &model.File{Name: "f.jpg", Data: make([]byte, tt.size)})
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, apperr.As(err).Message)
			assert.Equal(t, 400, apperr.HTTPStatus(err))
		})
	}

	assert.ErrorIs(t, svc.CheckSize(model.KindAvatar, nil), model.ErrFileRequired)
}

func TestUploadRejectsOversizedBeforeStoring(t *testing.T) {
	store := mediatest.NewStore()
	svc := mediatest.NewService(store, nil, nil)

	_, err := svc.Upload(context.Background(), model.KindAlbumCover, "album-covers/b/1-c.jpg",
		&model.File{Name: "c.jpg", Data: make([]byte, 250*model.KB)}, false)

	require.Error(t, err)
	assert.Equal(t, "Cover image must be less than 200 KB", apperr.As(err).Message)
	assert.Empty(t, store.Keys())
}

func TestUploadUpsert(t *testing.T) {
	store := mediatest.NewStore()
	svc := mediatest.NewService(store, nil, nil)
	ctx := context.Background()
	file := &model.File{Name: "me.png", ContentType: "image/png", Data: []byte("v1")}

	_, err := svc.Upload(ctx, model.KindAvatar, "avatars/a/me.png", file, false)
	require.NoError(t, err)

	_, err = svc.Upload(ctx, model.KindAvatar, "avatars/a/me.png", file, false)
	assert.ErrorIs(t, err, model.ErrObjectExists)

	file.Data = []byte("v2")
	_, err = svc.Upload(ctx, model.KindAvatar, "avatars/a/me.png", file, true)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), store.Objects["avatars/a/me.png"].Data)
}

func TestUploadStorageFailureIsDependencyError(t *testing.T) {
	store := mediatest.NewStore()
	store.UploadErr = errors.New("connection refused")
	svc := mediatest.NewService(store, nil, nil)

	_, err := svc.Upload(context.Background(), model.KindAvatar, "avatars/a/x.png",
		&model.File{Name: "x.png", Data: []byte("x")}, true)

	assert.ErrorIs(t, err, model.ErrUploadFailed)
	assert.Equal(t, 500, apperr.HTTPStatus(err))
}

func TestRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes stored object", func(t *testing.T) {
		store := mediatest.NewStore()
		url := store.Put("band-logos/x.jpg", []byte("x"), time.Now())
		svc := mediatest.NewService(store, nil, nil)

		svc.Remove(ctx, url)
		assert.Empty(t, store.Keys())
	})

	t.Run("failure schedules cleanup task", func(t *testing.T) {
		store := mediatest.NewStore()
		url := store.Put("album-covers/b/1.jpg", []byte("x"), time.Now())
		store.DeleteErr = errors.New("timeout")
		queue := &mediatest.Queue{}
		svc := mediatest.NewService(store, nil, queue)

		svc.Remove(ctx, url)

		require.Len(t, queue.Tasks, 1)
		assert.Equal(t, shared.TypeMediaCleanup, queue.Tasks[0].Type())

		var payload shared.MediaCleanupPayload
		require.NoError(t, json.Unmarshal(queue.Tasks[0].Payload(), &payload))
		assert.Equal(t, "album-covers/b/1.jpg", payload.Key)
	})

	t.Run("enqueue failure is swallowed", func(t *testing.T) {
		store := mediatest.NewStore()
		url := store.Put("album-covers/b/1.jpg", []byte("x"), time.Now())
		store.DeleteErr = errors.New("timeout")
		svc := mediatest.NewService(store, nil, &mediatest.Queue{Err: errors.New("redis down")})

		assert.NotPanics(t, func() { svc.Remove(ctx, url) })
	})

	t.Run("foreign and empty urls are ignored", func(t *testing.T) {
		store := mediatest.NewStore()
		svc := mediatest.NewService(store, nil, nil)

		svc.Remove(ctx, "")
		svc.Remove(ctx, "https://example.com/logo.png")
		assert.Empty(t, store.Deleted)
	})
}

func TestSweepOrphans(t *testing.T) {
	store := mediatest.NewStore()
	old := time.Now().Add(-72 * time.Hour)

	keptURL := store.Put("band-logos/kept.jpg", []byte("k"), old)
	store.Put("band-images/b/orphan.jpg", []byte("o"), old)
	store.Put("album-covers/b/fresh.jpg", []byte("f"), time.Now())
	store.Put("other/untouched.jpg", []byte("u"), old)

	refs := &mediatest.Refs{URLs: []string{keptURL, "https://example.com/external.png"}}
	svc := service.NewMediaService(store, mediatest.Passthrough{}, refs, &mediatest.Queue{}, 3)

	removed, err := svc.SweepOrphans(context.Background(), 24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"album-covers/b/fresh.jpg", "band-logos/kept.jpg", "other/untouched.jpg"}, store.Keys())
}

func TestSweepOrphansStopsWhenReferencesFail(t *testing.T) {
	store := mediatest.NewStore()
	store.Put("band-logos/a.jpg", []byte("a"), time.Now().Add(-72*time.Hour))

	refs := &mediatest.Refs{Err: model.ErrRefLookup.Wrap(errors.New("db down"))}
	svc := service.NewMediaService(store, mediatest.Passthrough{}, refs, &mediatest.Queue{}, 3)

	_, err := svc.SweepOrphans(context.Background(), 24*time.Hour)
	assert.Error(t, err)
	assert.Len(t, store.Keys(), 1)
}

func TestSweepOrphansAbortsWhenNoReferenceMaps(t *testing.T) {
	store := mediatest.NewStore()
	old := time.Now().Add(-72 * time.Hour)
	store.Put("band-logos/a.jpg", []byte("a"), old)
	store.Put("album-covers/b/c.jpg", []byte("c"), old)

	// URLs written under a previous public base
	refs := &mediatest.Refs{URLs: []string{
		"https://old-cdn.test/media/band-logos/a.jpg",
		"https://old-cdn.test/media/album-covers/b/c.jpg",
	}}
	svc := service.NewMediaService(store, mediatest.Passthrough{}, refs, &mediatest.Queue{}, 3)

	removed, err := svc.SweepOrphans(context.Background(), 24*time.Hour)

	assert.ErrorIs(t, err, model.ErrSweepAborted)
	assert.Zero(t, removed)
	assert.Len(t, store.Keys(), 2)
	assert.Empty(t, store.Deleted)
}

func TestSweepOrphansWithoutReferencesClearsBucket(t *testing.T) {
	store := mediatest.NewStore()
	store.Put("band-logos/a.jpg", []byte("a"), time.Now().Add(-72*time.Hour))

	svc := service.NewMediaService(store, mediatest.Passthrough{}, &mediatest.Refs{}, &mediatest.Queue{}, 3)

	removed, err := svc.SweepOrphans(context.Background(), 24*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Empty(t, store.Keys())
}
