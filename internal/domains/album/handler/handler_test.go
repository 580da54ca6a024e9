package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metalpedia-backend/internal/domains/album/model"
	"metalpedia-backend/internal/domains/album/service"
	"metalpedia-backend/internal/domains/band/bandtest"
	bandModel "metalpedia-backend/internal/domains/band/model"
	"metalpedia-backend/internal/domains/media/mediatest"
	"metalpedia-backend/internal/shared/auth"
	"metalpedia-backend/internal/shared/middleware"
)

type noRoles struct{}

func (noRoles) RoleOf(context.Context, string) (auth.Role, bool, error) {
	return auth.RoleUser, false, nil
}

type countingRepo struct {
	created []model.Album
}

func (r *countingRepo) Create(_ context.Context, a *model.Album) error {
	r.created = append(r.created, *a)
	return nil
}

func (r *countingRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Album, error) {
	for _, a := range r.created {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, model.ErrAlbumNotFound
}

func (r *countingRepo) Update(context.Context, *model.Album) error { return nil }
func (r *countingRepo) Delete(context.Context, uuid.UUID) error { return nil }
func (r *countingRepo) ListByBand(context.Context, uuid.UUID) ([]model.Album, error) {
	return r.created, nil
}

func coverForm(t *testing.T, bandID string, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("band_id", bandID))
	require.NoError(t, w.WriteField("title", "Ashen Liturgy"))
	require.NoError(t, w.WriteField("type", model.TypeFullAlbum))
	part, err := w.CreateFormFile("cover", "cover.jpg")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{9}, size))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreateAlbumEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := &countingRepo{}
	bands := bandtest.NewRepo()
	band := bands.Put(bandModel.Band{Name: "Voidreaper", AddedBy: "cosmos1a", CreatedAt: time.Now()})
	store := mediatest.NewStore()
	h := NewAlbumHandler(service.NewAlbumService(repo, bands, mediatest.NewService(store, nil, nil), &bandtest.Invalidations{}))

	r := gin.New()
	requireIdentity := middleware.RequireIdentity(auth.NewAddressResolver(noRoles{}))
	r.POST("/api/albums", requireIdentity, h.Create)
	r.GET("/api/albums/:id", h.GetAlbum)

	post := func(size int) *httptest.ResponseRecorder {
		body, ct := coverForm(t, band.ID.String(), size)
		req := httptest.NewRequest(http.MethodPost, "/api/albums", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("Authorization", "Bearer cosmos1a")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	// 250 KB cover: rejected, nothing written
	rec := post(250 * 1024)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errBody map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.Equal(t, "Cover image must be less than 200 KB", errBody["error"])
	assert.Empty(t, repo.created)
	assert.Empty(t, store.Keys())

	rec = post(150 * 1024)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var album model.Album
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &album))
	assert.Equal(t, "cosmos1a", album.AddedBy)
	assert.Len(t, repo.created, 1)

	get := httptest.NewRecorder()
	r.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/api/albums/"+album.ID.String(), nil))
	assert.Equal(t, http.StatusOK, get.Code)
}
