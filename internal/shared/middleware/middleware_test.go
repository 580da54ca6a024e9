package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metalpedia-backend/internal/shared/auth"
	"metalpedia-backend/internal/shared/response"
)

type stubRoles map[string]auth.Role

func (s stubRoles) RoleOf(_ context.Context, address string) (auth.Role, bool, error) {
	role, ok := s[address]
	return role, ok, nil
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/probe", handlers...)
	return r
}

func echoPrincipal(c *gin.Context) {
	p := PrincipalFrom(c)
	if p == nil {
		c.JSON(http.StatusOK, gin.H{"address": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": p.Address, "role": p.Role})
}

func doGet(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireIdentity(t *testing.T) {
	resolver := auth.NewAddressResolver(stubRoles{"M": auth.RoleAdmin})
	r := newTestRouter(RequireIdentity(resolver), echoPrincipal)

	t.Run("missing header", func(t *testing.T) {
		rec := doGet(r, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body response.ErrorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Unauthorized", body.Error)
	})

	t.Run("no bearer prefix", func(t *testing.T) {
		rec := doGet(r, "cosmos1abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown address is a USER", func(t *testing.T) {
		rec := doGet(r, "Bearer cosmos1abc")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"address":"cosmos1abc","role":"USER"}`, rec.Body.String())
	})

	t.Run("admin role from lookup", func(t *testing.T) {
		rec := doGet(r, "Bearer M")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"address":"M","role":"ADMIN"}`, rec.Body.String())
	})
}

func TestOptionalIdentity(t *testing.T) {
	resolver := auth.NewAddressResolver(stubRoles{})
	r := newTestRouter(OptionalIdentity(resolver), echoPrincipal)

	rec := doGet(r, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"address":null}`, rec.Body.String())

	rec = doGet(r, "Bearer A")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"address":"A","role":"USER"}`, rec.Body.String())
}

func TestAdminMiddleware(t *testing.T) {
	resolver := auth.NewAddressResolver(stubRoles{"M": auth.RoleAdmin})
	r := newTestRouter(RequireIdentity(resolver), AdminMiddleware(), echoPrincipal)

	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer A").Code)
	assert.Equal(t, http.StatusOK, doGet(r, "Bearer M").Code)
}

func TestRecoveryReturnsJSON(t *testing.T) {
	r := newTestRouter(func(c *gin.Context) { panic("boom") })

	rec := doGet(r, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error","code":"INTERNAL_ERROR"}`, rec.Body.String())
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newTestRouter(func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-123", rec.Body.String())

	rec = doGet(r, "")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestLocalRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(nil, 2, 2)
	r := newTestRouter(limiter.Middleware("uploads"), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, doGet(r, "").Code)
	assert.Equal(t, http.StatusOK, doGet(r, "").Code)

	rec := doGet(r, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestClientIPMiddleware(t *testing.T) {
	r := newTestRouter(ClientIPMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, GetClientIPFromContext(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "203.0.113.7", rec.Body.String())
	assert.Empty(t, GetClientIPFromContext(context.Background()))
}
