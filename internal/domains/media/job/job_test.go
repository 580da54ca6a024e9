package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metalpedia-backend/internal/domains/media/mediatest"
	"metalpedia-backend/internal/domains/media/service"
	"metalpedia-backend/internal/shared"
)

func TestCleanupHandler(t *testing.T) {
	store := mediatest.NewStore()
	store.Put("band-logos/x.jpg", []byte("x"), time.Now())
	h := NewCleanupHandler(mediatest.NewService(store, nil, nil))

	payload, err := json.Marshal(shared.MediaCleanupPayload{Key: "band-logos/x.jpg"})
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeMediaCleanup, payload)))
	assert.Empty(t, store.Keys())
}

func TestCleanupHandlerRetriesOnFailure(t *testing.T) {
	store := mediatest.NewStore()
	store.DeleteErr = errors.New("timeout")
	h := NewCleanupHandler(mediatest.NewService(store, nil, nil))

	payload, _ := json.Marshal(shared.MediaCleanupPayload{Key: "band-logos/x.jpg"})
	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeMediaCleanup, payload))

	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestCleanupHandlerSkipsBadPayload(t *testing.T) {
	h := NewCleanupHandler(mediatest.NewService(mediatest.NewStore(), nil, nil))

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeMediaCleanup, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestOrphanSweepHandlerUsesPayloadGrace(t *testing.T) {
	store := mediatest.NewStore()
	store.Put("avatars/a/old.png", []byte("o"), time.Now().Add(-2*time.Hour))
	h := NewOrphanSweepHandler(mediatest.NewService(store, nil, nil), 24*time.Hour)

	payload, _ := json.Marshal(shared.OrphanSweepPayload{GracePeriodSeconds: 3600})
	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeMediaOrphanSweep, payload)))

	assert.Empty(t, store.Keys())
}

func TestOrphanSweepHandlerDoesNotRetryAbortedSweep(t *testing.T) {
	store := mediatest.NewStore()
	store.Put("band-logos/a.jpg", []byte("a"), time.Now().Add(-72*time.Hour))
	refs := &mediatest.Refs{URLs: []string{"https://old-cdn.test/media/band-logos/a.jpg"}}
	svc := service.NewMediaService(store, mediatest.Passthrough{}, refs, &mediatest.Queue{}, 3)

	err := NewOrphanSweepHandler(svc, 24*time.Hour).
		ProcessTask(context.Background(), asynq.NewTask(shared.TypeMediaOrphanSweep, nil))

	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Len(t, store.Keys(), 1)
}
