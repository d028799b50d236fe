package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycscan/internal/liveness/metrics"
	"kycscan/internal/liveness/models"
	"kycscan/internal/liveness/store"
)

func TestCleanupService_RunOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	sessions := store.NewInMemory()
	require.NoError(t, sessions.Save(ctx, models.NewSession("idle", now.Add(-6*time.Minute))))
	require.NoError(t, sessions.Save(ctx, models.NewSession("active", now.Add(-time.Minute))))

	m := metrics.New(prometheus.NewRegistry())
	svc, err := New(sessions, 5*time.Minute, WithRecorder(m), WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	deleted, err := svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.InDelta(t, 1, promtest.ToFloat64(m.SessionsEvicted), 0)

	_, err = sessions.Load(ctx, "idle")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = sessions.Load(ctx, "active")
	assert.NoError(t, err)
}

type failingStore struct{}

func (failingStore) DeleteIdle(context.Context, time.Time) (int, error) {
	return 0, errors.New("connection refused")
}

func TestCleanupService_RunOnceWrapsErrors(t *testing.T) {
	svc, err := New(failingStore{}, time.Minute)
	require.NoError(t, err)

	_, err = svc.RunOnce(context.Background())
	assert.ErrorContains(t, err, "delete idle liveness sessions")
}

func TestCleanupService_StartStopsOnCancel(t *testing.T) {
	svc, err := New(store.NewInMemory(), time.Minute, WithCleanupInterval(5*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, svc.Start(ctx), context.DeadlineExceeded)
}

func TestNewValidates(t *testing.T) {
	_, err := New(nil, time.Minute)
	assert.Error(t, err)
	_, err = New(store.NewInMemory(), 0)
	assert.Error(t, err)
}
