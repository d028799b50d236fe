package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycscan/internal/liveness/models"
	"kycscan/pkg/testutil"
)

func TestInMemoryStore_LoadMissing(t *testing.T) {
	_, err := NewInMemory().Load(context.Background(), "nobody")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInMemoryStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	session := models.NewSession("subject-1", time.Now())
	session.Frames = []models.Frame{{{X: 0.1, Y: 0.2}}}

	require.NoError(t, s.Save(ctx, session))
	session.Frames[0][0].X = 9

	loaded, err := s.Load(ctx, "subject-1")
	require.NoError(t, err)
	assert.InDelta(t, 0.1, loaded.Frames[0][0].X, 1e-9, "store keeps its own copy")

	require.NoError(t, s.Delete(ctx, "subject-1"))
	_, err = s.Load(ctx, "subject-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStore_DeleteIdle(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	now := time.Now()
	require.NoError(t, s.Save(ctx, models.NewSession("stale", now.Add(-10*time.Minute))))
	require.NoError(t, s.Save(ctx, models.NewSession("fresh", now)))

	deleted, err := s.DeleteIdle(ctx, now.Add(-5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.Equal(t, 1, s.Len())

	_, err = s.Load(ctx, "fresh")
	assert.NoError(t, err)
}

func TestInMemoryStore_UpdateCreatesAndDeletes(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	err := s.Update(ctx, "subject-1", func(current *models.Session) (*models.Session, error) {
		assert.Nil(t, current)
		return models.NewSession("subject-1", time.Now()), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	err = s.Update(ctx, "subject-1", func(current *models.Session) (*models.Session, error) {
		assert.NotNil(t, current)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestInMemoryStore_UpdateErrorLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	require.NoError(t, s.Save(ctx, models.NewSession("subject-1", time.Now())))

	boom := errors.New("boom")
	err := s.Update(ctx, "subject-1", func(current *models.Session) (*models.Session, error) {
		current.Frames = append(current.Frames, models.Frame{{X: 1, Y: 1}})
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	loaded, err := s.Load(ctx, "subject-1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Frames)
}

func TestInMemoryStore_ConcurrentUpdatesKeepEveryFrame(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	const writers = 20

	result := testutil.RunConcurrent(writers, func(idx int) error {
		return s.Update(ctx, "subject-1", appendFrame(float64(idx)))
	})
	require.Zero(t, result.Errors)

	loaded, err := s.Load(ctx, "subject-1")
	require.NoError(t, err)
	assert.Len(t, loaded.Frames, writers)
}

func appendFrame(x float64) UpdateFunc {
	return func(current *models.Session) (*models.Session, error) {
		if current == nil {
			current = models.NewSession("subject-1", time.Now())
		}
		current.Frames = append(current.Frames, models.Frame{{X: x, Y: 0}})
		return current, nil
	}
}
