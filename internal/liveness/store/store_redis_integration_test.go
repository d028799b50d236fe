//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kycscan/internal/liveness/models"
	"kycscan/pkg/testutil"
	"kycscan/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.store = NewRedis(s.redis.Client, time.Minute)
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	session := models.NewSession("subject-1", time.Now().UTC().Truncate(time.Millisecond))
	session.Frames = []models.Frame{{{X: 0.25, Y: 0.5}, {X: 0.3, Y: 0.6}}}

	s.Require().NoError(s.store.Save(ctx, session))
	loaded, err := s.store.Load(ctx, "subject-1")
	s.Require().NoError(err)
	s.Equal(session.Frames, loaded.Frames)
	s.True(session.UpdatedAt.Equal(loaded.UpdatedAt))

	ttl, err := s.redis.Client.TTL(ctx, sessionKey("subject-1")).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

func (s *RedisStoreSuite) TestMissingAndDelete() {
	ctx := context.Background()
	_, err := s.store.Load(ctx, "nobody")
	s.ErrorIs(err, ErrNotFound)

	s.Require().NoError(s.store.Save(ctx, models.NewSession("subject-2", time.Now())))
	s.Require().NoError(s.store.Delete(ctx, "subject-2"))
	_, err = s.store.Load(ctx, "subject-2")
	s.ErrorIs(err, ErrNotFound)
}

func (s *RedisStoreSuite) TestExpiresAfterTTL() {
	ctx := context.Background()
	short := NewRedis(s.redis.Client, time.Second)
	s.Require().NoError(short.Save(ctx, models.NewSession("subject-3", time.Now())))

	s.Eventually(func() bool {
		_, err := short.Load(ctx, "subject-3")
		return err != nil
	}, 5*time.Second, 100*time.Millisecond)
}

func (s *RedisStoreSuite) TestConcurrentUpdatesAcrossReplicasKeepEveryFrame() {
	ctx := context.Background()
	replicaA := NewRedis(s.redis.Client, time.Minute)
	replicaB := NewRedis(s.redis.Client, time.Minute)
	const writers = 8

	result := testutil.RunConcurrent(writers, func(idx int) error {
		st := replicaA
		if idx%2 == 1 {
			st = replicaB
		}
		return st.Update(ctx, "subject-4", func(current *models.Session) (*models.Session, error) {
			if current == nil {
				current = models.NewSession("subject-4", time.Now())
			}
			current.Frames = append(current.Frames, models.Frame{{X: float64(idx), Y: 0}})
			return current, nil
		})
	})
	s.Require().Zero(result.Errors)

	loaded, err := s.store.Load(ctx, "subject-4")
	s.Require().NoError(err)
	s.Len(loaded.Frames, writers)
}

func (s *RedisStoreSuite) TestUpdateReturningNilDeletes() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, models.NewSession("subject-5", time.Now())))

	err := s.store.Update(ctx, "subject-5", func(*models.Session) (*models.Session, error) {
		return nil, nil
	})
	s.Require().NoError(err)
	_, err = s.store.Load(ctx, "subject-5")
	s.ErrorIs(err, ErrNotFound)
}
