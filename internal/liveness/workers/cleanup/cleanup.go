package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SessionStore exposes eviction of idle liveness sessions.
type SessionStore interface {
	DeleteIdle(ctx context.Context, cutoff time.Time) (int, error)
}

// Recorder receives eviction counts.
type Recorder interface {
	RecordEvicted(n int)
}

// CleanupService periodically removes liveness sessions that stopped
// receiving frames.
type CleanupService struct {
	store    SessionStore
	recorder Recorder
	ttl      time.Duration
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// CleanupOption configures CleanupService.
type CleanupOption func(*CleanupService)

// WithCleanupInterval overrides the cleanup interval when greater than zero.
func WithCleanupInterval(interval time.Duration) CleanupOption {
	return func(s *CleanupService) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithCleanupLogger overrides the logger used for cleanup errors.
func WithCleanupLogger(logger *slog.Logger) CleanupOption {
	return func(s *CleanupService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithRecorder(r Recorder) CleanupOption {
	return func(s *CleanupService) {
		s.recorder = r
	}
}

func WithClock(now func() time.Time) CleanupOption {
	return func(s *CleanupService) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a CleanupService evicting sessions idle for longer than ttl.
func New(store SessionStore, ttl time.Duration, opts ...CleanupOption) (*CleanupService, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	svc := &CleanupService{
		store:    store,
		ttl:      ttl,
		interval: time.Minute,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// Start runs cleanup periodically until ctx is cancelled.
func (s *CleanupService) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.logger.ErrorContext(ctx, "liveness cleanup failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce evicts every session idle since now minus the TTL.
func (s *CleanupService) RunOnce(ctx context.Context) (int, error) {
	deleted, err := s.store.DeleteIdle(ctx, s.now().Add(-s.ttl))
	if err != nil {
		return 0, fmt.Errorf("delete idle liveness sessions: %w", err)
	}
	if s.recorder != nil {
		s.recorder.RecordEvicted(deleted)
	}
	if deleted > 0 {
		s.logger.InfoContext(ctx, "evicted idle liveness sessions", "count", deleted)
	}
	return deleted, nil
}
