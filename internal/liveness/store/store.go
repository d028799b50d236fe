// Package store persists liveness sessions between frames.
package store

import (
	"context"
	"errors"
	"time"

	"kycscan/internal/liveness/models"
)

var (
	// ErrNotFound is returned when no session exists for a subject.
	ErrNotFound = errors.New("liveness session not found")
	// ErrConflict is returned when Update keeps losing races for a subject.
	ErrConflict = errors.New("liveness session changed concurrently")
)

// UpdateFunc receives the stored session, or nil when there is none, and
// returns the session to persist, or nil to delete it. It may run more than
// once and must not have side effects.
type UpdateFunc func(current *models.Session) (*models.Session, error)

// Store is keyed by subject ID.
type Store interface {
	Load(ctx context.Context, subjectID string) (*models.Session, error)
	// Update is a read-modify-write that is atomic across every process
	// sharing the store.
	Update(ctx context.Context, subjectID string, fn UpdateFunc) error
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, subjectID string) error
	// DeleteIdle removes sessions not updated since cutoff and returns how many went.
	DeleteIdle(ctx context.Context, cutoff time.Time) (int, error)
}
