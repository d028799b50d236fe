// Package service implements the per-subject liveness state machine: frames
// are collected until enough are buffered, then every new frame re-evaluates
// head motion over the whole buffer.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"kycscan/internal/document/imaging"
	"kycscan/internal/liveness/metrics"
	"kycscan/internal/liveness/models"
	"kycscan/internal/liveness/store"
	dErrors "kycscan/pkg/domain-errors"
	"kycscan/pkg/platform/sync"
)

const maxSubjectIDLength = 128

// Detector turns a JPEG frame into landmarks. A nil frame means no face.
type Detector interface {
	Landmarks(ctx context.Context, jpeg []byte) (models.Frame, error)
}

// Service is safe for concurrent use. Frames for one subject are serialized;
// different subjects proceed in parallel.
type Service struct {
	store     store.Store
	detector  Detector
	locks     *sync.ShardedMutex
	threshold float64
	maxFrames int
	maxDim    int
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithMaxFrames caps the buffered frames per subject.
func WithMaxFrames(n int) Option {
	return func(s *Service) {
		if n >= models.MinFrames {
			s.maxFrames = n
		}
	}
}

// WithMaxImageDimension bounds the frame sent to the detector.
func WithMaxImageDimension(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxDim = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a liveness service.
func New(st store.Store, detector Detector, opts ...Option) *Service {
	s := &Service{
		store:     st,
		detector:  detector,
		locks:     sync.NewShardedMutex(0),
		threshold: models.DefaultThreshold,
		maxFrames: 60,
		maxDim:    1024,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessFrame adds one frame to the subject's session and reports the
// current liveness state. A frame without a face is a normal negative
// result, not an error.
func (s *Service) ProcessFrame(ctx context.Context, subjectID string, frame []byte) (*models.Result, error) {
	subjectID, err := normalizeSubject(subjectID)
	if err != nil {
		return nil, err
	}

	jpeg, err := imaging.CompressForTransport(frame, s.maxDim)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	landmarks, err := s.detector.Landmarks(ctx, jpeg)
	s.metrics.ObserveDetector(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	if len(landmarks) == 0 {
		s.metrics.RecordFrame("no_face")
		return models.NoFace(), nil
	}

	var result *models.Result
	err = s.locks.WithLock(subjectID, func() error {
		var lockErr error
		result, lockErr = s.advance(ctx, subjectID, landmarks)
		return lockErr
	})
	return result, err
}

// advance appends the frame and evaluates the session in one store
// transaction. The subject lock only spares the store retries between
// goroutines of this process.
func (s *Service) advance(ctx context.Context, subjectID string, landmarks models.Frame) (*models.Result, error) {
	var (
		result   *models.Result
		stored   bool
		expected int
		avg      float64
		decided  bool
	)
	now := s.now()
	err := s.store.Update(ctx, subjectID, func(current *models.Session) (*models.Session, error) {
		session := current
		if session == nil {
			session = models.NewSession(subjectID, now)
		}
		stored = session.Append(landmarks, s.maxFrames, now)
		if len(session.Frames) > 0 {
			expected = len(session.Frames[0])
		}

		n := len(session.Frames)
		if n < models.MinFrames {
			result, decided = models.Collecting(n), false
			return session, nil
		}

		avg = models.AverageDisplacement(session.Frames)
		live := avg >= s.threshold
		result, decided = models.Evaluated(live, avg, s.threshold, n), true
		if live {
			return nil, nil
		}
		return session, nil
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "update liveness session")
	}

	if stored {
		s.metrics.RecordFrame("stored")
	} else {
		s.metrics.RecordFrame("skipped")
		s.logger.DebugContext(ctx, "liveness frame skipped: landmark count changed",
			"points", len(landmarks),
			"expected", expected,
		)
	}
	if decided {
		s.metrics.RecordDecision(result.Live, avg)
		if result.Live {
			s.logger.InfoContext(ctx, "liveness confirmed",
				"frames_analyzed", *result.FramesAnalyzed,
				"average_displacement", avg,
			)
		}
	}
	return result, nil
}

// Reset discards the subject's session.
func (s *Service) Reset(ctx context.Context, subjectID string) error {
	subjectID, err := normalizeSubject(subjectID)
	if err != nil {
		return err
	}
	return s.locks.WithLock(subjectID, func() error {
		if err := s.store.Delete(ctx, subjectID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "delete liveness session")
		}
		return nil
	})
}

func normalizeSubject(subjectID string) (string, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return "", dErrors.New(dErrors.CodeValidation, "subject_id is required")
	}
	if len(subjectID) > maxSubjectIDLength {
		return "", dErrors.New(dErrors.CodeValidation, "subject_id is too long")
	}
	return subjectID, nil
}
