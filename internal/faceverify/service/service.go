// Package service decides whether a selfie and an ID document show the same
// person, based on a distance computed by the verification service.
package service

import (
	"context"
	"log/slog"
	"strings"

	"kycscan/internal/document/imaging"
	"kycscan/internal/faceverify/client"
	dErrors "kycscan/pkg/domain-errors"
)

// Comparer computes the face distance between two images.
type Comparer interface {
	Compare(ctx context.Context, selfie, document []byte, model, detector string) (client.Comparison, error)
}

// Request is one verification attempt. Empty Model or Detector use the
// configured defaults; a nil Threshold defers to the service.
type Request struct {
	Selfie    []byte
	Document  []byte
	Threshold *float64
	Model     string
	Detector  string
}

// Result is the verification response.
type Result struct {
	Verified  bool    `json:"verified"`
	Distance  float64 `json:"distance"`
	Threshold float64 `json:"threshold"`
	Model     string  `json:"model"`
	Detector  string  `json:"detector"`
}

type Service struct {
	comparer  Comparer
	threshold float64
	model     string
	detector  string
	maxDim    int
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithDefaults sets the fallback threshold, model and detector.
func WithDefaults(threshold float64, model, detector string) Option {
	return func(s *Service) {
		if threshold > 0 {
			s.threshold = threshold
		}
		if model != "" {
			s.model = model
		}
		if detector != "" {
			s.detector = detector
		}
	}
}

func WithMaxImageDimension(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxDim = n
		}
	}
}

func New(comparer Comparer, opts ...Option) *Service {
	s := &Service{
		comparer:  comparer,
		threshold: 0.4,
		model:     "ArcFace",
		detector:  "retinaface",
		maxDim:    1024,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Verify normalizes both images, obtains their distance and compares it
// with the threshold from the request, the service, or the configuration,
// in that order.
func (s *Service) Verify(ctx context.Context, req Request) (*Result, error) {
	if req.Threshold != nil && *req.Threshold <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "threshold must be positive")
	}
	selfie, err := imaging.CompressForTransport(req.Selfie, s.maxDim)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecode, "selfie could not be decoded")
	}
	document, err := imaging.CompressForTransport(req.Document, s.maxDim)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecode, "document could not be decoded")
	}

	model := firstNonEmpty(req.Model, s.model)
	detector := firstNonEmpty(req.Detector, s.detector)
	cmp, err := s.comparer.Compare(ctx, selfie, document, model, detector)
	if err != nil {
		return nil, err
	}

	threshold := s.threshold
	switch {
	case req.Threshold != nil:
		threshold = *req.Threshold
	case cmp.Threshold != nil && *cmp.Threshold > 0:
		threshold = *cmp.Threshold
	}

	res := &Result{
		Verified:  cmp.Distance <= threshold,
		Distance:  cmp.Distance,
		Threshold: threshold,
		Model:     model,
		Detector:  detector,
	}
	s.logger.InfoContext(ctx, "face verification completed",
		"verified", res.Verified,
		"distance", res.Distance,
		"threshold", res.Threshold,
		"model", model,
	)
	return res, nil
}

func firstNonEmpty(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
