// Package service adapts the extraction orchestrator to request-level
// operations: a bounded worker pool, response shaping, batch fan-out and
// error reporting.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"kycscan/internal/document/models"
	"kycscan/internal/document/orchestrator"
	"kycscan/internal/platform/privacy"
	dErrors "kycscan/pkg/domain-errors"
)

// Processing method labels reported to clients.
const (
	MethodAPI         = "API"
	MethodOCR         = "OCR"
	MethodKYCAPI      = "OpenRouter API"
	MethodKYCFallback = "OCR Fallback"
)

// batchOCRMultiplier scales the batch cap when the vision API is not used.
const batchOCRMultiplier = 4

// Extractor runs the strategy chains for one document.
type Extractor interface {
	VisionEnabled() bool
	ExtractLeads(ctx context.Context, data []byte, useAPI bool) (models.Outcome, error)
	ExtractKYC(ctx context.Context, data []byte, useAPI bool) (models.Outcome, error)
	OCR(ctx context.Context, data []byte, lang string, useFallback bool) (orchestrator.OCRResult, error)
}

// ErrorReporter forwards unexpected failures to an error tracker.
type ErrorReporter interface {
	CaptureError(ctx context.Context, err error, tags map[string]string)
}

// Document is one uploaded file.
type Document struct {
	Filename string
	Data     []byte
}

// LeadsResult is the extract-leads response.
type LeadsResult struct {
	LeadsFound       int           `json:"leads_found"`
	Leads            []models.Lead `json:"leads"`
	ProcessingMethod string        `json:"processing_method"`
	Warnings         []string      `json:"warnings,omitempty"`
}

// KYCResult is the extract-kyc-data response.
type KYCResult struct {
	KYCData          models.KYCFields `json:"kyc_data"`
	ProcessingMethod string           `json:"processing_method"`
	Warnings         []string         `json:"warnings,omitempty"`
}

// OCRResult is the ocr response.
type OCRResult struct {
	RawText      string           `json:"raw_text"`
	Extracted    models.OCRFields `json:"extracted"`
	FallbackUsed bool             `json:"fallback_used"`
}

// BatchItem is one file's outcome within a batch.
type BatchItem struct {
	Filename string `json:"filename"`
	*LeadsResult
	Error string `json:"error,omitempty"`
}

// BatchResult is the extract-leads batch response.
type BatchResult struct {
	Processed  int         `json:"processed"`
	Skipped    []string    `json:"skipped,omitempty"`
	TotalLeads int         `json:"total_leads"`
	Results    []BatchItem `json:"results"`
}

// Service is safe for concurrent use.
type Service struct {
	extractor       Extractor
	reporter        ErrorReporter
	pool            *semaphore.Weighted
	poolSize        int
	maxAPIDocuments int
	logger          *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithReporter sets the error reporter.
func WithReporter(r ErrorReporter) Option {
	return func(s *Service) {
		s.reporter = r
	}
}

// WithWorkerPool bounds concurrent extractions to n.
func WithWorkerPool(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.poolSize = n
		}
	}
}

// WithMaxAPIDocuments caps the files a batch sends to the vision API.
func WithMaxAPIDocuments(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAPIDocuments = n
		}
	}
}

// New creates a document service.
func New(extractor Extractor, opts ...Option) *Service {
	s := &Service{
		extractor:       extractor,
		poolSize:        4,
		maxAPIDocuments: 5,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pool = semaphore.NewWeighted(int64(s.poolSize))
	return s
}

// VisionEnabled reports whether an API key is configured.
func (s *Service) VisionEnabled() bool {
	return s.extractor.VisionEnabled()
}

// ExtractLeads returns the leads found in one document.
func (s *Service) ExtractLeads(ctx context.Context, doc Document, useAPI bool) (*LeadsResult, error) {
	var out models.Outcome
	err := s.withWorker(ctx, func() (err error) {
		out, err = s.extractor.ExtractLeads(ctx, doc.Data, useAPI)
		return err
	})
	if err != nil {
		s.report(ctx, orchestrator.OpLeads, doc.Filename, err)
		return nil, err
	}
	s.logger.InfoContext(ctx, "leads extracted",
		"strategy", out.Strategy,
		"fell_back", out.FellBack,
		"leads", len(out.Leads),
	)
	return leadsResult(out), nil
}

// ExtractKYC returns the identity fields of one ID document.
func (s *Service) ExtractKYC(ctx context.Context, doc Document, useAPI bool) (*KYCResult, error) {
	var out models.Outcome
	err := s.withWorker(ctx, func() (err error) {
		out, err = s.extractor.ExtractKYC(ctx, doc.Data, useAPI)
		return err
	})
	if err != nil {
		s.report(ctx, orchestrator.OpKYC, doc.Filename, err)
		return nil, err
	}
	if out.KYC != nil {
		s.logger.InfoContext(ctx, "kyc fields extracted",
			"strategy", out.Strategy,
			"fell_back", out.FellBack,
			"aadhaar", privacy.MaskTrailing(models.Deref(out.KYC.AadhaarNumber), 4),
			"pan", privacy.MaskTrailing(models.Deref(out.KYC.PANNumber), 2),
		)
	}

	res := &KYCResult{ProcessingMethod: KYCMethod(out), Warnings: out.Warnings}
	if out.KYC != nil {
		res.KYCData = *out.KYC
	}
	return res, nil
}

// OCR transcribes one document.
func (s *Service) OCR(ctx context.Context, doc Document, lang string, useFallback bool) (*OCRResult, error) {
	var out orchestrator.OCRResult
	err := s.withWorker(ctx, func() (err error) {
		out, err = s.extractor.OCR(ctx, doc.Data, lang, useFallback)
		return err
	})
	if err != nil {
		s.report(ctx, orchestrator.OpOCR, doc.Filename, err)
		return nil, err
	}
	return &OCRResult{RawText: out.RawText, Extracted: out.Fields, FallbackUsed: out.FellBack}, nil
}

// ExtractLeadsBatch processes documents concurrently. Files beyond the batch
// cap are skipped, and per-file failures are reported inline.
func (s *Service) ExtractLeadsBatch(ctx context.Context, docs []Document, useAPI bool) (*BatchResult, error) {
	if len(docs) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "no files provided")
	}

	limit := s.maxAPIDocuments
	if !useAPI {
		limit *= batchOCRMultiplier
	}
	res := &BatchResult{}
	if len(docs) > limit {
		for _, d := range docs[limit:] {
			res.Skipped = append(res.Skipped, d.Filename)
		}
		docs = docs[:limit]
	}

	items := make([]BatchItem, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.poolSize)
	for i, doc := range docs {
		g.Go(func() error {
			item := BatchItem{Filename: doc.Filename}
			lr, err := s.ExtractLeads(gctx, doc, useAPI)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				item.Error = err.Error()
			} else {
				item.LeadsResult = lr
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "batch cancelled")
	}

	res.Processed = len(items)
	res.Results = items
	for _, it := range items {
		if it.LeadsResult != nil {
			res.TotalLeads += it.LeadsFound
		}
	}
	return res, nil
}

func (s *Service) withWorker(ctx context.Context, fn func() error) error {
	if err := s.pool.Acquire(ctx, 1); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "waiting for extraction worker")
	}
	defer s.pool.Release(1)
	return fn()
}

// report forwards failures that are not the caller's fault.
func (s *Service) report(ctx context.Context, op, filename string, err error) {
	code := dErrors.CodeOf(err)
	switch code {
	case dErrors.CodeDecode, dErrors.CodeBadRequest, dErrors.CodeTooLarge, dErrors.CodeTimeout:
		s.logger.InfoContext(ctx, "extraction rejected", "operation", op, "code", code, "error", err)
		return
	}
	s.logger.ErrorContext(ctx, "extraction failed", "operation", op, "code", code, "error", err)
	if s.reporter != nil {
		s.reporter.CaptureError(ctx, fmt.Errorf("%s %q: %w", op, filename, err), map[string]string{
			"operation": op,
			"code":      string(code),
		})
	}
}

func leadsResult(out models.Outcome) *LeadsResult {
	leads := out.Leads
	if leads == nil {
		leads = []models.Lead{}
	}
	return &LeadsResult{
		LeadsFound:       len(leads),
		Leads:            leads,
		ProcessingMethod: LeadsMethod(out),
		Warnings:         out.Warnings,
	}
}

// LeadsMethod maps the producing strategy to the lead endpoint's label.
func LeadsMethod(out models.Outcome) string {
	if out.Strategy == models.StrategyVisionAPI {
		return MethodAPI
	}
	return MethodOCR
}

// KYCMethod distinguishes a planned OCR run from one that replaced a failed
// vision call.
func KYCMethod(out models.Outcome) string {
	switch {
	case out.Strategy == models.StrategyVisionAPI:
		return MethodKYCAPI
	case out.FellBack:
		return MethodKYCFallback
	default:
		return MethodOCR
	}
}
