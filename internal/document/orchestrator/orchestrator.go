// Package orchestrator sequences the extraction strategies for a document.
//
// Each strategy returns a tagged result instead of signalling failure through
// control flow. The chain for lead and KYC extraction is
//
//	vision-api (when requested and configured) -> ocr
//
// and the first strategy to succeed determines the reported strategy. Decode
// errors end the request before any strategy runs.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"kycscan/internal/document/extract"
	"kycscan/internal/document/imaging"
	"kycscan/internal/document/metrics"
	"kycscan/internal/document/models"
	"kycscan/internal/document/ocr"
	"kycscan/internal/document/tracer"
	dErrors "kycscan/pkg/domain-errors"
)

// Operation names used in metrics and logs.
const (
	OpLeads = "leads"
	OpKYC   = "kyc"
	OpOCR   = "ocr"
)

// VisionClient is the multimodal completion service.
type VisionClient interface {
	Enabled() bool
	ExtractLeads(ctx context.Context, jpegImage []byte) ([]models.Lead, string, []string, error)
	ExtractKYC(ctx context.Context, jpegImage []byte) (models.KYCFields, string, []string, error)
}

// TextSource is the local OCR adapter. Recognize runs the engines only; Text
// adds the degraded tier.
type TextSource interface {
	Recognize(ctx context.Context, img *image.Gray, lang string) (ocr.Result, error)
	Text(ctx context.Context, img *image.Gray, lang string) (ocr.Result, error)
}

// FileRecognizer runs OCR on an image already written to disk.
type FileRecognizer interface {
	RecognizeFile(ctx context.Context, path string, langs []string) (string, error)
}

// Config wires the orchestrator's collaborators.
type Config struct {
	Vision      VisionClient
	Text        TextSource
	Fallback    ocr.Degraded
	MaxImageDim int
	Tracer      tracer.Tracer
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

// Orchestrator runs strategy chains. It keeps no state between requests.
type Orchestrator struct {
	vision      VisionClient
	text        TextSource
	fallback    ocr.Degraded
	maxImageDim int
	tracer      tracer.Tracer
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// New creates an orchestrator.
func New(cfg Config) *Orchestrator {
	if cfg.MaxImageDim <= 0 {
		cfg.MaxImageDim = 1024
	}
	if cfg.Tracer == nil {
		cfg.Tracer = tracer.NewNoop()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Orchestrator{
		vision:      cfg.Vision,
		text:        cfg.Text,
		fallback:    cfg.Fallback,
		maxImageDim: cfg.MaxImageDim,
		tracer:      cfg.Tracer,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
	}
}

// result is the tagged outcome of one strategy.
type result struct {
	outcome models.Outcome
	err     error
}

func succeeded(o models.Outcome) result { return result{outcome: o} }
func failed(err error) result           { return result{err: err} }

type step struct {
	strategy models.Strategy
	run      func(ctx context.Context, doc *document) result
}

// document is the decoded upload shared by every strategy of one request.
type document struct {
	data []byte
	img  image.Image
	gray *image.Gray
}

func (d *document) grayscale() *image.Gray {
	if d.gray == nil {
		d.gray = imaging.Gray(d.img)
	}
	return d.gray
}

func decode(data []byte) (*document, error) {
	img, _, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}
	return &document{data: data, img: img}, nil
}

// VisionEnabled reports whether the vision strategy can ever be selected.
func (o *Orchestrator) VisionEnabled() bool {
	return o.vision != nil && o.vision.Enabled()
}

// ExtractLeads pulls contact leads out of a document image.
func (o *Orchestrator) ExtractLeads(ctx context.Context, data []byte, useAPI bool) (models.Outcome, error) {
	ctx, span := o.tracer.Start(ctx, tracer.SpanExtractLeads,
		tracer.Bool(tracer.AttrUseAPI, useAPI),
		tracer.Int(tracer.AttrImageBytes, len(data)),
	)
	out, err := o.extract(ctx, OpLeads, data, o.chain(useAPI,
		step{models.StrategyVisionAPI, o.leadsViaVision},
		step{models.StrategyOCR, o.leadsViaOCR},
	))
	if err == nil {
		span.SetAttributes(tracer.Int(tracer.AttrLeadCount, len(out.Leads)))
		o.metrics.ObserveLeads(len(out.Leads))
	}
	span.End(err)
	return out, err
}

// ExtractKYC pulls identity fields out of an ID document image.
func (o *Orchestrator) ExtractKYC(ctx context.Context, data []byte, useAPI bool) (models.Outcome, error) {
	ctx, span := o.tracer.Start(ctx, tracer.SpanExtractKYC,
		tracer.Bool(tracer.AttrUseAPI, useAPI),
		tracer.Int(tracer.AttrImageBytes, len(data)),
	)
	out, err := o.extract(ctx, OpKYC, data, o.chain(useAPI,
		step{models.StrategyVisionAPI, o.kycViaVision},
		step{models.StrategyOCR, o.kycViaOCR},
	))
	span.End(err)
	return out, err
}

// chain drops the vision step unless it was requested and is configured.
func (o *Orchestrator) chain(useAPI bool, vision, local step) []step {
	if useAPI && o.VisionEnabled() {
		return []step{vision, local}
	}
	return []step{local}
}

func (o *Orchestrator) extract(ctx context.Context, op string, data []byte, steps []step) (models.Outcome, error) {
	start := time.Now()
	doc, err := decode(data)
	if err != nil {
		return models.Outcome{}, err
	}

	var (
		failures []error
		warnings []string
	)
	for i, st := range steps {
		sctx, span := o.tracer.Start(ctx, tracer.SpanStrategy,
			tracer.String(tracer.AttrOperation, op),
			tracer.String(tracer.AttrStrategy, string(st.strategy)),
		)
		r := st.run(sctx, doc)
		span.End(r.err)

		if r.err == nil {
			out := r.outcome
			out.Strategy = st.strategy
			out.FellBack = i > 0
			out.Warnings = append(warnings, out.Warnings...)
			o.metrics.RecordExtraction(op, string(st.strategy), time.Since(start).Seconds())
			return out, nil
		}

		o.metrics.RecordFallback(op, string(st.strategy))
		o.logger.WarnContext(ctx, "extraction strategy failed",
			"operation", op,
			"strategy", st.strategy,
			"code", dErrors.CodeOf(r.err),
			"error", r.err,
		)
		failures = append(failures, r.err)
		warnings = append(warnings, fmt.Sprintf("%s strategy failed: %v", st.strategy, r.err))

		if ctx.Err() != nil {
			break
		}
	}

	err = exhausted(failures)
	o.metrics.RecordFailure(op, string(dErrors.CodeOf(err)))
	return models.Outcome{}, err
}

// exhausted returns the lone failure unchanged, or a strategies_exhausted
// error wrapping every failure in the chain.
func exhausted(failures []error) error {
	if len(failures) == 1 {
		return failures[0]
	}
	return &dErrors.Error{
		Code:    dErrors.CodeExhausted,
		Message: "all extraction strategies failed",
		Err:     errors.Join(failures...),
	}
}

func (o *Orchestrator) leadsViaVision(ctx context.Context, doc *document) result {
	jpeg, err := imaging.CompressForTransport(doc.data, o.maxImageDim)
	if err != nil {
		return failed(err)
	}
	leads, text, warnings, err := o.vision.ExtractLeads(ctx, jpeg)
	if err != nil {
		return failed(err)
	}
	return succeeded(models.Outcome{Leads: nonNil(leads), RawText: text, Warnings: warnings})
}

func (o *Orchestrator) leadsViaOCR(ctx context.Context, doc *document) result {
	res, err := o.text.Text(ctx, doc.grayscale(), "")
	if err != nil {
		return failed(err)
	}
	return succeeded(models.Outcome{
		Leads:    extract.Leads(res.Text),
		RawText:  res.Text,
		Warnings: degradedWarning(res),
	})
}

func (o *Orchestrator) kycViaVision(ctx context.Context, doc *document) result {
	jpeg, err := imaging.CompressForTransport(doc.data, o.maxImageDim)
	if err != nil {
		return failed(err)
	}
	fields, reply, warnings, err := o.vision.ExtractKYC(ctx, jpeg)
	if err != nil {
		return failed(err)
	}
	return succeeded(models.Outcome{KYC: &fields, RawText: reply, Warnings: warnings})
}

func (o *Orchestrator) kycViaOCR(ctx context.Context, doc *document) result {
	res, err := o.text.Text(ctx, doc.grayscale(), "")
	if err != nil {
		return failed(err)
	}
	fields := extract.KYC(res.Text)
	return succeeded(models.Outcome{KYC: &fields, RawText: res.Text, Warnings: degradedWarning(res)})
}

func degradedWarning(res ocr.Result) []string {
	if !res.Degraded {
		return nil
	}
	return []string{"no OCR engine produced text; degraded lead dump used"}
}

func nonNil(leads []models.Lead) []models.Lead {
	if leads == nil {
		return []models.Lead{}
	}
	return leads
}

// OCRResult is the outcome of the plain OCR operation.
type OCRResult struct {
	RawText  string
	Fields   models.OCRFields
	Strategy models.Strategy
	Engine   string
	FellBack bool
}

// OCR transcribes a document and runs the lighter field pass over the text.
// When the engines fail and useFallback is set, the degraded lead dump on a
// temporary file stands in for the transcription. Without useFallback the
// engine error is returned unchanged.
func (o *Orchestrator) OCR(ctx context.Context, data []byte, lang string, useFallback bool) (OCRResult, error) {
	start := time.Now()
	ctx, span := o.tracer.Start(ctx, tracer.SpanOCR, tracer.Int(tracer.AttrImageBytes, len(data)))

	out, err := o.ocr(ctx, data, lang, useFallback)
	if err == nil {
		span.SetAttributes(
			tracer.String(tracer.AttrEngine, out.Engine),
			tracer.Bool(tracer.AttrFellBack, out.FellBack),
		)
		o.metrics.RecordExtraction(OpOCR, string(out.Strategy), time.Since(start).Seconds())
	} else if !dErrors.HasCode(err, dErrors.CodeDecode) {
		o.metrics.RecordFailure(OpOCR, string(dErrors.CodeOf(err)))
	}
	span.End(err)
	return out, err
}

func (o *Orchestrator) ocr(ctx context.Context, data []byte, lang string, useFallback bool) (OCRResult, error) {
	doc, err := decode(data)
	if err != nil {
		return OCRResult{}, err
	}

	res, err := o.text.Recognize(ctx, doc.grayscale(), lang)
	if err == nil {
		return OCRResult{
			RawText:  res.Text,
			Fields:   extract.OCRFields(res.Text),
			Strategy: models.StrategyOCR,
			Engine:   res.Engine,
		}, nil
	}
	if !useFallback || o.fallback == nil {
		return OCRResult{}, err
	}

	o.metrics.RecordFallback(OpOCR, string(models.StrategyOCR))
	o.logger.WarnContext(ctx, "primary OCR failed, using fallback", "error", err)

	dump, fbErr := o.fallback.Dump(ctx, doc.grayscale())
	if fbErr != nil {
		return OCRResult{}, &dErrors.Error{
			Code:    dErrors.CodeExhausted,
			Message: "both primary and fallback OCR failed",
			Err:     errors.Join(err, fbErr),
		}
	}
	return OCRResult{
		RawText:  dump,
		Fields:   extract.OCRFields(dump),
		Strategy: models.StrategyRegex,
		Engine:   "fallback",
		FellBack: true,
	}, nil
}
