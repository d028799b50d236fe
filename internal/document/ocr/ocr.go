// Package ocr turns gray-scale document images into text using whichever
// recognition engines are present at call time.
package ocr

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"strings"

	dErrors "kycscan/pkg/domain-errors"
)

// Engine is a single text-recognition backend.
type Engine interface {
	Name() string
	// Available reports whether the backend can run in this environment.
	Available() bool
	// MultiLanguage reports whether Recognize honors more than one language.
	MultiLanguage() bool
	Recognize(ctx context.Context, img *image.Gray, langs []string) (string, error)
}

// Degraded is the worst-case tier used when no engine produced text. It
// returns a formatted text stand-in rather than a transcription.
type Degraded interface {
	Dump(ctx context.Context, img *image.Gray) (string, error)
}

// Result is the text produced by the adapter and where it came from.
type Result struct {
	Text     string
	Engine   string
	Degraded bool
}

// Adapter walks a static engine chain. Empty text is a valid result; an error
// is returned only when nothing could produce text.
type Adapter struct {
	engines   []Engine
	degraded  Degraded
	languages []string
	logger    *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithDegraded sets the last-resort tier used by Text.
func WithDegraded(d Degraded) Option {
	return func(a *Adapter) { a.degraded = d }
}

// WithLanguages sets extra languages passed to multi-language engines.
func WithLanguages(langs ...string) Option {
	return func(a *Adapter) { a.languages = append([]string(nil), langs...) }
}

// WithLogger sets the adapter logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) { a.logger = l }
}

// NewAdapter builds an adapter trying engines in order.
func NewAdapter(engines []Engine, opts ...Option) *Adapter {
	a := &Adapter{engines: engines, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Recognize runs the engine chain only. lang is an ISO 639-1 or tesseract
// language code; empty means English.
func (a *Adapter) Recognize(ctx context.Context, img *image.Gray, lang string) (Result, error) {
	primary := TesseractLanguage(lang)

	var errs []error
	tried := 0
	for _, e := range a.engines {
		if !e.Available() {
			continue
		}
		tried++
		langs := []string{primary}
		if e.MultiLanguage() {
			langs = mergeLanguages(primary, a.languages)
		}
		text, err := e.Recognize(ctx, img, langs)
		if err == nil {
			return Result{Text: strings.TrimSpace(text), Engine: e.Name()}, nil
		}
		if ctx.Err() != nil {
			return Result{}, dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "ocr cancelled")
		}
		a.logger.WarnContext(ctx, "ocr engine failed", "engine", e.Name(), "error", err)
		errs = append(errs, err)
	}

	if tried == 0 {
		return Result{}, dErrors.New(dErrors.CodeNoOCREngine, "no OCR engine available")
	}
	return Result{}, dErrors.Wrap(errors.Join(errs...), dErrors.CodeNoOCREngine, "all OCR engines failed")
}

// Text runs the engine chain and falls back to the degraded tier.
func (a *Adapter) Text(ctx context.Context, img *image.Gray, lang string) (Result, error) {
	res, err := a.Recognize(ctx, img, lang)
	if err == nil || a.degraded == nil || dErrors.HasCode(err, dErrors.CodeTimeout) {
		return res, err
	}

	a.logger.WarnContext(ctx, "falling back to degraded OCR tier", "error", err)
	dump, dErr := a.degraded.Dump(ctx, img)
	if dErr != nil {
		return Result{}, dErrors.Wrap(errors.Join(err, dErr), dErrors.CodeNoOCREngine, "no OCR capability available")
	}
	return Result{Text: dump, Engine: "degraded", Degraded: true}, nil
}

// Available reports whether any engine in the chain can run.
func (a *Adapter) Available() bool {
	for _, e := range a.engines {
		if e.Available() {
			return true
		}
	}
	return false
}

// Engines lists the names of the engines that can run now.
func (a *Adapter) Engines() []string {
	var names []string
	for _, e := range a.engines {
		if e.Available() {
			names = append(names, e.Name())
		}
	}
	return names
}

var isoToTesseract = map[string]string{
	"en": "eng", "hi": "hin", "bn": "ben", "ta": "tam", "te": "tel",
	"mr": "mar", "gu": "guj", "kn": "kan", "ml": "mal", "pa": "pan",
	"ur": "urd", "fr": "fra", "de": "deu", "es": "spa", "pt": "por",
}

// TesseractLanguage maps a two-letter code to tesseract's three-letter
// traineddata name. Unknown codes pass through unchanged.
func TesseractLanguage(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "eng"
	}
	if t, ok := isoToTesseract[code]; ok {
		return t
	}
	return code
}

func mergeLanguages(primary string, extra []string) []string {
	out := []string{primary}
	for _, l := range extra {
		l = TesseractLanguage(l)
		dup := false
		for _, seen := range out {
			if seen == l {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, l)
		}
	}
	return out
}
