// Package tracer provides a small tracing abstraction for document extraction
// so the pipeline can emit spans without importing OpenTelemetry directly.
//
// Implementations:
//   - NoopTracer: for tests
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span. End must be called exactly once.
type Span interface {
	// End completes the span. A non-nil err marks the span as failed.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanExtractLeads = "document.extract_leads"
	SpanExtractKYC   = "document.extract_kyc"
	SpanOCR          = "document.ocr"
	SpanStrategy     = "document.strategy"
)

// Attribute keys.
const (
	AttrOperation  = "operation"
	AttrStrategy   = "strategy"
	AttrUseAPI     = "use_api"
	AttrFellBack   = "fell_back"
	AttrImageBytes = "image.bytes"
	AttrLeadCount  = "leads.count"
	AttrEngine     = "ocr.engine"
	AttrDegraded   = "ocr.degraded"
	AttrErrorCode  = "error.code"
)

// Event names.
const (
	EventStrategyFailed = "strategy.failed"
)
