// Package sentry reports panics and exhausted extraction chains to Sentry.
package sentry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"kycscan/internal/platform/config"
	"kycscan/pkg/requestcontext"
)

// Reporter forwards errors to Sentry. The zero value and a nil *Reporter are
// both no-ops, which is what runs when no DSN is configured.
type Reporter struct {
	hub *sentry.Hub
}

// New initializes the Sentry client. An empty DSN yields a disabled reporter.
func New(cfg config.SentryConfig, release string) (*Reporter, error) {
	if cfg.DSN == "" {
		return &Reporter{}, nil
	}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     release,
		SampleRate:  cfg.SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}
	return &Reporter{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

func (r *Reporter) enabled() bool {
	return r != nil && r.hub != nil
}

// ReportPanic implements request.PanicReporter.
func (r *Reporter) ReportPanic(ctx context.Context, recovered any) {
	if !r.enabled() {
		return
	}
	hub := r.hub.Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("request_id", requestcontext.RequestID(ctx))
	})
	hub.RecoverWithContext(ctx, recovered)
}

// CaptureError records err with the given tags.
func (r *Reporter) CaptureError(ctx context.Context, err error, tags map[string]string) {
	if !r.enabled() || err == nil {
		return
	}
	hub := r.hub.Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("request_id", requestcontext.RequestID(ctx))
		scope.SetTags(tags)
		hub.CaptureException(err)
	})
}

// Flush waits up to timeout for buffered events to be sent.
func (r *Reporter) Flush(timeout time.Duration) error {
	if !r.enabled() {
		return nil
	}
	if !r.hub.Flush(timeout) {
		return errors.New("sentry flush timed out")
	}
	return nil
}
