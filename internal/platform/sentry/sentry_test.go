package sentry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycscan/internal/platform/config"
)

func TestDisabledReporterIsNoop(t *testing.T) {
	r, err := New(config.SentryConfig{}, "test")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		r.ReportPanic(context.Background(), "boom")
		r.CaptureError(context.Background(), errors.New("all strategies failed"), map[string]string{"operation": "leads"})
	})
	assert.NoError(t, r.Flush(time.Millisecond))

	var nilReporter *Reporter
	assert.NotPanics(t, func() { nilReporter.CaptureError(context.Background(), errors.New("x"), nil) })
}

func TestInvalidDSN(t *testing.T) {
	_, err := New(config.SentryConfig{DSN: "not a dsn"}, "test")
	assert.Error(t, err)
}
