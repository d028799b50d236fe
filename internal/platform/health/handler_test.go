package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.Register(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestReadiness(t *testing.T) {
	t.Run("ready when all checks pass", func(t *testing.T) {
		h := New("test")
		h.RegisterCheck("ocr", func(context.Context) error { return nil })
		h.RegisterCheck("redis", func(context.Context) error { return nil })

		rec := serve(h, "/health/ready")

		require.Equal(t, http.StatusOK, rec.Code)
		var body ReadinessResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "ready", body.Status)
		assert.Equal(t, map[string]string{"ocr": "up", "redis": "up"}, body.Checks)
	})

	t.Run("not ready when a check fails", func(t *testing.T) {
		h := New("test")
		h.RegisterCheck("ocr", func(context.Context) error { return errors.New("no engine") })
		h.RegisterCheck("redis", func(context.Context) error { return nil })

		rec := serve(h, "/health/ready")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body ReadinessResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "not_ready", body.Status)
		assert.Equal(t, "down: no engine", body.Checks["ocr"])
	})
}

func TestLivenessAndStatus(t *testing.T) {
	h := New("staging")

	assert.JSONEq(t, `{"status":"alive"}`, serve(h, "/health/live").Body.String())

	var status StatusResponse
	require.NoError(t, json.NewDecoder(serve(h, "/health").Body).Decode(&status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "staging", status.Environment)
}
