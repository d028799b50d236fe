package detector

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "kycscan/pkg/domain-errors"
	"kycscan/pkg/platform/circuit"
)

func TestLandmarks(t *testing.T) {
	t.Run("first face only, depth dropped", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, []byte("jpeg"), body)
			_, _ = w.Write([]byte(`{"faces":[{"landmarks":[[0.1,0.2,0.9],[0.3,0.4,0.8]]},{"landmarks":[[1,1,1]]}]}`))
		}))
		defer srv.Close()

		frame, err := New(srv.URL).Landmarks(context.Background(), []byte("jpeg"))
		require.NoError(t, err)
		require.Len(t, frame, 2)
		assert.InDelta(t, 0.3, frame[1].X, 1e-9)
		assert.InDelta(t, 0.4, frame[1].Y, 1e-9)
	})

	t.Run("no face", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"faces":[]}`))
		}))
		defer srv.Close()

		frame, err := New(srv.URL).Landmarks(context.Background(), []byte("jpeg"))
		require.NoError(t, err)
		assert.Nil(t, frame)
	})

	t.Run("non-2xx is upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := New(srv.URL).Landmarks(context.Background(), []byte("jpeg"))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUpstream))
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		defer srv.Close()

		_, err := New(srv.URL, WithTimeout(20*time.Millisecond)).Landmarks(context.Background(), []byte("jpeg"))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUpstreamTimeout))
	})

	t.Run("unconfigured", func(t *testing.T) {
		_, err := New("").Landmarks(context.Background(), []byte("jpeg"))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func TestLandmarksBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	d := New(srv.URL, WithBreaker(circuit.New("face-mesh", circuit.WithFailureThreshold(2))))
	for range 3 {
		_, err := d.Landmarks(context.Background(), []byte("jpeg"))
		require.Error(t, err)
	}
	assert.Equal(t, int32(2), calls.Load())
}
