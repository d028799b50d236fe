package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "kycscan/pkg/domain-errors"
)

func TestCompare(t *testing.T) {
	t.Run("sends both images and options", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "ArcFace", r.FormValue("model"))
			assert.Equal(t, "retinaface", r.FormValue("detector"))
			f, _, err := r.FormFile("document")
			require.NoError(t, err)
			data, _ := io.ReadAll(f)
			assert.Equal(t, []byte("doc"), data)
			_, _ = w.Write([]byte(`{"distance":0.31,"threshold":0.68}`))
		}))
		defer srv.Close()

		cmp, err := New(srv.URL).Compare(context.Background(), []byte("selfie"), []byte("doc"), "ArcFace", "retinaface")
		require.NoError(t, err)
		assert.InDelta(t, 0.31, cmp.Distance, 1e-9)
		require.NotNil(t, cmp.Threshold)
		assert.InDelta(t, 0.68, *cmp.Threshold, 1e-9)
	})

	t.Run("missing distance never verifies", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		cmp, err := New(srv.URL).Compare(context.Background(), nil, nil, "ArcFace", "retinaface")
		require.NoError(t, err)
		assert.InDelta(t, missingDistance, cmp.Distance, 0)
		assert.Nil(t, cmp.Threshold)
	})

	t.Run("no face is a validation error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer srv.Close()

		_, err := New(srv.URL).Compare(context.Background(), nil, nil, "", "")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := New(srv.URL).Compare(context.Background(), nil, nil, "", "")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUpstream))
	})

	t.Run("unconfigured", func(t *testing.T) {
		_, err := New(" ").Compare(context.Background(), nil, nil, "", "")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}
