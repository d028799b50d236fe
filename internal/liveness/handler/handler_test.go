package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"kycscan/internal/liveness/handler/mocks"
	"kycscan/internal/liveness/models"
	dErrors "kycscan/pkg/domain-errors"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)), 1<<20).Register(s.router)
}

func (s *HandlerSuite) postFrame(subject string, frame []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if frame != nil {
		w, err := mw.CreateFormFile("frame", "frame.jpg")
		s.Require().NoError(err)
		_, err = w.Write(frame)
		s.Require().NoError(err)
	}
	s.Require().NoError(mw.WriteField("subject_id", subject))
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/liveness/frames", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestFrame() {
	s.Run("collecting", func() {
		s.service.EXPECT().ProcessFrame(gomock.Any(), "user-1", []byte("jpg")).Return(models.Collecting(2), nil)

		rec := s.postFrame(" user-1 ", []byte("jpg"))
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"live":false,"reason":"collecting_frames","frames_collected":2}`, rec.Body.String())
	})

	s.Run("no face is a normal response", func() {
		s.service.EXPECT().ProcessFrame(gomock.Any(), "user-1", gomock.Any()).Return(models.NoFace(), nil)

		rec := s.postFrame("user-1", []byte("jpg"))
		s.Equal(http.StatusOK, rec.Code)
		var body map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal("no face detected", body["reason"])
	})

	s.Run("missing subject", func() {
		rec := s.postFrame("", []byte("jpg"))
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("missing frame", func() {
		rec := s.postFrame("user-1", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("detector unavailable", func() {
		s.service.EXPECT().ProcessFrame(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "face-mesh service is not configured"))

		rec := s.postFrame("user-1", []byte("jpg"))
		s.Equal(http.StatusServiceUnavailable, rec.Code)
	})
}

func (s *HandlerSuite) TestReset() {
	s.service.EXPECT().Reset(gomock.Any(), "user-1").Return(nil)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/liveness/sessions/user-1", nil))
	s.Equal(http.StatusNoContent, rec.Code)
}
