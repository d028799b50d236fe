package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"kycscan/internal/faceverify/handler/mocks"
	"kycscan/internal/faceverify/service"
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

func (s *HandlerSuite) post(fields map[string]string, files map[string][]byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, data := range files {
		w, err := mw.CreateFormFile(name, name+".jpg")
		s.Require().NoError(err)
		_, err = w.Write(data)
		s.Require().NoError(err)
	}
	for k, v := range fields {
		s.Require().NoError(mw.WriteField(k, v))
	}
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/verify", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestVerify() {
	s.Run("passes threshold through", func() {
		s.service.EXPECT().Verify(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req service.Request) (*service.Result, error) {
				s.Equal([]byte("me"), req.Selfie)
				s.Equal([]byte("id"), req.Document)
				s.Require().NotNil(req.Threshold)
				s.InDelta(0.5, *req.Threshold, 1e-9)
				return &service.Result{Verified: true, Distance: 0.2, Threshold: 0.5, Model: "ArcFace"}, nil
			})

		rec := s.post(map[string]string{"threshold": "0.5"}, map[string][]byte{"selfie": []byte("me"), "document": []byte("id")})
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"verified":true,"distance":0.2,"threshold":0.5,"model":"ArcFace","detector":""}`, rec.Body.String())
	})

	s.Run("accepts idphoto field", func() {
		s.service.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(&service.Result{}, nil)

		rec := s.post(nil, map[string][]byte{"selfie": []byte("me"), "idphoto": []byte("id")})
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("missing document", func() {
		rec := s.post(nil, map[string][]byte{"selfie": []byte("me")})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("invalid threshold", func() {
		rec := s.post(map[string]string{"threshold": "-1"}, map[string][]byte{"selfie": []byte("me"), "document": []byte("id")})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
