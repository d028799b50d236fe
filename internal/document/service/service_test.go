package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Extractor,ErrorReporter

import (
	"bytes"
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"kycscan/internal/document/models"
	"kycscan/internal/document/orchestrator"
	"kycscan/internal/document/service/mocks"
	dErrors "kycscan/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	extractor *mocks.MockExtractor
	reporter  *mocks.MockErrorReporter
	svc       *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.extractor = mocks.NewMockExtractor(s.ctrl)
	s.reporter = mocks.NewMockErrorReporter(s.ctrl)
	s.ctx = context.Background()
	s.svc = New(s.extractor,
		WithReporter(s.reporter),
		WithWorkerPool(2),
		WithMaxAPIDocuments(2),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	)
}

func (s *ServiceSuite) TestExtractLeads() {
	s.Run("vision outcome reports API", func() {
		s.extractor.EXPECT().ExtractLeads(gomock.Any(), []byte("img"), true).Return(models.Outcome{
			Strategy: models.StrategyVisionAPI,
			Leads:    []models.Lead{{Name: models.Ptr("John Smith")}},
		}, nil)

		res, err := s.svc.ExtractLeads(s.ctx, Document{Filename: "card.png", Data: []byte("img")}, true)
		s.Require().NoError(err)
		s.Equal(1, res.LeadsFound)
		s.Equal(MethodAPI, res.ProcessingMethod)
	})

	s.Run("ocr outcome with no leads reports empty list", func() {
		s.extractor.EXPECT().ExtractLeads(gomock.Any(), gomock.Any(), false).Return(models.Outcome{
			Strategy: models.StrategyOCR,
		}, nil)

		res, err := s.svc.ExtractLeads(s.ctx, Document{Data: []byte("img")}, false)
		s.Require().NoError(err)
		s.Equal(0, res.LeadsFound)
		s.NotNil(res.Leads)
		s.Equal(MethodOCR, res.ProcessingMethod)
	})

	s.Run("exhausted chain is reported", func() {
		failure := dErrors.New(dErrors.CodeExhausted, "all extraction strategies failed")
		s.extractor.EXPECT().ExtractLeads(gomock.Any(), gomock.Any(), true).Return(models.Outcome{}, failure)
		s.reporter.EXPECT().CaptureError(gomock.Any(), gomock.Any(), map[string]string{
			"operation": orchestrator.OpLeads,
			"code":      string(dErrors.CodeExhausted),
		})

		_, err := s.svc.ExtractLeads(s.ctx, Document{Filename: "card.png", Data: []byte("img")}, true)
		s.True(dErrors.HasCode(err, dErrors.CodeExhausted))
	})

	s.Run("decode failure is not reported", func() {
		s.extractor.EXPECT().ExtractLeads(gomock.Any(), gomock.Any(), true).
			Return(models.Outcome{}, dErrors.New(dErrors.CodeDecode, "image could not be decoded"))

		_, err := s.svc.ExtractLeads(s.ctx, Document{Data: []byte("junk")}, true)
		s.True(dErrors.HasCode(err, dErrors.CodeDecode))
	})
}

func (s *ServiceSuite) TestExtractKYCProcessingMethod() {
	kyc := models.KYCFields{PANNumber: models.Ptr("ABCDE1234F")}
	cases := []struct {
		name    string
		outcome models.Outcome
		want    string
	}{
		{"vision", models.Outcome{Strategy: models.StrategyVisionAPI, KYC: &kyc}, MethodKYCAPI},
		{"fallback after vision failure", models.Outcome{Strategy: models.StrategyOCR, KYC: &kyc, FellBack: true}, MethodKYCFallback},
		{"ocr requested", models.Outcome{Strategy: models.StrategyOCR, KYC: &kyc}, MethodOCR},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.extractor.EXPECT().ExtractKYC(gomock.Any(), gomock.Any(), gomock.Any()).Return(tc.outcome, nil)

			res, err := s.svc.ExtractKYC(s.ctx, Document{Data: []byte("id")}, true)
			s.Require().NoError(err)
			s.Equal(tc.want, res.ProcessingMethod)
			s.Equal("ABCDE1234F", models.Deref(res.KYCData.PANNumber))
		})
	}
}

func (s *ServiceSuite) TestOCR() {
	s.extractor.EXPECT().OCR(gomock.Any(), []byte("doc"), "hi", true).Return(orchestrator.OCRResult{
		RawText:  "DOB 01/02/1990",
		Fields:   models.OCRFields{DOB: models.Ptr("01/02/1990")},
		Strategy: models.StrategyRegex,
		FellBack: true,
	}, nil)

	res, err := s.svc.OCR(s.ctx, Document{Data: []byte("doc")}, "hi", true)
	s.Require().NoError(err)
	s.True(res.FallbackUsed)
	s.Equal("01/02/1990", models.Deref(res.Extracted.DOB))
}

func (s *ServiceSuite) TestOCRNoEngineIsReported() {
	s.extractor.EXPECT().OCR(gomock.Any(), gomock.Any(), "", false).
		Return(orchestrator.OCRResult{}, dErrors.New(dErrors.CodeNoOCREngine, "no OCR engine available"))
	s.reporter.EXPECT().CaptureError(gomock.Any(), gomock.Any(), gomock.Any())

	_, err := s.svc.OCR(s.ctx, Document{Data: []byte("doc")}, "", false)
	s.True(dErrors.HasCode(err, dErrors.CodeNoOCREngine))
}

func (s *ServiceSuite) TestBatch() {
	s.Run("per-file errors are inline", func() {
		s.extractor.EXPECT().ExtractLeads(gomock.Any(), []byte("a"), true).Return(models.Outcome{
			Strategy: models.StrategyVisionAPI,
			Leads:    []models.Lead{{Email: models.Ptr("a@b.co")}, {Email: models.Ptr("c@d.co")}},
		}, nil)
		s.extractor.EXPECT().ExtractLeads(gomock.Any(), []byte("b"), true).
			Return(models.Outcome{}, dErrors.New(dErrors.CodeDecode, "image could not be decoded"))

		res, err := s.svc.ExtractLeadsBatch(s.ctx, []Document{
			{Filename: "a.png", Data: []byte("a")},
			{Filename: "b.png", Data: []byte("b")},
		}, true)
		s.Require().NoError(err)
		s.Equal(2, res.Processed)
		s.Equal(2, res.TotalLeads)
		s.Equal("a.png", res.Results[0].Filename)
		s.Equal(2, res.Results[0].LeadsFound)
		s.Equal("b.png", res.Results[1].Filename)
		s.Nil(res.Results[1].LeadsResult)
		s.Equal("image could not be decoded", res.Results[1].Error)
	})

	s.Run("api batches are capped", func() {
		s.extractor.EXPECT().ExtractLeads(gomock.Any(), gomock.Any(), true).
			Return(models.Outcome{Strategy: models.StrategyVisionAPI}, nil).Times(2)

		res, err := s.svc.ExtractLeadsBatch(s.ctx, []Document{
			{Filename: "1"}, {Filename: "2"}, {Filename: "3"},
		}, true)
		s.Require().NoError(err)
		s.Equal(2, res.Processed)
		s.Equal([]string{"3"}, res.Skipped)
	})

	s.Run("ocr batches allow more files", func() {
		s.extractor.EXPECT().ExtractLeads(gomock.Any(), gomock.Any(), false).
			Return(models.Outcome{Strategy: models.StrategyOCR}, nil).Times(3)

		res, err := s.svc.ExtractLeadsBatch(s.ctx, []Document{
			{Filename: "1"}, {Filename: "2"}, {Filename: "3"},
		}, false)
		s.Require().NoError(err)
		s.Equal(3, res.Processed)
		s.Empty(res.Skipped)
	})

	s.Run("empty batch is rejected", func() {
		_, err := s.svc.ExtractLeadsBatch(s.ctx, nil, true)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *ServiceSuite) TestWorkerPoolBoundsConcurrency() {
	var inFlight, peak atomic.Int32
	s.extractor.EXPECT().ExtractLeads(gomock.Any(), gomock.Any(), false).
		DoAndReturn(func(context.Context, []byte, bool) (models.Outcome, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return models.Outcome{Strategy: models.StrategyOCR}, nil
		}).Times(6)

	docs := make([]Document, 6)
	_, err := s.svc.ExtractLeadsBatch(s.ctx, docs, false)
	s.Require().NoError(err)
	s.LessOrEqual(peak.Load(), int32(2))
}

func (s *ServiceSuite) TestCancelledContextWhileWaitingForWorker() {
	svc := New(s.extractor, WithWorkerPool(1))
	s.Require().NoError(svc.pool.Acquire(s.ctx, 1))
	defer svc.pool.Release(1)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := svc.ExtractLeads(ctx, Document{Data: []byte("img")}, true)
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
}
