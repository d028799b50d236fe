package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	dochandler "kycscan/internal/document/handler"
	docmetrics "kycscan/internal/document/metrics"
	"kycscan/internal/document/ocr"
	"kycscan/internal/document/orchestrator"
	docservice "kycscan/internal/document/service"
	"kycscan/internal/document/tracer"
	"kycscan/internal/document/vision"
	fvclient "kycscan/internal/faceverify/client"
	fvhandler "kycscan/internal/faceverify/handler"
	fvservice "kycscan/internal/faceverify/service"
	jwttoken "kycscan/internal/jwt_token"
	"kycscan/internal/liveness/detector"
	livehandler "kycscan/internal/liveness/handler"
	livemetrics "kycscan/internal/liveness/metrics"
	liveservice "kycscan/internal/liveness/service"
	"kycscan/internal/liveness/store"
	"kycscan/internal/liveness/workers/cleanup"
	"kycscan/internal/platform/config"
	"kycscan/internal/platform/health"
	"kycscan/internal/platform/redis"
	"kycscan/internal/platform/sentry"
	"kycscan/pkg/platform/circuit"
	"kycscan/pkg/platform/middleware/auth"
	"kycscan/pkg/platform/middleware/metadata"
	"kycscan/pkg/platform/middleware/request"
)

// worker is a long-running background task stopped by ctx.
type worker func(ctx context.Context) error

type app struct {
	router   http.Handler
	workers  []worker
	redis    *redis.Client
	reporter *sentry.Reporter
}

func (a *app) close(log *slog.Logger) {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Warn("closing redis", "error", err)
		}
	}
	if err := a.reporter.Flush(2 * time.Second); err != nil {
		log.Warn("flushing sentry", "error", err)
	}
}

func build(ctx context.Context, cfg config.Server, log *slog.Logger) (*app, error) {
	reporter, err := sentry.New(cfg.Sentry, health.Version)
	if err != nil {
		return nil, err
	}
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a := &app{redis: redisClient, reporter: reporter}

	healthHandler := health.New(cfg.Environment)

	// Document extraction
	docMetrics := docmetrics.New(prometheus.DefaultRegisterer)
	visionClient := vision.New(vision.Config{
		APIKey:        cfg.Vision.APIKey,
		Model:         cfg.Vision.Model,
		BaseURL:       cfg.Vision.BaseURL,
		SiteURL:       cfg.Vision.SiteURL,
		AppTitle:      cfg.Vision.AppTitle,
		Timeout:       cfg.Vision.Timeout,
		RatePerMinute: cfg.Vision.RatePerMinute,
		Breaker:       circuit.New("vision-api"),
	})

	cli := ocr.NewCLIEngine("tesseract")
	leadDump := orchestrator.NewLeadDump(cli, cfg.OCR.TempDir, docMetrics)
	adapter := ocr.NewAdapter(
		[]ocr.Engine{ocr.NewGosseractEngine(), cli},
		ocr.WithDegraded(leadDump),
		ocr.WithLanguages(cfg.OCR.Languages...),
		ocr.WithLogger(log),
	)
	healthHandler.RegisterCheck("ocr", func(context.Context) error {
		if !adapter.Available() {
			return fmt.Errorf("no OCR engine available")
		}
		return nil
	})

	orch := orchestrator.New(orchestrator.Config{
		Vision:      visionClient,
		Text:        adapter,
		Fallback:    leadDump,
		MaxImageDim: cfg.Vision.MaxImageDim,
		Tracer:      tracer.NewOTel(),
		Metrics:     docMetrics,
		Logger:      log,
	})
	docService := docservice.New(orch,
		docservice.WithReporter(reporter),
		docservice.WithWorkerPool(cfg.WorkerPoolSize),
		docservice.WithMaxAPIDocuments(cfg.Vision.MaxAPIDocuments),
		docservice.WithLogger(log),
	)

	// Liveness
	liveMetrics := livemetrics.New(prometheus.DefaultRegisterer)
	var sessions store.Store
	if redisClient != nil {
		sessions = store.NewRedis(redisClient.Client, cfg.Liveness.SessionTTL)
		healthHandler.RegisterCheck("redis", redisClient.Health)
		a.workers = append(a.workers, func(ctx context.Context) error {
			return redisClient.RunPoolStats(ctx, 15*time.Second)
		})
	} else {
		sessions = store.NewInMemory()
	}
	liveService := liveservice.New(sessions,
		detector.New(cfg.Liveness.FaceMeshURL, detector.WithBreaker(circuit.New("face-mesh"))),
		liveservice.WithMetrics(liveMetrics),
		liveservice.WithMaxFrames(cfg.Liveness.MaxFrames),
		liveservice.WithMaxImageDimension(cfg.Vision.MaxImageDim),
		liveservice.WithLogger(log),
	)
	sweeper, err := cleanup.New(sessions, cfg.Liveness.SessionTTL,
		cleanup.WithCleanupInterval(cfg.Liveness.CleanupInterval),
		cleanup.WithCleanupLogger(log),
		cleanup.WithRecorder(liveMetrics),
	)
	if err != nil {
		return nil, err
	}
	a.workers = append(a.workers, sweeper.Start)

	// Face verification
	fvService := fvservice.New(
		fvclient.New(cfg.FaceVerify.URL, fvclient.WithTimeout(cfg.FaceVerify.Timeout)),
		fvservice.WithDefaults(cfg.FaceVerify.Threshold, cfg.FaceVerify.Model, cfg.FaceVerify.Detector),
		fvservice.WithMaxImageDimension(cfg.Vision.MaxImageDim),
		fvservice.WithLogger(log),
	)

	var validator auth.TokenValidator
	if cfg.Auth.SigningKey != "" {
		validator = jwttoken.NewService(cfg.Auth.SigningKey, cfg.Auth.Audience)
	}

	docHandler := dochandler.New(docService, log, cfg.MaxUploadBytes, "liveness-frames", "verify")
	a.router = newRouter(cfg, log, reporter, validator, healthHandler, docHandler,
		livehandler.New(liveService, log, cfg.MaxUploadBytes),
		fvhandler.New(fvService, log, cfg.MaxUploadBytes),
	)
	return a, nil
}

type registrar interface {
	Register(r chi.Router)
}

func newRouter(
	cfg config.Server,
	log *slog.Logger,
	reporter *sentry.Reporter,
	validator auth.TokenValidator,
	healthHandler *health.Handler,
	docHandler *dochandler.Handler,
	protected ...registrar,
) http.Handler {
	r := chi.NewRouter()
	r.Use(request.Recovery(log, reporter))
	r.Use(request.RequestID)
	r.Use(metadata.New().Handler)
	r.Use(request.Logger(log))
	r.Use(request.LatencyMiddleware(request.NewMetrics(prometheus.DefaultRegisterer)))

	healthHandler.Register(r)
	r.Handle("/metrics", promhttp.Handler())
	docHandler.RegisterIndex(r)

	r.Group(func(r chi.Router) {
		r.Use(request.BodyLimit(cfg.MaxUploadBytes))
		r.Use(request.Timeout(cfg.RequestTimeout))
		r.Use(auth.RequireAuth(validator, log))
		docHandler.Register(r)
		for _, h := range protected {
			h.Register(r)
		}
	})
	return r
}
