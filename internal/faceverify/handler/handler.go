package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"kycscan/internal/faceverify/service"
	dErrors "kycscan/pkg/domain-errors"
	"kycscan/pkg/platform/httputil"
	"kycscan/pkg/requestcontext"
)

// Service defines the verification operation used by the handler.
type Service interface {
	Verify(ctx context.Context, req service.Request) (*service.Result, error)
}

type Handler struct {
	service        Service
	logger         *slog.Logger
	maxUploadBytes int64
}

func New(svc Service, logger *slog.Logger, maxUploadBytes int64) *Handler {
	return &Handler{service: svc, logger: logger, maxUploadBytes: maxUploadBytes}
}

// Register mounts the verification endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verify", h.HandleVerify)
}

// VerifyRequest holds the optional form options.
type VerifyRequest struct {
	Model     string   `validate:"max=64"`
	Detector  string   `validate:"max=64"`
	Threshold *float64 `validate:"omitempty,gt=0,lte=10"`
}

func (r *VerifyRequest) Normalize() {
	r.Model = strings.TrimSpace(r.Model)
	r.Detector = strings.TrimSpace(r.Detector)
}

// HandleVerify handles POST /verify requests.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := httputil.ParseMultipart(r, h.maxUploadBytes); err != nil {
		httputil.WriteError(w, err)
		return
	}
	selfie, err := httputil.FormFile(r, "selfie")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	document, err := documentUpload(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req := &VerifyRequest{Model: r.FormValue("model"), Detector: r.FormValue("detector")}
	threshold, ok, err := httputil.FormFloat(r, "threshold")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if ok {
		req.Threshold = &threshold
	}
	if err := httputil.PrepareRequest(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.service.Verify(ctx, service.Request{
		Selfie:    selfie.Data,
		Document:  document.Data,
		Threshold: req.Threshold,
		Model:     req.Model,
		Detector:  req.Detector,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "face verification failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// documentUpload accepts the ID image under "document" or the older "idphoto" field.
func documentUpload(r *http.Request) (*httputil.Upload, error) {
	if doc, err := httputil.FormFile(r, "document"); err == nil {
		return doc, nil
	}
	if doc, err := httputil.FormFile(r, "idphoto"); err == nil {
		return doc, nil
	}
	return nil, dErrors.New(dErrors.CodeBadRequest, `missing file field "document"`)
}

var _ Service = (*service.Service)(nil)
