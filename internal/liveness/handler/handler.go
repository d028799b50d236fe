package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"kycscan/internal/liveness/models"
	"kycscan/internal/liveness/service"
	"kycscan/pkg/platform/httputil"
	"kycscan/pkg/requestcontext"
)

// Service defines the liveness operations used by the handler.
type Service interface {
	ProcessFrame(ctx context.Context, subjectID string, frame []byte) (*models.Result, error)
	Reset(ctx context.Context, subjectID string) error
}

// Handler wires liveness endpoints to the liveness service.
type Handler struct {
	service        Service
	logger         *slog.Logger
	maxUploadBytes int64
}

// New constructs a liveness handler.
func New(svc Service, logger *slog.Logger, maxUploadBytes int64) *Handler {
	return &Handler{service: svc, logger: logger, maxUploadBytes: maxUploadBytes}
}

// Register mounts liveness endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/liveness/frames", h.HandleFrame)
	r.Delete("/liveness/sessions/{subjectID}", h.HandleReset)
}

// FrameRequest identifies the session a frame belongs to.
type FrameRequest struct {
	SubjectID string `validate:"required,max=128"`
}

// Normalize trims the subject ID.
func (r *FrameRequest) Normalize() {
	r.SubjectID = strings.TrimSpace(r.SubjectID)
}

// HandleFrame handles POST /liveness/frames requests.
func (h *Handler) HandleFrame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := httputil.ParseMultipart(r, h.maxUploadBytes); err != nil {
		httputil.WriteError(w, err)
		return
	}
	req := &FrameRequest{SubjectID: r.FormValue("subject_id")}
	if err := httputil.PrepareRequest(req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	upload, err := httputil.FormFile(r, "frame")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.ProcessFrame(ctx, req.SubjectID, upload.Data)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to process liveness frame",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleReset handles DELETE /liveness/sessions/{subjectID} requests.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := &FrameRequest{SubjectID: chi.URLParam(r, "subjectID")}
	if err := httputil.PrepareRequest(req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.Reset(ctx, req.SubjectID); err != nil {
		h.logger.ErrorContext(ctx, "failed to reset liveness session",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

var _ Service = (*service.Service)(nil)
