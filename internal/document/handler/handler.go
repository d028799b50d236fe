package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"kycscan/internal/document/service"
	"kycscan/pkg/platform/httputil"
	"kycscan/pkg/requestcontext"
)

// Version is reported by the service index.
const Version = "1.0.0"

// Service defines the document operations used by the handler.
type Service interface {
	VisionEnabled() bool
	ExtractLeads(ctx context.Context, doc service.Document, useAPI bool) (*service.LeadsResult, error)
	ExtractLeadsBatch(ctx context.Context, docs []service.Document, useAPI bool) (*service.BatchResult, error)
	ExtractKYC(ctx context.Context, doc service.Document, useAPI bool) (*service.KYCResult, error)
	OCR(ctx context.Context, doc service.Document, lang string, useFallback bool) (*service.OCRResult, error)
}

// Handler wires document endpoints to the document service.
type Handler struct {
	service        Service
	logger         *slog.Logger
	maxUploadBytes int64
	services       []string
}

// New constructs a document handler. services lists the extra capabilities
// (liveness, verification) advertised on the index.
func New(svc Service, logger *slog.Logger, maxUploadBytes int64, services ...string) *Handler {
	return &Handler{
		service:        svc,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
		services:       services,
	}
}

// RegisterIndex mounts the public service index.
func (h *Handler) RegisterIndex(r chi.Router) {
	r.Get("/", h.HandleIndex)
}

// Register mounts the document endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/extract-leads", h.HandleExtractLeads)
	r.Post("/extract-leads/batch", h.HandleExtractLeadsBatch)
	r.Post("/extract-kyc-data", h.HandleExtractKYC)
	r.Post("/ocr", h.HandleOCR)
}

// IndexResponse describes the running service.
type IndexResponse struct {
	Status              string   `json:"status"`
	Message             string   `json:"message"`
	Version             string   `json:"version"`
	Services            []string `json:"services"`
	OpenRouterAvailable bool     `json:"openrouter_available"`
}

// OCRRequest holds the form options of the OCR endpoint.
type OCRRequest struct {
	Language    string `validate:"required,max=32,printascii"`
	UseFallback bool
}

// Normalize trims the language and applies the default.
func (r *OCRRequest) Normalize() {
	r.Language = strings.TrimSpace(r.Language)
	if r.Language == "" {
		r.Language = "eng"
	}
}

// HandleIndex handles GET / requests.
func (h *Handler) HandleIndex(w http.ResponseWriter, _ *http.Request) {
	services := append([]string{"extract-leads", "extract-leads-batch", "extract-kyc-data", "ocr"}, h.services...)
	httputil.WriteJSON(w, http.StatusOK, IndexResponse{
		Status:              "ok",
		Message:             "KYC document extraction service",
		Version:             Version,
		Services:            services,
		OpenRouterAvailable: h.service.VisionEnabled(),
	})
}

// HandleExtractLeads handles POST /extract-leads requests.
func (h *Handler) HandleExtractLeads(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, useAPI, ok := h.singleUpload(w, r)
	if !ok {
		return
	}

	res, err := h.service.ExtractLeads(ctx, doc, useAPI)
	if err != nil {
		h.logFailure(ctx, "failed to extract leads", doc.Filename, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleExtractLeadsBatch handles POST /extract-leads/batch requests.
func (h *Handler) HandleExtractLeadsBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := httputil.ParseMultipart(r, h.maxUploadBytes); err != nil {
		httputil.WriteError(w, err)
		return
	}
	uploads, err := httputil.FormFiles(r, "files")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	useAPI, err := httputil.FormBool(r, "use_api", true)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	docs := make([]service.Document, 0, len(uploads))
	for _, u := range uploads {
		docs = append(docs, service.Document{Filename: u.Filename, Data: u.Data})
	}
	res, err := h.service.ExtractLeadsBatch(ctx, docs, useAPI)
	if err != nil {
		h.logFailure(ctx, "failed to extract lead batch", "", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleExtractKYC handles POST /extract-kyc-data requests.
func (h *Handler) HandleExtractKYC(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, useAPI, ok := h.singleUpload(w, r)
	if !ok {
		return
	}

	res, err := h.service.ExtractKYC(ctx, doc, useAPI)
	if err != nil {
		h.logFailure(ctx, "failed to extract kyc data", doc.Filename, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleOCR handles POST /ocr requests.
func (h *Handler) HandleOCR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := httputil.ParseMultipart(r, h.maxUploadBytes); err != nil {
		httputil.WriteError(w, err)
		return
	}
	upload, err := httputil.FormFile(r, "file")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	useFallback, err := httputil.FormBool(r, "use_fallback", true)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req := &OCRRequest{Language: r.FormValue("language"), UseFallback: useFallback}
	if err := httputil.PrepareRequest(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	doc := service.Document{Filename: upload.Filename, Data: upload.Data}
	res, err := h.service.OCR(ctx, doc, req.Language, req.UseFallback)
	if err != nil {
		h.logFailure(ctx, "failed to run ocr", doc.Filename, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// singleUpload parses the shared `file` + `use_api` form.
func (h *Handler) singleUpload(w http.ResponseWriter, r *http.Request) (service.Document, bool, bool) {
	if err := httputil.ParseMultipart(r, h.maxUploadBytes); err != nil {
		httputil.WriteError(w, err)
		return service.Document{}, false, false
	}
	upload, err := httputil.FormFile(r, "file")
	if err != nil {
		httputil.WriteError(w, err)
		return service.Document{}, false, false
	}
	useAPI, err := httputil.FormBool(r, "use_api", true)
	if err != nil {
		httputil.WriteError(w, err)
		return service.Document{}, false, false
	}
	return service.Document{Filename: upload.Filename, Data: upload.Data}, useAPI, true
}

func (h *Handler) logFailure(ctx context.Context, msg, filename string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"filename", filename,
		"error", err,
	)
}

var _ Service = (*service.Service)(nil)
