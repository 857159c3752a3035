package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"salespulse/internal/dataprocessing"
	apperrors "salespulse/internal/errors"
	"salespulse/internal/middleware"
	"salespulse/internal/services"
	api "salespulse/pkg/contracts/api/v1"
	"salespulse/pkg/contracts/domain"
)

// requestSource labels analyses built from request bodies
const requestSource = "request"

// AnalyzeHandler serves the analyze endpoints
type AnalyzeHandler struct {
	service      AnalysisServiceInterface
	status       HealthServiceInterface
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apperrors.ErrorHandler
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(
	service AnalysisServiceInterface,
	status HealthServiceInterface,
	validator *middleware.Validator,
	logger *slog.Logger,
	errorHandler *apperrors.ErrorHandler,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		service:      service,
		status:       status,
		validator:    validator,
		logger:       logger.With(slog.String("handler", "analyze")),
		errorHandler: errorHandler,
	}
}

// Routes returns the analyze routes, mounted at /analyze and /api/analyze
func (h *AnalyzeHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(h.errorHandler.MethodNotAllowed)
	r.NotFound(h.errorHandler.NotFound)

	r.Get("/", h.Status)
	r.Post("/", h.Analyze)

	return r
}

// Status handles GET /analyze
func (h *AnalyzeHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.status.Status())
}

// Analyze handles POST /analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := api.AnalyzeQuery{
		Format: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))),
	}
	if err := h.validator.ValidateStruct(&query); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	format, err := h.service.ParseFormat(query.Format)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var req api.AnalyzeRequest
	if err := h.validator.DecodeJSON(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rows, err := dataprocessing.DecodeJSONRows(req.Data)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "Analyze request received",
		slog.Int("rows", len(rows)),
		slog.String("format", string(format)),
		slog.String("request_id", middleware.GetRequestID(ctx)))

	doc, analysis, err := h.service.GenerateReport(ctx, services.ReportRequest{
		Source: requestSource,
		Rows:   rows,
		Format: format,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.writeReport(w, r, doc, analysis)
}

func (h *AnalyzeHandler) writeReport(w http.ResponseWriter, r *http.Request, doc *domain.RenderedReport, analysis *domain.SalesAnalysis) {
	header := w.Header()
	header.Set("Content-Type", doc.Format.ContentType())
	header.Set("Content-Length", strconv.Itoa(len(doc.Data)))
	if doc.Format != domain.ReportFormatJSON {
		header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", doc.FileName))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(doc.Data); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write report response",
			slog.String("error", err.Error()),
			slog.String("analysis_id", analysis.ID))
		return
	}

	h.logger.InfoContext(r.Context(), "Report sent",
		slog.String("analysis_id", analysis.ID),
		slog.String("file_name", doc.FileName),
		slog.Int("size_bytes", len(doc.Data)))
}
