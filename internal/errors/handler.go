package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Problem types following RFC 7807
const (
	TypeValidation        = "/errors/validation"
	TypeNotFound          = "/errors/not-found"
	TypeRateLimit         = "/errors/rate-limit"
	TypeInternal          = "/errors/internal"
	TypeServiceDown       = "/errors/service-unavailable"
	TypeTimeout           = "/errors/timeout"
	TypePayloadTooLarge   = "/errors/payload-too-large"
	TypeMalformedInput    = "/errors/data/malformed"
	TypeMissingColumn     = "/errors/data/missing-column"
	TypeInvalidValue      = "/errors/data/invalid-value"
	TypeEmptyDataset      = "/errors/data/empty"
	TypeUnsupportedFormat = "/errors/data/unsupported-format"
	TypeRenderFailed      = "/errors/report/render-failed"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError converts any error to RFC 7807 format and responds
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())
	problem := h.ErrorToProblem(err, r)

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	attrs := []slog.Attr{
		slog.String("error", err.Error()),
		slog.String("kind", Kind(err)),
		slog.Int("status", problem.Status),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		attrs = append(attrs, appErr.LogAttrs()...)
	}
	h.logger.LogAttrs(r.Context(), level, "request failed", attrs...)

	problem.WithExtension("trace_id", reqID)
	if h.includeStack && problem.Status >= http.StatusInternalServerError {
		problem.WithExtension("stack", getStackTrace())
	}

	render.Render(w, r, problem)
}

// ErrorToProblem converts an error to RFC 7807 Problem Details
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	var (
		apiErr      *APIError
		missing     *MissingColumnError
		invalid     *InvalidValueError
		empty       *EmptyDatasetError
		unsupported *UnsupportedFormatError
		notFound    *FileNotFoundError
		renderErr   *RenderError
		maxBytes    *http.MaxBytesError
		appErr      *AppError
	)

	path := r.URL.Path

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return NewProblemDetails(http.StatusGatewayTimeout, TypeTimeout, "Request Timeout",
			"The request took too long to process and was cancelled", path)

	case errors.As(err, &maxBytes):
		return NewProblemDetails(http.StatusRequestEntityTooLarge, TypePayloadTooLarge, "Payload Too Large",
			fmt.Sprintf("The request body exceeds the maximum of %d bytes", maxBytes.Limit), path)

	case errors.As(err, &missing):
		return NewProblemDetails(http.StatusUnprocessableEntity, TypeMissingColumn, "Missing Required Column",
			missing.Error(), path).
			WithExtension("missing_field", missing.Field).
			WithExtension("accepted_columns", missing.Aliases).
			WithExtension("available_columns", missing.Available)

	case errors.As(err, &invalid):
		return NewProblemDetails(http.StatusUnprocessableEntity, TypeInvalidValue, "Invalid Value",
			invalid.Error(), path).
			WithExtension("row", invalid.Row).
			WithExtension("field", invalid.Field)

	case errors.As(err, &empty):
		return NewProblemDetails(http.StatusUnprocessableEntity, TypeEmptyDataset, "Empty Dataset",
			empty.Error(), path)

	case errors.As(err, &unsupported):
		return NewProblemDetails(http.StatusUnsupportedMediaType, TypeUnsupportedFormat, "Unsupported Format",
			unsupported.Error(), path)

	case errors.As(err, &notFound):
		return NewProblemDetails(http.StatusNotFound, TypeNotFound, "Resource Not Found",
			notFound.Error(), path)

	case errors.As(err, &renderErr):
		return NewProblemDetails(http.StatusInternalServerError, TypeRenderFailed, "Report Rendering Failed",
			fmt.Sprintf("The %s report could not be rendered", renderErr.Format), path).
			WithExtension("format", renderErr.Format)

	case errors.As(err, &apiErr):
		return h.apiErrorToProblem(apiErr, r)

	case errors.As(err, &appErr) && appErr.Type == ErrTypeParsing:
		return NewProblemDetails(http.StatusBadRequest, TypeMalformedInput, "Malformed Input",
			appErr.Error(), path)

	case errors.As(err, &appErr) && appErr.Type == ErrTypeValidation:
		return NewProblemDetails(http.StatusBadRequest, TypeValidation, "Invalid Input",
			appErr.Message, path)

	default:
		return NewProblemDetails(http.StatusInternalServerError, TypeInternal, "Internal Server Error",
			"An unexpected error occurred while processing your request", path)
	}
}

func (h *ErrorHandler) apiErrorToProblem(apiErr *APIError, r *http.Request) *ProblemDetails {
	problem := NewProblemDetails(apiErr.StatusCode, apiErr.problemType(),
		http.StatusText(apiErr.StatusCode), apiErr.Message, r.URL.Path).
		WithExtension("error_code", apiErr.ErrorCode)
	if apiErr.Details != nil {
		problem.WithExtension("details", apiErr.Details)
	}
	return problem
}

// HandlePanic responds with a 500 problem after a recovered panic
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.Any("panic", recovered),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	problem := NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred",
		r.URL.Path,
	).WithExtension("trace_id", reqID)

	if h.includeStack {
		problem.WithExtension("panic", fmt.Sprintf("%v", recovered))
	}

	render.Render(w, r, problem)
}

// NotFound returns a standard 404 error
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusNotFound,
		TypeNotFound,
		"Not Found",
		"The requested resource was not found",
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context()))

	render.Render(w, r, problem)
}

// MethodNotAllowed returns a standard 405 error
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusMethodNotAllowed,
		TypeValidation,
		"Method Not Allowed",
		fmt.Sprintf("Method %s is not allowed for this endpoint", r.Method),
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context()))

	render.Render(w, r, problem)
}

// getStackTrace returns the current stack trace
func getStackTrace() string {
	buf := make([]byte, 1024*8)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
