package errors

import (
	"fmt"
	"net/http"
)

// Stable codes carried by APIError
const (
	CodeInvalidRequest          = "INVALID_REQUEST"
	CodeValidationFailed        = "VALIDATION_FAILED"
	CodeUnsupportedReportFormat = "UNSUPPORTED_REPORT_FORMAT"
	CodeRateLimitExceeded       = "RATE_LIMIT_EXCEEDED"
)

// APIError is a request problem with a stable code for clients.
// ErrorHandler turns it into a problem document.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Details    any
}

func (e *APIError) Error() string {
	return e.Message
}

// problemType maps the code to its problem document type
func (e *APIError) problemType() string {
	switch e.ErrorCode {
	case CodeInvalidRequest, CodeValidationFailed, CodeUnsupportedReportFormat:
		return TypeValidation
	case CodeRateLimitExceeded:
		return TypeRateLimit
	default:
		return TypeInternal
	}
}

// ValidationError is one failed request field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrRateLimitExceeded answers a client over its request budget
var ErrRateLimitExceeded = &APIError{
	StatusCode: http.StatusTooManyRequests,
	ErrorCode:  CodeRateLimitExceeded,
	Message:    "Rate limit exceeded",
}

// InvalidRequestWithError reports a request that could not be read, with
// err as the detail.
func InvalidRequestWithError(err error) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  CodeInvalidRequest,
		Message:    "Invalid request format",
		Details:    err.Error(),
	}
}

// NewValidationErrors lists every field that failed validation
func NewValidationErrors(errs []ValidationError) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  CodeValidationFailed,
		Message:    "Request validation failed",
		Details:    errs,
	}
}

// ErrUnsupportedReportFormat rejects an unknown report format name
func ErrUnsupportedReportFormat(format string) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  CodeUnsupportedReportFormat,
		Message:    fmt.Sprintf("report format %q is not supported", format),
	}
}
