package errors

import (
	"errors"
	"fmt"
	"strings"
)

// FileNotFoundError reports a missing input file or catalog location.
type FileNotFoundError struct {
	Path string
	// Kind is "input" or "catalog"
	Kind string
}

func (e *FileNotFoundError) Error() string {
	kind := e.Kind
	if kind == "" {
		kind = "file"
	}
	return fmt.Sprintf("%s not found: %s", kind, e.Path)
}

// MissingColumnError reports a required field that none of its accepted
// column names resolved.
type MissingColumnError struct {
	Field     string
	Aliases   []string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %s (accepted: %s)", e.Field, strings.Join(e.Aliases, ", "))
}

// UnsupportedFormatError reports an input file extension no reader handles.
type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported file format: %s has no extension", e.Path)
	}
	return fmt.Sprintf("unsupported file format %q: %s", e.Extension, e.Path)
}

// EmptyDatasetError reports that normalization left no rows to report on.
type EmptyDatasetError struct {
	Source string
}

func (e *EmptyDatasetError) Error() string {
	if e.Source == "" {
		return "dataset is empty: no sales rows to analyse"
	}
	return fmt.Sprintf("dataset is empty: no sales rows to analyse in %s", e.Source)
}

// InvalidValueError reports a cell that cannot become a valid SalesRecord
// field. Row is 1-based over data rows.
type InvalidValueError struct {
	Row    int
	Field  string
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("row %d: invalid %s %q: %s", e.Row, e.Field, e.Value, e.Reason)
}

// RenderError wraps a renderer failure for one output format.
type RenderError struct {
	Format string
	Cause  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s report: %v", e.Format, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Kind returns a short stable label for err, used for metrics and exit logs.
func Kind(err error) string {
	var (
		notFound    *FileNotFoundError
		missing     *MissingColumnError
		unsupported *UnsupportedFormatError
		empty       *EmptyDatasetError
		invalid     *InvalidValueError
		renderErr   *RenderError
		appErr      *AppError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &notFound):
		return "file_not_found"
	case errors.As(err, &missing):
		return "missing_column"
	case errors.As(err, &unsupported):
		return "unsupported_format"
	case errors.As(err, &empty):
		return "empty_dataset"
	case errors.As(err, &invalid):
		return "invalid_value"
	case errors.As(err, &renderErr):
		return "render"
	case errors.As(err, &appErr):
		return strings.ToLower(string(appErr.Type))
	default:
		return "internal"
	}
}
