package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "salespulse/internal/errors"
	"salespulse/internal/files"
)

// FileValidator checks the files and directories a run is pointed at
// before any of them is parsed.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger.With(slog.String("component", "validation")),
	}
}

// ValidateDirectory checks that dir exists and is a directory. kind names
// the directory in errors ("input", "catalog").
func (v *FileValidator) ValidateDirectory(dir, kind string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		v.logger.Error("Directory does not exist",
			slog.String("directory", dir),
			slog.String("kind", kind))
		return &apperrors.FileNotFoundError{Path: dir, Kind: kind}
	}
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("stat %s directory", kind), err)
	}
	if !info.IsDir() {
		v.logger.Error("Path is not a directory",
			slog.String("path", dir),
			slog.String("kind", kind))
		return apperrors.NewAppError(apperrors.ErrTypeValidation, fmt.Sprintf("%s is not a directory", dir), nil)
	}
	return nil
}

// ValidateOutputDirectory creates dir if needed and checks it is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("create output directory", err)
	}

	probe, err := os.CreateTemp(dir, ".write_test*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("write output directory", err)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}

// ValidateSalesFile checks that path is a readable .xls, .xlsx or .csv file
// with content. Spreadsheet lock files (~$name) are rejected.
func (v *FileValidator) ValidateSalesFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist", slog.String("file", path))
		return &apperrors.FileNotFoundError{Path: path, Kind: "input"}
	}
	if err != nil {
		return apperrors.NewStorageError("stat input file", err)
	}
	if info.IsDir() {
		return apperrors.NewAppError(apperrors.ErrTypeValidation, fmt.Sprintf("%s is a directory, not a file", path), nil)
	}

	base := filepath.Base(path)
	if !files.IsSalesFile(base) {
		v.logger.Error("Unsupported input file",
			slog.String("file", path),
			slog.String("extension", filepath.Ext(base)))
		return &apperrors.UnsupportedFormatError{Path: path, Extension: strings.ToLower(filepath.Ext(base))}
	}
	if strings.HasPrefix(base, "~$") {
		v.logger.Warn("Rejecting spreadsheet lock file", slog.String("file", path))
		return apperrors.NewAppError(apperrors.ErrTypeValidation, fmt.Sprintf("%s is a spreadsheet lock file", base), nil)
	}
	if info.Size() == 0 {
		return &apperrors.EmptyDatasetError{Source: base}
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("open input file", err)
	}
	file.Close()

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}
