package services

import (
	"context"
	"log/slog"
	"path/filepath"

	apperrors "salespulse/internal/errors"
	"salespulse/internal/files"
	"salespulse/pkg/contracts/domain"
)

// BatchResult is the outcome of one input file
type BatchResult struct {
	Input     files.FileInfo
	OutputDir string
	Analysis  *domain.SalesAnalysis
	Files     []string
	Err       error
}

// BatchService analyses several sales files, each into its own directory
type BatchService struct {
	analyzer Analyzer
	output   *OutputService
	logger   *slog.Logger
}

// NewBatchService creates a batch service
func NewBatchService(analyzer Analyzer, output *OutputService, logger *slog.Logger) *BatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchService{
		analyzer: analyzer,
		output:   output,
		logger:   logger.With(slog.String("service", "batch")),
	}
}

// Run analyses inputs one after another into outputRoot/<label>. A failed
// input is recorded in its result and the batch moves on; only
// cancellation stops it early.
func (s *BatchService) Run(ctx context.Context, inputs []files.FileInfo, outputRoot string, formats []domain.ReportFormat) ([]BatchResult, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	results := make([]BatchResult, 0, len(inputs))
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := BatchResult{Input: input, OutputDir: filepath.Join(outputRoot, input.Label)}
		result.Analysis, result.Err = s.analyzer.AnalyzeFile(ctx, input.Path)
		if result.Err == nil {
			result.Files, result.Err = s.output.WriteReports(ctx, result.Analysis, result.OutputDir, formats)
		}

		if result.Err != nil {
			s.logger.ErrorContext(ctx, "Batch input failed",
				slog.String("input", input.Name),
				slog.String("kind", apperrors.Kind(result.Err)),
				slog.String("error", result.Err.Error()))
		} else {
			s.logger.InfoContext(ctx, "Batch input complete",
				slog.String("input", input.Name),
				slog.String("output_dir", result.OutputDir),
				slog.Int("files", len(result.Files)))
		}
		results = append(results, result)
	}
	return results, nil
}

// Failed counts results with an error
func Failed(results []BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
