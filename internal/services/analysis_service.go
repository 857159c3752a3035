package services

import (
	"context"
	"log/slog"

	"salespulse/pkg/contracts/domain"
)

// Analyzer is the analysis core
type Analyzer interface {
	Analyze(ctx context.Context, source string, rows []domain.RawRow) (*domain.SalesAnalysis, error)
	AnalyzeFile(ctx context.Context, path string) (*domain.SalesAnalysis, error)
}

// ReportRenderer renders an analysis in one format
type ReportRenderer interface {
	ParseFormat(name string) (domain.ReportFormat, error)
	Render(ctx context.Context, format domain.ReportFormat, a *domain.SalesAnalysis) (*domain.RenderedReport, error)
}

// ReportRequest is one analyse-and-render call
type ReportRequest struct {
	Source string
	Rows   []domain.RawRow
	Format domain.ReportFormat
}

// AnalysisService analyses rows and renders the result
type AnalysisService struct {
	analyzer Analyzer
	reports  ReportRenderer
	logger   *slog.Logger
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(analyzer Analyzer, reports ReportRenderer, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		analyzer: analyzer,
		reports:  reports,
		logger:   logger.With(slog.String("service", "analysis")),
	}
}

// ParseFormat resolves a requested format name; empty selects PDF
func (s *AnalysisService) ParseFormat(name string) (domain.ReportFormat, error) {
	return s.reports.ParseFormat(name)
}

// Analyze runs the analysis core over rows
func (s *AnalysisService) Analyze(ctx context.Context, source string, rows []domain.RawRow) (*domain.SalesAnalysis, error) {
	return s.analyzer.Analyze(ctx, source, rows)
}

// GenerateReport analyses req.Rows and renders them in req.Format. Nothing
// is rendered when the analysis fails.
func (s *AnalysisService) GenerateReport(ctx context.Context, req ReportRequest) (*domain.RenderedReport, *domain.SalesAnalysis, error) {
	analysis, err := s.analyzer.Analyze(ctx, req.Source, req.Rows)
	if err != nil {
		return nil, nil, err
	}

	doc, err := s.reports.Render(ctx, req.Format, analysis)
	if err != nil {
		return nil, analysis, err
	}

	s.logger.InfoContext(ctx, "Report generated",
		slog.String("analysis_id", analysis.ID),
		slog.String("format", string(doc.Format)),
		slog.String("file_name", doc.FileName),
		slog.Int("size_bytes", len(doc.Data)))
	return doc, analysis, nil
}
