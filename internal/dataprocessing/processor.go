package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"salespulse/internal/catalog"
	apperrors "salespulse/internal/errors"
	"salespulse/internal/infrastructure"
	"salespulse/pkg/contracts/domain"
)

// Processor is the single analysis entry point shared by the CLI and the
// HTTP server: rows in, SalesAnalysis out.
type Processor struct {
	catalog    *catalog.Catalog
	normalizer *Normalizer
	topN       int
	logger     *slog.Logger
	metrics    *infrastructure.BusinessMetrics
	tracer     trace.Tracer
	now        func() time.Time
}

// Option configures a Processor
type Option func(*Processor)

// WithTopN sets the length of the performer lists
func WithTopN(n int) Option {
	return func(p *Processor) { p.topN = n }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

// WithMetrics records analysis metrics
func WithMetrics(m *infrastructure.BusinessMetrics) Option {
	return func(p *Processor) { p.metrics = m }
}

// WithClock overrides the time source used for GeneratedAt
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// NewProcessor creates a processor over cat. A nil catalog classifies
// every product as Other.
func NewProcessor(cat *catalog.Catalog, opts ...Option) *Processor {
	if cat == nil {
		cat = catalog.Empty()
	}
	p := &Processor{
		catalog:    cat,
		normalizer: NewNormalizer(),
		logger:     slog.Default(),
		tracer:     otel.Tracer(infrastructure.ServiceName),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(slog.String("component", "processor"))
	return p
}

// Catalog returns the catalog used for classification
func (p *Processor) Catalog() *catalog.Catalog {
	return p.catalog
}

// Analyze normalizes, classifies and aggregates rows. source names the
// input in the result and in logs. No rows left after normalization is an
// EmptyDatasetError.
func (p *Processor) Analyze(ctx context.Context, source string, rows []domain.RawRow) (*domain.SalesAnalysis, error) {
	ctx, span := p.tracer.Start(ctx, "processor.analyze",
		trace.WithAttributes(
			attribute.String("source", source),
			attribute.Int("rows", len(rows)),
		))
	defer span.End()

	start := time.Now()
	kind := sourceKind(source)

	analysis, err := p.analyze(ctx, source, rows)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		infrastructure.RecordAnalysisMetrics(ctx, p.metrics, kind, 0, 0, time.Since(start), apperrors.Kind(err))
		p.logger.WarnContext(ctx, "Analysis failed",
			slog.String("source", source),
			slog.String("kind", apperrors.Kind(err)),
			slog.String("error", err.Error()))
		return nil, err
	}

	infrastructure.RecordAnalysisMetrics(ctx, p.metrics, kind, analysis.Totals.Records, len(analysis.Unmatched), time.Since(start), "")
	span.SetAttributes(
		attribute.Int("records", analysis.Totals.Records),
		attribute.Int("products", analysis.Totals.DistinctProducts),
		attribute.Int("unmatched", len(analysis.Unmatched)),
	)
	p.logger.InfoContext(ctx, "Analysis complete",
		slog.String("source", source),
		slog.Int("records", analysis.Totals.Records),
		slog.Int("products", analysis.Totals.DistinctProducts),
		slog.Int("companies", analysis.Totals.Companies),
		slog.Int("unmatched", len(analysis.Unmatched)),
		slog.Float64("net_revenue", analysis.Totals.NetRevenue),
		slog.Duration("duration", time.Since(start)))

	return analysis, nil
}

func (p *Processor) analyze(ctx context.Context, source string, rows []domain.RawRow) (*domain.SalesAnalysis, error) {
	records, err := p.normalizer.Normalize(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &apperrors.EmptyDatasetError{Source: source}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	classified := p.catalog.ClassifyAll(records)
	analysis := Aggregate(classified, AggregateOptions{
		TopN:      p.topN,
		Suggester: p.catalog,
	})
	analysis.ID = uuid.NewString()
	analysis.Source = source
	analysis.GeneratedAt = p.now()
	return analysis, nil
}

// AnalyzeFile reads path and analyses its rows
func (p *Processor) AnalyzeFile(ctx context.Context, path string) (*domain.SalesAnalysis, error) {
	rows, err := ReadFile(ctx, path)
	if err != nil {
		kind := apperrors.Kind(err)
		infrastructure.RecordAnalysisMetrics(ctx, p.metrics, sourceKind(path), 0, 0, 0, kind)
		return nil, err
	}
	p.logger.DebugContext(ctx, "Input read", slog.String("path", path), slog.Int("rows", len(rows)))
	return p.Analyze(ctx, filepath.Base(path), rows)
}

// sourceKind is the low-cardinality metric label for a source
func sourceKind(source string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(source)), ".")
	switch ext {
	case "xls", "xlsx", "csv":
		return ext
	default:
		return "json"
	}
}
