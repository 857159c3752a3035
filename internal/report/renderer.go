package report

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"salespulse/internal/config"
	apperrors "salespulse/internal/errors"
	"salespulse/internal/infrastructure"
	"salespulse/pkg/contracts/domain"
)

// Renderer turns an analysis into one document format
type Renderer interface {
	Format() domain.ReportFormat
	Render(ctx context.Context, a *domain.SalesAnalysis) ([]byte, error)
}

// Options configure the default renderer set
type Options struct {
	Title      string
	ChartLimit int
	CSVWithBOM bool
	// Printer converts HTML to PDF. Nil uses headless Chrome.
	Printer       PDFPrinter
	ChromePath    string
	RenderTimeout time.Duration
}

// OptionsFromConfig maps the report section of the configuration
func OptionsFromConfig(cfg config.ReportConfig) Options {
	return Options{
		Title:         cfg.Title,
		ChartLimit:    cfg.ChartLimit,
		CSVWithBOM:    cfg.CSVWithBOM,
		ChromePath:    cfg.ChromePath,
		RenderTimeout: cfg.RenderTimeout,
	}
}

// Registry dispatches rendering by format
type Registry struct {
	renderers map[domain.ReportFormat]Renderer
	logger    *slog.Logger
	metrics   *infrastructure.BusinessMetrics
	tracer    trace.Tracer
}

// NewRegistry creates an empty registry
func NewRegistry(logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		renderers: make(map[domain.ReportFormat]Renderer),
		logger:    logger.With(slog.String("component", "report_registry")),
		metrics:   metrics,
		tracer:    otel.Tracer("salespulse/report"),
	}
}

// NewDefaultRegistry registers every built-in format
func NewDefaultRegistry(opts Options, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *Registry {
	if opts.Title == "" {
		opts.Title = config.DefaultReportTitle
	}
	if opts.ChartLimit <= 0 {
		opts.ChartLimit = config.DefaultChartLimit
	}

	reg := NewRegistry(logger, metrics)
	html := NewHTMLRenderer(opts.Title, opts.ChartLimit)

	printer := opts.Printer
	if printer == nil {
		printer = NewChromePrinter(opts.ChromePath, opts.RenderTimeout, reg.logger)
	}

	reg.Register(html)
	reg.Register(NewPDFRenderer(html, printer))
	reg.Register(NewExcelRenderer(opts.Title, opts.ChartLimit, reg.logger))
	reg.Register(NewCSVRenderer(opts.CSVWithBOM, reg.logger))
	reg.Register(NewJSONRenderer())
	return reg
}

// Register adds or replaces the renderer for its format
func (r *Registry) Register(renderer Renderer) {
	r.renderers[renderer.Format()] = renderer
}

// Formats lists the registered formats in name order
func (r *Registry) Formats() []domain.ReportFormat {
	formats := make([]domain.ReportFormat, 0, len(r.renderers))
	for f := range r.renderers {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Supports reports whether format has a renderer
func (r *Registry) Supports(format domain.ReportFormat) bool {
	_, ok := r.renderers[format]
	return ok
}

// ParseFormat resolves a user supplied format name. Empty means PDF.
func (r *Registry) ParseFormat(name string) (domain.ReportFormat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return domain.ReportFormatPDF, nil
	}
	format := domain.ReportFormat(name)
	if !r.Supports(format) {
		return "", apperrors.ErrUnsupportedReportFormat(name)
	}
	return format, nil
}

// Render produces the document for format. Renderer failures come back
// as *errors.RenderError.
func (r *Registry) Render(ctx context.Context, format domain.ReportFormat, a *domain.SalesAnalysis) (*domain.RenderedReport, error) {
	renderer, ok := r.renderers[format]
	if !ok {
		return nil, apperrors.ErrUnsupportedReportFormat(string(format))
	}

	ctx, span := r.tracer.Start(ctx, "report.render",
		trace.WithAttributes(
			attribute.String("report.format", string(format)),
			attribute.String("report.source", a.Source),
		))
	defer span.End()

	start := time.Now()
	data, err := renderer.Render(ctx, a)
	duration := time.Since(start)
	if err != nil {
		renderErr := &apperrors.RenderError{Format: string(format), Cause: err}
		infrastructure.RecordError(ctx, renderErr)
		r.logger.ErrorContext(ctx, "Report rendering failed",
			slog.String("format", string(format)),
			slog.String("source", a.Source),
			slog.String("error", err.Error()))
		return nil, renderErr
	}

	infrastructure.RecordReportMetrics(ctx, r.metrics, string(format), len(data), duration)
	span.SetAttributes(attribute.Int("report.size_bytes", len(data)))

	r.logger.InfoContext(ctx, "Report rendered",
		slog.String("format", string(format)),
		slog.String("source", a.Source),
		slog.Int("size_bytes", len(data)),
		slog.Duration("duration", duration))

	return &domain.RenderedReport{
		Format:   format,
		FileName: FileName(format, a.GeneratedAt),
		Data:     data,
	}, nil
}

// FileName names the document of format generated at t. The workbook keeps
// its fixed summary name.
func FileName(format domain.ReportFormat, t time.Time) string {
	if format == domain.ReportFormatExcel {
		return config.SummaryWorkbookName
	}
	return config.ReportFileName(t, string(format))
}
