package infrastructure

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics holds the instruments of the HTTP layer, the analysis
// pipeline and the renderers.
type BusinessMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	AnalysisDuration  metric.Float64Histogram
	RecordsProcessed  metric.Int64Counter
	UnmatchedProducts metric.Int64Counter
	AnalysisErrors    metric.Int64Counter

	ReportsGenerated metric.Int64Counter
	ReportBytes      metric.Int64Counter
	RenderDuration   metric.Float64Histogram
}

// CreateBusinessMetrics registers every instrument on meter
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	m := &BusinessMetrics{}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
		unit string
	}{
		{&m.HTTPRequestsTotal, "http_requests_total", "HTTP requests by method, route and status", ""},
		{&m.RecordsProcessed, "sales_records_processed_total", "Sales records analysed", ""},
		{&m.UnmatchedProducts, "sales_unmatched_products_total", "Distinct products that matched no catalog company", ""},
		{&m.AnalysisErrors, "sales_analysis_errors_total", "Failed analyses by error kind", ""},
		{&m.ReportsGenerated, "sales_reports_generated_total", "Rendered reports by format", ""},
		{&m.ReportBytes, "sales_report_bytes_total", "Bytes of rendered reports", "By"},
	}
	for _, c := range counters {
		opts := []metric.Int64CounterOption{metric.WithDescription(c.desc)}
		if c.unit != "" {
			opts = append(opts, metric.WithUnit(c.unit))
		}
		counter, err := meter.Int64Counter(c.name, opts...)
		if err != nil {
			return nil, fmt.Errorf("counter %s: %w", c.name, err)
		}
		*c.dst = counter
	}

	histograms := []struct {
		dst  *metric.Float64Histogram
		name string
		desc string
	}{
		{&m.HTTPRequestDuration, "http_request_duration_seconds", "HTTP request duration"},
		{&m.AnalysisDuration, "sales_analysis_duration_seconds", "Time spent normalizing, classifying and aggregating one dataset"},
		{&m.RenderDuration, "sales_report_render_duration_seconds", "Report rendering duration"},
	}
	for _, h := range histograms {
		hist, err := meter.Float64Histogram(h.name, metric.WithDescription(h.desc), metric.WithUnit("s"))
		if err != nil {
			return nil, fmt.Errorf("histogram %s: %w", h.name, err)
		}
		*h.dst = hist
	}

	var err error
	m.HTTPActiveRequests, err = meter.Int64UpDownCounter("http_active_requests",
		metric.WithDescription("HTTP requests in flight"))
	if err != nil {
		return nil, fmt.Errorf("up-down counter http_active_requests: %w", err)
	}

	return m, nil
}

// RecordAnalysisMetrics records the outcome of one analysis. source is
// "cli" or "http"; errKind is empty on success. Nil metrics is a no-op.
func RecordAnalysisMetrics(ctx context.Context, metrics *BusinessMetrics, source string, records, unmatched int, duration time.Duration, errKind string) {
	if metrics == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("source", source))
	metrics.AnalysisDuration.Record(ctx, duration.Seconds(), attrs)

	if errKind != "" {
		metrics.AnalysisErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("source", source),
			attribute.String("kind", errKind),
		))
		return
	}
	metrics.RecordsProcessed.Add(ctx, int64(records), attrs)
	metrics.UnmatchedProducts.Add(ctx, int64(unmatched), attrs)
}

// RecordReportMetrics records one rendered report. Nil metrics is a no-op.
func RecordReportMetrics(ctx context.Context, metrics *BusinessMetrics, format string, size int, duration time.Duration) {
	if metrics == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("format", format))
	metrics.ReportsGenerated.Add(ctx, 1, attrs)
	metrics.ReportBytes.Add(ctx, int64(size), attrs)
	metrics.RenderDuration.Record(ctx, duration.Seconds(), attrs)
}
