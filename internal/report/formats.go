package report

import (
	"context"
	"encoding/json"
	"log/slog"

	"salespulse/internal/exporter"
	"salespulse/pkg/contracts/domain"
)

// ExcelRenderer writes the multi-sheet summary workbook
type ExcelRenderer struct {
	writer *exporter.WorkbookWriter
}

// NewExcelRenderer creates an Excel renderer
func NewExcelRenderer(title string, chartLimit int, logger *slog.Logger) *ExcelRenderer {
	return &ExcelRenderer{
		writer: exporter.NewWorkbookWriter(exporter.WorkbookOptions{Title: title, ChartLimit: chartLimit}, logger),
	}
}

func (r *ExcelRenderer) Format() domain.ReportFormat { return domain.ReportFormatExcel }

func (r *ExcelRenderer) Render(ctx context.Context, a *domain.SalesAnalysis) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.writer.Encode(a)
}

// CSVRenderer writes the product analysis table
type CSVRenderer struct {
	writer *exporter.CSVWriter
}

// NewCSVRenderer creates a CSV renderer
func NewCSVRenderer(bomPrefix bool, logger *slog.Logger) *CSVRenderer {
	return &CSVRenderer{writer: exporter.NewCSVWriter(bomPrefix, logger)}
}

func (r *CSVRenderer) Format() domain.ReportFormat { return domain.ReportFormatCSV }

func (r *CSVRenderer) Render(ctx context.Context, a *domain.SalesAnalysis) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.writer.EncodeTable(exporter.ProductTable(exporter.SheetProducts, a.Products, -1))
}

// JSONRenderer returns the analysis as indented JSON
type JSONRenderer struct{}

// NewJSONRenderer creates a JSON renderer
func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Format() domain.ReportFormat { return domain.ReportFormatJSON }

func (r *JSONRenderer) Render(ctx context.Context, a *domain.SalesAnalysis) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(a, "", "  ")
}
