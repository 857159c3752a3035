package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

func TestAnalysisService_GenerateReport(t *testing.T) {
	ctx := context.Background()
	rows := []domain.RawRow{{"ITNAME": "Alecto 50 Ml", "QTY": 3, "TAXBLEAMT": 4440, "GST": 18}}
	analysis := sampleAnalysis("request")
	doc := &domain.RenderedReport{Format: domain.ReportFormatPDF, FileName: "Sales_Analysis_20250301_103000.pdf", Data: []byte("%PDF")}

	analyzer := new(MockAnalyzer)
	analyzer.On("Analyze", ctx, "request", rows).Return(analysis, nil)
	reports := new(MockReportRenderer)
	reports.On("Render", ctx, domain.ReportFormatPDF, analysis).Return(doc, nil)

	svc := NewAnalysisService(analyzer, reports, nil)
	got, gotAnalysis, err := svc.GenerateReport(ctx, ReportRequest{Source: "request", Rows: rows, Format: domain.ReportFormatPDF})

	require.NoError(t, err)
	assert.Same(t, doc, got)
	assert.Same(t, analysis, gotAnalysis)
	analyzer.AssertExpectations(t)
	reports.AssertExpectations(t)
}

func TestAnalysisService_GenerateReportEmptyDataset(t *testing.T) {
	ctx := context.Background()
	emptyErr := &apperrors.EmptyDatasetError{Source: "request"}

	analyzer := new(MockAnalyzer)
	analyzer.On("Analyze", ctx, "request", mock.Anything).Return(nil, emptyErr)
	reports := new(MockReportRenderer)

	svc := NewAnalysisService(analyzer, reports, nil)
	doc, _, err := svc.GenerateReport(ctx, ReportRequest{Source: "request", Format: domain.ReportFormatPDF})

	assert.Nil(t, doc)
	assert.ErrorAs(t, err, &emptyErr)
	reports.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalysisService_GenerateReportRenderFailure(t *testing.T) {
	ctx := context.Background()
	analysis := sampleAnalysis("request")
	renderErr := &apperrors.RenderError{Format: "pdf", Cause: errors.New("no chrome")}

	analyzer := new(MockAnalyzer)
	analyzer.On("Analyze", ctx, "request", mock.Anything).Return(analysis, nil)
	reports := new(MockReportRenderer)
	reports.On("Render", ctx, domain.ReportFormatPDF, analysis).Return(nil, renderErr)

	svc := NewAnalysisService(analyzer, reports, nil)
	doc, gotAnalysis, err := svc.GenerateReport(ctx, ReportRequest{Source: "request", Format: domain.ReportFormatPDF})

	assert.Nil(t, doc)
	assert.Same(t, analysis, gotAnalysis)
	assert.ErrorIs(t, err, renderErr)
}

func TestAnalysisService_ParseFormat(t *testing.T) {
	reports := new(MockReportRenderer)
	reports.On("ParseFormat", "html").Return(domain.ReportFormatHTML, nil)

	format, err := NewAnalysisService(new(MockAnalyzer), reports, nil).ParseFormat("html")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportFormatHTML, format)
}
