package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"salespulse/internal/files"
	"salespulse/pkg/contracts/domain"
)

func TestOutputService_WriteReports(t *testing.T) {
	dir := t.TempDir()
	analysis := sampleAnalysis("SALANAL_PS.XLS")

	reports := new(MockReportRenderer)
	reports.On("Render", mock.Anything, domain.ReportFormatPDF, analysis).
		Return(&domain.RenderedReport{Format: domain.ReportFormatPDF, FileName: "Sales_Analysis_20250301_103000.pdf", Data: []byte("%PDF-1.7")}, nil)
	reports.On("Render", mock.Anything, domain.ReportFormatExcel, analysis).
		Return(&domain.RenderedReport{Format: domain.ReportFormatExcel, FileName: "Analysis_Summary.xlsx", Data: []byte("PK")}, nil)

	svc := NewOutputService(reports, files.NewManager(dir, nil), false, nil)
	paths, err := svc.WriteReports(context.Background(), analysis, "pesticides",
		[]domain.ReportFormat{domain.ReportFormatPDF, domain.ReportFormatExcel, domain.ReportFormatCSV})
	require.NoError(t, err)

	assert.Len(t, paths, 9, "pdf, xlsx and seven csv tables")
	data, err := os.ReadFile(filepath.Join(dir, "pesticides", "Sales_Analysis_20250301_103000.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))

	products, err := os.ReadFile(filepath.Join(dir, "pesticides", "Product_Analysis.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(products), "Alecto 50 Ml,Adama")
	assert.FileExists(t, filepath.Join(dir, "pesticides", "Company_Analysis.csv"))

	reports.AssertNotCalled(t, "Render", mock.Anything, domain.ReportFormatCSV, mock.Anything)
}

func TestOutputService_WriteReportsFailure(t *testing.T) {
	analysis := sampleAnalysis("x.csv")
	boom := errors.New("render failed")

	reports := new(MockReportRenderer)
	reports.On("Render", mock.Anything, domain.ReportFormatPDF, analysis).Return(nil, boom)

	svc := NewOutputService(reports, files.NewManager(t.TempDir(), nil), false, nil)
	paths, err := svc.WriteReports(context.Background(), analysis, "out", []domain.ReportFormat{domain.ReportFormatPDF})

	assert.Nil(t, paths)
	assert.ErrorIs(t, err, boom)
}

func TestOutputService_NoFormats(t *testing.T) {
	svc := NewOutputService(new(MockReportRenderer), files.NewManager(t.TempDir(), nil), false, nil)
	_, err := svc.WriteReports(context.Background(), sampleAnalysis("x"), "out", nil)
	assert.ErrorIs(t, err, ErrNoFormats)
}
