package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salespulse/pkg/contracts/domain"
)

func TestWorkbookWriter_Encode(t *testing.T) {
	data, err := NewWorkbookWriter(WorkbookOptions{Title: "Pesticides", ChartLimit: 1}, nil).Encode(sampleAnalysis())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		SheetCompanies, SheetProducts, SheetGST, SheetTopRevenue,
		SheetTopQuantity, SheetTopPerformance, SheetUnmatched,
	}, f.GetSheetList())

	header, err := f.GetCellValue(SheetCompanies, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Company", header)

	company, err := f.GetCellValue(SheetCompanies, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Adama", company)

	revenue, err := f.GetCellValue(SheetCompanies, "F2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "4440", revenue)

	rate, err := f.GetCellValue(SheetGST, "A2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "18", rate)

	suggestion, err := f.GetCellValue(SheetUnmatched, "E2")
	require.NoError(t, err)
	assert.Equal(t, "Adama", suggestion)

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "Pesticides", props.Title)
	assert.Equal(t, "SALANAL_PS.XLS", props.Subject)
}

func TestWorkbookWriter_EmptyAnalysis(t *testing.T) {
	data, err := NewWorkbookWriter(WorkbookOptions{}, nil).Encode(&domain.SalesAnalysis{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetProducts)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
