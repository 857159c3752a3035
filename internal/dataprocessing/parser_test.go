package dataprocessing

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// writeWorkbook saves rows to the first sheet starting at startRow
func writeWorkbook(t *testing.T, path string, startRow int, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, startRow+i)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestReadFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	writeWorkbook(t, path, 3, [][]interface{}{
		{"HSNCODE", "ITNAME", "QTY", "NAMT", "PER"},
		{"38089199", "Agas 250gms", 1, 600, 18},
		{"38089199", "Alecto 50 Ml", 3, 4440.5, 18},
	})

	rows, err := ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Agas 250gms", rows[0]["ITNAME"])
	assert.Equal(t, "600", rows[0]["NAMT"])
	assert.Equal(t, "4440.5", rows[1]["NAMT"])
	assert.Equal(t, "18", rows[1]["PER"])
}

func TestReadFile_CSVWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	content := "\ufeffITNAME,QTY,TAXBLEAMT,GST\n\"Agas, 250gms\",1,\"1,600\",18%\nShort,2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rows, err := ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Agas, 250gms", rows[0]["ITNAME"])
	assert.Equal(t, "1,600", rows[0]["TAXBLEAMT"])
	assert.Equal(t, "", rows[1]["GST"], "short rows read as blank cells")
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(context.Background(), filepath.Join(dir, "missing.xlsx"))
	var notFound *apperrors.FileNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "input", notFound.Kind)

	ods := filepath.Join(dir, "sales.ods")
	require.NoError(t, os.WriteFile(ods, []byte("x"), 0644))
	_, err = ReadFile(context.Background(), ods)
	var unsupported *apperrors.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".ods", unsupported.Extension)

	broken := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(broken, []byte("not a zip"), 0644))
	_, err = ReadFile(context.Background(), broken)
	require.Error(t, err)
	assert.Equal(t, "parsing", apperrors.Kind(err))
}

func TestGridToRows(t *testing.T) {
	grid := [][]string{
		{"", " "},
		{" ITNAME ", "QTY", "", "QTY"},
		{"Agas", "1", "ignored", "2"},
		{},
	}

	rows := GridToRows(grid)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.RawRow{"ITNAME": "Agas", "QTY": "1"}, rows[0])
	assert.Equal(t, domain.RawRow{"ITNAME": "", "QTY": ""}, rows[1])

	assert.Nil(t, GridToRows(nil))
	assert.Nil(t, GridToRows([][]string{{"", ""}}))
}

func TestReadCSV(t *testing.T) {
	grid, err := ReadCSV(strings.NewReader("a,b\n1,2,3\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2", "3"}}, grid)
}

func TestDecodeJSONRows(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"array", `[{"ITNAME":"Agas 250gms","QTY":1,"TAXBLEAMT":600,"GST":18}]`},
		{"string", `"[{\"ITNAME\":\"Agas 250gms\",\"QTY\":1,\"TAXBLEAMT\":600,\"GST\":18}]"`},
		{"string with equals prefix", `"=[{\"ITNAME\":\"Agas 250gms\",\"QTY\":1,\"TAXBLEAMT\":600,\"GST\":18}]"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := DecodeJSONRows(json.RawMessage(tt.data))
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "Agas 250gms", rows[0]["ITNAME"])
			assert.Equal(t, json.Number("600"), rows[0]["TAXBLEAMT"])
		})
	}
}

func TestDecodeJSONRows_Malformed(t *testing.T) {
	for _, data := range []string{``, `null`, `{"ITNAME":"x"}`, `"not json"`, `[1,2]`} {
		t.Run(data, func(t *testing.T) {
			_, err := DecodeJSONRows(json.RawMessage(data))
			require.Error(t, err)
			assert.Equal(t, "parsing", apperrors.Kind(err))
		})
	}
}
