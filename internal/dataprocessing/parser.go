package dataprocessing

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	apperrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

const utf8BOM = "\ufeff"

// ReadFile loads the sales rows of an .xls, .xlsx or .csv file. The first
// sheet is used and its first non-empty row is the header.
func ReadFile(ctx context.Context, path string) ([]domain.RawRow, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &apperrors.FileNotFoundError{Path: path, Kind: "input"}
		}
		return nil, apperrors.NewStorageError("stat input file", err)
	}

	var (
		grid [][]string
		err  error
	)
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		grid, err = readXLSX(path)
	case ".xls":
		grid, err = readXLS(path)
	case ".csv":
		grid, err = readCSVFile(path)
	default:
		return nil, &apperrors.UnsupportedFormatError{Path: path, Extension: ext}
	}
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("read %s", filepath.Base(path)), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return GridToRows(grid), nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return f.GetRows(sheets[0])
}

func readXLS(path string) (grid [][]string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// the BIFF decoder panics on some malformed workbooks
	defer func() {
		if r := recover(); r != nil {
			grid, err = nil, fmt.Errorf("corrupt xls workbook: %v", r)
		}
	}()

	wb, err := xls.OpenReader(file, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, nil
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, nil
	}

	grid = make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		// LastCol is one past the last used column
		cells := make([]string, 0, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			cells = append(cells, row.Col(j))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// xlsRow returns nil for rows the sheet does not store; WorkSheet.Row
// dereferences them without a check.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

func readCSVFile(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses CSV content, dropping a leading UTF-8 byte order mark
func ReadCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(len(utf8BOM)); err == nil && string(bom) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}

// GridToRows turns a sheet into keyed rows. The first row with any
// non-blank cell is the header; columns without a header are dropped and
// short rows read as blank cells.
func GridToRows(grid [][]string) []domain.RawRow {
	headerIdx := -1
	for i, row := range grid {
		if !isBlankCells(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	header := make([]string, len(grid[headerIdx]))
	for i, h := range grid[headerIdx] {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]domain.RawRow, 0, len(grid)-headerIdx-1)
	for _, cells := range grid[headerIdx+1:] {
		row := make(domain.RawRow, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if _, dup := row[name]; dup {
				continue
			}
			value := ""
			if i < len(cells) {
				value = cells[i]
			}
			row[name] = value
		}
		rows = append(rows, row)
	}
	return rows
}

func isBlankCells(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// DecodeJSONRows decodes the "data" member of an analyze request. It is
// either an array of objects or a string holding one, optionally prefixed
// with '='. Numbers are kept as json.Number.
func DecodeJSONRows(data json.RawMessage) ([]domain.RawRow, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, apperrors.NewParsingError("data is missing", nil)
	}

	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return nil, apperrors.NewParsingError("data is not a valid JSON string", err)
		}
		encoded = strings.TrimSpace(encoded)
		encoded = strings.TrimSpace(strings.TrimPrefix(encoded, "="))
		trimmed = []byte(encoded)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var rows []domain.RawRow
	if err := dec.Decode(&rows); err != nil {
		return nil, apperrors.NewParsingError("data must be an array of row objects", err)
	}
	return rows, nil
}
