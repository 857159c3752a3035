package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	bomPrefix bool
	logger    *slog.Logger
}

// NewCSVWriter creates a new CSV writer. bomPrefix adds a UTF-8 BOM so
// Excel detects the encoding.
func NewCSVWriter(bomPrefix bool, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{bomPrefix: bomPrefix, logger: logger.With(slog.String("component", "csv_writer"))}
}

// WriteTable writes t with its header row
func (w *CSVWriter) WriteTable(out io.Writer, t Table) error {
	if w.bomPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	record := make([]string, len(t.Headers))
	for i, row := range t.Rows {
		for j := range record {
			record[j] = ""
			if j < len(row) {
				record[j] = formatCell(row[j])
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// EncodeTable returns t as CSV bytes
func (w *CSVWriter) EncodeTable(t Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.WriteTable(&buf, t); err != nil {
		return nil, err
	}
	w.logger.Debug("Encoded CSV table",
		slog.String("table", t.Name),
		slog.Int("record_count", len(t.Rows)),
		slog.Int("size_bytes", buf.Len()))
	return buf.Bytes(), nil
}
