package exporter

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"salespulse/pkg/contracts/domain"
)

// WorkbookOptions tune the summary workbook
type WorkbookOptions struct {
	Title string
	// ChartLimit caps the rows plotted per chart
	ChartLimit int
}

// WorkbookWriter builds Analysis_Summary.xlsx
type WorkbookWriter struct {
	opts   WorkbookOptions
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer
func NewWorkbookWriter(opts WorkbookOptions, logger *slog.Logger) *WorkbookWriter {
	if opts.ChartLimit <= 0 {
		opts.ChartLimit = 15
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{opts: opts, logger: logger.With(slog.String("component", "xlsx_writer"))}
}

// Encode returns the workbook bytes for a
func (w *WorkbookWriter) Encode(a *domain.SalesAnalysis) ([]byte, error) {
	f, err := w.Build(a)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialise workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Build creates one sheet per summary table. The caller closes the file.
func (w *WorkbookWriter) Build(a *domain.SalesAnalysis) (*excelize.File, error) {
	f := excelize.NewFile()

	styles, err := newSheetStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	defaultSheet := f.GetSheetName(0)
	for i, t := range Tables(a) {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, t.Name); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			f.Close()
			return nil, err
		}
		if err := w.writeSheet(f, t, styles); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s: %w", t.Name, err)
		}
	}
	f.SetActiveSheet(0)

	title := w.opts.Title
	if title == "" {
		title = "Sales Analysis"
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:       title,
		Subject:     a.Source,
		Creator:     "Sales Pulse",
		Description: fmt.Sprintf("%d records, %d products", a.Totals.Records, a.Totals.DistinctProducts),
	}); err != nil {
		f.Close()
		return nil, err
	}

	w.logger.Debug("Workbook built",
		slog.String("source", a.Source),
		slog.Int("sheets", len(f.GetSheetList())))
	return f, nil
}

type sheetStyles struct {
	header int
	money  int
	number int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E79"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}); err != nil {
		return s, err
	}
	// 4: #,##0.00
	if s.money, err = f.NewStyle(&excelize.Style{NumFmt: 4}); err != nil {
		return s, err
	}
	// 3: #,##0
	if s.number, err = f.NewStyle(&excelize.Style{NumFmt: 3}); err != nil {
		return s, err
	}
	return s, nil
}

func (w *WorkbookWriter) writeSheet(f *excelize.File, t Table, styles sheetStyles) error {
	headers := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(t.Name, "A1", &headers); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(t.Headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.Name, "A1", lastCol+"1", styles.header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			if r, ok := v.(Rate); ok {
				v = float64(r)
			}
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Name, cell, &cells); err != nil {
			return err
		}
	}

	if len(t.Rows) > 0 {
		for j, v := range t.Rows[0] {
			style := 0
			switch v.(type) {
			case float64:
				style = styles.money
			case int:
				style = styles.number
			}
			if style == 0 {
				continue
			}
			col, _ := excelize.ColumnNumberToName(j + 1)
			if err := f.SetCellStyle(t.Name, col+"2", fmt.Sprintf("%s%d", col, len(t.Rows)+1), style); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(t.Name, "A", "A", 36); err != nil {
		return err
	}
	if len(t.Headers) > 1 {
		if err := f.SetColWidth(t.Name, "B", lastCol, 16); err != nil {
			return err
		}
	}
	if err := f.SetPanes(t.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	if t.ChartColumn >= 0 && len(t.Rows) > 0 {
		return w.addChart(f, t, len(t.Headers)+2)
	}
	return nil
}

// addChart plots the first ChartLimit rows of the chart column as a bar
// chart placed right of the table.
func (w *WorkbookWriter) addChart(f *excelize.File, t Table, anchorCol int) error {
	rows := len(t.Rows)
	if rows > w.opts.ChartLimit {
		rows = w.opts.ChartLimit
	}
	valueCol, err := excelize.ColumnNumberToName(t.ChartColumn + 1)
	if err != nil {
		return err
	}
	anchor, err := excelize.CoordinatesToCellName(anchorCol, 2)
	if err != nil {
		return err
	}

	sheetRef := fmt.Sprintf("'%s'", t.Name)
	return f.AddChart(t.Name, anchor, &excelize.Chart{
		Type: excelize.Bar,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$%s$1", sheetRef, valueCol),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetRef, rows+1),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", sheetRef, valueCol, valueCol, rows+1),
			Fill:       excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2E75B6"}},
		}},
		Title:     []excelize.RichTextRun{{Text: t.ChartTitle}},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: 720, Height: 420},
		YAxis:     excelize.ChartAxis{MajorGridLines: true},
		XAxis:     excelize.ChartAxis{ReverseOrder: true},
	})
}
