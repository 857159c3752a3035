// Package exporter turns a SalesAnalysis into tabular exports: CSV files
// and the Analysis_Summary.xlsx workbook.
//
// Tables flattens the analysis into named grids (Company Analysis, Product
// Analysis, GST Analysis, Top Revenue, Top Quantity, Top Performance,
// Unmatched). CSVWriter encodes one grid per file with an optional UTF-8
// BOM; WorkbookWriter writes every grid to its own sheet with a frozen
// header row, number formats and a native bar chart where one applies.
package exporter
