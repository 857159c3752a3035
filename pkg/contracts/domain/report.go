package domain

// ReportFormat defines the format of a report
type ReportFormat string

const (
	ReportFormatPDF   ReportFormat = "pdf"
	ReportFormatHTML  ReportFormat = "html"
	ReportFormatExcel ReportFormat = "xlsx"
	ReportFormatCSV   ReportFormat = "csv"
	ReportFormatJSON  ReportFormat = "json"
)

// ContentType returns the MIME type served for the format
func (f ReportFormat) ContentType() string {
	switch f {
	case ReportFormatPDF:
		return "application/pdf"
	case ReportFormatHTML:
		return "text/html; charset=utf-8"
	case ReportFormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ReportFormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/json"
	}
}

// RenderedReport is a finished document ready to be written or served
type RenderedReport struct {
	Format   ReportFormat `json:"format"`
	FileName string       `json:"file_name"`
	Data     []byte       `json:"-"`
}
