package config

import (
	"time"

	"salespulse/pkg/contracts"
)

// Application constants
const (
	// Application Info
	AppName    = "Sales Pulse"
	AppVersion = contracts.Version

	// Rate Limiting
	DefaultRateLimit = 20 // requests per second
	DefaultBurstSize = 40

	// Network Timeouts
	DefaultRequestTimeout = 2 * time.Minute
	DefaultRenderTimeout  = 60 * time.Second

	// Request limits
	DefaultMaxBodyBytes = 32 << 20 // 32MB

	// File Paths (relative to the working directory)
	DefaultCatalogDir = "Company Wise Products"
	DefaultOutputDir  = "outputs"
	DefaultLogsDir    = "logs"
	DefaultLogFile    = "logs/app.log"

	// Log Settings
	DefaultLogLevel = "info"
	LogFormatJSON   = "json"
	LogFormatText   = "text"

	// Report defaults
	DefaultReportTitle = "Sales Analysis Report"
	DefaultTopN        = 10
	DefaultChartLimit  = 15

	// Output naming
	ReportFilePrefix    = "Sales_Analysis_"
	ReportTimeLayout    = "20060102_150405"
	SummaryWorkbookName = "Analysis_Summary.xlsx"

	// API Endpoints
	AnalyzeEndpoint    = "/analyze"
	APIAnalyzeEndpoint = "/api/analyze"
	HealthEndpoint     = "/health"
	MetricsEndpoint    = "/metrics"
	VersionEndpoint    = "/version"
)

// Report formats understood by the renderers
const (
	FormatPDF  = "pdf"
	FormatHTML = "html"
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Performance score weights. They sum to 1 so the score stays in [0,1].
const (
	RevenueWeight  = 0.6
	QuantityWeight = 0.4
)

// IsSupportedFormat reports whether f names a report format
func IsSupportedFormat(f string) bool {
	switch f {
	case FormatPDF, FormatHTML, FormatXLSX, FormatCSV, FormatJSON:
		return true
	default:
		return false
	}
}

// ReportFileName returns Sales_Analysis_<timestamp>.<ext> for t
func ReportFileName(t time.Time, ext string) string {
	return ReportFilePrefix + t.Format(ReportTimeLayout) + "." + ext
}
