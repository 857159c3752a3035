// Package report renders a SalesAnalysis into finished documents.
//
// Each output format has a Renderer. The HTML renderer fills an embedded
// template with the executive summary, inline SVG bar charts and the
// company, GST, performer and unmatched tables. The PDF renderer prints
// that same HTML through headless Chrome (chromedp). Excel and CSV reuse
// the exporter tables and JSON returns the analysis itself.
//
// A Registry maps formats to renderers, names the output file and records
// render metrics:
//
//	reg := report.NewDefaultRegistry(report.OptionsFromConfig(cfg.Report), logger, metrics)
//	doc, err := reg.Render(ctx, domain.ReportFormatPDF, analysis)
package report
