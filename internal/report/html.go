package report

import (
	"bytes"
	"context"
	"embed"
	"html/template"

	"salespulse/internal/config"
	"salespulse/pkg/contracts/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(
	template.New("report.html.tmpl").Funcs(template.FuncMap{
		"amount":  FormatAmount,
		"qty":     FormatQuantity,
		"percent": formatPercent,
		"rate":    formatRate,
		"score":   formatScore,
		"ratio":   func(v float64) float64 { return v * 100 },
		"sub":     func(a, b int) int { return a - b },
	}).ParseFS(templateFS, "templates/report.html.tmpl"),
)

// HTMLRenderer renders the standalone HTML report
type HTMLRenderer struct {
	title      string
	chartLimit int
}

// NewHTMLRenderer creates an HTML renderer. chartLimit caps the bars per
// chart.
func NewHTMLRenderer(title string, chartLimit int) *HTMLRenderer {
	if chartLimit <= 0 {
		chartLimit = config.DefaultChartLimit
	}
	return &HTMLRenderer{title: title, chartLimit: chartLimit}
}

func (r *HTMLRenderer) Format() domain.ReportFormat { return domain.ReportFormatHTML }

func (r *HTMLRenderer) Render(ctx context.Context, a *domain.SalesAnalysis) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, buildView(r.title, r.chartLimit, a)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
