package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"salespulse/internal/report"
	"salespulse/pkg/contracts/domain"
)

// AnalysisSummary is the boxed run summary: totals, the leading company and
// the files written.
func AnalysisSummary(title string, a *domain.SalesAnalysis, written []string) string {
	t := a.Totals
	rows := [][2]string{
		{"Source", a.Source},
		{"Records", fmt.Sprintf("%d", t.Records)},
		{"Products", fmt.Sprintf("%d", t.DistinctProducts)},
		{"Companies", fmt.Sprintf("%d", t.Companies)},
		{"Quantity", report.FormatQuantity(t.Quantity)},
		{"Net revenue", report.FormatAmount(t.NetRevenue)},
		{"GST", report.FormatAmount(t.GSTAmount)},
		{"Grand total", report.FormatAmount(t.GrossRevenue)},
	}
	if top, ok := a.TopCompany(); ok {
		rows = append(rows, [2]string{"Top company", fmt.Sprintf("%s (%.2f%%)", top.Company, top.MarketShare)})
	}

	lines := []string{titleStyle.Render(title), ""}
	for _, r := range rows {
		lines = append(lines, labelStyle.Render(r[0])+valueStyle.Render(r[1]))
	}

	if n := len(a.Unmatched); n > 0 {
		lines = append(lines, "", warningStyle.Render(fmt.Sprintf("%d products matched no company", n)))
	}

	if len(written) > 0 {
		lines = append(lines, "", mutedStyle.Render("Written:"))
		for _, f := range written {
			lines = append(lines, "  "+f)
		}
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Failure is a one-line error report for label
func Failure(label string, err error) string {
	return errorStyle.Render("✗ "+label) + " " + err.Error()
}

// Success is a one-line confirmation
func Success(msg string) string {
	return successStyle.Render("✓ " + msg)
}

// Warning is a one-line warning
func Warning(msg string) string {
	return warningStyle.Render("! " + msg)
}

// Outcome summarises a batch run
func Outcome(total, failed int) string {
	if failed == 0 {
		return Success(fmt.Sprintf("%d of %d inputs analysed", total, total))
	}
	return errorStyle.Render(fmt.Sprintf("%d of %d inputs failed", failed, total))
}

// Table renders rows under headers with a rounded border
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}

// List renders a titled bullet list, or nothing for no items
func List(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	for _, item := range items {
		b.WriteString("\n  • " + item)
	}
	return b.String()
}
