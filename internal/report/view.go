package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"salespulse/pkg/contracts/domain"
)

// Chart geometry in SVG user units
const (
	chartWidth      = 760
	chartLabelWidth = 230
	chartValueWidth = 110
	chartBarHeight  = 18
	chartBarGap     = 6
	chartPadding    = 8
	chartLabelRunes = 34
)

type summaryCard struct {
	Label string
	Value string
}

type bar struct {
	Label  string
	Value  string
	Y      float64
	TextY  float64
	Width  float64
	ValueX float64
}

type barChart struct {
	Title      string
	Width      int
	Height     int
	LabelWidth int
	Color      string
	Bars       []bar
}

type reportView struct {
	Title       string
	Source      string
	GeneratedAt string
	Cards       []summaryCard
	TopCompany  string
	Charts      []barChart
	GSTChart    barChart
	Analysis    *domain.SalesAnalysis
}

func buildView(title string, chartLimit int, a *domain.SalesAnalysis) reportView {
	v := reportView{
		Title:       title,
		Source:      a.Source,
		GeneratedAt: a.GeneratedAt.Format(time.RFC1123),
		Analysis:    a,
	}
	if a.GeneratedAt.IsZero() {
		v.GeneratedAt = ""
	}

	t := a.Totals
	v.Cards = []summaryCard{
		{"Sales Lines", strconv.Itoa(t.Records)},
		{"Products", strconv.Itoa(t.DistinctProducts)},
		{"Companies", strconv.Itoa(t.Companies)},
		{"Total Quantity", FormatQuantity(t.Quantity)},
		{"Net Revenue", FormatAmount(t.NetRevenue)},
		{"GST Collected", FormatAmount(t.GSTAmount)},
		{"Gross Revenue", FormatAmount(t.GrossRevenue)},
	}
	if top, ok := a.TopCompany(); ok {
		v.TopCompany = fmt.Sprintf("%s (%s of net revenue)", top.Company, formatPercent(top.MarketShare))
	}

	byRevenue := limitProducts(a.Products, chartLimit)
	byQuantity := make([]domain.ProductSummary, len(a.Products))
	copy(byQuantity, a.Products)
	sort.SliceStable(byQuantity, func(i, j int) bool {
		return byQuantity[i].QuantityRank < byQuantity[j].QuantityRank
	})
	byQuantity = limitProducts(byQuantity, chartLimit)

	companies := a.Companies
	if len(companies) > chartLimit {
		companies = companies[:chartLimit]
	}

	revenueChart := barChart{Title: fmt.Sprintf("Top %d Products by Net Revenue", len(byRevenue)), Color: "#2e75b6"}
	for _, p := range byRevenue {
		revenueChart.Bars = append(revenueChart.Bars, bar{Label: p.ItemName, Value: FormatAmount(p.NetRevenue), Width: p.NetRevenue})
	}
	quantityChart := barChart{Title: fmt.Sprintf("Top %d Products by Quantity", len(byQuantity)), Color: "#548235"}
	for _, p := range byQuantity {
		quantityChart.Bars = append(quantityChart.Bars, bar{Label: p.ItemName, Value: FormatQuantity(p.Quantity), Width: p.Quantity})
	}
	companyChart := barChart{Title: fmt.Sprintf("Top %d Companies by Net Revenue", len(companies)), Color: "#c55a11"}
	for _, c := range companies {
		companyChart.Bars = append(companyChart.Bars, bar{Label: c.Company, Value: FormatAmount(c.NetRevenue), Width: c.NetRevenue})
	}
	for _, c := range []*barChart{&revenueChart, &quantityChart, &companyChart} {
		if len(c.Bars) > 0 {
			layoutChart(c)
			v.Charts = append(v.Charts, *c)
		}
	}

	v.GSTChart = barChart{Title: "GST Collected by Rate", Color: "#7030a0"}
	for _, g := range a.GSTRates {
		v.GSTChart.Bars = append(v.GSTChart.Bars, bar{Label: formatRate(g.Rate) + "%", Value: FormatAmount(g.GSTCollected), Width: g.GSTCollected})
	}
	layoutChart(&v.GSTChart)

	return v
}

func limitProducts(products []domain.ProductSummary, n int) []domain.ProductSummary {
	if len(products) > n {
		return products[:n]
	}
	return products
}

// layoutChart turns the raw values held in Width into bar geometry scaled
// to the largest value.
func layoutChart(c *barChart) {
	c.Width = chartWidth
	c.LabelWidth = chartLabelWidth
	c.Height = 2*chartPadding + len(c.Bars)*(chartBarHeight+chartBarGap)

	maxValue := 0.0
	for _, b := range c.Bars {
		maxValue = math.Max(maxValue, b.Width)
	}
	plot := float64(chartWidth - chartLabelWidth - chartValueWidth)

	for i := range c.Bars {
		b := &c.Bars[i]
		b.Label = truncate(b.Label, chartLabelRunes)
		if maxValue > 0 {
			b.Width = math.Round(b.Width/maxValue*plot*10) / 10
		} else {
			b.Width = 0
		}
		b.Y = float64(chartPadding + i*(chartBarHeight+chartBarGap))
		b.TextY = b.Y + chartBarHeight - 5
		b.ValueX = float64(chartLabelWidth) + b.Width + 6
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// FormatAmount renders money with thousands separators: 1,234.50
func FormatAmount(v float64) string {
	return groupThousands(strconv.FormatFloat(v, 'f', 2, 64))
}

// FormatQuantity drops decimals for whole quantities
func FormatQuantity(v float64) string {
	if v == math.Trunc(v) {
		return groupThousands(strconv.FormatFloat(v, 'f', 0, 64))
	}
	return FormatAmount(v)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}
