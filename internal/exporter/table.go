package exporter

import (
	"strings"

	"salespulse/pkg/contracts/domain"
)

// Sheet names of the summary workbook, in workbook order
const (
	SheetCompanies      = "Company Analysis"
	SheetProducts       = "Product Analysis"
	SheetGST            = "GST Analysis"
	SheetTopRevenue     = "Top Revenue"
	SheetTopQuantity    = "Top Quantity"
	SheetTopPerformance = "Top Performance"
	SheetUnmatched      = "Unmatched"
)

// Rate is a percentage rendered without fixed decimals
type Rate float64

// Table is one named grid of typed values. Cells hold string, int,
// float64 or Rate.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
	// ChartColumn is the 0-based value column plotted against column 0,
	// or -1 for no chart.
	ChartColumn int
	ChartTitle  string
}

// FileName returns the CSV file name of the table: "Company_Analysis.csv"
func (t Table) FileName() string {
	return strings.ReplaceAll(t.Name, " ", "_") + ".csv"
}

// Tables returns every summary table of a
func Tables(a *domain.SalesAnalysis) []Table {
	return []Table{
		CompanyTable(a.Companies),
		ProductTable(SheetProducts, a.Products, -1),
		GSTTable(a.GSTRates),
		ProductTable(SheetTopRevenue, a.Performers.TopByRevenue, 5),
		ProductTable(SheetTopQuantity, a.Performers.TopByQuantity, 3),
		ProductTable(SheetTopPerformance, a.Performers.TopByPerformance, 9),
		UnmatchedTable(a.Unmatched),
	}
}

// CompanyTable lists company summaries
func CompanyTable(companies []domain.CompanySummary) Table {
	t := Table{
		Name: SheetCompanies,
		Headers: []string{
			"Company", "Lines", "Products", "Total Quantity", "Avg Quantity",
			"Net Revenue", "Avg Revenue", "GST Amount", "Gross Revenue",
			"Market Share %", "Avg Price/Unit", "Price/Unit Std Dev",
		},
		ChartColumn: 5,
		ChartTitle:  "Net Revenue by Company",
	}
	for _, c := range companies {
		t.Rows = append(t.Rows, []interface{}{
			c.Company, c.Lines, c.ProductCount, c.Quantity, c.AvgQuantity,
			c.NetRevenue, c.AvgRevenue, c.GSTAmount, c.GrossRevenue,
			c.MarketShare, c.AvgPricePerUnit, c.PricePerUnitStdDev,
		})
	}
	return t
}

// ProductTable lists product summaries. chartColumn selects the plotted
// column, -1 for none.
func ProductTable(name string, products []domain.ProductSummary, chartColumn int) Table {
	t := Table{
		Name: name,
		Headers: []string{
			"Product", "Company", "Lines", "Quantity", "Avg Price",
			"Net Revenue", "GST Amount", "Gross Revenue", "Revenue Rank",
			"Performance Score", "Quantity Rank", "Percentile",
		},
		ChartColumn: chartColumn,
	}
	if chartColumn >= 0 {
		t.ChartTitle = name + " by " + t.Headers[chartColumn]
	}
	for _, p := range products {
		t.Rows = append(t.Rows, []interface{}{
			p.ItemName, p.Company, p.Lines, p.Quantity, p.AveragePrice,
			p.NetRevenue, p.GSTAmount, p.GrossRevenue, p.RevenueRank,
			p.PerformanceScore, p.QuantityRank, p.Percentile,
		})
	}
	return t
}

// GSTTable lists the GST-rate breakdown
func GSTTable(rates []domain.GSTSummary) Table {
	t := Table{
		Name:        SheetGST,
		Headers:     []string{"GST Rate %", "Lines", "Quantity", "Taxable Amount", "GST Collected", "Contribution %"},
		ChartColumn: -1,
	}
	for _, g := range rates {
		t.Rows = append(t.Rows, []interface{}{
			Rate(g.Rate), g.Lines, g.Quantity, g.TaxableAmount, g.GSTCollected, g.Contribution,
		})
	}
	return t
}

// UnmatchedTable lists products no company claimed with their suggestions
func UnmatchedTable(unmatched []domain.UnmatchedProduct) Table {
	t := Table{
		Name:        SheetUnmatched,
		Headers:     []string{"Product", "Quantity", "Net Revenue", "Suggested Product", "Suggested Company", "Similarity"},
		ChartColumn: -1,
	}
	for _, u := range unmatched {
		var similarity interface{} = ""
		if u.SuggestedProduct != "" {
			similarity = u.Similarity
		}
		t.Rows = append(t.Rows, []interface{}{
			u.ItemName, u.Quantity, u.NetRevenue, u.SuggestedProduct, u.SuggestedCompany, similarity,
		})
	}
	return t
}
