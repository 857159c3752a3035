package domain

import "time"

// Totals are the batch-wide sums shown on the executive summary
type Totals struct {
	Records          int     `json:"total_rows"`
	DistinctProducts int     `json:"total_products"`
	Companies        int     `json:"total_companies"`
	Quantity         float64 `json:"total_quantity"`
	NetRevenue       float64 `json:"total_revenue"`
	GSTAmount        float64 `json:"total_gst"`
	GrossRevenue     float64 `json:"grand_total"`
}

// ProductSummary aggregates every line of one item name
type ProductSummary struct {
	ItemName         string  `json:"item_name"`
	Company          string  `json:"company"`
	Lines            int     `json:"lines"`
	Quantity         float64 `json:"quantity"`
	NetRevenue       float64 `json:"net_revenue"`
	GSTAmount        float64 `json:"gst_amount"`
	GrossRevenue     float64 `json:"gross_revenue"`
	AveragePrice     float64 `json:"average_price"`
	PerformanceScore float64 `json:"performance_score"`
	RevenueRank      int     `json:"revenue_rank"`
	QuantityRank     int     `json:"quantity_rank"`
	Percentile       float64 `json:"percentile"`
}

// CompanySummary aggregates every line attributed to one company
type CompanySummary struct {
	Company            string  `json:"company"`
	Lines              int     `json:"lines"`
	ProductCount       int     `json:"product_count"`
	Quantity           float64 `json:"quantity"`
	NetRevenue         float64 `json:"net_revenue"`
	GSTAmount          float64 `json:"gst_amount"`
	GrossRevenue       float64 `json:"gross_revenue"`
	MarketShare        float64 `json:"market_share"`
	AvgQuantity        float64 `json:"avg_quantity"`
	AvgRevenue         float64 `json:"avg_revenue"`
	AvgPricePerUnit    float64 `json:"avg_price_per_unit"`
	PricePerUnitStdDev float64 `json:"price_per_unit_std_dev"`
}

// GSTSummary aggregates the lines taxed at one rate
type GSTSummary struct {
	Rate          float64 `json:"rate"`
	Lines         int     `json:"lines"`
	Quantity      float64 `json:"quantity"`
	TaxableAmount float64 `json:"taxable_amount"`
	GSTCollected  float64 `json:"gst_collected"`
	Contribution  float64 `json:"contribution"`
}

// Performers are the ranked product lists shown in the report
type Performers struct {
	TopByRevenue     []ProductSummary `json:"top_by_revenue"`
	TopByQuantity    []ProductSummary `json:"top_by_quantity"`
	TopByPerformance []ProductSummary `json:"top_by_performance"`
	Bottom           []ProductSummary `json:"bottom_performers"`
	HighestPrice     []ProductSummary `json:"highest_price_per_unit"`
	LowestPrice      []ProductSummary `json:"lowest_price_per_unit"`
}

// UnmatchedProduct is an item no catalog company claimed, with the closest
// catalog entry when one is similar enough.
type UnmatchedProduct struct {
	ItemName         string  `json:"item_name"`
	NetRevenue       float64 `json:"net_revenue"`
	Quantity         float64 `json:"quantity"`
	SuggestedProduct string  `json:"suggested_product,omitempty"`
	SuggestedCompany string  `json:"suggested_company,omitempty"`
	Similarity       float64 `json:"similarity,omitempty"`
}

// SalesAnalysis is the full result of one run. Products are sorted by
// revenue rank, companies by revenue descending and GST rates ascending.
type SalesAnalysis struct {
	ID          string             `json:"id"`
	Source      string             `json:"source"`
	GeneratedAt time.Time          `json:"generated_at"`
	Totals      Totals             `json:"summary"`
	Products    []ProductSummary   `json:"products"`
	Companies   []CompanySummary   `json:"companies"`
	GSTRates    []GSTSummary       `json:"gst_breakdown"`
	Performers  Performers         `json:"performers"`
	Unmatched   []UnmatchedProduct `json:"unmatched_products"`
}

// TopCompany returns the highest-revenue company, if any
func (a *SalesAnalysis) TopCompany() (CompanySummary, bool) {
	if a == nil || len(a.Companies) == 0 {
		return CompanySummary{}, false
	}
	return a.Companies[0], true
}
