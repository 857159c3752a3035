package dataprocessing

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"salespulse/internal/catalog"
	"salespulse/internal/config"
	"salespulse/pkg/contracts/domain"
)

var hundred = decimal.NewFromInt(100)

// Suggester proposes the closest catalog product for an unmatched item
type Suggester interface {
	Suggest(itemName string, threshold float64) (catalog.Suggestion, bool)
}

// AggregateOptions tune Aggregate
type AggregateOptions struct {
	// TopN bounds every performer list. Zero means config.DefaultTopN.
	TopN int
	// Suggester is consulted for products classified as Other. Optional.
	Suggester           Suggester
	SimilarityThreshold float64
}

// money accumulates amounts exactly
type money struct {
	qty, net, gst, gross decimal.Decimal
}

func (m *money) add(r domain.SalesRecord) {
	taxable := decimal.NewFromFloat(r.TaxableAmount)
	gst := taxable.Mul(decimal.NewFromFloat(r.GSTRate)).Div(hundred)
	m.qty = m.qty.Add(decimal.NewFromFloat(r.Quantity))
	m.net = m.net.Add(taxable)
	m.gst = m.gst.Add(gst)
	m.gross = m.gross.Add(taxable.Add(gst))
}

type productAcc struct {
	name    string
	company string
	lines   int
	money
}

type companyAcc struct {
	name     string
	lines    int
	products map[string]bool
	prices   []float64
	money
}

type gstAcc struct {
	rate  float64
	lines int
	money
}

// Aggregate computes the product, company and GST summaries of records.
// An empty input yields an empty analysis.
func Aggregate(records []domain.ClassifiedRecord, opts AggregateOptions) *domain.SalesAnalysis {
	if opts.TopN <= 0 {
		opts.TopN = config.DefaultTopN
	}
	if opts.SimilarityThreshold <= 0 {
		opts.SimilarityThreshold = catalog.DefaultSimilarityThreshold
	}

	var (
		total     money
		products  = make(map[string]*productAcc)
		prodOrder []string
		companies = make(map[string]*companyAcc)
		compOrder []string
		rates     = make(map[float64]*gstAcc)
	)

	for _, r := range records {
		total.add(r.SalesRecord)

		p, ok := products[r.ItemName]
		if !ok {
			p = &productAcc{name: r.ItemName, company: r.Company}
			products[r.ItemName] = p
			prodOrder = append(prodOrder, r.ItemName)
		}
		p.lines++
		p.add(r.SalesRecord)

		c, ok := companies[r.Company]
		if !ok {
			c = &companyAcc{name: r.Company, products: make(map[string]bool)}
			companies[r.Company] = c
			compOrder = append(compOrder, r.Company)
		}
		c.lines++
		c.products[r.ItemName] = true
		if price, ok := r.PricePerUnit(); ok {
			c.prices = append(c.prices, price)
		}
		c.add(r.SalesRecord)

		g, ok := rates[r.GSTRate]
		if !ok {
			g = &gstAcc{rate: r.GSTRate}
			rates[r.GSTRate] = g
		}
		g.lines++
		g.add(r.SalesRecord)
	}

	totalNet := total.net.InexactFloat64()

	analysis := &domain.SalesAnalysis{
		Totals: domain.Totals{
			Records:          len(records),
			DistinctProducts: len(products),
			Companies:        len(companies),
			Quantity:         total.qty.InexactFloat64(),
			NetRevenue:       totalNet,
			GSTAmount:        total.gst.InexactFloat64(),
			GrossRevenue:     total.gross.InexactFloat64(),
		},
		Products:  summarizeProducts(products, prodOrder),
		Companies: summarizeCompanies(companies, compOrder, total.net),
		GSTRates:  summarizeGST(rates, total.net),
	}
	analysis.Performers = selectPerformers(analysis.Products, opts.TopN)
	analysis.Unmatched = collectUnmatched(analysis.Products, opts)

	return analysis
}

func summarizeProducts(acc map[string]*productAcc, order []string) []domain.ProductSummary {
	out := make([]domain.ProductSummary, 0, len(order))
	for _, name := range order {
		p := acc[name]
		s := domain.ProductSummary{
			ItemName:     p.name,
			Company:      p.company,
			Lines:        p.lines,
			Quantity:     p.qty.InexactFloat64(),
			NetRevenue:   p.net.InexactFloat64(),
			GSTAmount:    p.gst.InexactFloat64(),
			GrossRevenue: p.gross.InexactFloat64(),
		}
		if !p.qty.IsZero() {
			s.AveragePrice = p.net.Div(p.qty).InexactFloat64()
		}
		out = append(out, s)
	}

	scoreProducts(out)
	rankProducts(out)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RevenueRank != out[j].RevenueRank {
			return out[i].RevenueRank < out[j].RevenueRank
		}
		return out[i].ItemName < out[j].ItemName
	})
	return out
}

// scoreProducts sets RevenueWeight*normRevenue + QuantityWeight*normQuantity,
// min-max normalised over the batch. A dimension with no spread scores 1.
func scoreProducts(products []domain.ProductSummary) {
	if len(products) == 0 {
		return
	}
	minRev, maxRev := products[0].NetRevenue, products[0].NetRevenue
	minQty, maxQty := products[0].Quantity, products[0].Quantity
	for _, p := range products[1:] {
		minRev, maxRev = math.Min(minRev, p.NetRevenue), math.Max(maxRev, p.NetRevenue)
		minQty, maxQty = math.Min(minQty, p.Quantity), math.Max(maxQty, p.Quantity)
	}

	for i := range products {
		score := config.RevenueWeight*normalize(products[i].NetRevenue, minRev, maxRev) +
			config.QuantityWeight*normalize(products[i].Quantity, minQty, maxQty)
		products[i].PerformanceScore = math.Min(1, math.Max(0, score))
	}
}

func normalize(v, lo, hi float64) float64 {
	if hi == lo {
		return 1
	}
	return (v - lo) / (hi - lo)
}

// rankProducts assigns competition ranks (ties share a rank) by revenue and
// quantity, and the revenue percentile: the share of products with strictly
// lower revenue.
func rankProducts(products []domain.ProductSummary) {
	n := len(products)
	for i := range products {
		higherRev, higherQty, lowerRev := 0, 0, 0
		for j := range products {
			switch {
			case products[j].NetRevenue > products[i].NetRevenue:
				higherRev++
			case products[j].NetRevenue < products[i].NetRevenue:
				lowerRev++
			}
			if products[j].Quantity > products[i].Quantity {
				higherQty++
			}
		}
		products[i].RevenueRank = higherRev + 1
		products[i].QuantityRank = higherQty + 1
		products[i].Percentile = float64(lowerRev) / float64(n) * 100
	}
}

func summarizeCompanies(acc map[string]*companyAcc, order []string, totalNet decimal.Decimal) []domain.CompanySummary {
	out := make([]domain.CompanySummary, 0, len(order))
	for _, name := range order {
		c := acc[name]
		lines := decimal.NewFromInt(int64(c.lines))
		s := domain.CompanySummary{
			Company:      c.name,
			Lines:        c.lines,
			ProductCount: len(c.products),
			Quantity:     c.qty.InexactFloat64(),
			NetRevenue:   c.net.InexactFloat64(),
			GSTAmount:    c.gst.InexactFloat64(),
			GrossRevenue: c.gross.InexactFloat64(),
			AvgQuantity:  c.qty.Div(lines).InexactFloat64(),
			AvgRevenue:   c.net.Div(lines).InexactFloat64(),
		}
		s.MarketShare = percentOf(c.net, totalNet)
		s.AvgPricePerUnit, s.PricePerUnitStdDev = meanStdDev(c.prices)
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].NetRevenue != out[j].NetRevenue {
			return out[i].NetRevenue > out[j].NetRevenue
		}
		return out[i].Company < out[j].Company
	})
	return out
}

func summarizeGST(acc map[float64]*gstAcc, totalNet decimal.Decimal) []domain.GSTSummary {
	out := make([]domain.GSTSummary, 0, len(acc))
	for _, g := range acc {
		out = append(out, domain.GSTSummary{
			Rate:          g.rate,
			Lines:         g.lines,
			Quantity:      g.qty.InexactFloat64(),
			TaxableAmount: g.net.InexactFloat64(),
			GSTCollected:  g.gst.InexactFloat64(),
			Contribution:  percentOf(g.net, totalNet),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rate < out[j].Rate })
	return out
}

func percentOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Mul(hundred).Div(total).InexactFloat64()
}

// meanStdDev returns the mean and sample standard deviation of values.
// The deviation is 0 for fewer than two values.
func meanStdDev(values []float64) (mean, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if len(values) < 2 {
		return mean, 0
	}
	var ss float64
	for _, v := range values {
		ss += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(ss / float64(len(values)-1))
}

func selectPerformers(products []domain.ProductSummary, n int) domain.Performers {
	byName := func(a, b domain.ProductSummary) bool { return a.ItemName < b.ItemName }

	ranked := func(src []domain.ProductSummary, less func(a, b domain.ProductSummary) bool) []domain.ProductSummary {
		list := append([]domain.ProductSummary(nil), src...)
		sort.SliceStable(list, func(i, j int) bool {
			if less(list[i], list[j]) {
				return true
			}
			if less(list[j], list[i]) {
				return false
			}
			return byName(list[i], list[j])
		})
		if len(list) > n {
			list = list[:n]
		}
		return list
	}

	var priced []domain.ProductSummary
	for _, p := range products {
		if p.Quantity > 0 {
			priced = append(priced, p)
		}
	}

	return domain.Performers{
		TopByRevenue:  ranked(products, func(a, b domain.ProductSummary) bool { return a.NetRevenue > b.NetRevenue }),
		TopByQuantity: ranked(products, func(a, b domain.ProductSummary) bool { return a.Quantity > b.Quantity }),
		TopByPerformance: ranked(products, func(a, b domain.ProductSummary) bool {
			return a.PerformanceScore > b.PerformanceScore
		}),
		Bottom: ranked(products, func(a, b domain.ProductSummary) bool {
			return a.PerformanceScore < b.PerformanceScore
		}),
		HighestPrice: ranked(priced, func(a, b domain.ProductSummary) bool { return a.AveragePrice > b.AveragePrice }),
		LowestPrice:  ranked(priced, func(a, b domain.ProductSummary) bool { return a.AveragePrice < b.AveragePrice }),
	}
}

func collectUnmatched(products []domain.ProductSummary, opts AggregateOptions) []domain.UnmatchedProduct {
	out := []domain.UnmatchedProduct{}
	for _, p := range products {
		if p.Company != domain.CompanyOther {
			continue
		}
		u := domain.UnmatchedProduct{
			ItemName:   p.ItemName,
			NetRevenue: p.NetRevenue,
			Quantity:   p.Quantity,
		}
		if opts.Suggester != nil {
			if s, ok := opts.Suggester.Suggest(p.ItemName, opts.SimilarityThreshold); ok {
				u.SuggestedProduct = s.Product
				u.SuggestedCompany = s.Company
				u.Similarity = s.Similarity
			}
		}
		out = append(out, u)
	}
	return out
}
