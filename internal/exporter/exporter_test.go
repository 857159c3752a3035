package exporter

import (
	"time"

	"salespulse/pkg/contracts/domain"
)

func sampleAnalysis() *domain.SalesAnalysis {
	alecto := domain.ProductSummary{
		ItemName: "Alecto 50 Ml", Company: "Adama", Lines: 1, Quantity: 3, NetRevenue: 4440,
		GSTAmount: 799.2, GrossRevenue: 5239.2, AveragePrice: 1480, PerformanceScore: 1,
		RevenueRank: 1, QuantityRank: 1, Percentile: 50,
	}
	agas := domain.ProductSummary{
		ItemName: "Agas 250gms", Company: domain.CompanyOther, Lines: 1, Quantity: 1, NetRevenue: 600,
		GSTAmount: 108, GrossRevenue: 708, AveragePrice: 600, PerformanceScore: 0,
		RevenueRank: 2, QuantityRank: 2, Percentile: 0,
	}
	return &domain.SalesAnalysis{
		ID:          "test",
		Source:      "SALANAL_PS.XLS",
		GeneratedAt: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		Totals: domain.Totals{
			Records: 2, DistinctProducts: 2, Companies: 2, Quantity: 4,
			NetRevenue: 5040, GSTAmount: 907.2, GrossRevenue: 5947.2,
		},
		Products: []domain.ProductSummary{alecto, agas},
		Companies: []domain.CompanySummary{
			{Company: "Adama", Lines: 1, ProductCount: 1, Quantity: 3, NetRevenue: 4440, GSTAmount: 799.2, GrossRevenue: 5239.2, MarketShare: 88.0952, AvgQuantity: 3, AvgRevenue: 4440, AvgPricePerUnit: 1480},
			{Company: domain.CompanyOther, Lines: 1, ProductCount: 1, Quantity: 1, NetRevenue: 600, GSTAmount: 108, GrossRevenue: 708, MarketShare: 11.9048, AvgQuantity: 1, AvgRevenue: 600, AvgPricePerUnit: 600},
		},
		GSTRates: []domain.GSTSummary{
			{Rate: 18, Lines: 2, Quantity: 4, TaxableAmount: 5040, GSTCollected: 907.2, Contribution: 100},
		},
		Performers: domain.Performers{
			TopByRevenue:     []domain.ProductSummary{alecto, agas},
			TopByQuantity:    []domain.ProductSummary{alecto, agas},
			TopByPerformance: []domain.ProductSummary{alecto, agas},
			Bottom:           []domain.ProductSummary{agas, alecto},
			HighestPrice:     []domain.ProductSummary{alecto, agas},
			LowestPrice:      []domain.ProductSummary{agas, alecto},
		},
		Unmatched: []domain.UnmatchedProduct{
			{ItemName: "Agas 250gms", Quantity: 1, NetRevenue: 600, SuggestedProduct: "Agas", SuggestedCompany: "Adama", Similarity: 0.64},
		},
	}
}
