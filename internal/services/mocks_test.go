package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"salespulse/pkg/contracts/domain"
)

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, source string, rows []domain.RawRow) (*domain.SalesAnalysis, error) {
	args := m.Called(ctx, source, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesAnalysis), args.Error(1)
}

func (m *MockAnalyzer) AnalyzeFile(ctx context.Context, path string) (*domain.SalesAnalysis, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesAnalysis), args.Error(1)
}

type MockReportRenderer struct {
	mock.Mock
}

func (m *MockReportRenderer) ParseFormat(name string) (domain.ReportFormat, error) {
	args := m.Called(name)
	return args.Get(0).(domain.ReportFormat), args.Error(1)
}

func (m *MockReportRenderer) Render(ctx context.Context, format domain.ReportFormat, a *domain.SalesAnalysis) (*domain.RenderedReport, error) {
	args := m.Called(ctx, format, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RenderedReport), args.Error(1)
}

func sampleAnalysis(source string) *domain.SalesAnalysis {
	return &domain.SalesAnalysis{
		ID:          "analysis-1",
		Source:      source,
		GeneratedAt: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		Totals:      domain.Totals{Records: 2, DistinctProducts: 2, Companies: 2, Quantity: 4, NetRevenue: 5040, GSTAmount: 907.2, GrossRevenue: 5947.2},
		Products: []domain.ProductSummary{
			{ItemName: "Alecto 50 Ml", Company: "Adama", Lines: 1, Quantity: 3, NetRevenue: 4440, RevenueRank: 1, QuantityRank: 1},
			{ItemName: "Agas 250gms", Company: domain.CompanyOther, Lines: 1, Quantity: 1, NetRevenue: 600, RevenueRank: 2, QuantityRank: 2},
		},
	}
}
