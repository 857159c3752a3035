package http

import (
	"context"

	"salespulse/internal/services"
	api "salespulse/pkg/contracts/api/v1"
	"salespulse/pkg/contracts/domain"
)

// AnalysisServiceInterface defines the analysis operations the handlers need
type AnalysisServiceInterface interface {
	ParseFormat(name string) (domain.ReportFormat, error)
	GenerateReport(ctx context.Context, req services.ReportRequest) (*domain.RenderedReport, *domain.SalesAnalysis, error)
}

// HealthServiceInterface defines the status operations the handlers need
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) api.HealthResponse
	Status() api.StatusResponse
	Version() api.VersionResponse
}

var (
	_ AnalysisServiceInterface = (*services.AnalysisService)(nil)
	_ HealthServiceInterface   = (*services.HealthService)(nil)
)
