package http

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	apperrors "salespulse/internal/errors"
	"salespulse/internal/services"
	api "salespulse/pkg/contracts/api/v1"
	"salespulse/pkg/contracts/domain"
)

type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) ParseFormat(name string) (domain.ReportFormat, error) {
	args := m.Called(name)
	return args.Get(0).(domain.ReportFormat), args.Error(1)
}

func (m *MockAnalysisService) GenerateReport(ctx context.Context, req services.ReportRequest) (*domain.RenderedReport, *domain.SalesAnalysis, error) {
	args := m.Called(ctx, req)
	var doc *domain.RenderedReport
	if v := args.Get(0); v != nil {
		doc = v.(*domain.RenderedReport)
	}
	var analysis *domain.SalesAnalysis
	if v := args.Get(1); v != nil {
		analysis = v.(*domain.SalesAnalysis)
	}
	return doc, analysis, args.Error(2)
}

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) HealthCheck(ctx context.Context) api.HealthResponse {
	return m.Called(ctx).Get(0).(api.HealthResponse)
}

func (m *MockHealthService) Status() api.StatusResponse {
	return m.Called().Get(0).(api.StatusResponse)
}

func (m *MockHealthService) Version() api.VersionResponse {
	return m.Called().Get(0).(api.VersionResponse)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testErrorHandler() *apperrors.ErrorHandler {
	return apperrors.NewErrorHandler(testLogger(), false)
}

func testStatus() api.StatusResponse {
	return api.StatusResponse{
		Message:   "Sales Pulse API is running.",
		Version:   "test",
		Endpoints: map[string]string{"POST /analyze": "Analyse"},
	}
}
