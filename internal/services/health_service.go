package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"salespulse/internal/config"
	"salespulse/pkg/contracts"
	api "salespulse/pkg/contracts/api/v1"
)

// CatalogInfo is the part of the catalog the health check reports on
type CatalogInfo interface {
	Companies() []string
	ProductCount() int
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	catalog   CatalogInfo
	outputDir string
	startTime time.Time
	logger    *slog.Logger
}

// NewHealthService creates a health service. outputDir may be empty when
// the process never writes reports to disk.
func NewHealthService(version string, catalog CatalogInfo, outputDir string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		catalog:   catalog,
		outputDir: outputDir,
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthCheck returns overall health. A catalog without companies still
// serves requests (everything is Other) and only shows in the checks.
func (hs *HealthService) HealthCheck(ctx context.Context) api.HealthResponse {
	resp := api.HealthResponse{
		Status:    "ok",
		Version:   hs.version,
		Uptime:    time.Since(hs.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]string),
	}

	resp.Checks["catalog"] = hs.checkCatalog()
	if hs.outputDir != "" {
		if err := checkWritable(hs.outputDir); err != nil {
			resp.Checks["output_dir"] = err.Error()
			resp.Status = "degraded"
		} else {
			resp.Checks["output_dir"] = "writable"
		}
	}

	hs.logger.DebugContext(ctx, "HealthCheck: completed", slog.String("status", resp.Status))
	return resp
}

// Status returns the static service description served on GET
func (hs *HealthService) Status() api.StatusResponse {
	return api.StatusResponse{
		Message: config.AppName + " API is running. POST sales rows to /analyze to receive a report.",
		Version: hs.version,
		Endpoints: map[string]string{
			"POST " + config.AnalyzeEndpoint:    "Analyse {\"data\": [...]} and return a PDF (?format=html|xlsx|csv|json)",
			"POST " + config.APIAnalyzeEndpoint: "Alias of " + config.AnalyzeEndpoint,
			"GET " + config.HealthEndpoint:      "Liveness and dependency checks",
			"GET " + config.MetricsEndpoint:     "Prometheus metrics",
			"GET " + config.VersionEndpoint:     "Build and runtime information",
		},
	}
}

// Version describes the build and how long the service has been up
func (hs *HealthService) Version() api.VersionResponse {
	info := contracts.GetVersionInfo()
	info.Version = hs.version
	return api.VersionResponse{
		VersionInfo: info,
		StartTime:   hs.startTime.Format(time.RFC3339),
		Uptime:      time.Since(hs.startTime).Seconds(),
	}
}

func (hs *HealthService) checkCatalog() string {
	if hs.catalog == nil {
		return "not loaded"
	}
	companies := len(hs.catalog.Companies())
	if companies == 0 {
		return "empty: every product reports as Other"
	}
	return fmt.Sprintf("%d companies, %d products", companies, hs.catalog.ProductCount())
}

func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}
	f, err := os.CreateTemp(dir, ".health-*")
	if err != nil {
		return fmt.Errorf("cannot write to output directory: %w", err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
