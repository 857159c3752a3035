// Package api contains the HTTP contract definitions for the sales analyzer.
// Version v1 represents the current stable API version.
package api

import (
	"encoding/json"

	"salespulse/pkg/contracts"
)

// AnalyzeRequest is the body accepted by the analyze endpoints. Data is
// either a JSON array of row objects or a string holding that array,
// optionally prefixed with '=' as spreadsheet connectors send it.
type AnalyzeRequest struct {
	Data json.RawMessage `json:"data" validate:"required"`
}

// AnalyzeQuery holds the query parameters of the analyze endpoints
type AnalyzeQuery struct {
	Format string `json:"format" query:"format" validate:"omitempty,oneof=pdf html xlsx csv json"`
}

// StatusResponse describes the service on GET requests to the root and
// analyze endpoints.
type StatusResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// VersionResponse is returned by the version endpoint
type VersionResponse struct {
	contracts.VersionInfo
	StartTime string  `json:"start_time"`
	Uptime    float64 `json:"uptime_seconds"`
}
