package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the release of the analyzer, the web service and the catalog tool
	Version = "2.0.0"

	// APIVersion is the version of the HTTP API contracts under api/
	APIVersion = "v1"
)

// Set with -ldflags "-X salespulse/pkg/contracts.GitCommit=..."
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo is the body of GET /version
type VersionInfo struct {
	Version      string `json:"version"`
	APIVersion   string `json:"api_version"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"arch"`
}

// GetVersionInfo describes the running binary
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:      Version,
		APIVersion:   APIVersion,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
	}
}

// VersionString is the one line printed by the -version flags.
func VersionString(program string) string {
	info := GetVersionInfo()
	return fmt.Sprintf("%s %s (commit %s, built %s, %s %s/%s)",
		program, info.Version, info.GitCommit, info.BuildTime, info.GoVersion, info.OS, info.Architecture)
}
