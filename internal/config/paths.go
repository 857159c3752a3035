package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved file system locations used by a run.
// Relative entries in PathsConfig are resolved against BaseDir.
type Paths struct {
	BaseDir    string
	CatalogDir string
	OutputDir  string
	LogsDir    string
}

// Resolve turns the configured paths into absolute ones rooted at the
// current working directory.
func (p PathsConfig) Resolve() (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return p.ResolveFrom(wd), nil
}

// ResolveFrom resolves the configured paths against base.
// An empty CatalogDir stays empty: it means "run without a catalog".
func (p PathsConfig) ResolveFrom(base string) *Paths {
	return &Paths{
		BaseDir:    base,
		CatalogDir: resolve(base, p.CatalogDir),
		OutputDir:  resolve(base, p.OutputDir),
		LogsDir:    resolve(base, p.LogsDir),
	}
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// EnsureDirectories creates the output and log directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		return
	}

	logger.Debug("Path resolution summary",
		slog.String("base", p.BaseDir),
		slog.String("catalog", p.CatalogDir),
		slog.Bool("catalog_exists", p.CatalogDir != "" && FileExists(p.CatalogDir)),
		slog.String("output", p.OutputDir),
		slog.String("logs", p.LogsDir))
}
