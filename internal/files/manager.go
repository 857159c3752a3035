package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Manager writes run artifacts below a base directory
type Manager struct {
	baseDir string
	logger  *slog.Logger
}

// NewManager creates a new file manager rooted at baseDir
func NewManager(baseDir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{baseDir: baseDir, logger: logger.With(slog.String("component", "files"))}
}

// WriteFile writes data through a temporary file and renames it into place,
// so readers never observe a half-written report.
func (m *Manager) WriteFile(path string, data []byte) (string, error) {
	fullPath := m.resolvePath(path)
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fullPath)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", fullPath, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", fullPath, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return "", fmt.Errorf("failed to set permissions on %s: %w", fullPath, err)
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		return "", fmt.Errorf("failed to move %s into place: %w", fullPath, err)
	}

	m.logger.Info("Wrote file",
		slog.String("path", fullPath),
		slog.Int("size_bytes", len(data)))

	return fullPath, nil
}

// resolvePath resolves a path relative to the base directory
func (m *Manager) resolvePath(path string) string {
	if filepath.IsAbs(path) || m.baseDir == "" {
		return path
	}
	return filepath.Join(m.baseDir, path)
}
