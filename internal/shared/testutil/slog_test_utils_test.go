package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
		AssertLogContains(t, handler, slog.LevelWarn, "warn")
	})

	t.Run("derived loggers share records and keep attributes", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("service", "batch")).Info("Batch input complete")
		logger.WithGroup("report").Info("Rendered", slog.String("format", "pdf"))

		AssertLogAttr(t, handler, "service", "batch")
		AssertLogAttr(t, handler, "report.format", "pdf")
		assert.Equal(t, 2, handler.Count())
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		logger.Info("one")
		handler.Clear()
		assert.Zero(t, handler.Count())
		AssertNoErrors(t, handler)
	})
}

func TestWriteCatalog(t *testing.T) {
	dir := WriteCatalog(t, map[string][]string{"T Stanes": {"Nimbecidine", "Ecoside"}})

	data, err := os.ReadFile(filepath.Join(dir, "T_Stanes_Products.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Product Name\nNimbecidine\nEcoside\n", string(data))
}

func TestSalesRows(t *testing.T) {
	rows := SalesRows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Alecto 50 Ml", rows[1]["ITNAME"])
}
