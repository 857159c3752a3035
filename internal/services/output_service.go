package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"salespulse/internal/exporter"
	"salespulse/pkg/contracts/domain"
)

// ArtifactWriter persists one output file and returns its final path
type ArtifactWriter interface {
	WriteFile(path string, data []byte) (string, error)
}

// OutputService writes the documents of one analysis to a directory
type OutputService struct {
	reports ReportRenderer
	writer  ArtifactWriter
	csv     *exporter.CSVWriter
	logger  *slog.Logger
}

// NewOutputService creates an output service. csvWithBOM prefixes the CSV
// summaries with a UTF-8 byte order mark.
func NewOutputService(reports ReportRenderer, writer ArtifactWriter, csvWithBOM bool, logger *slog.Logger) *OutputService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OutputService{
		reports: reports,
		writer:  writer,
		csv:     exporter.NewCSVWriter(csvWithBOM, logger),
		logger:  logger.With(slog.String("service", "output")),
	}
}

// WriteReports renders every format concurrently into dir. CSV writes one
// file per summary table. The first failure cancels the rest; the returned
// paths are sorted.
func (s *OutputService) WriteReports(ctx context.Context, a *domain.SalesAnalysis, dir string, formats []domain.ReportFormat) ([]string, error) {
	if len(formats) == 0 {
		return nil, ErrNoFormats
	}

	var (
		mu    sync.Mutex
		paths []string
	)
	record := func(p string) {
		mu.Lock()
		paths = append(paths, p)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		format := format
		g.Go(func() error {
			if format == domain.ReportFormatCSV {
				return s.writeCSVTables(gctx, a, dir, record)
			}

			doc, err := s.reports.Render(gctx, format, a)
			if err != nil {
				return err
			}
			p, err := s.writer.WriteFile(filepath.Join(dir, doc.FileName), doc.Data)
			if err != nil {
				return fmt.Errorf("write %s report: %w", format, err)
			}
			record(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(paths)
	s.logger.InfoContext(ctx, "Reports written",
		slog.String("source", a.Source),
		slog.String("dir", dir),
		slog.Int("files", len(paths)))
	return paths, nil
}

func (s *OutputService) writeCSVTables(ctx context.Context, a *domain.SalesAnalysis, dir string, record func(string)) error {
	for _, table := range exporter.Tables(a) {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := s.csv.EncodeTable(table)
		if err != nil {
			return fmt.Errorf("encode %s: %w", table.Name, err)
		}
		p, err := s.writer.WriteFile(filepath.Join(dir, table.FileName()), data)
		if err != nil {
			return fmt.Errorf("write %s: %w", table.FileName(), err)
		}
		record(p)
	}
	return nil
}
