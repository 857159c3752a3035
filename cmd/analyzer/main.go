// Command analyzer runs the sales analysis on local files and writes the
// report documents next to them.
//
// With -in it analyses one file. Without it, it looks in -dir for the
// billing exports SALANAL_PS.XLS and SALANAL_FS.XLS, falling back to every
// sales file there, and files each report under its own directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"salespulse/internal/catalog"
	"salespulse/internal/config"
	"salespulse/internal/console"
	"salespulse/internal/dataprocessing"
	apperrors "salespulse/internal/errors"
	"salespulse/internal/files"
	"salespulse/internal/infrastructure"
	"salespulse/internal/report"
	"salespulse/internal/services"
	"salespulse/internal/validation"
	"salespulse/pkg/contracts"
	"salespulse/pkg/contracts/domain"
)

type options struct {
	input      string
	dir        string
	catalogDir string
	outDir     string
	formats    string
	topN       int
	configFile string
	version    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("analyzer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.input, "in", "", "sales file to analyse (.xls, .xlsx or .csv)")
	fs.StringVar(&opts.dir, "dir", ".", "directory searched for sales files when -in is not set")
	fs.StringVar(&opts.catalogDir, "catalog", "", "company catalog directory (overrides config)")
	fs.StringVar(&opts.outDir, "out", "", "output directory (overrides config)")
	fs.StringVar(&opts.formats, "format", "", "comma separated report formats: pdf,html,xlsx,csv,json")
	fs.IntVar(&opts.topN, "top", 0, "number of products in each performer list")
	fs.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.version {
		fmt.Fprintln(stdout, contracts.VersionString("analyzer"))
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintln(stderr, console.Failure("configuration", err))
		return 1
	}

	logger, closeLog, err := newLogger(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintln(stderr, console.Failure("logger", err))
		return 1
	}
	defer closeLog()

	ctx = infrastructure.EnsureTraceID(ctx)
	if err := analyze(ctx, cfg, opts, logger, stdout); err != nil {
		logger.ErrorContext(ctx, "Analysis failed",
			slog.String("kind", apperrors.Kind(err)),
			slog.String("error", err.Error()))
		fmt.Fprintln(stdout, console.Failure("analysis", err))
		return 1
	}
	return 0
}

func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFile(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.catalogDir != "" {
		cfg.Paths.CatalogDir = opts.catalogDir
	}
	if opts.outDir != "" {
		cfg.Paths.OutputDir = opts.outDir
	}
	if opts.topN < 0 {
		return nil, fmt.Errorf("-top must be positive, got %d", opts.topN)
	}
	if opts.topN > 0 {
		cfg.Report.TopN = opts.topN
	}
	if opts.formats != "" {
		cfg.Report.Formats = splitFormats(opts.formats)
		if len(cfg.Report.Formats) == 0 {
			return nil, fmt.Errorf("-format names no format")
		}
	}
	return cfg, nil
}

// splitFormats splits a comma separated list, dropping blanks and repeats
func splitFormats(s string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// newLogger keeps stdout for the summary: console logging goes to stderr.
func newLogger(cfg config.LoggingConfig, stderr io.Writer) (*slog.Logger, func(), error) {
	if strings.EqualFold(cfg.Output, "console") {
		return infrastructure.NewFormattedLogger(stderr, cfg.Format, cfg.Level), func() {}, nil
	}
	logger, err := infrastructure.InitializeLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = infrastructure.CloseLogFile() }, nil
}

func analyze(ctx context.Context, cfg *config.Config, opts *options, logger *slog.Logger, stdout io.Writer) error {
	// nothing scrapes a CLI run
	otelCfg := infrastructure.OTelConfigFromConfig(cfg.Telemetry)
	otelCfg.MetricExporter = infrastructure.ExporterNone
	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return err
	}
	defer providers.Shutdown(context.Background())

	metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create business metrics: %w", err)
	}

	paths, err := cfg.Paths.Resolve()
	if err != nil {
		return err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}
	paths.LogPathResolution(logger)

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateOutputDirectory(paths.OutputDir); err != nil {
		return err
	}

	cat, err := catalog.NewLoader(logger).Load(ctx, paths.CatalogDir)
	if err != nil {
		return err
	}
	for _, c := range cat.Conflicts() {
		logger.WarnContext(ctx, "Product listed by several companies, the first one wins",
			slog.String("product", c.Product),
			slog.Any("companies", c.Companies))
	}

	processor := dataprocessing.NewProcessor(cat,
		dataprocessing.WithTopN(cfg.Report.TopN),
		dataprocessing.WithLogger(logger),
		dataprocessing.WithMetrics(metrics))
	registry := report.NewDefaultRegistry(report.OptionsFromConfig(cfg.Report), logger, metrics)

	formats := make([]domain.ReportFormat, 0, len(cfg.Report.Formats))
	for _, name := range cfg.Report.Formats {
		f, err := registry.ParseFormat(name)
		if err != nil {
			return err
		}
		formats = append(formats, f)
	}

	output := services.NewOutputService(registry, files.NewManager("", logger), cfg.Report.CSVWithBOM, logger)

	if opts.input != "" {
		if err := validator.ValidateSalesFile(opts.input); err != nil {
			return err
		}
		a, err := processor.AnalyzeFile(ctx, opts.input)
		if err != nil {
			return err
		}
		written, err := output.WriteReports(ctx, a, paths.OutputDir, formats)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, console.AnalysisSummary(cfg.Report.Title, a, written))
		return nil
	}

	if err := validator.ValidateDirectory(opts.dir, "input"); err != nil {
		return err
	}
	inputs, err := discoverInputs(opts.dir)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Batch inputs discovered",
		slog.String("dir", opts.dir),
		slog.Int("count", len(inputs)))

	results, err := services.NewBatchService(processor, output, logger).Run(ctx, inputs, paths.OutputDir, formats)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintln(stdout, console.Failure(r.Input.Label, r.Err))
			continue
		}
		fmt.Fprintln(stdout, console.AnalysisSummary(r.Input.Label, r.Analysis, r.Files))
	}
	if err != nil {
		return err
	}

	failed := services.Failed(results)
	fmt.Fprintln(stdout, console.Outcome(len(results), failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}

// discoverInputs prefers the named billing exports and falls back to every
// sales file in dir.
func discoverInputs(dir string) ([]files.FileInfo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	discovery := files.NewDiscovery(abs)

	inputs, err := discovery.FindBatchInputs(abs)
	if err != nil {
		return nil, err
	}
	if len(inputs) > 0 {
		return inputs, nil
	}
	return discovery.FindSalesFiles(abs)
}
