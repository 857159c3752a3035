package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"salespulse/internal/catalog"
	"salespulse/internal/config"
	"salespulse/internal/dataprocessing"
	apperrors "salespulse/internal/errors"
	"salespulse/internal/infrastructure"
	customMiddleware "salespulse/internal/middleware"
	"salespulse/internal/report"
	"salespulse/internal/services"
	handlers "salespulse/internal/transport/http"
)

// Application represents the served sales analyzer
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Catalog       *catalog.Catalog
	Services      *ServiceContainer

	errorHandler *apperrors.ErrorHandler
	listener     net.Listener
	serveErr     chan error
	printer      report.PDFPrinter
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Analysis *services.AnalysisService
	Health   *services.HealthService
	Reports  *report.Registry
	Metrics  *infrastructure.BusinessMetrics
}

// Option customises application construction
type Option func(*Application)

// WithCatalog uses cat instead of loading the configured catalog directory
func WithCatalog(cat *catalog.Catalog) Option {
	return func(a *Application) { a.Catalog = cat }
}

// WithPDFPrinter replaces the headless Chrome printer
func WithPDFPrinter(p report.PDFPrinter) Option {
	return func(a *Application) { a.printer = p }
}

// WithOTelProviders reuses already initialised providers
func WithOTelProviders(p *infrastructure.OTelProviders) Option {
	return func(a *Application) { a.OTelProviders = p }
}

// NewApplication creates a new application instance with dependency injection
func NewApplication(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	app := &Application{
		Config:   cfg,
		Logger:   logger,
		serveErr: make(chan error, 1),
	}
	for _, opt := range opts {
		opt(app)
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion))

	paths, err := cfg.Paths.Resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)
	app.Paths = paths

	if app.OTelProviders == nil {
		providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFromConfig(cfg.Telemetry), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
		}
		app.OTelProviders = providers
	}

	if err := app.initializeServices(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices loads the catalog and builds the service graph
func (a *Application) initializeServices(ctx context.Context) error {
	metrics, err := infrastructure.CreateBusinessMetrics(a.OTelProviders.Meter)
	if err != nil {
		return fmt.Errorf("failed to create business metrics: %w", err)
	}

	if a.Catalog == nil {
		cat, err := catalog.NewLoader(a.Logger).Load(ctx, a.Paths.CatalogDir)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		a.Catalog = cat
	}
	for _, c := range a.Catalog.Conflicts() {
		a.Logger.Warn("Product listed by several companies, the first one wins",
			slog.String("product", c.Product),
			slog.Any("companies", c.Companies))
	}

	processor := dataprocessing.NewProcessor(a.Catalog,
		dataprocessing.WithTopN(a.Config.Report.TopN),
		dataprocessing.WithLogger(a.Logger),
		dataprocessing.WithMetrics(metrics))

	reportOpts := report.OptionsFromConfig(a.Config.Report)
	reportOpts.Printer = a.printer
	registry := report.NewDefaultRegistry(reportOpts, a.Logger, metrics)

	a.Services = &ServiceContainer{
		Analysis: services.NewAnalysisService(processor, registry, a.Logger),
		Health:   services.NewHealthService(config.AppVersion, a.Catalog, a.Paths.OutputDir, a.Logger),
		Reports:  registry,
		Metrics:  metrics,
	}
	a.errorHandler = apperrors.NewErrorHandler(a.Logger, strings.EqualFold(a.Config.Logging.Level, "debug"))

	return nil
}

// setupRouter configures the HTTP router with all routes.
// Middleware order: RequestID → RealIP → OTel → Logger → Recoverer → Timeout.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Services.Metrics, a.Logger).Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.errorHandler))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.CORS(a.getCORSConfig()))

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.errorHandler,
			a.Logger,
		).Handler)
	}

	r.NotFound(a.errorHandler.NotFound)
	r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

	// Scrapes stay outside the request timeout
	r.Handle(config.MetricsEndpoint, handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP))

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.errorHandler))
		a.setupStatusRoutes(r)
		a.setupAnalyzeRoutes(r)
	})

	a.Router = r
}

func (a *Application) setupStatusRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		healthHandler := handlers.NewHealthHandler(a.Services.Health, a.Logger)
		r.Get("/", healthHandler.Status)
		r.Get(config.HealthEndpoint, healthHandler.HealthCheck)
		r.Get(config.VersionEndpoint, healthHandler.Version)
	})
}

func (a *Application) setupAnalyzeRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.BodyLimit(a.Config.Server.MaxBodyBytes))

		analyzeHandler := handlers.NewAnalyzeHandler(
			a.Services.Analysis,
			a.Services.Health,
			customMiddleware.NewValidator(a.Logger),
			a.Logger,
			a.errorHandler,
		)
		r.Mount(config.AnalyzeEndpoint, analyzeHandler.Routes())
		r.Mount(config.APIAnalyzeEndpoint, analyzeHandler.Routes())
	})
}

// getCORSConfig returns the CORS configuration. Without EnableCORS any
// origin may call the API, which is what spreadsheet connectors need.
func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	cfg := customMiddleware.CORSConfig{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			"X-Requested-With",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
			"X-Request-ID",
		},
		MaxAge: 300,
		Logger: a.Logger,
	}

	if a.Config.Security.EnableCORS {
		cfg.AllowedOrigins = append([]string(nil), a.Config.Security.AllowedOrigins...)
	} else {
		cfg.AllowedOrigins = []string{"*"}
	}

	a.Logger.Info("CORS configured", slog.Any("allowed_origins", cfg.AllowedOrigins))
	return cfg
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Addr returns the address the server listens on once started
func (a *Application) Addr() string {
	if a.listener == nil {
		return a.Server.Addr
	}
	return a.listener.Addr().String()
}

// Start binds the listener and serves in the background. A serve failure
// cancels ctx through cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	a.listener = ln

	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("address", ln.Addr().String()),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			a.serveErr <- err
			cancel()
		}
	}()

	if err := a.performStartupHealthCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Startup health check warnings", slog.String("warnings", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("analyze", fmt.Sprintf("http://%s%s", ln.Addr().String(), config.AnalyzeEndpoint)),
		slog.Int("companies", len(a.Catalog.Companies())))

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case sig := <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal", slog.String("signal", sig.String()))
	case err := <-a.serveErr:
		_ = a.Stop(context.Background())
		return fmt.Errorf("server stopped: %w", err)
	}

	return a.Stop(context.Background())
}

// performStartupHealthCheck reports problems that do not stop the server
func (a *Application) performStartupHealthCheck(ctx context.Context) error {
	var warnings []string

	health := a.Services.Health.HealthCheck(ctx)
	if health.Status != "ok" {
		for name, check := range health.Checks {
			warnings = append(warnings, fmt.Sprintf("%s: %s", name, check))
		}
	}

	if len(a.Catalog.Companies()) == 0 {
		warnings = append(warnings, "catalog is empty, every product reports as Other")
	}

	if len(warnings) > 0 {
		return fmt.Errorf("startup health check warnings: %s", strings.Join(warnings, "; "))
	}

	a.Logger.InfoContext(ctx, "Startup health check passed")
	return nil
}
