// Package app wires the served sales analyzer together: configuration,
// catalog, analysis core, report renderers, middleware and the HTTP server.
//
// # Initialization Flow
//
//  1. Resolve paths and create the output and log directories
//  2. Initialize OpenTelemetry (tracing plus the Prometheus exporter)
//  3. Load the company catalog and report conflicting products
//  4. Build the processor, renderer registry and services
//  5. Set up middleware and routes
//  6. Create the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// # Graceful Shutdown
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests within
// the configured shutdown timeout and flushes the telemetry providers.
//
// # Error Handling
//
// Initialization errors are returned to the caller. The package never calls
// os.Exit, leaving that decision to main.
package app
