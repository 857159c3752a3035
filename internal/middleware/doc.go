// Package middleware provides the HTTP middleware chain of the analysis
// server: request ids, OpenTelemetry spans and HTTP metrics, structured
// request logging, panic recovery, security headers, CORS, rate limiting,
// request timeouts and body limits. It also holds the payload Validator
// used by the handlers.
//
// Recommended order:
//
//	r.Use(middleware.RequestID)
//	r.Use(middleware.RealIP)
//	r.Use(otelMiddleware.Handler)
//	r.Use(middleware.StructuredLogger(logger))
//	r.Use(middleware.Recoverer(errorHandler))
//	r.Use(middleware.SecurityHeaders)
//	r.Use(middleware.CORS(corsConfig))
//	r.Use(rateLimiter.Handler)
//	r.Use(middleware.Timeout(timeout, errorHandler))
//
// Failures are written as RFC 7807 problems through errors.ErrorHandler.
package middleware
