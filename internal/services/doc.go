// Package services sits between the front ends and the analysis core.
//
// AnalysisService runs one batch of rows through the Processor and renders
// the requested document. OutputService renders several formats of one
// analysis concurrently and writes them to an output directory, and
// BatchService repeats that for every discovered sales file so the CLI can
// report per-file failures. HealthService backs the status and health
// endpoints.
//
// Services depend on small interfaces (Analyzer, ReportRenderer,
// ArtifactWriter) so tests can substitute testify mocks.
package services
