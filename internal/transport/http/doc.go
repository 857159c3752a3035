// Package http implements the HTTP request handlers of the sales analyzer.
// Handlers stay thin: they decode the request, call a service and write
// the response. Failures are handed to the shared error handler, which
// answers with RFC 7807 problem JSON.
//
// # Endpoints
//
//	GET  /             service status payload
//	GET  /analyze      same status payload
//	POST /analyze      analyse {"data": [...]} and return a report
//	POST /api/analyze  alias of /analyze
//	GET  /health       liveness and dependency checks
//	GET  /version      build and runtime information
//	GET  /metrics      Prometheus exposition
//
// # Report Responses
//
// POST /analyze answers with the rendered document itself. The default
// format is PDF; ?format=html|xlsx|csv|json selects another one. Documents
// are sent as attachments named Sales_Analysis_<timestamp>.<ext>; the json
// format returns the analysis body inline.
//
//	HTTP/1.1 200 OK
//	Content-Type: application/pdf
//	Content-Disposition: attachment; filename=Sales_Analysis_20250301_103000.pdf
//
// # Error Handling
//
// All errors follow the RFC 7807 Problem Details format:
//
//	{
//	    "type": "/errors/data/missing-column",
//	    "title": "Missing Required Column",
//	    "status": 422,
//	    "detail": "missing required column GST (accepted: GST, PER, GST RATE)",
//	    "instance": "/analyze",
//	    "missing_field": "GST",
//	    "available_columns": ["ITNAME", "QTY"]
//	}
//
// # Testing
//
// Handlers are tested with httptest against mocked services, so no
// browser or catalog is needed.
package http
