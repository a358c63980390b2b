// Package http implements the HTTP handlers of the loan service. Handlers
// parse the request, call a service and write the response; failures go
// through errors.ErrorHandler.
//
// # Endpoints
//
//	POST /process/        multipart upload ("file", "output_type"), returns the document
//	GET  /api/health      liveness summary
//	GET  /api/health/live runtime details
//	GET  /api/health/ready readiness of registered dependencies
//	GET  /api/version     build information
//	GET  /metrics         Prometheus exposition
//
// # Errors
//
// Pipeline failures from services.LoanService are mapped to APIErrors:
//
//	services.ErrMissingFile    -> 400 MISSING_FILE
//	services.ErrUnreadableFile -> 400 UNREADABLE_FILE
//	services.ErrMissingColumns -> 400 MISSING_COLUMNS
//	services.ErrNoValidRows    -> 400 NO_VALID_ROWS
//
// The body is the plain-text message unless the client accepts
// application/problem+json.
package http
