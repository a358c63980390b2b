// Package app wires the loan service together and manages its lifecycle.
//
// Initialization order:
//
//	1. Load configuration (defaults, YAML file, LOANCALC_* environment)
//	2. Initialize the slog logger and OpenTelemetry providers
//	3. Create business metrics and services
//	4. Build the chi router and HTTP server
//
// Run serves until SIGINT or SIGTERM and then shuts the server and the
// telemetry providers down within Server.ShutdownTimeout. Errors are
// returned to main; the package never calls os.Exit.
package app
