// Package config provides configuration management for the loan calculator
// service.
//
// # Configuration Sources
//
// Configuration is layered in increasing order of precedence:
//
//	1. Default values (Default)
//	2. YAML file (config.yaml, configs/config.yaml or LOANCALC_CONFIG_FILE)
//	3. Environment variables
//
// # Environment Variables
//
// Environment variables follow the pattern LOANCALC_<SECTION>_<FIELD>:
//
//	LOANCALC_SERVER_PORT=8080
//	LOANCALC_LOGGING_LEVEL=debug
//	LOANCALC_UPLOAD_MAX_BYTES=20971520
//	LOANCALC_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Validation
//
// The merged configuration is validated with go-playground/validator struct
// tags; Load fails on out-of-range ports, non-positive timeouts, unknown log
// outputs or exporters.
package config
