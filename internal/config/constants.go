package config

import "time"

// Application constants
const (
	AppName     = "Loan Capacity Calculator"
	ServiceName = "loancalc"

	// Server
	DefaultPort           = 8080
	DefaultRequestTimeout = 60 * time.Second

	// Rate Limiting
	DefaultRateLimit = 20 // requests per second
	DefaultBurstSize = 40

	// Uploads
	DefaultMaxUploadBytes = 10 << 20 // 10MB

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogFile   = "logs/loancalc.log"

	// Deployment
	DefaultEnvironment = "production"
)
