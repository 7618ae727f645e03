// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"callportal_backend/internal/auth"
	"callportal_backend/platform/config"
	"callportal_backend/platform/logger"
)

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the HTTP server and CORS settings.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// ClientFactory builds a token-bound upstream client per request.
	ClientFactory auth.Factory
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
