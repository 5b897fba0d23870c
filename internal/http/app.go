package http

import (
	"context"

	"crm_leads_backend/internal/events"
	"crm_leads_backend/platform/config"
	"crm_leads_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is what the composition root hands to the router: configuration,
// shared infrastructure, and the modules to mount.
type App struct {
	Config   RouterConfig
	Logger   *logger.Logger
	// Health backs the readiness endpoint, typically a DB ping.
	Health   HealthChecker
	EventBus events.Bus
	Modules  []Module
}
