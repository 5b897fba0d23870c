// Package http owns the router: it builds the Gin engine, wires the
// shared middleware, and mounts every domain module through the Module
// interface.
package http

import (
	"crm_leads_backend/platform/config"
	"crm_leads_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module is implemented by every domain module that exposes routes.
// The router knows modules only through this interface; each module
// mounts its own endpoints.
type Module interface {
	// Name identifies the module in logs.
	Name() string
	// RegisterRoutes mounts the module's endpoints on the shared groups.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext bundles what a module needs to mount routes, so
// RegisterRoutes takes one argument instead of a parameter list that
// grows with every middleware.
type RouterContext struct {
	// Engine is the root Gin engine, for modules that mount outside /api/v1.
	Engine *gin.Engine
	// V1 is the /api/v1 route group.
	V1 *gin.RouterGroup
	// Public is the unauthenticated /api/v1/public group, rate limited
	// more strictly than the rest of the API.
	Public *gin.RouterGroup
	// Protected is the authenticated route group under /api/v1.
	Protected *gin.RouterGroup
	// Admin is the superadmin-only route group under /api/v1/admin.
	Admin *gin.RouterGroup
	// Config exposes only the JWT settings a module may need.
	Config config.JWTConfig
	// AuthMiddleware authenticates requests on Protected and Admin.
	AuthMiddleware gin.HandlerFunc
	// AuthRateLimiter is the stricter rate limiter for auth routes.
	AuthRateLimiter *httpkit.AuthRateLimiter
}
