// Package auth provides the authentication bounded context: sign-in,
// token refresh, and the current-user endpoint.
package auth

import (
	"crm_leads_backend/internal/auth/handler"
	"crm_leads_backend/internal/auth/repository"
	"crm_leads_backend/internal/auth/service"
	apphttp "crm_leads_backend/internal/http"
	"crm_leads_backend/platform/config"
	"crm_leads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg)
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string { return "auth" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/auth")
	group.POST("/login", ctx.AuthRateLimiter.RateLimit(), m.handler.Login)
	group.POST("/refresh", ctx.AuthRateLimiter.RateLimit(), m.handler.Refresh)

	ctx.Protected.GET("/auth/me", m.handler.Me)
}
