// Package identity provides the user account bounded context. Admin
// users join the assignment rotation while active; deactivation takes
// them out without touching their history.
package identity

import (
	apphttp "crm_leads_backend/internal/http"
	"crm_leads_backend/internal/identity/handler"
	"crm_leads_backend/internal/identity/repository"
	"crm_leads_backend/internal/identity/service"
	"crm_leads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the identity bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
}

func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	return &Module{handler: handler.New(svc, val), repo: repo}
}

// Repository exposes the user repository for cross-module wiring (the
// targets module checks user existence through it).
func (m *Module) Repository() *repository.Repository { return m.repo }

func (m *Module) Name() string { return "identity" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterReadRoutes(ctx.Protected.Group("/users"))
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/users"))
}
