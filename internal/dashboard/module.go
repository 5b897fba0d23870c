// Package dashboard provides the performance overview for supervisors.
package dashboard

import (
	"crm_leads_backend/internal/dashboard/handler"
	"crm_leads_backend/internal/dashboard/repository"
	"crm_leads_backend/internal/dashboard/service"
	apphttp "crm_leads_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the dashboard bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	return &Module{handler: handler.New(svc)}
}

func (m *Module) Name() string { return "dashboard" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/dashboard"))
}
