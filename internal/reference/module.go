// Package reference provides the lookup lists leads point at:
// obstacles and promos.
package reference

import (
	apphttp "crm_leads_backend/internal/http"
	"crm_leads_backend/internal/reference/handler"
	"crm_leads_backend/internal/reference/repository"
	"crm_leads_backend/internal/reference/service"
	"crm_leads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the reference lists bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string { return "reference" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterReadRoutes(ctx.Protected.Group("/reference"))
	m.handler.RegisterWriteRoutes(ctx.Admin.Group("/reference"))
}
