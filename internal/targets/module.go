// Package targets provides per-admin revenue target management.
package targets

import (
	apphttp "crm_leads_backend/internal/http"
	"crm_leads_backend/internal/targets/handler"
	"crm_leads_backend/internal/targets/repository"
	"crm_leads_backend/internal/targets/service"
	"crm_leads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the revenue targets bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the targets module. The user checker is injected by
// the composition root and backed by the identity repository.
func NewModule(pool *pgxpool.Pool, users service.UserChecker, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, users)
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string { return "targets" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterReadRoutes(ctx.Protected.Group("/targets"))
	m.handler.RegisterWriteRoutes(ctx.Admin.Group("/targets"))
}
