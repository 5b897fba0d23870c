// Package followup provides the handle-customer bounded context: the
// derived queue of completed leads awaiting after-sales follow-up.
package followup

import (
	"crm_leads_backend/internal/events"
	"crm_leads_backend/internal/followup/handler"
	"crm_leads_backend/internal/followup/repository"
	"crm_leads_backend/internal/followup/service"
	apphttp "crm_leads_backend/internal/http"
	"crm_leads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the follow-up queue bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus)
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string { return "followup" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/handle-customers"))
}
