// Package catalog provides the product catalog bounded context:
// products and the priced packages the intake form offers.
package catalog

import (
	"crm_leads_backend/internal/catalog/handler"
	"crm_leads_backend/internal/catalog/repository"
	"crm_leads_backend/internal/catalog/service"
	apphttp "crm_leads_backend/internal/http"
	"crm_leads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
}

func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	return &Module{handler: handler.New(svc, val), repo: repo}
}

// Repository exposes the catalog repository for cross-module adapters
// wired by the composition root.
func (m *Module) Repository() *repository.Repository { return m.repo }

func (m *Module) Name() string { return "catalog" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Product list is public: the intake form renders it before any login.
	m.handler.RegisterReadRoutes(ctx.Public.Group("/catalog"))
	m.handler.RegisterReadRoutes(ctx.Protected.Group("/catalog"))
	m.handler.RegisterWriteRoutes(ctx.Admin.Group("/catalog"))
}
