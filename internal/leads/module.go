// Package leads provides the lead pipeline bounded context: public
// inquiry intake with round-robin assignment, the authenticated board,
// merge-patch lifecycle updates, and append-only notes.
package leads

import (
	"crm_leads_backend/internal/events"
	apphttp "crm_leads_backend/internal/http"
	"crm_leads_backend/internal/leads/handler"
	"crm_leads_backend/internal/leads/intake"
	"crm_leads_backend/internal/leads/management"
	"crm_leads_backend/internal/leads/notes"
	"crm_leads_backend/internal/leads/ports"
	"crm_leads_backend/internal/leads/repository"
	"crm_leads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
}

// NewModule wires the leads module. The catalog reader is injected by
// the composition root so leads never imports the catalog domain.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, catalog ports.CatalogReader, val *validator.Validator) *Module {
	repo := repository.New(pool)

	intakeSvc := intake.New(repo, catalog, eventBus)
	mgmtSvc := management.New(repo, eventBus)
	notesSvc := notes.New(repo)

	notesHandler := handler.NewNotesHandler(notesSvc, val)

	return &Module{
		handler:       handler.New(mgmtSvc, notesHandler, val),
		publicHandler: handler.NewPublicHandler(intakeSvc, val),
	}
}

func (m *Module) Name() string { return "leads" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))

	// Intake is reachable unauthenticated (the public form, rate
	// limited) and authenticated (admins entering leads manually).
	m.publicHandler.RegisterRoutes(ctx.Public.Group("/inquiries"))
	m.publicHandler.RegisterRoutes(ctx.Protected.Group("/inquiries"))
	ctx.Public.GET("/whatsapp-qr", handler.ContactQR)
}
