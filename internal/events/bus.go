// Package events holds the domain event definitions and re-exports the
// platform bus, so modules only ever import internal/events.
package events

import (
	platformevents "crm_leads_backend/platform/events"
	"crm_leads_backend/platform/logger"
)

// InMemoryBus aliases the platform implementation.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus builds the process-local event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
