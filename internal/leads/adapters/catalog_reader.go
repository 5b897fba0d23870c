package adapters

import (
	"context"
	"fmt"

	catalogrepo "crm_leads_backend/internal/catalog/repository"

	"github.com/google/uuid"
)

// CatalogReaderAdapter implements ports.CatalogReader on top of the
// catalog repository.
type CatalogReaderAdapter struct {
	repo *catalogrepo.Repository
}

func NewCatalogReaderAdapter(repo *catalogrepo.Repository) *CatalogReaderAdapter {
	return &CatalogReaderAdapter{repo: repo}
}

func (a *CatalogReaderAdapter) ProductExists(ctx context.Context, productID uuid.UUID) (bool, error) {
	if a == nil || a.repo == nil {
		return false, fmt.Errorf("catalog reader not configured")
	}
	return a.repo.ProductExists(ctx, productID)
}

func (a *CatalogReaderAdapter) PackageBelongsToProduct(ctx context.Context, packageID, productID uuid.UUID) (bool, error) {
	if a == nil || a.repo == nil {
		return false, fmt.Errorf("catalog reader not configured")
	}
	return a.repo.PackageBelongsToProduct(ctx, packageID, productID)
}
