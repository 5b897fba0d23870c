// Package ports defines the interfaces the leads domain requires from
// other bounded contexts. The implementations are provided by the
// composition root, so leads never imports the catalog domain directly.
package ports

import (
	"context"

	"github.com/google/uuid"
)

// CatalogReader answers the one question intake has for the catalog:
// does this product (and optionally this package under it) exist?
type CatalogReader interface {
	ProductExists(ctx context.Context, productID uuid.UUID) (bool, error)
	PackageBelongsToProduct(ctx context.Context, packageID, productID uuid.UUID) (bool, error)
}
