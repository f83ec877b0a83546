package catalog

import (
	"context"

	"github.com/luxhub/project-service/internal/catalog/dto"
	"github.com/luxhub/project-service/internal/model"
)

type UseCase interface {
	// GetProduct looks up a product by its item number. Returns nil when the
	// item number is not in the catalog.
	GetProduct(ctx context.Context, itemNumber string) (*model.Product, error)

	// Resolve maps an item number to the numeric product identity used by
	// the order tables. Satisfies the ledger's Resolver contract.
	Resolve(ctx context.Context, itemNumber string) (int64, error)

	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
}
