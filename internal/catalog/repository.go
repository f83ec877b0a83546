package catalog

import (
	"context"

	"github.com/luxhub/project-service/internal/catalog/dto"
	"github.com/luxhub/project-service/internal/model"
)

type Repository interface {
	FindByItemNumber(ctx context.Context, itemNumber string) (*model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
}
