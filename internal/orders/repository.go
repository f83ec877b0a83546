package orders

import (
	"context"

	"github.com/luxhub/project-service/internal/ledger"
	"github.com/luxhub/project-service/internal/model"
)

type Repository interface {
	// HistoryForProject summarizes all prior rounds: Rounds is the count of
	// order rows, Ordered the per-product quantity totals.
	HistoryForProject(ctx context.Context, projectID string) (ledger.OrderHistory, error)

	// CreateOrder persists an order and its items in one transaction.
	CreateOrder(ctx context.Context, order *model.Order, items []model.OrderItem) error

	FindByProject(ctx context.Context, projectID string) ([]model.Order, error)
}
