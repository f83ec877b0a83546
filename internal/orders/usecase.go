package orders

import (
	"context"

	"github.com/luxhub/project-service/internal/ledger"
	"github.com/luxhub/project-service/internal/model"
)

type UseCase interface {
	// Submit ships one round of line items for a project. The ledger handler
	// calls this with the unordered remainder prepared by the ledger store.
	Submit(ctx context.Context, projectID string, sub *ledger.OrderSubmission) (*model.Order, error)

	// History satisfies the ledger's HistoryProvider contract; results are
	// cached briefly and invalidated on submission.
	History(ctx context.Context, projectID string) (ledger.OrderHistory, error)

	ListOrders(ctx context.Context, projectID string) ([]model.Order, error)

	// InvalidateHistory drops the cached summary for a project. Called by
	// the event listener when another producer records an order.
	InvalidateHistory(ctx context.Context, projectID string)
}
