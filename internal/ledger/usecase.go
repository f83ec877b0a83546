package ledger

import "context"

// UseCase is the project ledger store: per-project sessions that keep the
// notes text, the canonical ledger, and the reconciled view consistent.
type UseCase interface {
	// Load fetches the project's notes and order history and rebuilds the
	// reconciled view. A later Load supersedes one still in flight.
	Load(ctx context.Context, projectID string) ([]ReconciledEntry, error)

	// Entries returns the current reconciled view without touching I/O.
	Entries(projectID string) ([]ReconciledEntry, error)

	// SetQuantity changes the unordered portion of an entry to quantity.
	// The ordered portion is immutable; quantity must be within [1, max].
	SetQuantity(ctx context.Context, projectID, itemNumber string, quantity int) ([]ReconciledEntry, error)

	// RemoveItem drops an entry entirely, ordered portion included.
	RemoveItem(ctx context.Context, projectID, itemNumber string) ([]ReconciledEntry, error)

	// PrepareOrderSubmission collects the unordered remainder for the next
	// round. Fails with ErrNoNewItems when nothing is left to order.
	PrepareOrderSubmission(ctx context.Context, projectID string) (*OrderSubmission, error)

	// OnOrderSubmitted refreshes order history after a submission so just
	// shipped entries flip to ordered without a full reload.
	OnOrderSubmitted(ctx context.Context, projectID string) ([]ReconciledEntry, error)
}

// OrderSubmission is the payload for one order round: only quantities that
// were never shipped before.
type OrderSubmission struct {
	OrderNumber int        `json:"order_number"`
	Items       []LineItem `json:"items"`
}

// ProjectNotes is the slice of the project persistence collaborator the
// ledger depends on. The notes string is the only project field it touches.
type ProjectNotes interface {
	GetNotes(ctx context.Context, projectID string) (string, error)
	UpdateNotes(ctx context.Context, projectID, notes string) error
}

// HistoryProvider fetches the order-history summary for a project.
type HistoryProvider interface {
	History(ctx context.Context, projectID string) (OrderHistory, error)
}
