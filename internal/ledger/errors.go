package ledger

import "errors"

var (
	// ErrNoNewItems is returned when an order submission is prepared but
	// every ledger entry is already fully ordered.
	ErrNoNewItems = errors.New("no new items to order")

	// ErrInvalidQuantity is returned when a caller sets a quantity outside
	// [1, max] or tries to mutate an entry that is fully ordered.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrProductNotFound marks a ledger entry whose catalog identity could
	// not be resolved. The entry stays in the ledger but is excluded from
	// reconciled output until the lookup succeeds.
	ErrProductNotFound = errors.New("product not found")

	// ErrNotLoaded is returned when a store operation runs before Load, or
	// after a load failed.
	ErrNotLoaded = errors.New("ledger not loaded")

	// ErrItemNotFound is returned when a mutation targets an item number the
	// ledger doesn't contain.
	ErrItemNotFound = errors.New("item not in ledger")
)
