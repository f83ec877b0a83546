package ledger

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Resolver maps an item number to the catalog's numeric product identity.
// Implementations return ErrProductNotFound (possibly wrapped) when the item
// number no longer exists in the catalog.
type Resolver interface {
	Resolve(ctx context.Context, itemNumber string) (int64, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, itemNumber string) (int64, error)

func (f ResolverFunc) Resolve(ctx context.Context, itemNumber string) (int64, error) {
	return f(ctx, itemNumber)
}

// ReconciledEntry is one display row. A ledger entry expands into at most two
// rows sharing BaseItemNumber: the immutable already-ordered portion and the
// still-editable new portion. DisplayKey is unique per row for UI identity
// and is never persisted.
type ReconciledEntry struct {
	ItemNumber     string `json:"item_number"`
	DisplayKey     string `json:"display_key"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	IsOrdered      bool   `json:"is_ordered"`
	BaseItemNumber string `json:"base_item_number"`
}

// Reconcile splits each ledger entry's quantity into ordered and new portions
// against the order history. Catalog resolution fans out one lookup per entry
// and all lookups settle before any output is returned; entries whose lookup
// fails are excluded from this pass but stay in the ledger.
//
// The ordered portion is clamped to the ledger quantity so a history that
// reports more shipped units than the ledger holds (quantity reduced after an
// order) never produces a negative new remainder.
func Reconcile(ctx context.Context, l *Ledger, history OrderHistory, resolve Resolver) []ReconciledEntry {
	items := l.Items()
	if len(items) == 0 {
		return nil
	}

	if !history.HasOrders {
		entries := make([]ReconciledEntry, 0, len(items))
		for _, item := range items {
			entries = append(entries, newEntry(item.ItemNumber, item.Name, item.Quantity, false))
		}
		return entries
	}

	type resolution struct {
		productID int64
		ok        bool
	}
	resolved := make([]resolution, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, itemNumber string) {
			defer wg.Done()
			id, err := resolve.Resolve(ctx, itemNumber)
			if err != nil {
				return
			}
			resolved[i] = resolution{productID: id, ok: true}
		}(i, item.ItemNumber)
	}
	wg.Wait()

	var entries []ReconciledEntry
	for i, item := range items {
		if !resolved[i].ok {
			continue
		}
		recorded := history.Ordered[resolved[i].productID]
		ordered := min(item.Quantity, recorded)
		remaining := item.Quantity - ordered

		if ordered > 0 {
			entries = append(entries, newEntry(item.ItemNumber, item.Name, ordered, true))
		}
		if remaining > 0 {
			entries = append(entries, newEntry(item.ItemNumber, item.Name, remaining, false))
		}
	}
	return entries
}

func newEntry(itemNumber, name string, qty int, ordered bool) ReconciledEntry {
	key := itemNumber + "_ordered"
	if !ordered {
		key = itemNumber + "_new_" + displayToken()
	}
	return ReconciledEntry{
		ItemNumber:     itemNumber,
		DisplayKey:     key,
		Name:           name,
		Quantity:       qty,
		IsOrdered:      ordered,
		BaseItemNumber: itemNumber,
	}
}

// displayToken is an opaque unique token for the new-portion display key. It
// only has to be unique within one reconcile pass.
func displayToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
