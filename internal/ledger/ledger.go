// Package ledger holds the project product ledger core: the notes codec, the
// canonical merge, and the ordered/new reconciliation. Everything in this
// package is free of I/O except Reconcile, which fans out catalog lookups
// through an injected Resolver.
package ledger

// LineItem is one product row in a project's ledger. ItemNumber is the
// natural key; Name is display text captured when the line was written and
// may drift from the catalog's current name.
type LineItem struct {
	ItemNumber string `json:"item_number"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

// Ledger is the canonical form: one entry per normalized item number,
// quantity >= 1, insertion order preserved so re-encoding is stable.
type Ledger struct {
	order []string
	items map[string]LineItem
}

func NewLedger() *Ledger {
	return &Ledger{items: make(map[string]LineItem)}
}

// Get returns the entry for the normalized item number.
func (l *Ledger) Get(itemNumber string) (LineItem, bool) {
	item, ok := l.items[NormalizeItemNumber(itemNumber)]
	return item, ok
}

// Set inserts or replaces an entry. A quantity <= 0 removes it; canonical
// form never retains zero-quantity entries.
func (l *Ledger) Set(item LineItem) {
	key := NormalizeItemNumber(item.ItemNumber)
	if item.Quantity <= 0 {
		l.Remove(key)
		return
	}
	item.ItemNumber = key
	if _, ok := l.items[key]; !ok {
		l.order = append(l.order, key)
	}
	l.items[key] = item
}

// Remove drops the entry entirely.
func (l *Ledger) Remove(itemNumber string) {
	key := NormalizeItemNumber(itemNumber)
	if _, ok := l.items[key]; !ok {
		return
	}
	delete(l.items, key)
	for i, k := range l.order {
		if k == key {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Items returns the entries in insertion order.
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, 0, len(l.order))
	for _, key := range l.order {
		out = append(out, l.items[key])
	}
	return out
}

func (l *Ledger) Len() int {
	return len(l.items)
}

// TotalQuantity sums all entry quantities.
func (l *Ledger) TotalQuantity() int {
	total := 0
	for _, item := range l.items {
		total += item.Quantity
	}
	return total
}

// Clone returns an independent copy. The store mutates a clone optimistically
// and keeps the original for rollback.
func (l *Ledger) Clone() *Ledger {
	c := NewLedger()
	for _, key := range l.order {
		c.order = append(c.order, key)
		c.items[key] = l.items[key]
	}
	return c
}
