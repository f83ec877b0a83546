package ledger

// Merge groups line items by normalized item number, summing quantities and
// keeping the first-seen name per key. It is idempotent and order-insensitive
// for the summed quantity, which matters because the store re-merges after
// every local mutation before persisting.
func Merge(items []LineItem) *Ledger {
	l := NewLedger()
	for _, item := range items {
		key := NormalizeItemNumber(item.ItemNumber)
		if existing, ok := l.items[key]; ok {
			existing.Quantity += item.Quantity
			l.items[key] = existing
			continue
		}
		l.Set(LineItem{ItemNumber: key, Name: item.Name, Quantity: item.Quantity})
	}
	// Summing may have cancelled nothing here (quantities are positive), but
	// input lists from callers can carry zero or negative rows; drop them.
	for _, key := range append([]string(nil), l.order...) {
		if l.items[key].Quantity <= 0 {
			l.Remove(key)
		}
	}
	return l
}
