package ledger

// OrderHistory is the read-only summary of a project's prior order rounds,
// produced by the order-history feed. Ordered maps the catalog's numeric
// product id to the total quantity shipped across all rounds. Rounds counts
// prior submission rounds; the next order number is Rounds+1.
type OrderHistory struct {
	HasOrders bool
	Rounds    int
	Ordered   map[int64]int
}

// NoHistory is the fallback when the order-history feed is unreachable:
// everything renders as new rather than failing the whole load.
func NoHistory() OrderHistory {
	return OrderHistory{HasOrders: false, Ordered: map[int64]int{}}
}
