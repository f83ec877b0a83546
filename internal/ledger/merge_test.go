package ledger

import (
	"reflect"
	"testing"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		want  []LineItem
	}{
		{
			name:  "empty input",
			items: nil,
			want:  []LineItem{},
		},
		{
			name: "duplicates are summed, first name wins",
			items: []LineItem{
				{ItemNumber: "A1", Name: "Old Name", Quantity: 2},
				{ItemNumber: "A1", Name: "New Name", Quantity: 3},
			},
			want: []LineItem{{ItemNumber: "A1", Name: "Old Name", Quantity: 5}},
		},
		{
			name: "legacy suffixed keys collapse onto the base key",
			items: []LineItem{
				{ItemNumber: "ABC123_ordered", Name: "Lamp", Quantity: 2},
				{ItemNumber: "ABC123_new_999", Name: "Lamp", Quantity: 3},
			},
			want: []LineItem{{ItemNumber: "ABC123", Name: "Lamp", Quantity: 5}},
		},
		{
			name: "distinct keys keep first-seen order",
			items: []LineItem{
				{ItemNumber: "B2", Name: "Beta", Quantity: 1},
				{ItemNumber: "A1", Name: "Alpha", Quantity: 2},
				{ItemNumber: "B2", Name: "Beta", Quantity: 4},
			},
			want: []LineItem{
				{ItemNumber: "B2", Name: "Beta", Quantity: 5},
				{ItemNumber: "A1", Name: "Alpha", Quantity: 2},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Merge(tc.items).Items()
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Merge() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestMergeIdempotent(t *testing.T) {
	items := []LineItem{
		{ItemNumber: "A1", Name: "Alpha", Quantity: 2},
		{ItemNumber: "B2_ordered", Name: "Beta", Quantity: 1},
		{ItemNumber: "A1_new_42", Name: "Alpha", Quantity: 7},
		{ItemNumber: "B2", Name: "Beta", Quantity: 3},
	}

	once := Merge(items)
	twice := Merge(once.Items())

	if !reflect.DeepEqual(once.Items(), twice.Items()) {
		t.Fatalf("merge not idempotent:\n once %+v\ntwice %+v", once.Items(), twice.Items())
	}
}

func TestMergeQuantityOrderInsensitive(t *testing.T) {
	forward := []LineItem{
		{ItemNumber: "A1", Name: "Alpha", Quantity: 2},
		{ItemNumber: "B2", Name: "Beta", Quantity: 1},
		{ItemNumber: "A1", Name: "Alpha", Quantity: 5},
	}
	reversed := []LineItem{forward[2], forward[1], forward[0]}

	a := Merge(forward)
	b := Merge(reversed)

	for _, key := range []string{"A1", "B2"} {
		ia, _ := a.Get(key)
		ib, _ := b.Get(key)
		if ia.Quantity != ib.Quantity {
			t.Errorf("quantity for %s differs by input order: %d vs %d", key, ia.Quantity, ib.Quantity)
		}
	}
}

func TestLedgerSetAndRemove(t *testing.T) {
	l := NewLedger()
	l.Set(LineItem{ItemNumber: "A1", Name: "Alpha", Quantity: 2})
	l.Set(LineItem{ItemNumber: "B2", Name: "Beta", Quantity: 3})

	if l.TotalQuantity() != 5 {
		t.Fatalf("TotalQuantity() = %d, want 5", l.TotalQuantity())
	}

	// Setting quantity zero removes the entry; canonical form never keeps it.
	l.Set(LineItem{ItemNumber: "A1", Name: "Alpha", Quantity: 0})
	if _, ok := l.Get("A1"); ok {
		t.Fatal("zero-quantity entry retained")
	}
	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", l.Len())
	}

	// Lookups and removals normalize legacy suffixes.
	if _, ok := l.Get("B2_ordered"); !ok {
		t.Fatal("suffixed lookup missed the base entry")
	}
	l.Remove("B2_new_77")
	if l.Len() != 0 {
		t.Fatalf("Len() = %d after remove, want 0", l.Len())
	}
}
