package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/luxhub/project-service/internal/ledger"
	"github.com/luxhub/project-service/internal/pkg/logger"
)

type fakeProjects struct {
	mu        sync.Mutex
	notes     map[string]string
	getErr    error
	updateErr error
	updates   chan string
}

func newFakeProjects(projectID, notes string) *fakeProjects {
	return &fakeProjects{
		notes:   map[string]string{projectID: notes},
		updates: make(chan string, 16),
	}
}

func (f *fakeProjects) GetNotes(_ context.Context, projectID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.notes[projectID], nil
}

func (f *fakeProjects) UpdateNotes(_ context.Context, projectID, notes string) error {
	f.mu.Lock()
	err := f.updateErr
	if err == nil {
		f.notes[projectID] = notes
	}
	f.mu.Unlock()

	select {
	case f.updates <- notes:
	default:
	}
	return err
}

func (f *fakeProjects) setUpdateErr(err error) {
	f.mu.Lock()
	f.updateErr = err
	f.mu.Unlock()
}

func (f *fakeProjects) stored(projectID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notes[projectID]
}

type fakeHistory struct {
	mu   sync.Mutex
	hist ledger.OrderHistory
	err  error
}

func (f *fakeHistory) History(context.Context, string) (ledger.OrderHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return ledger.OrderHistory{}, f.err
	}
	return f.hist, nil
}

func (f *fakeHistory) set(hist ledger.OrderHistory) {
	f.mu.Lock()
	f.hist = hist
	f.mu.Unlock()
}

type fakeResolver struct {
	mu  sync.Mutex
	ids map[string]int64
}

func (f *fakeResolver) Resolve(_ context.Context, itemNumber string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.ids[itemNumber]
	if !ok {
		return 0, ledger.ErrProductNotFound
	}
	return id, nil
}

const projectID = "b7f9c2a0-aaaa-bbbb-cccc-000000000001"

func newTestStore(t *testing.T, notes string, hist ledger.OrderHistory) (ledger.UseCase, *fakeProjects, *fakeHistory) {
	t.Helper()
	projects := newFakeProjects(projectID, notes)
	history := &fakeHistory{hist: hist}
	resolver := &fakeResolver{ids: map[string]int64{"A": 1, "B": 2}}
	store := NewLedgerStore(Config{MaxQuantity: 99}, projects, history, resolver, logger.NewNop())
	return store, projects, history
}

func awaitUpdate(t *testing.T, projects *fakeProjects) string {
	t.Helper()
	select {
	case notes := <-projects.updates:
		return notes
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for persistence")
		return ""
	}
}

func partialHistory() ledger.OrderHistory {
	return ledger.OrderHistory{HasOrders: true, Rounds: 1, Ordered: map[int64]int{1: 2}}
}

func TestLoadSplitsOrderedAndNew(t *testing.T) {
	store, _, _ := newTestStore(t, "Products:\n• 5x Lamp (A)", partialHistory())

	entries, err := store.Load(context.Background(), projectID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if !entries[0].IsOrdered || entries[0].Quantity != 2 {
		t.Fatalf("ordered half = %+v", entries[0])
	}
	if entries[1].IsOrdered || entries[1].Quantity != 3 {
		t.Fatalf("new half = %+v", entries[1])
	}
}

func TestLoadHistoryFailureFallsBackToNoOrders(t *testing.T) {
	store, _, history := newTestStore(t, "Products:\n• 5x Lamp (A)", ledger.OrderHistory{})
	history.err = errors.New("connection refused")

	entries, err := store.Load(context.Background(), projectID)
	if err != nil {
		t.Fatalf("Load must not fail on history errors: %v", err)
	}
	if len(entries) != 1 || entries[0].IsOrdered {
		t.Fatalf("entries = %+v, want single unordered entry", entries)
	}
}

func TestLoadNotesFailure(t *testing.T) {
	store, projects, _ := newTestStore(t, "", ledger.OrderHistory{})
	projects.getErr = errors.New("boom")

	if _, err := store.Load(context.Background(), projectID); err == nil {
		t.Fatal("Load must surface notes fetch failure")
	}
	if _, err := store.Entries(projectID); !errors.Is(err, ledger.ErrNotLoaded) {
		t.Fatalf("Entries after failed load: err = %v, want ErrNotLoaded", err)
	}
}

func TestSetQuantityTargetsNewPortionOnly(t *testing.T) {
	// Current split ordered=2/new=3; setting the new portion to 1 makes the
	// canonical quantity 2+1=3 and persists a single merged line.
	store, projects, _ := newTestStore(t, "Products:\n• 5x Lamp (A)", partialHistory())
	if _, err := store.Load(context.Background(), projectID); err != nil {
		t.Fatalf("Load: %v", err)
	}

	entries, err := store.SetQuantity(context.Background(), projectID, "A", 1)
	if err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Quantity != 2 || !entries[0].IsOrdered {
		t.Fatalf("ordered half = %+v, want qty 2", entries[0])
	}
	if entries[1].Quantity != 1 || entries[1].IsOrdered {
		t.Fatalf("new half = %+v, want qty 1", entries[1])
	}

	if got, want := awaitUpdate(t, projects), "Products:\n• 3x Lamp (A)"; got != want {
		t.Fatalf("persisted notes = %q, want %q", got, want)
	}
}

func TestSetQuantityValidation(t *testing.T) {
	store, _, _ := newTestStore(t, "Products:\n• 5x Lamp (A)", partialHistory())
	if _, err := store.Load(context.Background(), projectID); err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name     string
		item     string
		quantity int
		wantErr  error
	}{
		{"zero quantity", "A", 0, ledger.ErrInvalidQuantity},
		{"above max", "A", 100, ledger.ErrInvalidQuantity},
		{"unknown item", "ZZZ", 3, ledger.ErrItemNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.SetQuantity(context.Background(), projectID, tc.item, tc.quantity); !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSetQuantityRejectsFullyOrderedItem(t *testing.T) {
	hist := ledger.OrderHistory{HasOrders: true, Rounds: 1, Ordered: map[int64]int{1: 5}}
	store, _, _ := newTestStore(t, "Products:\n• 5x Lamp (A)", hist)
	if _, err := store.Load(context.Background(), projectID); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := store.SetQuantity(context.Background(), projectID, "A", 3); !errors.Is(err, ledger.ErrInvalidQuantity) {
		t.Fatalf("err = %v, want ErrInvalidQuantity for fully ordered item", err)
	}
}

func TestRemoveItemDropsBothPortions(t *testing.T) {
	store, projects, _ := newTestStore(t, "Products:\n• 5x Lamp (A)\n• 2x Spot (B)", partialHistory())
	if _, err := store.Load(context.Background(), projectID); err != nil {
		t.Fatalf("Load: %v", err)
	}

	entries, err := store.RemoveItem(context.Background(), projectID, "A")
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	for _, e := range entries {
		if e.BaseItemNumber == "A" {
			t.Fatalf("removed item still visible: %+v", e)
		}
	}

	if got, want := awaitUpdate(t, projects), "Products:\n• 2x Spot (B)"; got != want {
		t.Fatalf("persisted notes = %q, want %q", got, want)
	}
}

func TestRemoveLastItemPersistsEmptyNotes(t *testing.T) {
	store, projects, _ := newTestStore(t, "Products:\n• 5x Lamp (A)", ledger.OrderHistory{})
	if _, err := store.Load(context.Background(), projectID); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := store.RemoveItem(context.Background(), projectID, "A"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if got := awaitUpdate(t, projects); got != "" {
		t.Fatalf("persisted notes = %q, want empty string", got)
	}
}

func TestPrepareOrderSubmission(t *testing.T) {
	store, _, _ := newTestStore(t, "Products:\n• 5x Lamp (A)", partialHistory())
	if _, err := store.Load(context.Background(), projectID); err != nil {
		t.Fatalf("Load: %v", err)
	}

	sub, err := store.PrepareOrderSubmission(context.Background(), projectID)
	if err != nil {
		t.Fatalf("PrepareOrderSubmission: %v", err)
	}
	if sub.OrderNumber != 2 {
		t.Fatalf("OrderNumber = %d, want 2 (one prior round)", sub.OrderNumber)
	}
	if len(sub.Items) != 1 || sub.Items[0].ItemNumber != "A" || sub.Items[0].Quantity != 3 {
		t.Fatalf("Items = %+v, want one item A qty 3", sub.Items)
	}
}

func TestPrepareOrderSubmissionFirstRound(t *testing.T) {
	store, _, _ := newTestStore(t, "Products:\n• 5x Lamp (A)", ledger.OrderHistory{})
	if _, err := store.Load(context.Background(), projectID); err != nil {
		t.Fatalf("Load: %v", err)
	}

	sub, err := store.PrepareOrderSubmission(context.Background(), projectID)
	if err != nil {
		t.Fatalf("PrepareOrderSubmission: %v", err)
	}
	if sub.OrderNumber != 1 {
		t.Fatalf("OrderNumber = %d, want 1 with no history", sub.OrderNumber)
	}
}

func TestPrepareOrderSubmissionNoNewItems(t *testing.T) {
	hist := ledger.OrderHistory{HasOrders: true, Rounds: 1, Ordered: map[int64]int{1: 5}}
	store, _, _ := newTestStore(t, "Products:\n• 5x Lamp (A)", hist)
	if _, err := store.Load(context.Background(), projectID); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := store.PrepareOrderSubmission(context.Background(), projectID); !errors.Is(err, ledger.ErrNoNewItems) {
		t.Fatalf("err = %v, want ErrNoNewItems", err)
	}
}

func TestOnOrderSubmittedFlipsNewToOrdered(t *testing.T) {
	store, _, history := newTestStore(t, "Products:\n• 5x Lamp (A)", partialHistory())
	if _, err := store.Load(context.Background(), projectID); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// The second round shipped the remaining 3 units.
	history.set(ledger.OrderHistory{HasOrders: true, Rounds: 2, Ordered: map[int64]int{1: 5}})

	entries, err := store.OnOrderSubmitted(context.Background(), projectID)
	if err != nil {
		t.Fatalf("OnOrderSubmitted: %v", err)
	}
	if len(entries) != 1 || !entries[0].IsOrdered || entries[0].Quantity != 5 {
		t.Fatalf("entries = %+v, want single ordered entry qty 5", entries)
	}
}

func TestPersistenceFailureRollsBack(t *testing.T) {
	store, projects, _ := newTestStore(t, "Products:\n• 5x Lamp (A)", partialHistory())
	if _, err := store.Load(context.Background(), projectID); err != nil {
		t.Fatalf("Load: %v", err)
	}

	projects.setUpdateErr(errors.New("write failed"))
	if _, err := store.SetQuantity(context.Background(), projectID, "A", 1); err != nil {
		t.Fatalf("SetQuantity (optimistic) must not fail synchronously: %v", err)
	}
	awaitUpdate(t, projects) // failed write attempt

	// The store reloads the last durably persisted notes; the optimistic
	// change must be gone from the view.
	deadline := time.Now().Add(2 * time.Second)
	for {
		entries, err := store.Entries(projectID)
		if err == nil && len(entries) == 2 && entries[1].Quantity == 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("view never converged back to persisted state; entries=%+v err=%v", entries, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if projects.stored(projectID) != "Products:\n• 5x Lamp (A)" {
		t.Fatalf("stored notes changed despite failed update: %q", projects.stored(projectID))
	}
}

func TestMutationBeforeLoadRejected(t *testing.T) {
	store, _, _ := newTestStore(t, "Products:\n• 5x Lamp (A)", ledger.OrderHistory{})
	if _, err := store.SetQuantity(context.Background(), projectID, "A", 2); !errors.Is(err, ledger.ErrNotLoaded) {
		t.Fatalf("err = %v, want ErrNotLoaded", err)
	}
}

func TestCoalescedPersistenceLastWriteWins(t *testing.T) {
	store, projects, _ := newTestStore(t, "Products:\n• 5x Lamp (A)\n• 2x Spot (B)", ledger.OrderHistory{})
	if _, err := store.Load(context.Background(), projectID); err != nil {
		t.Fatalf("Load: %v", err)
	}

	for q := 1; q <= 5; q++ {
		if _, err := store.SetQuantity(context.Background(), projectID, "A", q); err != nil {
			t.Fatalf("SetQuantity(%d): %v", q, err)
		}
	}

	// Regardless of how many intermediate writes were coalesced away, the
	// final stored state reflects the last mutation.
	deadline := time.Now().Add(2 * time.Second)
	want := "Products:\n• 5x Lamp (A)\n• 2x Spot (B)"
	for projects.stored(projectID) != want {
		if time.Now().After(deadline) {
			t.Fatalf("stored notes = %q, want %q", projects.stored(projectID), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
