package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/luxhub/project-service/internal/ledger"
	"github.com/luxhub/project-service/internal/pkg/logger"
	"go.uber.org/zap"
)

// State is the per-project session lifecycle.
type State int32

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateMutating
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateMutating:
		return "mutating"
	case StateError:
		return "error"
	}
	return "unknown"
}

type Config struct {
	MaxQuantity    int
	ResolveTimeout time.Duration
	HistoryTimeout time.Duration
	PersistTimeout time.Duration
}

func (c *Config) withDefaults() {
	if c.MaxQuantity <= 0 {
		c.MaxQuantity = 99
	}
	if c.ResolveTimeout <= 0 {
		c.ResolveTimeout = 3 * time.Second
	}
	if c.HistoryTimeout <= 0 {
		c.HistoryTimeout = 5 * time.Second
	}
	if c.PersistTimeout <= 0 {
		c.PersistTimeout = 10 * time.Second
	}
}

type ledgerStore struct {
	cfg      Config
	projects ledger.ProjectNotes
	history  ledger.HistoryProvider
	resolver ledger.Resolver
	logger   logger.ZapLogger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewLedgerStore builds the ledger store on top of the project persistence,
// order history, and catalog collaborators.
func NewLedgerStore(cfg Config, projects ledger.ProjectNotes, history ledger.HistoryProvider, resolver ledger.Resolver, log logger.ZapLogger) ledger.UseCase {
	cfg.withDefaults()
	return &ledgerStore{
		cfg:      cfg,
		projects: projects,
		history:  history,
		resolver: resolver,
		logger:   log,
		sessions: make(map[string]*session),
	}
}

func (st *ledgerStore) session(projectID string) *session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[projectID]
	if !ok {
		s = &session{
			store:     st,
			projectID: projectID,
			resolved:  make(map[string]int64),
		}
		st.sessions[projectID] = s
	}
	return s
}

func (st *ledgerStore) Load(ctx context.Context, projectID string) ([]ledger.ReconciledEntry, error) {
	return st.session(projectID).load(ctx)
}

func (st *ledgerStore) Entries(projectID string) ([]ledger.ReconciledEntry, error) {
	return st.session(projectID).currentEntries()
}

func (st *ledgerStore) SetQuantity(ctx context.Context, projectID, itemNumber string, quantity int) ([]ledger.ReconciledEntry, error) {
	return st.session(projectID).setQuantity(ctx, itemNumber, quantity)
}

func (st *ledgerStore) RemoveItem(ctx context.Context, projectID, itemNumber string) ([]ledger.ReconciledEntry, error) {
	return st.session(projectID).removeItem(ctx, itemNumber)
}

func (st *ledgerStore) PrepareOrderSubmission(ctx context.Context, projectID string) (*ledger.OrderSubmission, error) {
	return st.session(projectID).prepareOrderSubmission()
}

func (st *ledgerStore) OnOrderSubmitted(ctx context.Context, projectID string) ([]ledger.ReconciledEntry, error) {
	return st.session(projectID).onOrderSubmitted(ctx)
}

// session holds one project's in-memory ledger state. All reads and writes of
// the mutable fields go through mu; persistence runs on its own goroutine and
// is serialized per project with last-write-wins on the final merged state.
type session struct {
	store     *ledgerStore
	projectID string

	mu      sync.Mutex
	state   State
	ledger  *ledger.Ledger
	history ledger.OrderHistory
	entries []ledger.ReconciledEntry

	// loadSeq guards against a stale load committing over a newer one.
	loadSeq uint64

	// resolved caches successful itemNumber -> productID lookups so
	// re-reconciling after a local mutation needs no I/O.
	resolvedMu sync.Mutex
	resolved   map[string]int64

	// pending is the newest un-persisted notes snapshot; persisting marks a
	// running persist goroutine. Intermediate snapshots are coalesced away.
	persisting bool
	pending    *string
}

// resolver returns the session's caching view of the catalog resolver.
// Misses are not cached: an entry excluded for a failed lookup re-appears
// once the catalog answers.
func (s *session) resolver() ledger.Resolver {
	return ledger.ResolverFunc(func(ctx context.Context, itemNumber string) (int64, error) {
		s.resolvedMu.Lock()
		id, ok := s.resolved[itemNumber]
		s.resolvedMu.Unlock()
		if ok {
			return id, nil
		}

		rctx, cancel := context.WithTimeout(ctx, s.store.cfg.ResolveTimeout)
		defer cancel()
		id, err := s.store.resolver.Resolve(rctx, itemNumber)
		if err != nil {
			s.store.logger.Warn("catalog resolution failed, entry hidden this pass",
				zap.String("project_id", s.projectID),
				zap.String("item_number", itemNumber),
				zap.Error(err))
			return 0, err
		}

		s.resolvedMu.Lock()
		s.resolved[itemNumber] = id
		s.resolvedMu.Unlock()
		return id, nil
	})
}

func (s *session) load(ctx context.Context) ([]ledger.ReconciledEntry, error) {
	seq := atomic.AddUint64(&s.loadSeq, 1)

	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	notes, err := s.store.projects.GetNotes(ctx, s.projectID)
	if err != nil {
		s.mu.Lock()
		if atomic.LoadUint64(&s.loadSeq) == seq {
			s.state = StateError
		}
		s.mu.Unlock()
		return nil, fmt.Errorf("load project notes: %w", err)
	}

	led := ledger.Merge(ledger.DecodeNotes(notes))
	hist := s.fetchHistory(ctx)
	entries := ledger.Reconcile(ctx, led, hist, s.resolver())

	s.mu.Lock()
	defer s.mu.Unlock()
	if atomic.LoadUint64(&s.loadSeq) != seq {
		// A newer load is in flight or already committed; drop this result.
		return copyEntries(s.entries), nil
	}
	s.ledger = led
	s.history = hist
	s.entries = entries
	s.state = StateReady
	return copyEntries(s.entries), nil
}

// fetchHistory degrades to "no orders" when the feed is unreachable so a
// flaky history endpoint never fails the whole load.
func (s *session) fetchHistory(ctx context.Context) ledger.OrderHistory {
	hctx, cancel := context.WithTimeout(ctx, s.store.cfg.HistoryTimeout)
	defer cancel()
	hist, err := s.store.history.History(hctx, s.projectID)
	if err != nil {
		s.store.logger.Warn("order history unavailable, treating as no orders",
			zap.String("project_id", s.projectID),
			zap.Error(err))
		return ledger.NoHistory()
	}
	return hist
}

func (s *session) currentEntries() ([]ledger.ReconciledEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady && s.state != StateMutating {
		return nil, ledger.ErrNotLoaded
	}
	return copyEntries(s.entries), nil
}

func (s *session) setQuantity(ctx context.Context, itemNumber string, quantity int) ([]ledger.ReconciledEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, ledger.ErrNotLoaded
	}
	if quantity < 1 || quantity > s.store.cfg.MaxQuantity {
		return nil, fmt.Errorf("%w: quantity %d outside [1, %d]", ledger.ErrInvalidQuantity, quantity, s.store.cfg.MaxQuantity)
	}

	item, ok := s.ledger.Get(itemNumber)
	if !ok {
		return nil, ledger.ErrItemNotFound
	}

	ordered, hasNew, visible := s.splitLocked(item.ItemNumber)
	if !visible {
		// Not resolvable right now, so not on screen; nothing to edit.
		return nil, ledger.ErrItemNotFound
	}
	if !hasNew {
		return nil, fmt.Errorf("%w: item %s is fully ordered", ledger.ErrInvalidQuantity, item.ItemNumber)
	}

	s.state = StateMutating
	item.Quantity = ordered + quantity
	s.ledger.Set(item)
	s.entries = ledger.Reconcile(ctx, s.ledger, s.history, s.resolver())
	s.enqueuePersistLocked()
	s.state = StateReady
	return copyEntries(s.entries), nil
}

func (s *session) removeItem(ctx context.Context, itemNumber string) ([]ledger.ReconciledEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, ledger.ErrNotLoaded
	}
	if _, ok := s.ledger.Get(itemNumber); !ok {
		return nil, ledger.ErrItemNotFound
	}

	s.state = StateMutating
	s.ledger.Remove(itemNumber)
	s.entries = ledger.Reconcile(ctx, s.ledger, s.history, s.resolver())
	s.enqueuePersistLocked()
	s.state = StateReady
	return copyEntries(s.entries), nil
}

func (s *session) prepareOrderSubmission() (*ledger.OrderSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, ledger.ErrNotLoaded
	}

	var items []ledger.LineItem
	for _, e := range s.entries {
		if e.IsOrdered {
			continue
		}
		items = append(items, ledger.LineItem{
			ItemNumber: e.BaseItemNumber,
			Name:       e.Name,
			Quantity:   e.Quantity,
		})
	}
	if len(items) == 0 {
		return nil, ledger.ErrNoNewItems
	}

	orderNumber := 1
	if s.history.HasOrders {
		orderNumber = s.history.Rounds + 1
	}
	return &ledger.OrderSubmission{OrderNumber: orderNumber, Items: items}, nil
}

func (s *session) onOrderSubmitted(ctx context.Context) ([]ledger.ReconciledEntry, error) {
	s.mu.Lock()
	if s.state != StateReady && s.state != StateMutating {
		s.mu.Unlock()
		return nil, ledger.ErrNotLoaded
	}
	s.mu.Unlock()

	hist := s.fetchHistory(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = hist
	s.entries = ledger.Reconcile(ctx, s.ledger, s.history, s.resolver())
	return copyEntries(s.entries), nil
}

// splitLocked reports the ordered portion for an item from the current view,
// whether it has an editable new portion, and whether it is visible at all.
func (s *session) splitLocked(itemNumber string) (ordered int, hasNew, visible bool) {
	for _, e := range s.entries {
		if e.BaseItemNumber != itemNumber {
			continue
		}
		visible = true
		if e.IsOrdered {
			ordered = e.Quantity
		} else {
			hasNew = true
		}
	}
	return ordered, hasNew, visible
}

// enqueuePersistLocked schedules a write of the full re-encoded ledger. Only
// the newest snapshot survives; a mutation issued while an earlier write is
// in flight supersedes it instead of racing with it.
func (s *session) enqueuePersistLocked() {
	notes := ledger.EncodeNotes(s.ledger.Items())
	s.pending = &notes
	if !s.persisting {
		s.persisting = true
		go s.persistLoop()
	}
}

func (s *session) persistLoop() {
	for {
		s.mu.Lock()
		if s.pending == nil {
			s.persisting = false
			s.mu.Unlock()
			return
		}
		notes := *s.pending
		s.pending = nil
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), s.store.cfg.PersistTimeout)
		err := s.store.projects.UpdateNotes(ctx, s.projectID, notes)
		cancel()
		if err != nil {
			s.store.logger.Error("ledger persistence failed, rolling back to stored notes",
				zap.String("project_id", s.projectID),
				zap.Error(err))
			s.rollback()
		}
	}
}

// rollback discards optimistic state and reloads from the last durably
// persisted notes so the view converges to what was actually saved.
func (s *session) rollback() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.store.cfg.PersistTimeout)
	defer cancel()
	if _, err := s.load(ctx); err != nil {
		s.store.logger.Error("rollback reload failed",
			zap.String("project_id", s.projectID),
			zap.Error(err))
	}
}

func copyEntries(entries []ledger.ReconciledEntry) []ledger.ReconciledEntry {
	out := make([]ledger.ReconciledEntry, len(entries))
	copy(out, entries)
	return out
}
