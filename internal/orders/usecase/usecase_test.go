package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/luxhub/project-service/internal/catalog/dto"
	"github.com/luxhub/project-service/internal/ledger"
	"github.com/luxhub/project-service/internal/model"
	"github.com/luxhub/project-service/internal/pkg/logger"
)

type fakeRepo struct {
	mu      sync.Mutex
	history ledger.OrderHistory
	histErr error

	created      *model.Order
	createdItems []model.OrderItem
	createErr    error
}

func (r *fakeRepo) HistoryForProject(ctx context.Context, projectID string) (ledger.OrderHistory, error) {
	if r.histErr != nil {
		return ledger.OrderHistory{}, r.histErr
	}
	return r.history, nil
}

func (r *fakeRepo) CreateOrder(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.created = order
	r.createdItems = items
	return nil
}

func (r *fakeRepo) FindByProject(ctx context.Context, projectID string) ([]model.Order, error) {
	return nil, nil
}

type fakeCatalog struct {
	products map[string]*model.Product
}

func (c *fakeCatalog) GetProduct(ctx context.Context, itemNumber string) (*model.Product, error) {
	return c.products[itemNumber], nil
}

func (c *fakeCatalog) Resolve(ctx context.Context, itemNumber string) (int64, error) {
	p := c.products[itemNumber]
	if p == nil {
		return 0, ledger.ErrProductNotFound
	}
	return p.ID, nil
}

func (c *fakeCatalog) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	return nil, 0, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published [][]byte
	done      chan struct{}
}

func (p *fakePublisher) Publish(ctx context.Context, key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, value)
	if p.done != nil {
		close(p.done)
		p.done = nil
	}
	return nil
}

func price(v float64) *float64 { return &v }

func testCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[string]*model.Product{
		"LAMP-1": {ID: 1, ItemNumber: "LAMP-1", Name: "Lamp", GrossPrice: price(10)},
		"SOFA-2": {ID: 2, ItemNumber: "SOFA-2", Name: "Sofa", GrossPrice: price(250)},
		"FREE-3": {ID: 3, ItemNumber: "FREE-3", Name: "Sample"},
	}}
}

func TestSubmitPersistsOrderWithTotals(t *testing.T) {
	repo := &fakeRepo{}
	pub := &fakePublisher{done: make(chan struct{})}
	uc := NewOrderUseCase(repo, testCatalog(), nil, pub, time.Minute, logger.NewNop())

	order, err := uc.Submit(context.Background(), "proj-1", &ledger.OrderSubmission{
		OrderNumber: 2,
		Items: []ledger.LineItem{
			{ItemNumber: "LAMP-1", Name: "Lamp", Quantity: 3},
			{ItemNumber: "SOFA-2", Name: "Sofa", Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if order.OrderNumber != 2 {
		t.Errorf("order number = %d, want 2", order.OrderNumber)
	}
	if order.Status != model.OrderStatusPending {
		t.Errorf("status = %q, want %q", order.Status, model.OrderStatusPending)
	}
	if want := 3*10.0 + 250.0; order.TotalAmount != want {
		t.Errorf("total = %v, want %v", order.TotalAmount, want)
	}

	repo.mu.Lock()
	items := repo.createdItems
	repo.mu.Unlock()
	if len(items) != 2 {
		t.Fatalf("persisted %d items, want 2", len(items))
	}
	if items[0].ProductID != 1 || items[0].Quantity != 3 {
		t.Errorf("first item = %+v", items[0])
	}

	select {
	case <-pub.done:
	case <-time.After(2 * time.Second):
		t.Fatal("order event was never published")
	}
}

func TestSubmitNilPriceTreatedAsZero(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewOrderUseCase(repo, testCatalog(), nil, nil, time.Minute, logger.NewNop())

	order, err := uc.Submit(context.Background(), "proj-1", &ledger.OrderSubmission{
		OrderNumber: 1,
		Items:       []ledger.LineItem{{ItemNumber: "FREE-3", Name: "Sample", Quantity: 5}},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if order.TotalAmount != 0 {
		t.Errorf("total = %v, want 0", order.TotalAmount)
	}
}

func TestSubmitRejectsEmptySubmission(t *testing.T) {
	uc := NewOrderUseCase(&fakeRepo{}, testCatalog(), nil, nil, time.Minute, logger.NewNop())

	if _, err := uc.Submit(context.Background(), "proj-1", nil); !errors.Is(err, ledger.ErrNoNewItems) {
		t.Errorf("nil submission: err = %v, want ErrNoNewItems", err)
	}
	if _, err := uc.Submit(context.Background(), "proj-1", &ledger.OrderSubmission{OrderNumber: 1}); !errors.Is(err, ledger.ErrNoNewItems) {
		t.Errorf("empty submission: err = %v, want ErrNoNewItems", err)
	}
}

func TestSubmitUnknownProduct(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewOrderUseCase(repo, testCatalog(), nil, nil, time.Minute, logger.NewNop())

	_, err := uc.Submit(context.Background(), "proj-1", &ledger.OrderSubmission{
		OrderNumber: 1,
		Items:       []ledger.LineItem{{ItemNumber: "GHOST-9", Name: "Ghost", Quantity: 1}},
	})
	if !errors.Is(err, ledger.ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.created != nil {
		t.Error("order was persisted despite unknown product")
	}
}

func TestHistoryPassesThroughWithoutCache(t *testing.T) {
	repo := &fakeRepo{history: ledger.OrderHistory{
		HasOrders: true,
		Rounds:    3,
		Ordered:   map[int64]int{1: 4},
	}}
	uc := NewOrderUseCase(repo, testCatalog(), nil, nil, time.Minute, logger.NewNop())

	hist, err := uc.History(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if !hist.HasOrders || hist.Rounds != 3 || hist.Ordered[1] != 4 {
		t.Errorf("history = %+v", hist)
	}
}

func TestHistoryPropagatesRepoError(t *testing.T) {
	repo := &fakeRepo{histErr: errors.New("db down")}
	uc := NewOrderUseCase(repo, testCatalog(), nil, nil, time.Minute, logger.NewNop())

	if _, err := uc.History(context.Background(), "proj-1"); err == nil {
		t.Error("expected error from History")
	}
}
