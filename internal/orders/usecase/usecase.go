package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/luxhub/project-service/internal/catalog"
	"github.com/luxhub/project-service/internal/ledger"
	"github.com/luxhub/project-service/internal/model"
	"github.com/luxhub/project-service/internal/orders"
	"github.com/luxhub/project-service/internal/pkg/cache"
	"github.com/luxhub/project-service/internal/pkg/logger"
	"go.uber.org/zap"
)

// Publisher is the slice of the broker the usecase needs.
type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

type orderUseCase struct {
	repo     orders.Repository
	catalog  catalog.UseCase
	cache    *cache.RedisClient
	producer Publisher
	cacheTTL time.Duration
	logger   logger.ZapLogger
}

func NewOrderUseCase(repo orders.Repository, cat catalog.UseCase, cache *cache.RedisClient, producer Publisher, cacheTTL time.Duration, log logger.ZapLogger) orders.UseCase {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &orderUseCase{
		repo:     repo,
		catalog:  cat,
		cache:    cache,
		producer: producer,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (uc *orderUseCase) Submit(ctx context.Context, projectID string, sub *ledger.OrderSubmission) (*model.Order, error) {
	if sub == nil || len(sub.Items) == 0 {
		return nil, ledger.ErrNoNewItems
	}

	now := time.Now()
	order := &model.Order{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProjectID:   projectID,
		OrderNumber: sub.OrderNumber,
		Status:      model.OrderStatusPending,
	}

	items := make([]model.OrderItem, 0, len(sub.Items))
	var total float64
	for _, line := range sub.Items {
		p, err := uc.catalog.GetProduct(ctx, line.ItemNumber)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", line.ItemNumber, err)
		}
		if p == nil {
			return nil, fmt.Errorf("%w: %s", ledger.ErrProductNotFound, line.ItemNumber)
		}

		var unitPrice float64
		if p.GrossPrice != nil {
			unitPrice = *p.GrossPrice
		}
		total += unitPrice * float64(line.Quantity)

		items = append(items, model.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: p.ID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			CreatedAt: now,
		})
	}
	order.TotalAmount = total

	if err := uc.repo.CreateOrder(ctx, order, items); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	uc.InvalidateHistory(ctx, projectID)
	go uc.publishSubmitted(context.Background(), order, items)

	return order, nil
}

func (uc *orderUseCase) publishSubmitted(ctx context.Context, order *model.Order, items []model.OrderItem) {
	if uc.producer == nil {
		return
	}

	payloadItems := make([]orders.OrderItemPayload, 0, len(items))
	for _, item := range items {
		payloadItems = append(payloadItems, orders.OrderItemPayload{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	event := orders.OrderSubmittedEvent{
		EventID:   uuid.New().String(),
		EventType: orders.EventTypeOrderSubmitted,
		Payload: orders.OrderPayload{
			OrderID:     order.ID,
			ProjectID:   order.ProjectID,
			OrderNumber: order.OrderNumber,
			Items:       payloadItems,
		},
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("failed to marshal order event", zap.Error(err))
		return
	}
	if err := uc.producer.Publish(ctx, []byte(order.ProjectID), data); err != nil {
		uc.logger.Error("failed to publish order event",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}

func (uc *orderUseCase) History(ctx context.Context, projectID string) (ledger.OrderHistory, error) {
	key := historyCacheKey(projectID)

	if uc.cache != nil {
		if val, err := uc.cache.Client.Get(ctx, key).Result(); err == nil {
			var hist ledger.OrderHistory
			if err := json.Unmarshal([]byte(val), &hist); err == nil {
				return hist, nil
			}
		}
	}

	hist, err := uc.repo.HistoryForProject(ctx, projectID)
	if err != nil {
		return ledger.OrderHistory{}, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(hist); err == nil {
			uc.cache.Client.Set(ctx, key, data, uc.cacheTTL)
		}
	}
	return hist, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, projectID string) ([]model.Order, error) {
	return uc.repo.FindByProject(ctx, projectID)
}

func (uc *orderUseCase) InvalidateHistory(ctx context.Context, projectID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Client.Del(ctx, historyCacheKey(projectID)).Err(); err != nil {
		uc.logger.Warn("failed to invalidate history cache",
			zap.String("project_id", projectID),
			zap.Error(err))
	}
}

func historyCacheKey(projectID string) string {
	return "orders:history:" + projectID
}
