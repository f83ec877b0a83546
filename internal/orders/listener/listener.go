package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/luxhub/project-service/internal/orders"
	"github.com/luxhub/project-service/internal/pkg/broker"
	"github.com/luxhub/project-service/internal/pkg/logger"
	"go.uber.org/zap"
)

// OrderListener consumes order events from the shared topic. Orders recorded
// by other producers (back office, imports) must invalidate the cached
// history summary so the ledger reconciles against fresh data.
type OrderListener struct {
	consumer *broker.KafkaConsumer
	uc       orders.UseCase
	logger   logger.ZapLogger
}

func NewOrderListener(consumer *broker.KafkaConsumer, uc orders.UseCase, log logger.ZapLogger) *OrderListener {
	return &OrderListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
	}
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("Starting order events listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping order events listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *OrderListener) processMessage(ctx context.Context, value []byte) {
	var event orders.OrderSubmittedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal order event", zap.Error(err))
		return
	}

	if event.EventType != orders.EventTypeOrderSubmitted {
		return
	}
	if event.Payload.ProjectID == "" {
		return
	}

	l.logger.Info("Processing order event",
		zap.String("order_id", event.Payload.OrderID),
		zap.String("project_id", event.Payload.ProjectID))

	l.uc.InvalidateHistory(ctx, event.Payload.ProjectID)
}
