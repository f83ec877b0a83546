package orders

import "time"

const EventTypeOrderSubmitted = "OrderSubmitted"

// OrderSubmittedEvent is published on the orders topic after a round is
// persisted, and consumed to invalidate cached history summaries.
type OrderSubmittedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	OrderID     string             `json:"order_id"`
	ProjectID   string             `json:"project_id"`
	OrderNumber int                `json:"order_number"`
	Items       []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
