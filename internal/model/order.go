package model

import "time"

// Order is one submission round for a project.
type Order struct {
	BaseModel
	ProjectID   string  `db:"project_id" json:"project_id"`
	UserID      string  `db:"user_id" json:"user_id"`
	OrderNumber int     `db:"order_number" json:"order_number"`
	Status      string  `db:"status" json:"status"`
	TotalAmount float64 `db:"total_amount" json:"total_amount"`
}

type OrderItem struct {
	ID        string    `db:"id" json:"id"`
	OrderID   string    `db:"order_id" json:"order_id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	UnitPrice float64   `db:"unit_price" json:"unit_price"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)
