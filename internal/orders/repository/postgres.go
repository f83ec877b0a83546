package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/luxhub/project-service/internal/ledger"
	"github.com/luxhub/project-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) HistoryForProject(ctx context.Context, projectID string) (ledger.OrderHistory, error) {
	var rounds int
	err := r.DB.GetContext(ctx, &rounds,
		"SELECT count(*) FROM orders WHERE project_id = $1 AND status != $2",
		projectID, model.OrderStatusCancelled,
	)
	if err != nil {
		return ledger.OrderHistory{}, err
	}
	if rounds == 0 {
		return ledger.NoHistory(), nil
	}

	rows, err := r.DB.QueryxContext(ctx, `
        SELECT oi.product_id, SUM(oi.quantity) AS total_quantity
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        WHERE o.project_id = $1 AND o.status != $2
        GROUP BY oi.product_id
    `, projectID, model.OrderStatusCancelled)
	if err != nil {
		return ledger.OrderHistory{}, err
	}
	defer rows.Close()

	ordered := make(map[int64]int)
	for rows.Next() {
		var productID int64
		var total int
		if err := rows.Scan(&productID, &total); err != nil {
			return ledger.OrderHistory{}, err
		}
		ordered[productID] = total
	}
	if err := rows.Err(); err != nil {
		return ledger.OrderHistory{}, err
	}

	return ledger.OrderHistory{HasOrders: true, Rounds: rounds, Ordered: ordered}, nil
}

func (r *PGRepository) CreateOrder(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO orders (id, project_id, user_id, order_number, status, total_amount, created_at, updated_at)
        VALUES (:id, :project_id, :user_id, :order_number, :status, :total_amount, :created_at, :updated_at)
    `, order)
	if err != nil {
		return err
	}

	for _, item := range items {
		_, err = tx.NamedExecContext(ctx, `
            INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, created_at)
            VALUES (:id, :order_id, :product_id, :quantity, :unit_price, :created_at)
        `, item)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindByProject(ctx context.Context, projectID string) ([]model.Order, error) {
	var ordersList []model.Order
	err := r.DB.SelectContext(ctx, &ordersList,
		"SELECT * FROM orders WHERE project_id = $1 ORDER BY order_number",
		projectID,
	)
	if err != nil {
		return nil, err
	}
	return ordersList, nil
}
