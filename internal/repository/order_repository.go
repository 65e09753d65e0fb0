package repository

import (
	"context"
	"database/sql"

	"github.com/cristianlarad/ARCADE-MAX/internal/entity"
	"github.com/cristianlarad/ARCADE-MAX/internal/sharding"
)

// OrderRepository persists submitted orders across MySQL shards, routed by
// the public order number.
type OrderRepository struct {
	dbShards []*sql.DB
	router   *sharding.ShardRouter
}

func NewOrderRepository(dbShards []*sql.DB, router *sharding.ShardRouter) *OrderRepository {
	return &OrderRepository{dbShards, router}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	dbIndex := r.router.GetShard(order.OrderID)
	db := r.dbShards[dbIndex]

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	orderQuery := `INSERT INTO orders (order_id, session, subtotal, tax, shipping, discount, total, payment_method, address, status, idempotent_key) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, orderQuery, order.OrderID, order.Session, order.Subtotal, order.Tax, order.Shipping, order.Discount, order.Total, order.PaymentMethod, order.Address, order.Status, order.IdempotentKey)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Batch insert the lines
	lineQuery := `
		INSERT INTO order_lines (order_id, product_id, name, unit_price, quantity, line_total)
		VALUES `

	var values []interface{}
	for _, line := range order.Lines {
		lineQuery += "(?, ?, ?, ?, ?, ?),"
		values = append(values, orderID, line.ProductID, line.Name, line.UnitPrice, line.Quantity, line.LineTotal)
	}
	lineQuery = lineQuery[:len(lineQuery)-1]

	_, err = tx.ExecContext(ctx, lineQuery, values...)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	order.ID = int(orderID)
	return order, nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, orderID int) (*entity.Order, error) {
	orderQuery := `SELECT id, order_id, session, subtotal, tax, shipping, discount, total, payment_method, address, status FROM orders WHERE order_id = ?`
	lineQuery := `SELECT product_id, name, unit_price, quantity, line_total FROM order_lines WHERE order_id = ?`

	dbIndex := r.router.GetShard(orderID)
	db := r.dbShards[dbIndex]

	order := &entity.Order{}
	err := db.QueryRowContext(ctx, orderQuery, orderID).Scan(&order.ID, &order.OrderID, &order.Session, &order.Subtotal, &order.Tax, &order.Shipping, &order.Discount, &order.Total, &order.PaymentMethod, &order.Address, &order.Status)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, lineQuery, order.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		line := entity.OrderLine{}
		err := rows.Scan(&line.ProductID, &line.Name, &line.UnitPrice, &line.Quantity, &line.LineTotal)
		if err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, line)
	}

	return order, rows.Err()
}

// ListOrdersBySession collects a session's order history across all shards.
func (r *OrderRepository) ListOrdersBySession(ctx context.Context, session string) ([]entity.Order, error) {
	orderQuery := `SELECT id, order_id, session, subtotal, tax, shipping, discount, total, payment_method, address, status FROM orders WHERE session = ? ORDER BY id DESC`

	var orders []entity.Order
	for _, db := range r.dbShards {
		rows, err := db.QueryContext(ctx, orderQuery, session)
		if err != nil {
			return nil, err
		}

		for rows.Next() {
			order := entity.Order{}
			err := rows.Scan(&order.ID, &order.OrderID, &order.Session, &order.Subtotal, &order.Tax, &order.Shipping, &order.Discount, &order.Total, &order.PaymentMethod, &order.Address, &order.Status)
			if err != nil {
				rows.Close()
				return nil, err
			}
			orders = append(orders, order)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return orders, nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID int, status string) error {
	dbIndex := r.router.GetShard(orderID)
	db := r.dbShards[dbIndex]

	query := `UPDATE orders SET status = ? WHERE order_id = ?`
	_, err := db.ExecContext(ctx, query, status, orderID)
	if err != nil {
		return err
	}

	return nil
}
