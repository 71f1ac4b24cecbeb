package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peacockstore/peacock-api/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByUserEmail(ctx context.Context, email string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, trackingNumber string) error
}

type pgOrderRepo struct{ pool *pgxpool.Pool }

func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &pgOrderRepo{pool: pool}
}

func (r *pgOrderRepo) Create(ctx context.Context, order *model.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	shipping, err := json.Marshal(order.ShippingDetails)
	if err != nil {
		return fmt.Errorf("marshal shipping details: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO orders (id, user_email, date, items, total, status, shipping_details)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		order.ID, order.UserEmail, order.Date, items, order.Total, order.Status, shipping,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *pgOrderRepo) GetByID(ctx context.Context, id string) (*model.Order, error) {
	order := &model.Order{}
	var items, shipping []byte
	var tracking *string
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_email, date, items, total, status, tracking_number, shipping_details
		 FROM orders WHERE id = $1`, id,
	).Scan(&order.ID, &order.UserEmail, &order.Date, &items, &order.Total, &order.Status, &tracking, &shipping)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if tracking != nil {
		order.TrackingNumber = *tracking
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	if err := json.Unmarshal(shipping, &order.ShippingDetails); err != nil {
		return nil, fmt.Errorf("unmarshal shipping details: %w", err)
	}
	return order, nil
}

func (r *pgOrderRepo) ListByUserEmail(ctx context.Context, email string) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_email, date, items, total, status, tracking_number, shipping_details
		 FROM orders WHERE user_email = $1 ORDER BY date DESC`, email,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		var items, shipping []byte
		var tracking *string
		if err := rows.Scan(&o.ID, &o.UserEmail, &o.Date, &items, &o.Total, &o.Status, &tracking, &shipping); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if tracking != nil {
			o.TrackingNumber = *tracking
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
		if err := json.Unmarshal(shipping, &o.ShippingDetails); err != nil {
			return nil, fmt.Errorf("unmarshal shipping details: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *pgOrderRepo) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, trackingNumber string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2, tracking_number = COALESCE(NULLIF($3, ''), tracking_number) WHERE id = $1`,
		id, status, trackingNumber,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}
