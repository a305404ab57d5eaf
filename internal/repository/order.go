package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivetrade/vehicle-store-api/internal/model"
)

type OrderRepository interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	Insert(ctx context.Context, tx pgx.Tx, order *model.Order) error
	InsertItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	DeleteWithItems(ctx context.Context, id uuid.UUID) error
}

type pgOrderRepo struct{ pool *pgxpool.Pool }

func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &pgOrderRepo{pool: pool}
}

func (r *pgOrderRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func (r *pgOrderRepo) Insert(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	order.ID = uuid.New()
	err := tx.QueryRow(ctx,
		`INSERT INTO orders (id, user_id, shipping_address, total_amount, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING created_at`,
		order.ID, order.UserID, order.ShippingAddress, order.TotalAmount, order.Status,
	).Scan(&order.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *pgOrderRepo) InsertItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	for i := range items {
		items[i].ID = uuid.New()
		_, err := tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, vehicle_id, vehicle_name, quantity, price_per_unit, total_price)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			items[i].ID, items[i].OrderID, items[i].VehicleID, items[i].VehicleName,
			items[i].Quantity, items[i].PricePerUnit, items[i].TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// ListByUser returns the user's orders newest first, each hydrated with its
// line items.
func (r *pgOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, shipping_address, total_amount, status, created_at
		 FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	var orderIDs []uuid.UUID
	for rows.Next() {
		o := model.Order{UserID: userID}
		if err := rows.Scan(&o.ID, &o.ShippingAddress, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
		orderIDs = append(orderIDs, o.ID)
	}
	if len(orders) == 0 {
		return nil, nil
	}

	itemRows, err := r.pool.Query(ctx,
		`SELECT id, order_id, vehicle_id, vehicle_name, quantity, price_per_unit, total_price
		 FROM order_items WHERE order_id = ANY($1)`,
		orderIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()

	itemsByOrder := make(map[uuid.UUID][]model.OrderItem)
	for itemRows.Next() {
		var item model.OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.VehicleID, &item.VehicleName,
			&item.Quantity, &item.PricePerUnit, &item.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
	}
	return orders, nil
}

// DeleteWithItems removes an order and its line items. The items go first;
// there is no database-level cascade to rely on.
func (r *pgOrderRepo) DeleteWithItems(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	ct, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}
