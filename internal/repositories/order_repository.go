package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tazecep/grocery-marketplace/internal/models"
	"github.com/tazecep/grocery-marketplace/internal/utils"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, status string) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	CountForStats(ctx context.Context) (total, pending, completed int, revenue float64, err error)
	VendorCounters(ctx context.Context, vendorID uuid.UUID, since time.Time) (orders int, revenue float64, err error)
	CountPendingByVendor(ctx context.Context, vendorID uuid.UUID) (int, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, user_id, vendor_id, items, subtotal, coupon_code, coupon_discount,
		delivery_fee, gift_wrap_id, gift_wrap_fee, total, delivery_address, delivery_latitude,
		delivery_longitude, phone, status, delivery_type, notes, created_at, updated_at`

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, user_id, vendor_id, items, subtotal, coupon_code, coupon_discount,
			delivery_fee, gift_wrap_id, gift_wrap_fee, total, delivery_address, delivery_latitude,
			delivery_longitude, phone, status, delivery_type, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		order.ID, order.UserID, order.VendorID, itemsJSON, order.Subtotal,
		order.CouponCode, order.CouponDiscount, order.DeliveryFee, order.GiftWrapID,
		order.GiftWrapFee, order.Total, order.DeliveryAddress, order.DeliveryLatitude,
		order.DeliveryLongitude, order.Phone, order.Status, order.DeliveryType, order.Notes,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
}

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	order := &models.Order{}

	var itemsJSON []byte

	err := row.Scan(
		&order.ID, &order.UserID, &order.VendorID, &itemsJSON, &order.Subtotal,
		&order.CouponCode, &order.CouponDiscount, &order.DeliveryFee, &order.GiftWrapID,
		&order.GiftWrapFee, &order.Total, &order.DeliveryAddress, &order.DeliveryLatitude,
		&order.DeliveryLongitude, &order.Phone, &order.Status, &order.DeliveryType,
		&order.Notes, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	return order, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) listOrders(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}

		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	return r.listOrders(ctx, query, userID)
}

func (r *orderRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, status string) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE vendor_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC`

	return r.listOrders(ctx, query, vendorID, status)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *orderRepository) CountForStats(ctx context.Context) (int, int, int, float64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total, pending, completed int

	var revenue float64

	err := r.DB.QueryRowContext(dbCtx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COALESCE(SUM(total) FILTER (WHERE status = 'completed'), 0)
		FROM orders
	`).Scan(&total, &pending, &completed, &revenue)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("counting orders: %w", err)
	}

	return total, pending, completed, revenue, nil
}

func (r *orderRepository) VendorCounters(ctx context.Context, vendorID uuid.UUID, since time.Time) (int, float64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var orders int

	var revenue float64

	err := r.DB.QueryRowContext(dbCtx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE vendor_id = $1 AND created_at >= $2 AND status <> 'cancelled'
	`, vendorID, since).Scan(&orders, &revenue)
	if err != nil {
		return 0, 0, fmt.Errorf("counting vendor orders: %w", err)
	}

	return orders, revenue, nil
}

func (r *orderRepository) CountPendingByVendor(ctx context.Context, vendorID uuid.UUID) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var pending int

	err := r.DB.QueryRowContext(dbCtx,
		`SELECT COUNT(*) FROM orders WHERE vendor_id = $1 AND status = 'pending'`, vendorID).
		Scan(&pending)
	if err != nil {
		return 0, fmt.Errorf("counting pending vendor orders: %w", err)
	}

	return pending, nil
}
