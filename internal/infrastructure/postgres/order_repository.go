package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// ListPendingAbove devuelve los pedidos pendientes con cantidad estrictamente mayor a minQty.
func (r *OrderRepo) ListPendingAbove(ctx context.Context, minQty decimal.Decimal) ([]*entity.Order, error) {
	query := `
		SELECT id, product_id, quantity, status, user_id, created_at
		FROM orders WHERE status = $1 AND quantity > $2
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, entity.OrderStatusPending, minQty)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Quantity, &o.Status, &o.UserID, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// CountByProductBetween cuenta pedidos del producto creados en [from, to).
func (r *OrderRepo) CountByProductBetween(ctx context.Context, productID string, from, to time.Time) (int64, error) {
	query := `
		SELECT COUNT(*) FROM orders
		WHERE product_id = $1 AND created_at >= $2 AND created_at < $3`
	var n int64
	if err := r.q.QueryRow(ctx, query, productID, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// SumQuantityByProductInMonth suma cantidades pedidas del producto en el mes
// calendario dado (UTC).
func (r *OrderRepo) SumQuantityByProductInMonth(ctx context.Context, productID string, year int, month time.Month) (decimal.Decimal, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return r.SumQuantityByProductBetween(ctx, productID, from, from.AddDate(0, 1, 0))
}

// SumQuantityByProductBetween suma cantidades pedidas del producto en [from, to).
func (r *OrderRepo) SumQuantityByProductBetween(ctx context.Context, productID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0) FROM orders
		WHERE product_id = $1 AND created_at >= $2 AND created_at < $3`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum order quantities: %w", err)
	}
	return sum, nil
}
