package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockgenius-api/internal/domain"
	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL (usable con pool o tx).
//
// La tabla lleva un índice único parcial sobre (product_id, type) con
// status <> 'resolved'; Create traduce su violación a domain.ErrDuplicate
// para que dos pasadas concurrentes no dupliquen filas:
//
//	CREATE UNIQUE INDEX alerts_open_product_type
//	ON alerts (COALESCE(product_id, ''), type) WHERE status <> 'resolved';
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador de alertas. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create persiste una alerta. Retorna domain.ErrDuplicate si ya existe una
// abierta con el mismo (product_id, type).
func (r *AlertRepo) Create(ctx context.Context, alert *entity.Alert) error {
	query := `
		INSERT INTO alerts (id, product_id, type, status, created_at, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		alert.ID, alert.ProductID, alert.Type, alert.Status, alert.CreatedAt, alert.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// FindOpen busca una alerta no resuelta con el mismo product_id (nullable)
// y type. (nil, nil) si no existe.
func (r *AlertRepo) FindOpen(ctx context.Context, productID *string, alertType string) (*entity.Alert, error) {
	query := `
		SELECT id, product_id, type, status, created_at, user_id
		FROM alerts
		WHERE product_id IS NOT DISTINCT FROM $1 AND type = $2 AND status <> $3
		LIMIT 1`
	var a entity.Alert
	err := r.q.QueryRow(ctx, query, productID, alertType, entity.AlertStatusResolved).Scan(
		&a.ID, &a.ProductID, &a.Type, &a.Status, &a.CreatedAt, &a.UserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find open alert: %w", err)
	}
	return &a, nil
}

// ExistsWithTypePrefixSince indica si el producto tiene una alerta cuyo type
// empieza con prefix, creada desde since, en cualquier estado.
func (r *AlertRepo) ExistsWithTypePrefixSince(ctx context.Context, productID, prefix string, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE product_id = $1 AND type LIKE $2 || '%' AND created_at >= $3
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, productID, prefix, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("alert exists by prefix: %w", err)
	}
	return exists, nil
}

// ExistsWithTypeAndStatusSince indica si existe una alerta con exactamente
// ese type y status creada desde since.
func (r *AlertRepo) ExistsWithTypeAndStatusSince(ctx context.Context, alertType, status string, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE type = $1 AND status = $2 AND created_at >= $3
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, alertType, status, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("alert exists by type and status: %w", err)
	}
	return exists, nil
}

// List devuelve alertas filtradas por status y/o substring del type, más
// recientes primero, con paginación.
func (r *AlertRepo) List(ctx context.Context, filter repository.AlertFilter) ([]*entity.Alert, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, product_id, type, status, created_at, user_id
		FROM alerts
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR type ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, filter.Status, filter.Type, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Type, &a.Status, &a.CreatedAt, &a.UserID); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
