package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de stock teórico. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// List devuelve todas las filas de inventario.
func (r *InventoryRepo) List(ctx context.Context) ([]*entity.Inventory, error) {
	query := `
		SELECT product_id, zone_id, quantity, last_update_at
		FROM inventories`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()
	return scanInventories(rows)
}

// ListByZone devuelve las filas de inventario de una zona.
func (r *InventoryRepo) ListByZone(ctx context.Context, zoneID string) ([]*entity.Inventory, error) {
	query := `
		SELECT product_id, zone_id, quantity, last_update_at
		FROM inventories WHERE zone_id = $1`
	rows, err := r.q.Query(ctx, query, zoneID)
	if err != nil {
		return nil, fmt.Errorf("list inventories by zone: %w", err)
	}
	defer rows.Close()
	return scanInventories(rows)
}

// TotalsByZone agrega el stock teórico por zona (solo zonas con filas).
func (r *InventoryRepo) TotalsByZone(ctx context.Context) ([]repository.ZoneStockTotal, error) {
	query := `
		SELECT i.zone_id, z.name, SUM(i.quantity)
		FROM inventories i JOIN zones z ON z.id = i.zone_id
		GROUP BY i.zone_id, z.name
		ORDER BY z.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("totals by zone: %w", err)
	}
	defer rows.Close()
	var list []repository.ZoneStockTotal
	for rows.Next() {
		var t repository.ZoneStockTotal
		if err := rows.Scan(&t.ZoneID, &t.ZoneName, &t.Total); err != nil {
			return nil, fmt.Errorf("scan zone total: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetByProduct devuelve la fila de inventario de un producto (la primera por zona).
// (nil, nil) si el producto no tiene inventario.
func (r *InventoryRepo) GetByProduct(ctx context.Context, productID string) (*entity.Inventory, error) {
	query := `
		SELECT product_id, zone_id, quantity, last_update_at
		FROM inventories WHERE product_id = $1
		ORDER BY zone_id LIMIT 1`
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&inv.ProductID, &inv.ZoneID, &inv.Quantity, &inv.LastUpdateAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory by product: %w", err)
	}
	return &inv, nil
}

func scanInventories(rows pgx.Rows) ([]*entity.Inventory, error) {
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ProductID, &inv.ZoneID, &inv.Quantity, &inv.LastUpdateAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
