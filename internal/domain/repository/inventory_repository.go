package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
)

// ZoneStockTotal agrega el stock teórico total de una zona (GROUP BY zone).
type ZoneStockTotal struct {
	ZoneID   string
	ZoneName string
	Total    decimal.Decimal
}

// InventoryRepository define el puerto de lectura del stock teórico.
type InventoryRepository interface {
	List(ctx context.Context) ([]*entity.Inventory, error)
	ListByZone(ctx context.Context, zoneID string) ([]*entity.Inventory, error)
	// TotalsByZone devuelve el total por zona con su nombre, solo zonas con filas de inventario.
	TotalsByZone(ctx context.Context) ([]ZoneStockTotal, error)
	// GetByProduct devuelve la fila de inventario de un producto (cualquier zona, la primera).
	GetByProduct(ctx context.Context, productID string) (*entity.Inventory, error)
}
