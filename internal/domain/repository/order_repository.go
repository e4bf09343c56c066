package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
)

// OrderRepository define el puerto de lectura de pedidos para las reglas
// de validación, estacionalidad y tendencia de demanda.
type OrderRepository interface {
	// ListPendingAbove devuelve los pedidos en estado pending con cantidad estrictamente mayor a minQty.
	ListPendingAbove(ctx context.Context, minQty decimal.Decimal) ([]*entity.Order, error)
	// CountByProductBetween cuenta pedidos del producto creados en [from, to).
	CountByProductBetween(ctx context.Context, productID string, from, to time.Time) (int64, error)
	// SumQuantityByProductInMonth suma cantidades pedidas del producto en el mes/año calendario dado.
	SumQuantityByProductInMonth(ctx context.Context, productID string, year int, month time.Month) (decimal.Decimal, error)
	// SumQuantityByProductBetween suma cantidades pedidas del producto en [from, to).
	SumQuantityByProductBetween(ctx context.Context, productID string, from, to time.Time) (decimal.Decimal, error)
}
