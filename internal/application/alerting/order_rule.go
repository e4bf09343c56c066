package alerting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

// Umbral y ventana de la validación de pedidos grandes.
var largeOrderQty = decimal.NewFromInt(300)

const largeOrderDedupWindow = 24 * time.Hour

// LargeOrderRule exige validación manual para pedidos pendientes de más de
// 300 unidades. Además del dedup general por (producto, type), aplica una
// ventana de 24h por pedido: varios pedidos grandes del mismo producto deben
// generar cada uno su propia alerta.
type LargeOrderRule struct {
	orders     repository.OrderRepository
	alerts     repository.AlertRepository
	dispatcher *Dispatcher
	log        *logger.Logger
	now        func() time.Time
}

// NewLargeOrderRule construye la regla de pedidos grandes.
func NewLargeOrderRule(
	orders repository.OrderRepository,
	alerts repository.AlertRepository,
	dispatcher *Dispatcher,
	log *logger.Logger,
) *LargeOrderRule {
	return &LargeOrderRule{
		orders:     orders,
		alerts:     alerts,
		dispatcher: dispatcher,
		log:        log,
		now:        time.Now,
	}
}

func (r *LargeOrderRule) Name() string { return "large_order" }

func (r *LargeOrderRule) Evaluate(ctx context.Context) error {
	orders, err := r.orders.ListPendingAbove(ctx, largeOrderQty)
	if err != nil {
		return fmt.Errorf("listar pedidos grandes: %w", err)
	}

	since := r.now().Add(-largeOrderDedupWindow)
	for _, o := range orders {
		prefix := fmt.Sprintf("validation required for order #%s", o.ID)
		exists, err := r.alerts.ExistsWithTypePrefixSince(ctx, o.ProductID, prefix, since)
		if err != nil {
			return fmt.Errorf("dedup de pedido %s: %w", o.ID, err)
		}
		if exists {
			r.log.Info().
				Str("order_id", o.ID).
				Msg("alerta ya emitida para el pedido, ignorado")
			continue
		}

		productID := o.ProductID
		userID := o.UserID
		if _, err := r.dispatcher.Submit(ctx, Candidate{
			ProductID: &productID,
			Type:      fmt.Sprintf("validation required for order #%s of %s units", o.ID, o.Quantity),
			Status:    entity.AlertStatusPriority,
			UserID:    &userID,
		}); err != nil {
			return err
		}
	}
	return nil
}
