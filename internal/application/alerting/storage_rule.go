package alerting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
	"github.com/jhoicas/stockgenius-api/internal/metrics"
	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

// Banda de utilización normal de una zona: [20, 500] inclusive.
var (
	zoneUnderutilizedBelow = decimal.NewFromInt(20)
	zoneOverloadedAbove    = decimal.NewFromInt(500)
)

const storageDedupWindow = 24 * time.Hour

// StorageRule vigila la utilización del espacio por zona: alerta zonas
// con muy poco o demasiado stock total, con una ventana propia de 24h
// sobre alertas en estado optimization, adicional al dedup general.
type StorageRule struct {
	inventories repository.InventoryRepository
	alerts      repository.AlertRepository
	dispatcher  *Dispatcher
	log         *logger.Logger
	now         func() time.Time
}

// NewStorageRule construye la regla de utilización de almacenamiento.
func NewStorageRule(
	inventories repository.InventoryRepository,
	alerts repository.AlertRepository,
	dispatcher *Dispatcher,
	log *logger.Logger,
) *StorageRule {
	return &StorageRule{
		inventories: inventories,
		alerts:      alerts,
		dispatcher:  dispatcher,
		log:         log,
		now:         time.Now,
	}
}

func (r *StorageRule) Name() string { return "storage" }

func (r *StorageRule) Evaluate(ctx context.Context) error {
	totals, err := r.inventories.TotalsByZone(ctx)
	if err != nil {
		return fmt.Errorf("totales por zona: %w", err)
	}

	since := r.now().Add(-storageDedupWindow)
	for _, t := range totals {
		var alertType string
		switch {
		case t.Total.LessThan(zoneUnderutilizedBelow):
			alertType = fmt.Sprintf("zone %s underutilized (quantity=%s)", t.ZoneName, t.Total)
		case t.Total.GreaterThan(zoneOverloadedAbove):
			alertType = fmt.Sprintf("zone %s overloaded (quantity=%s)", t.ZoneName, t.Total)
		default:
			continue
		}

		exists, err := r.alerts.ExistsWithTypeAndStatusSince(ctx, alertType, entity.AlertStatusOptimization, since)
		if err != nil {
			return fmt.Errorf("dedup de optimización: %w", err)
		}
		if exists {
			r.log.Info().Str("type", alertType).Msg("alerta de optimización reciente, ignorada")
			continue
		}

		// La alerta necesita un product_id: se toma cualquier fila de
		// inventario de la zona. Una zona sin filas no puede representarse
		// con la forma actual de Alert y se descarta con warning.
		inventories, err := r.inventories.ListByZone(ctx, t.ZoneID)
		if err != nil {
			return fmt.Errorf("inventario de zona %s: %w", t.ZoneID, err)
		}
		if len(inventories) == 0 {
			metrics.AlertsDroppedTotal.Inc()
			r.log.Warn().
				Str("zone", t.ZoneName).
				Msg("zona sin inventario, alerta de utilización descartada")
			continue
		}

		productID := inventories[0].ProductID
		zoneID := t.ZoneID
		if _, err := r.dispatcher.Submit(ctx, Candidate{
			ProductID: &productID,
			Type:      alertType,
			Status:    entity.AlertStatusOptimization,
			ZoneID:    &zoneID,
		}); err != nil {
			return err
		}
	}
	return nil
}
