package alerting

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
	"github.com/jhoicas/stockgenius-api/internal/metrics"
	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

// sensorStaleAfter: antigüedad de la última medición a partir de la cual un
// sensor se considera fuera de línea.
const sensorStaleAfter = 12 * time.Hour

// SensorRule detecta sensores que dejaron de transmitir y alerta en urgente
// por cada producto de la zona afectada. Si la zona no tiene inventario,
// emite una alerta a nivel de zona asignada directamente a un admin.
type SensorRule struct {
	sensors     repository.SensorRepository
	inventories repository.InventoryRepository
	users       repository.UserRepository
	dispatcher  *Dispatcher
	log         *logger.Logger
	now         func() time.Time
}

// NewSensorRule construye la regla de salud de sensores.
func NewSensorRule(
	sensors repository.SensorRepository,
	inventories repository.InventoryRepository,
	users repository.UserRepository,
	dispatcher *Dispatcher,
	log *logger.Logger,
) *SensorRule {
	return &SensorRule{
		sensors:     sensors,
		inventories: inventories,
		users:       users,
		dispatcher:  dispatcher,
		log:         log,
		now:         time.Now,
	}
}

func (r *SensorRule) Name() string { return "sensor" }

func (r *SensorRule) Evaluate(ctx context.Context) error {
	sensors, err := r.sensors.ListWithZone(ctx)
	if err != nil {
		return fmt.Errorf("listar sensores: %w", err)
	}

	staleBefore := r.now().Add(-sensorStaleAfter)
	for _, s := range sensors {
		if s.Sensor.LastReading != nil && !s.Sensor.LastReading.Before(staleBefore) {
			continue
		}
		if err := r.alertOfflineSensor(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (r *SensorRule) alertOfflineSensor(ctx context.Context, s repository.SensorWithZone) error {
	alertType := fmt.Sprintf("sensor %s offline (zone %s)", s.Sensor.ID, s.ZoneName)
	r.log.Warn().
		Str("sensor_id", s.Sensor.ID).
		Str("zone", s.ZoneName).
		Msg("sensor fuera de línea")

	inventories, err := r.inventories.ListByZone(ctx, s.Sensor.ZoneID)
	if err != nil {
		return fmt.Errorf("inventario de zona %s: %w", s.Sensor.ZoneID, err)
	}

	if len(inventories) == 0 {
		// Zona sin productos: alerta a nivel de zona, dueño admin explícito
		// (no hay producto por el que enrutar).
		admin, err := r.users.FindFirstAdmin(ctx)
		if err != nil {
			return fmt.Errorf("buscar admin: %w", err)
		}
		if admin == nil {
			metrics.AlertsDroppedTotal.Inc()
			r.log.Warn().
				Str("sensor_id", s.Sensor.ID).
				Msg("sin admin disponible, alerta de zona descartada")
			return nil
		}
		_, err = r.dispatcher.Submit(ctx, Candidate{
			ProductID: nil,
			Type:      alertType,
			Status:    entity.AlertStatusUrgent,
			UserID:    &admin.ID,
		})
		return err
	}

	zoneID := s.Sensor.ZoneID
	for _, inv := range inventories {
		productID := inv.ProductID
		if _, err := r.dispatcher.Submit(ctx, Candidate{
			ProductID: &productID,
			Type:      alertType,
			Status:    entity.AlertStatusUrgent,
			ZoneID:    &zoneID,
		}); err != nil {
			return err
		}
	}
	return nil
}
