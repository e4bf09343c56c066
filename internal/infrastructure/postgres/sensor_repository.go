package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
)

var _ repository.SensorRepository = (*SensorRepo)(nil)
var _ repository.SensorReadingRepository = (*SensorReadingRepo)(nil)

// SensorRepo implementación del puerto SensorRepository sobre PostgreSQL (usable con pool o tx).
type SensorRepo struct {
	q Querier
}

// NewSensorRepository construye el adaptador de sensores. Pasar pool o tx (Querier).
func NewSensorRepository(q Querier) *SensorRepo {
	return &SensorRepo{q: q}
}

// ListWithZone devuelve todos los sensores con el nombre de su zona resuelto.
func (r *SensorRepo) ListWithZone(ctx context.Context) ([]repository.SensorWithZone, error) {
	query := `
		SELECT s.id, s.zone_id, s.status, s.last_reading, z.name
		FROM sensors s JOIN zones z ON z.id = s.zone_id
		ORDER BY z.name, s.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sensors: %w", err)
	}
	defer rows.Close()
	var list []repository.SensorWithZone
	for rows.Next() {
		var sw repository.SensorWithZone
		if err := rows.Scan(&sw.Sensor.ID, &sw.Sensor.ZoneID, &sw.Sensor.Status,
			&sw.Sensor.LastReading, &sw.ZoneName); err != nil {
			return nil, fmt.Errorf("scan sensor: %w", err)
		}
		list = append(list, sw)
	}
	return list, rows.Err()
}

// SensorReadingRepo implementación del puerto SensorReadingRepository sobre PostgreSQL.
type SensorReadingRepo struct {
	q Querier
}

// NewSensorReadingRepository construye el adaptador de mediciones. Pasar pool o tx (Querier).
func NewSensorReadingRepository(q Querier) *SensorReadingRepo {
	return &SensorReadingRepo{q: q}
}

// LatestByZone devuelve la medición más reciente de cualquier sensor de la
// zona. (nil, nil) si la zona no tiene mediciones.
func (r *SensorReadingRepo) LatestByZone(ctx context.Context, zoneID string) (*entity.SensorReading, error) {
	query := `
		SELECT sr.id, sr.sensor_id, sr.value, sr.saved_at
		FROM sensor_readings sr JOIN sensors s ON s.id = sr.sensor_id
		WHERE s.zone_id = $1
		ORDER BY sr.saved_at DESC LIMIT 1`
	var reading entity.SensorReading
	err := r.q.QueryRow(ctx, query, zoneID).Scan(
		&reading.ID, &reading.SensorID, &reading.Value, &reading.SavedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest reading by zone: %w", err)
	}
	return &reading, nil
}
