package repository

import (
	"context"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
)

// SensorWithZone es un sensor con el nombre de su zona ya resuelto (JOIN),
// para no recorrer relaciones perezosamente desde las reglas.
type SensorWithZone struct {
	Sensor   entity.Sensor
	ZoneName string
}

// SensorRepository define el puerto de lectura de sensores.
type SensorRepository interface {
	ListWithZone(ctx context.Context) ([]SensorWithZone, error)
}

// SensorReadingRepository define el puerto de lectura de mediciones.
type SensorReadingRepository interface {
	// LatestByZone devuelve la medición más reciente de cualquier sensor de la
	// zona, o (nil, nil) si la zona no tiene mediciones.
	LatestByZone(ctx context.Context, zoneID string) (*entity.SensorReading, error)
}
