package entity

import "time"

// Estados de Sensor.
const (
	SensorStatusActive   = "active"
	SensorStatusInactive = "inactive"
)

// Sensor es un lector RFID asociado a una zona (uno por zona y modalidad).
// LastReading es nil si el sensor nunca ha transmitido.
type Sensor struct {
	ID          string
	ZoneID      string
	Status      string
	LastReading *time.Time
}
