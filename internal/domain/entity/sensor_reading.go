package entity

import "time"

// SensorReading es una medición cruda de un sensor. Value llega como texto
// desde el bridge serial y puede no ser numérico; quien lo consuma debe parsear.
type SensorReading struct {
	ID       string
	SensorID string
	Value    string
	SavedAt  time.Time
}
