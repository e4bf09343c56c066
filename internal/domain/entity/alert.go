package entity

import "time"

// Estados de Alert. Resolved es terminal: una alerta con cualquier otro
// estado se considera abierta y bloquea duplicados (product_id, type).
const (
	AlertStatusUnprocessed  = "unprocessed"
	AlertStatusUrgent       = "urgent"
	AlertStatusToPlan       = "to-plan"
	AlertStatusPriority     = "priority"
	AlertStatusOptimization = "optimization"
	AlertStatusResolved     = "resolved"
)

// Alert es el único artefacto durable que produce el motor de reglas.
// ProductID es nil en alertas a nivel de zona/sensor; en ese caso UserID
// debe estar asignado para que la alerta sea enrutable.
type Alert struct {
	ID        string
	ProductID *string
	Type      string
	Status    string
	CreatedAt time.Time
	UserID    *string
}

// IsOpen indica si la alerta sigue activa (no resuelta).
func (a *Alert) IsOpen() bool {
	return a.Status != AlertStatusResolved
}
