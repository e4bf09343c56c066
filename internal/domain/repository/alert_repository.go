package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
)

// AlertFilter filtros del listado de alertas (lado de lectura).
type AlertFilter struct {
	Status string
	Type   string
	Limit  int
	Offset int
}

// AlertRepository define el puerto de lectura/escritura de alertas.
// Create debe retornar domain.ErrDuplicate ante una violación del índice
// único parcial (product_id, type) sobre alertas no resueltas, para que
// dos pasadas concurrentes no produzcan filas duplicadas ni errores fatales.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	// FindOpen busca una alerta abierta (status != resolved) con el mismo
	// product_id (nullable) y el mismo type; (nil, nil) si no existe.
	FindOpen(ctx context.Context, productID *string, alertType string) (*entity.Alert, error)
	// ExistsWithTypePrefixSince indica si existe una alerta del producto cuyo
	// type empieza con prefix, creada desde since (ventana de dedup por pedido).
	ExistsWithTypePrefixSince(ctx context.Context, productID, prefix string, since time.Time) (bool, error)
	// ExistsWithTypeAndStatusSince indica si existe una alerta con exactamente
	// ese type y status creada desde since (ventana de dedup de optimización).
	ExistsWithTypeAndStatusSince(ctx context.Context, alertType, status string, since time.Time) (bool, error)
	List(ctx context.Context, filter AlertFilter) ([]*entity.Alert, error)
}
