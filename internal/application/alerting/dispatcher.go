package alerting

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockgenius-api/internal/domain"
	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
	"github.com/jhoicas/stockgenius-api/internal/metrics"
	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

// Candidate es una alerta candidata emitida por una regla. Status vacío
// se persiste como unprocessed. ZoneID solo guía al resolver, no se persiste.
type Candidate struct {
	ProductID *string
	Type      string
	Status    string
	UserID    *string
	ZoneID    *string
}

// Dispatcher es el único punto por el que las reglas persisten alertas.
// Aplica dedup sobre alertas abiertas (product_id, type) y trata la
// violación de unicidad concurrente igual que un duplicado encontrado.
type Dispatcher struct {
	alerts   repository.AlertRepository
	resolver *ResponsibleResolver
	log      *logger.Logger
	now      func() time.Time
}

// NewDispatcher construye el chokepoint de persistencia de alertas.
func NewDispatcher(alerts repository.AlertRepository, resolver *ResponsibleResolver, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		alerts:   alerts,
		resolver: resolver,
		log:      log,
		now:      time.Now,
	}
}

// Submit resuelve el responsable, aplica dedup y persiste la candidata.
// Retorna (nil, nil) cuando la candidata se descarta por duplicada; el error
// solo es no-nil ante fallos de acceso a datos (el caller aborta su regla).
func (d *Dispatcher) Submit(ctx context.Context, c Candidate) (*entity.Alert, error) {
	if c.Status == "" {
		c.Status = entity.AlertStatusUnprocessed
	}

	userID := c.UserID
	if userID == nil {
		userID = d.resolver.Resolve(ctx, nil, c.ZoneID)
		if userID == nil {
			d.log.Warn().
				Str("type", c.Type).
				Msg("alerta sin responsable asignado, se persiste igualmente")
		}
	}

	existing, err := d.alerts.FindOpen(ctx, c.ProductID, c.Type)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.AlertsDuplicateTotal.Inc()
		d.log.Warn().
			Str("type", c.Type).
			Str("existing_id", existing.ID).
			Msg("alerta abierta ya existente, candidata descartada")
		return nil, nil
	}

	alert := &entity.Alert{
		ID:        uuid.New().String(),
		ProductID: c.ProductID,
		Type:      c.Type,
		Status:    c.Status,
		CreatedAt: d.now(),
		UserID:    userID,
	}

	if err := d.alerts.Create(ctx, alert); err != nil {
		// Carrera entre pasadas concurrentes: otra pasada ganó el insert.
		if errors.Is(err, domain.ErrDuplicate) {
			metrics.AlertsDuplicateTotal.Inc()
			d.log.Warn().
				Str("type", c.Type).
				Msg("insert duplicado concurrente, candidata descartada")
			return nil, nil
		}
		return nil, err
	}

	metrics.AlertsCreatedTotal.Inc()
	d.log.Info().
		Str("alert_id", alert.ID).
		Str("type", alert.Type).
		Str("status", alert.Status).
		Msg("alerta generada")
	return alert, nil
}
