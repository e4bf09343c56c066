package alerting

import (
	"context"
	"fmt"
	"time"

	domainalerting "github.com/jhoicas/stockgenius-api/internal/domain/alerting"
	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

// seasonalOrderThreshold: cantidad de pedidos del año anterior a partir de
// la cual (estrictamente mayor) se anticipa demanda estacional.
const seasonalOrderThreshold = 10

// SeasonalRule anticipa subidas de demanda en temporadas comerciales
// comparando contra los pedidos del mismo mes del año anterior.
type SeasonalRule struct {
	products   repository.ProductRepository
	orders     repository.OrderRepository
	dispatcher *Dispatcher
	log        *logger.Logger
	now        func() time.Time
}

// NewSeasonalRule construye la regla estacional.
func NewSeasonalRule(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	dispatcher *Dispatcher,
	log *logger.Logger,
) *SeasonalRule {
	return &SeasonalRule{
		products:   products,
		orders:     orders,
		dispatcher: dispatcher,
		log:        log,
		now:        time.Now,
	}
}

func (r *SeasonalRule) Name() string { return "seasonal" }

// Evaluate no hace nada fuera de temporada. En temporada, cuenta por
// producto los pedidos del mismo mes calendario un año atrás.
func (r *SeasonalRule) Evaluate(ctx context.Context) error {
	now := r.now().UTC()
	season, ok := domainalerting.SeasonForMonth(now.Month())
	if !ok {
		return nil
	}

	products, err := r.products.List(ctx)
	if err != nil {
		return fmt.Errorf("listar productos: %w", err)
	}

	// Mes calendario completo del año anterior: [día 1, día 1 del mes siguiente)
	start := time.Date(now.Year()-1, now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	for _, p := range products {
		count, err := r.orders.CountByProductBetween(ctx, p.ID, start, end)
		if err != nil {
			return fmt.Errorf("contar pedidos históricos de %s: %w", p.ID, err)
		}
		if count <= seasonalOrderThreshold {
			continue
		}
		productID := p.ID
		if _, err := r.dispatcher.Submit(ctx, Candidate{
			ProductID: &productID,
			Type:      fmt.Sprintf("seasonal period: %s - demand increase expected", season),
			Status:    entity.AlertStatusToPlan,
		}); err != nil {
			return err
		}
		r.log.Info().
			Str("product_id", p.ID).
			Str("season", season).
			Int64("orders_last_year", count).
			Msg("demanda estacional anticipada")
	}
	return nil
}
