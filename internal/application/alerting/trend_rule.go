package alerting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

// trendRatioThreshold: crecimiento mes a mes a partir del cual
// (estrictamente mayor) se alerta, es decir +40%.
var trendRatioThreshold = decimal.NewFromFloat(1.4)

// TrendRule compara la demanda del mes calendario actual contra la del mes
// anterior (con rollover diciembre→enero) y alerta subidas significativas.
type TrendRule struct {
	products   repository.ProductRepository
	orders     repository.OrderRepository
	dispatcher *Dispatcher
	log        *logger.Logger
	now        func() time.Time
}

// NewTrendRule construye la regla de tendencia de demanda.
func NewTrendRule(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	dispatcher *Dispatcher,
	log *logger.Logger,
) *TrendRule {
	return &TrendRule{
		products:   products,
		orders:     orders,
		dispatcher: dispatcher,
		log:        log,
		now:        time.Now,
	}
}

func (r *TrendRule) Name() string { return "trend" }

func (r *TrendRule) Evaluate(ctx context.Context) error {
	now := r.now().UTC()
	curYear, curMonth := now.Year(), now.Month()
	prevYear, prevMonth := curYear, curMonth-1
	if curMonth == time.January {
		prevYear, prevMonth = curYear-1, time.December
	}

	products, err := r.products.List(ctx)
	if err != nil {
		return fmt.Errorf("listar productos: %w", err)
	}

	for _, p := range products {
		current, err := r.orders.SumQuantityByProductInMonth(ctx, p.ID, curYear, curMonth)
		if err != nil {
			return fmt.Errorf("demanda actual de %s: %w", p.ID, err)
		}
		previous, err := r.orders.SumQuantityByProductInMonth(ctx, p.ID, prevYear, prevMonth)
		if err != nil {
			return fmt.Errorf("demanda previa de %s: %w", p.ID, err)
		}
		// Sin demanda previa: usar 1 para no dividir por cero.
		if previous.IsZero() {
			previous = decimal.NewFromInt(1)
		}

		if !current.IsPositive() || !previous.IsPositive() {
			continue
		}
		if !current.Div(previous).GreaterThan(trendRatioThreshold) {
			continue
		}

		// Porcentaje truncado, no redondeado.
		increase := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).IntPart()
		productID := p.ID
		if _, err := r.dispatcher.Submit(ctx, Candidate{
			ProductID: &productID,
			Type:      fmt.Sprintf("demand increase: +%d%% this month", increase),
			Status:    entity.AlertStatusToPlan,
		}); err != nil {
			return err
		}
		r.log.Info().
			Str("product_id", p.ID).
			Int64("increase_pct", increase).
			Msg("subida de demanda detectada")
	}
	return nil
}
