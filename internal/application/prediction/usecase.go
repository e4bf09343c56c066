package prediction

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockgenius-api/internal/application/dto"
	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

// Ventanas y umbrales de la proyección.
const (
	consumptionWindowDays = 30
	maxProjectedDays      = 30
)

var (
	growthUpThreshold   = decimal.NewFromInt(20)
	growthDownThreshold = decimal.NewFromInt(-20)
	comfortableMaxRatio = decimal.NewFromFloat(0.7)
	comfortableMinRatio = decimal.NewFromFloat(1.5)
	hundred             = decimal.NewFromInt(100)
)

// Recomendaciones por producto.
const (
	RecommendationRestock  = "urgent restock recommended"
	RecommendationIncrease = "increase stock to meet growing demand"
	RecommendationReduce   = "reduce purchases, demand declining"
	RecommendationOptimal  = "stock at optimal level"
)

// Estados de riesgo de un producto.
const (
	PredictionStatusAlert   = "alert"
	PredictionStatusWarning = "warning"
	PredictionStatusNormal  = "normal"
)

// UseCase proyecta rotación y riesgo de rotura por producto a partir del
// consumo de pedidos reciente. Solo lectura, no escribe alertas.
type UseCase struct {
	products    repository.ProductRepository
	inventories repository.InventoryRepository
	orders      repository.OrderRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso de predicción.
func NewUseCase(
	products repository.ProductRepository,
	inventories repository.InventoryRepository,
	orders repository.OrderRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		products:    products,
		inventories: inventories,
		orders:      orders,
		log:         log,
		now:         time.Now,
	}
}

// ListProducts devuelve la proyección de cada producto con inventario.
func (uc *UseCase) ListProducts(ctx context.Context) (*dto.PredictionListResponse, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}

	out := &dto.PredictionListResponse{Items: []dto.ProductPredictionResponse{}}
	for _, p := range products {
		inv, err := uc.inventories.GetByProduct(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("inventario de %s: %w", p.ID, err)
		}
		if inv == nil {
			uc.log.Debug().Str("product_id", p.ID).Msg("producto sin inventario, omitido de la proyección")
			continue
		}

		days, err := uc.DaysToStockout(ctx, p.ID, inv.Quantity)
		if err != nil {
			return nil, err
		}
		growth, err := uc.GrowthPercentage(ctx, p.ID)
		if err != nil {
			return nil, err
		}

		out.Items = append(out.Items, dto.ProductPredictionResponse{
			ID:               p.ID,
			Name:             p.Name,
			CurrentStock:     inv.Quantity,
			MinThreshold:     p.MinThreshold,
			MaxThreshold:     p.MaxThreshold,
			DaysToStockout:   days,
			Status:           statusFor(p, inv.Quantity, days),
			GrowthPercentage: growth,
			Recommendation:   Recommendation(p, inv.Quantity, growth),
		})
	}
	return out, nil
}

// DaysToStockout estima los días hasta la rotura al ritmo de consumo de los
// últimos 30 días, con tope en 30. Sin consumo, asume una unidad diaria.
func (uc *UseCase) DaysToStockout(ctx context.Context, productID string, currentStock decimal.Decimal) (int, error) {
	now := uc.now()
	total, err := uc.orders.SumQuantityByProductBetween(ctx, productID,
		now.AddDate(0, 0, -consumptionWindowDays), now)
	if err != nil {
		return 0, fmt.Errorf("consumo de %s: %w", productID, err)
	}

	daily := decimal.NewFromInt(1)
	if total.GreaterThan(decimal.Zero) {
		daily = total.Div(decimal.NewFromInt(consumptionWindowDays))
	}
	days := int(currentStock.Div(daily).IntPart())
	if days > maxProjectedDays {
		days = maxProjectedDays
	}
	return days, nil
}

// GrowthPercentage compara las cantidades pedidas de los últimos 30 días con
// los 30 anteriores, en porcentaje con dos decimales. Sin período previo,
// devuelve 100 si hubo ventas y 0 si no.
func (uc *UseCase) GrowthPercentage(ctx context.Context, productID string) (decimal.Decimal, error) {
	now := uc.now()
	mid := now.AddDate(0, 0, -consumptionWindowDays)

	current, err := uc.orders.SumQuantityByProductBetween(ctx, productID, mid, now)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ventas actuales de %s: %w", productID, err)
	}
	previous, err := uc.orders.SumQuantityByProductBetween(ctx, productID,
		mid.AddDate(0, 0, -consumptionWindowDays), mid)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ventas previas de %s: %w", productID, err)
	}

	if !previous.GreaterThan(decimal.Zero) {
		if current.GreaterThan(decimal.Zero) {
			return hundred, nil
		}
		return decimal.Zero, nil
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2), nil
}

// Recommendation sugiere la acción de reposición según stock y crecimiento.
func Recommendation(p *entity.Product, currentStock, growthPct decimal.Decimal) string {
	switch {
	case currentStock.LessThan(p.MinThreshold):
		return RecommendationRestock
	case growthPct.GreaterThan(growthUpThreshold) && currentStock.LessThan(p.MaxThreshold.Mul(comfortableMaxRatio)):
		return RecommendationIncrease
	case growthPct.LessThan(growthDownThreshold) && currentStock.GreaterThan(p.MinThreshold.Mul(comfortableMinRatio)):
		return RecommendationReduce
	default:
		return RecommendationOptimal
	}
}

func statusFor(p *entity.Product, currentStock decimal.Decimal, daysToStockout int) string {
	switch {
	case currentStock.LessThan(p.MinThreshold):
		return PredictionStatusAlert
	case daysToStockout < maxProjectedDays:
		return PredictionStatusWarning
	default:
		return PredictionStatusNormal
	}
}
