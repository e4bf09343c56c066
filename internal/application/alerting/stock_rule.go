package alerting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

// discrepancyGap: diferencia entre stock teórico y medido a partir de la
// cual (estrictamente mayor) se alerta.
var discrepancyGap = decimal.NewFromInt(5)

// StockRule detecta, por cada fila de inventario, dos condiciones
// independientes: discrepancia entre stock teórico y medido por sensor, y
// salida de la banda [min_threshold, max_threshold] del producto.
type StockRule struct {
	inventories repository.InventoryRepository
	products    repository.ProductRepository
	readings    repository.SensorReadingRepository
	dispatcher  *Dispatcher
	log         *logger.Logger
}

// NewStockRule construye la regla de stock.
func NewStockRule(
	inventories repository.InventoryRepository,
	products repository.ProductRepository,
	readings repository.SensorReadingRepository,
	dispatcher *Dispatcher,
	log *logger.Logger,
) *StockRule {
	return &StockRule{
		inventories: inventories,
		products:    products,
		readings:    readings,
		dispatcher:  dispatcher,
		log:         log,
	}
}

func (r *StockRule) Name() string { return "stock" }

// Evaluate recorre todo el inventario. Un valor de sensor no numérico se
// ignora sin abortar; un error de consulta aborta la regla completa.
func (r *StockRule) Evaluate(ctx context.Context) error {
	inventories, err := r.inventories.List(ctx)
	if err != nil {
		return fmt.Errorf("listar inventario: %w", err)
	}
	products, err := r.products.List(ctx)
	if err != nil {
		return fmt.Errorf("listar productos: %w", err)
	}
	productByID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	for _, inv := range inventories {
		if err := r.checkDiscrepancy(ctx, inv); err != nil {
			return err
		}
		if err := r.checkThresholds(ctx, inv, productByID[inv.ProductID]); err != nil {
			return err
		}
	}
	return nil
}

// checkDiscrepancy compara el stock teórico contra la última medición de la
// zona; alerta si |teórico - medido| > 5.
func (r *StockRule) checkDiscrepancy(ctx context.Context, inv *entity.Inventory) error {
	reading, err := r.readings.LatestByZone(ctx, inv.ZoneID)
	if err != nil {
		return fmt.Errorf("última medición de zona %s: %w", inv.ZoneID, err)
	}
	if reading == nil {
		return nil
	}

	measured, err := decimal.NewFromString(reading.Value)
	if err != nil {
		// Valor no numérico del bridge serial: se ignora esta medición.
		r.log.Debug().
			Str("sensor_id", reading.SensorID).
			Str("value", reading.Value).
			Msg("medición no numérica, ignorada")
		return nil
	}

	if inv.Quantity.Sub(measured).Abs().GreaterThan(discrepancyGap) {
		productID := inv.ProductID
		zoneID := inv.ZoneID
		_, err := r.dispatcher.Submit(ctx, Candidate{
			ProductID: &productID,
			Type: fmt.Sprintf("stock discrepancy: theoretical=%s, measured=%s",
				inv.Quantity, measured),
			ZoneID: &zoneID,
		})
		return err
	}
	return nil
}

// checkThresholds alerta rotura prevista bajo min_threshold (estricto) o
// surplus previsto sobre max_threshold (estricto). Mutuamente excluyentes
// entre sí, independientes del chequeo de discrepancia.
func (r *StockRule) checkThresholds(ctx context.Context, inv *entity.Inventory, product *entity.Product) error {
	if product == nil {
		r.log.Warn().
			Str("product_id", inv.ProductID).
			Msg("inventario sin producto asociado, umbrales no evaluados")
		return nil
	}

	productID := inv.ProductID
	zoneID := inv.ZoneID
	switch {
	case inv.Quantity.LessThan(product.MinThreshold):
		_, err := r.dispatcher.Submit(ctx, Candidate{
			ProductID: &productID,
			Type:      "predicted stockout",
			ZoneID:    &zoneID,
		})
		return err
	case inv.Quantity.GreaterThan(product.MaxThreshold):
		_, err := r.dispatcher.Submit(ctx, Candidate{
			ProductID: &productID,
			Type:      "predicted surplus",
			ZoneID:    &zoneID,
		})
		return err
	}
	return nil
}
