package alerting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests StorageRule — utilización del espacio por zona
// ──────────────────────────────────────────────────────────────────────────────

var storageFixedNow = time.Date(2025, time.May, 20, 10, 0, 0, 0, time.UTC)

func newStorageFixture(total int64) (*memStore, *StorageRule) {
	store := newMemStore()
	store.zones["zone-a"] = "A"
	store.inventories = []*entity.Inventory{
		{ProductID: "prod-1", ZoneID: "zone-a", Quantity: dec(total)},
	}
	rule := NewStorageRule(memInventories{store}, memAlerts{store}, newTestDispatcher(store), logger.Nop())
	rule.now = func() time.Time { return storageFixedNow }
	return store, rule
}

// Fronteras de la banda [20, 500]: 19 y 501 alertan, 20 y 500 no.
func TestStorageRule_FronterasDeBanda(t *testing.T) {
	store, rule := newStorageFixture(19)
	require.NoError(t, rule.Evaluate(context.Background()))
	created := store.alertsOfType("zone A underutilized (quantity=19)")
	require.Len(t, created, 1)
	assert.Equal(t, entity.AlertStatusOptimization, created[0].Status)

	store, rule = newStorageFixture(20)
	require.NoError(t, rule.Evaluate(context.Background()))
	assert.Equal(t, 0, store.alertCount(), "20 está dentro de la banda")

	store, rule = newStorageFixture(500)
	require.NoError(t, rule.Evaluate(context.Background()))
	assert.Equal(t, 0, store.alertCount(), "500 está dentro de la banda")

	store, rule = newStorageFixture(501)
	require.NoError(t, rule.Evaluate(context.Background()))
	assert.Len(t, store.alertsOfType("zone A overloaded (quantity=501)"), 1)
}

// El total es la suma de todas las filas de la zona, no una fila suelta.
func TestStorageRule_TotalAgregadoPorZona(t *testing.T) {
	store := newMemStore()
	store.zones["zone-a"] = "A"
	store.inventories = []*entity.Inventory{
		{ProductID: "prod-1", ZoneID: "zone-a", Quantity: dec(10)},
		{ProductID: "prod-2", ZoneID: "zone-a", Quantity: dec(15)},
	}
	rule := NewStorageRule(memInventories{store}, memAlerts{store}, newTestDispatcher(store), logger.Nop())
	rule.now = func() time.Time { return storageFixedNow }

	require.NoError(t, rule.Evaluate(context.Background()))
	assert.Equal(t, 0, store.alertCount(), "10+15=25 queda dentro de la banda")
}

// Ventana de 24h sobre alertas optimization: una previa reciente suprime la
// nueva aunque esté resuelta; de hace 25h ya no.
func TestStorageRule_VentanaDeOptimizacion(t *testing.T) {
	store, rule := newStorageFixture(19)
	store.alerts = []*entity.Alert{{
		ID: "prev", ProductID: strPtr("prod-1"),
		Type:      "zone A underutilized (quantity=19)",
		Status:    entity.AlertStatusOptimization,
		CreatedAt: storageFixedNow.Add(-2 * time.Hour),
	}}
	require.NoError(t, rule.Evaluate(context.Background()))
	assert.Equal(t, 1, store.alertCount(), "alerta optimization reciente debe suprimir la nueva")

	// Con la previa envejecida y resuelta, la zona vuelve a alertar
	store.alerts[0].CreatedAt = storageFixedNow.Add(-25 * time.Hour)
	store.alerts[0].Status = entity.AlertStatusResolved
	require.NoError(t, rule.Evaluate(context.Background()))
	assert.Equal(t, 2, store.alertCount())
}

// ghostZoneTotals reporta una zona que no tiene filas de inventario, como
// ocurre cuando el agregado viene de otra fuente que el detalle.
type ghostZoneTotals struct{ memInventories }

func (g ghostZoneTotals) TotalsByZone(ctx context.Context) ([]repository.ZoneStockTotal, error) {
	return []repository.ZoneStockTotal{{ZoneID: "zone-ghost", ZoneName: "Fantasma", Total: dec(5)}}, nil
}

// Zona sin filas de inventario: la alerta no puede llevar product_id y se
// descarta con warning, sin abortar la regla.
func TestStorageRule_ZonaSinInventarioSeDescarta(t *testing.T) {
	store := newMemStore()
	rule := NewStorageRule(ghostZoneTotals{memInventories{store}}, memAlerts{store}, newTestDispatcher(store), logger.Nop())
	rule.now = func() time.Time { return storageFixedNow }

	require.NoError(t, rule.Evaluate(context.Background()))
	assert.Equal(t, 0, store.alertCount())
}
