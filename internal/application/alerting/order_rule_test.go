package alerting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests LargeOrderRule — validación manual de pedidos grandes
// ──────────────────────────────────────────────────────────────────────────────

var orderFixedNow = time.Date(2025, time.May, 20, 10, 0, 0, 0, time.UTC)

func newOrderFixture() (*memStore, *LargeOrderRule) {
	store := newMemStore()
	rule := NewLargeOrderRule(store, memAlerts{store}, newTestDispatcher(store), logger.Nop())
	rule.now = func() time.Time { return orderFixedNow }
	return store, rule
}

func addPendingOrder(store *memStore, id string, qty int64) {
	store.orders = append(store.orders, &entity.Order{
		ID: id, ProductID: "prod-1", UserID: "buyer-1",
		Quantity: dec(qty), Status: entity.OrderStatusPending,
		CreatedAt: orderFixedNow.Add(-time.Hour),
	})
}

// Un pedido pendiente de 350 unidades exige validación: alerta priority
// asignada al autor del pedido, con id y cantidad en el type.
func TestLargeOrderRule_PedidoGrandePideValidacion(t *testing.T) {
	store, rule := newOrderFixture()
	addPendingOrder(store, "77", 350)

	require.NoError(t, rule.Evaluate(context.Background()))
	created := store.alertsOfType("validation required for order #77 of 350 units")
	require.Len(t, created, 1)
	assert.Equal(t, entity.AlertStatusPriority, created[0].Status)
	require.NotNil(t, created[0].UserID)
	assert.Equal(t, "buyer-1", *created[0].UserID, "la alerta pertenece al autor del pedido")
}

// Frontera de cantidad: exactamente 300 no alerta, 301 sí.
func TestLargeOrderRule_FronteraDeCantidad(t *testing.T) {
	store, rule := newOrderFixture()
	addPendingOrder(store, "o-300", 300)
	require.NoError(t, rule.Evaluate(context.Background()))
	assert.Equal(t, 0, store.alertCount(), "300 unidades exactas no debe alertar")

	store, rule = newOrderFixture()
	addPendingOrder(store, "o-301", 301)
	require.NoError(t, rule.Evaluate(context.Background()))
	assert.Equal(t, 1, store.alertCount())
}

// Solo los pedidos pendientes cuentan: uno completado no pide validación.
func TestLargeOrderRule_SoloPendientes(t *testing.T) {
	store, rule := newOrderFixture()
	store.orders = []*entity.Order{{
		ID: "o-done", ProductID: "prod-1", UserID: "buyer-1",
		Quantity: dec(500), Status: entity.OrderStatusCompleted,
		CreatedAt: orderFixedNow.Add(-time.Hour),
	}}

	require.NoError(t, rule.Evaluate(context.Background()))
	assert.Equal(t, 0, store.alertCount())
}

// Ventana de 24h por pedido: una alerta previa del mismo pedido dentro de la
// ventana suprime la nueva aunque esté resuelta; fuera de la ventana no.
func TestLargeOrderRule_VentanaPorPedido(t *testing.T) {
	store, rule := newOrderFixture()
	addPendingOrder(store, "77", 350)
	store.alerts = []*entity.Alert{{
		ID: "prev", ProductID: strPtr("prod-1"),
		Type:      "validation required for order #77 of 350 units",
		Status:    entity.AlertStatusResolved,
		CreatedAt: orderFixedNow.Add(-2 * time.Hour),
	}}

	require.NoError(t, rule.Evaluate(context.Background()))
	assert.Equal(t, 1, store.alertCount(), "alerta previa dentro de 24h debe suprimir la nueva")

	// La misma alerta previa, pero de hace 25h: el pedido vuelve a alertar
	store.alerts[0].CreatedAt = orderFixedNow.Add(-25 * time.Hour)
	require.NoError(t, rule.Evaluate(context.Background()))
	assert.Equal(t, 2, store.alertCount())
}

// Dos pedidos grandes del mismo producto generan cada uno su alerta: el
// type incluye el id del pedido y no colisionan en el dedup general.
func TestLargeOrderRule_PedidosDistintosNoColisionan(t *testing.T) {
	store, rule := newOrderFixture()
	addPendingOrder(store, "77", 350)
	addPendingOrder(store, "78", 420)

	require.NoError(t, rule.Evaluate(context.Background()))
	assert.Len(t, store.alertsOfType("validation required for order #77 of 350 units"), 1)
	assert.Len(t, store.alertsOfType("validation required for order #78 of 420 units"), 1)
}
