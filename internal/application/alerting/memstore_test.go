package alerting

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockgenius-api/internal/domain"
	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria que implementa todos los puertos del motor.
// Create reproduce el índice único parcial de postgres: una alerta abierta
// con el mismo (product_id, type) provoca domain.ErrDuplicate.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu          sync.Mutex
	products    []*entity.Product
	zones       map[string]string // zoneID -> nombre
	inventories []*entity.Inventory
	sensors     []repository.SensorWithZone
	readings    []*entity.SensorReading
	orders      []*entity.Order
	users       []*entity.User
	alerts      []*entity.Alert

	// failOn induce un error de acceso a datos por método (clave = nombre).
	failOn map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		zones:  map[string]string{},
		failOn: map[string]error{},
	}
}

func (s *memStore) failure(method string) error {
	return s.failOn[method]
}

// ─── ProductRepository ───

func (s *memStore) GetByID(_ context.Context, id string) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (s *memStore) List(_ context.Context) ([]*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListProducts"); err != nil {
		return nil, err
	}
	return append([]*entity.Product(nil), s.products...), nil
}

// ─── InventoryRepository ───

func (s *memStore) ListInventories(_ context.Context) ([]*entity.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListInventories"); err != nil {
		return nil, err
	}
	return append([]*entity.Inventory(nil), s.inventories...), nil
}

func (s *memStore) ListByZone(_ context.Context, zoneID string) ([]*entity.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Inventory
	for _, inv := range s.inventories {
		if inv.ZoneID == zoneID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (s *memStore) TotalsByZone(_ context.Context) ([]repository.ZoneStockTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("TotalsByZone"); err != nil {
		return nil, err
	}
	totals := map[string]decimal.Decimal{}
	var order []string
	for _, inv := range s.inventories {
		if _, ok := totals[inv.ZoneID]; !ok {
			order = append(order, inv.ZoneID)
		}
		totals[inv.ZoneID] = totals[inv.ZoneID].Add(inv.Quantity)
	}
	out := make([]repository.ZoneStockTotal, 0, len(order))
	for _, zoneID := range order {
		out = append(out, repository.ZoneStockTotal{
			ZoneID:   zoneID,
			ZoneName: s.zones[zoneID],
			Total:    totals[zoneID],
		})
	}
	return out, nil
}

func (s *memStore) GetByProduct(_ context.Context, productID string) (*entity.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.inventories {
		if inv.ProductID == productID {
			return inv, nil
		}
	}
	return nil, nil
}

// ─── SensorRepository / SensorReadingRepository ───

func (s *memStore) ListWithZone(_ context.Context) ([]repository.SensorWithZone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListWithZone"); err != nil {
		return nil, err
	}
	return append([]repository.SensorWithZone(nil), s.sensors...), nil
}

func (s *memStore) LatestByZone(_ context.Context, zoneID string) (*entity.SensorReading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("LatestByZone"); err != nil {
		return nil, err
	}
	sensorsInZone := map[string]bool{}
	for _, sw := range s.sensors {
		if sw.Sensor.ZoneID == zoneID {
			sensorsInZone[sw.Sensor.ID] = true
		}
	}
	var latest *entity.SensorReading
	for _, rd := range s.readings {
		if !sensorsInZone[rd.SensorID] {
			continue
		}
		if latest == nil || rd.SavedAt.After(latest.SavedAt) {
			latest = rd
		}
	}
	return latest, nil
}

// ─── OrderRepository ───

func (s *memStore) ListPendingAbove(_ context.Context, minQty decimal.Decimal) ([]*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListPendingAbove"); err != nil {
		return nil, err
	}
	var out []*entity.Order
	for _, o := range s.orders {
		if o.Status == entity.OrderStatusPending && o.Quantity.GreaterThan(minQty) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *memStore) CountByProductBetween(_ context.Context, productID string, from, to time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, o := range s.orders {
		if o.ProductID == productID && !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) SumQuantityByProductInMonth(_ context.Context, productID string, year int, month time.Month) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, o := range s.orders {
		if o.ProductID == productID && o.CreatedAt.Year() == year && o.CreatedAt.Month() == month {
			sum = sum.Add(o.Quantity)
		}
	}
	return sum, nil
}

func (s *memStore) SumQuantityByProductBetween(_ context.Context, productID string, from, to time.Time) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, o := range s.orders {
		if o.ProductID == productID && !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			sum = sum.Add(o.Quantity)
		}
	}
	return sum, nil
}

// ─── UserRepository ───

func (s *memStore) FindZoneResponsible(_ context.Context, zoneID string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("FindZoneResponsible"); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if (u.Role == entity.RoleResponsableZone || u.Role == entity.RoleAdmin) && u.IsResponsibleFor(zoneID) {
			return u, nil
		}
	}
	return nil, nil
}

func (s *memStore) FindFirstAdmin(_ context.Context) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("FindFirstAdmin"); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if u.Role == entity.RoleAdmin {
			return u, nil
		}
	}
	return nil, nil
}

// ─── AlertRepository ───

func sameProduct(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *memStore) Create(_ context.Context, alert *entity.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("CreateAlert"); err != nil {
		return err
	}
	for _, a := range s.alerts {
		if a.IsOpen() && sameProduct(a.ProductID, alert.ProductID) && a.Type == alert.Type {
			return domain.ErrDuplicate
		}
	}
	s.alerts = append(s.alerts, alert)
	return nil
}

func (s *memStore) FindOpen(_ context.Context, productID *string, alertType string) (*entity.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("FindOpen"); err != nil {
		return nil, err
	}
	for _, a := range s.alerts {
		if a.IsOpen() && sameProduct(a.ProductID, productID) && a.Type == alertType {
			return a, nil
		}
	}
	return nil, nil
}

func (s *memStore) ExistsWithTypePrefixSince(_ context.Context, productID, prefix string, since time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.alerts {
		if a.ProductID != nil && *a.ProductID == productID &&
			strings.HasPrefix(a.Type, prefix) && !a.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) ExistsWithTypeAndStatusSince(_ context.Context, alertType, status string, since time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.alerts {
		if a.Type == alertType && a.Status == status && !a.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) ListAlerts(_ context.Context, filter repository.AlertFilter) ([]*entity.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Alert
	for _, a := range s.alerts {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Type != "" && !strings.Contains(a.Type, filter.Type) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Adaptadores: memStore implementa varios puertos con nombres que chocan
// (List, Create); estos wrappers exponen cada puerto por separado.
// ──────────────────────────────────────────────────────────────────────────────

type memInventories struct{ s *memStore }

func (m memInventories) List(ctx context.Context) ([]*entity.Inventory, error) {
	return m.s.ListInventories(ctx)
}
func (m memInventories) ListByZone(ctx context.Context, zoneID string) ([]*entity.Inventory, error) {
	return m.s.ListByZone(ctx, zoneID)
}
func (m memInventories) TotalsByZone(ctx context.Context) ([]repository.ZoneStockTotal, error) {
	return m.s.TotalsByZone(ctx)
}
func (m memInventories) GetByProduct(ctx context.Context, productID string) (*entity.Inventory, error) {
	return m.s.GetByProduct(ctx, productID)
}

type memAlerts struct{ s *memStore }

func (m memAlerts) Create(ctx context.Context, alert *entity.Alert) error {
	return m.s.Create(ctx, alert)
}
func (m memAlerts) FindOpen(ctx context.Context, productID *string, alertType string) (*entity.Alert, error) {
	return m.s.FindOpen(ctx, productID, alertType)
}
func (m memAlerts) ExistsWithTypePrefixSince(ctx context.Context, productID, prefix string, since time.Time) (bool, error) {
	return m.s.ExistsWithTypePrefixSince(ctx, productID, prefix, since)
}
func (m memAlerts) ExistsWithTypeAndStatusSince(ctx context.Context, alertType, status string, since time.Time) (bool, error) {
	return m.s.ExistsWithTypeAndStatusSince(ctx, alertType, status, since)
}
func (m memAlerts) List(ctx context.Context, filter repository.AlertFilter) ([]*entity.Alert, error) {
	return m.s.ListAlerts(ctx, filter)
}

// deps arma el struct de dependencias del motor sobre el store en memoria.
func (s *memStore) deps() Deps {
	return Deps{
		Products:    s,
		Inventories: memInventories{s},
		Sensors:     s,
		Readings:    s,
		Orders:      s,
		Users:       s,
		Alerts:      memAlerts{s},
	}
}

// openAlerts devuelve las alertas abiertas cuyo type coincide exactamente.
func (s *memStore) alertsOfType(alertType string) []*entity.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Alert
	for _, a := range s.alerts {
		if a.Type == alertType {
			out = append(out, a)
		}
	}
	return out
}

func (s *memStore) alertCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.alerts)
}
