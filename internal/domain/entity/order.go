package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Order.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order es un pedido de cliente sobre un producto.
type Order struct {
	ID        string
	ProductID string
	Quantity  decimal.Decimal
	Status    string
	UserID    string
	CreatedAt time.Time
}
