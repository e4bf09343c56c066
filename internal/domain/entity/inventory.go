package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory es el stock teórico de un producto en una zona.
// Única por (ProductID, ZoneID); Quantity nunca negativa.
type Inventory struct {
	ProductID    string
	ZoneID       string
	Quantity     decimal.Decimal
	LastUpdateAt time.Time
}
