package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto almacenable. MinThreshold y MaxThreshold
// definen la banda normal de stock; fuera de ella el motor genera alertas.
type Product struct {
	ID           string
	Name         string
	MinThreshold decimal.Decimal
	MaxThreshold decimal.Decimal
	CreatedAt    time.Time
}
