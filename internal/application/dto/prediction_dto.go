package dto

import "github.com/shopspring/decimal"

// ProductPredictionResponse proyección de rotación y riesgo de un producto.
type ProductPredictionResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	CurrentStock     decimal.Decimal `json:"current_stock"`
	MinThreshold     decimal.Decimal `json:"min_threshold"`
	MaxThreshold     decimal.Decimal `json:"max_threshold"`
	DaysToStockout   int             `json:"days_to_stockout"`
	Status           string          `json:"status"` // alert, warning, normal
	GrowthPercentage decimal.Decimal `json:"growth_percentage"`
	Recommendation   string          `json:"recommendation"`
}

// PredictionListResponse lista de predicciones por producto.
type PredictionListResponse struct {
	Items []ProductPredictionResponse `json:"items"`
}
