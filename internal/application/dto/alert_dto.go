package dto

import "time"

// AlertListRequest filtros del listado de alertas.
type AlertListRequest struct {
	PageRequest
	Status string `query:"status"`
	Type   string `query:"type"`
}

// AlertResponse salida de una alerta.
type AlertResponse struct {
	ID        string    `json:"id"`
	ProductID *string   `json:"product_id"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UserID    *string   `json:"user_id"`
}

// AlertListResponse lista de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
}

// GeneratePassResponse resultado del disparo manual de una pasada.
type GeneratePassResponse struct {
	Message string `json:"message"`
}
