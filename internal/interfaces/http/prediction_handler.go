package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockgenius-api/internal/application/dto"
	"github.com/jhoicas/stockgenius-api/internal/application/prediction"
)

// PredictionHandler maneja las peticiones HTTP de predicción (protegido).
type PredictionHandler struct {
	uc *prediction.UseCase
}

// NewPredictionHandler construye el handler.
func NewPredictionHandler(uc *prediction.UseCase) *PredictionHandler {
	return &PredictionHandler{uc: uc}
}

// ListProducts devuelve la proyección de rotación y riesgo por producto.
func (h *PredictionHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.uc.ListProducts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
