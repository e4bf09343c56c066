package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockgenius-api/internal/application/dto"
	"github.com/jhoicas/stockgenius-api/internal/application/usecase"
	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

// PassRunner dispara una pasada completa del motor de reglas.
type PassRunner interface {
	RunAllRules(ctx context.Context)
}

// AlertHandler maneja las peticiones HTTP de alertas (protegido).
type AlertHandler struct {
	uc     *usecase.AlertUseCase
	engine PassRunner
	log    *logger.Logger
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *usecase.AlertUseCase, engine PassRunner, log *logger.Logger) *AlertHandler {
	return &AlertHandler{uc: uc, engine: engine, log: log}
}

// List lista alertas con filtros opcionales de status y type.
func (h *AlertHandler) List(c *fiber.Ctx) error {
	var in dto.AlertListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Generate dispara una pasada de evaluación de reglas (solo admin). La
// pasada corre síncrona; los fallos de reglas individuales no la abortan
// y quedan en log y métricas.
func (h *AlertHandler) Generate(c *fiber.Ctx) error {
	h.log.Info().Str("user_id", GetUserID(c)).Msg("pasada de alertas disparada vía API")
	h.engine.RunAllRules(c.Context())
	return c.JSON(dto.GeneratePassResponse{Message: "alert pass completed"})
}
