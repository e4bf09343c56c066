package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockgenius-api/internal/application/prediction"
	"github.com/jhoicas/stockgenius-api/internal/application/usecase"
	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AlertUC      *usecase.AlertUseCase
	PredictionUC *prediction.UseCase
	Engine       PassRunner
	JWTSecret    string
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	alerts := api.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC, deps.Engine, deps.Log)
	alerts.Get("/", alertHandler.List)
	alerts.Post("/generate", RequireRole(entity.RoleAdmin), alertHandler.Generate)

	predictions := api.Group("/predictions")
	predictionHandler := NewPredictionHandler(deps.PredictionUC)
	predictions.Get("/products", predictionHandler.ListProducts)
}
