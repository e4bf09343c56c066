package alerting

import (
	"context"
	"time"

	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
	"github.com/jhoicas/stockgenius-api/internal/metrics"
	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

// Rule es una regla de detección, evaluada una vez por pasada. Un error
// abandona el trabajo restante de esa regla pero no el de las demás.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context) error
}

// Engine orquesta una pasada de evaluación: ejecuta todas las reglas en
// orden fijo y secuencial (las ventanas de dedup de reglas posteriores
// deben ver las alertas escritas antes en la misma pasada), aislando los
// fallos por regla.
type Engine struct {
	rules []Rule
	log   *logger.Logger
}

// NewEngine construye el orquestador con las reglas en orden de evaluación.
func NewEngine(log *logger.Logger, rules ...Rule) *Engine {
	return &Engine{rules: rules, log: log}
}

// Deps agrupa los puertos de datos que consumen las reglas.
type Deps struct {
	Products    repository.ProductRepository
	Inventories repository.InventoryRepository
	Sensors     repository.SensorRepository
	Readings    repository.SensorReadingRepository
	Orders      repository.OrderRepository
	Users       repository.UserRepository
	Alerts      repository.AlertRepository
}

// NewDefaultEngine cablea resolver, dispatcher y las seis reglas en el
// orden especificado: stock, estacional, sensores, pedidos grandes,
// tendencia, almacenamiento.
func NewDefaultEngine(deps Deps, log *logger.Logger) *Engine {
	resolver := NewResponsibleResolver(deps.Users, log)
	dispatcher := NewDispatcher(deps.Alerts, resolver, log)

	return NewEngine(log,
		NewStockRule(deps.Inventories, deps.Products, deps.Readings, dispatcher, log),
		NewSeasonalRule(deps.Products, deps.Orders, dispatcher, log),
		NewSensorRule(deps.Sensors, deps.Inventories, deps.Users, dispatcher, log),
		NewLargeOrderRule(deps.Orders, deps.Alerts, dispatcher, log),
		NewTrendRule(deps.Products, deps.Orders, dispatcher, log),
		NewStorageRule(deps.Inventories, deps.Alerts, dispatcher, log),
	)
}

// RunAllRules ejecuta una pasada completa. No retorna error: los fallos de
// reglas individuales quedan en el log y en métricas; el caller solo
// observa efectos a través del store de alertas.
func (e *Engine) RunAllRules(ctx context.Context) {
	start := time.Now()
	metrics.AlertPassesTotal.Inc()
	e.log.Info().Int("rules", len(e.rules)).Msg("iniciando pasada de evaluación")

	for _, rule := range e.rules {
		e.runRule(ctx, rule)
	}

	elapsed := time.Since(start)
	metrics.AlertPassDuration.Observe(elapsed.Seconds())
	e.log.Info().Dur("elapsed", elapsed).Msg("pasada de evaluación completada")
}

// runRule aísla la ejecución de una regla: errores y panics se registran
// sin impedir que las reglas siguientes corran.
func (e *Engine) runRule(ctx context.Context, rule Rule) {
	defer func() {
		if p := recover(); p != nil {
			metrics.RuleFailuresTotal.WithLabelValues(rule.Name()).Inc()
			e.log.Error().
				Str("rule", rule.Name()).
				Interface("panic", p).
				Msg("panic en regla, la pasada continúa")
		}
	}()

	if err := rule.Evaluate(ctx); err != nil {
		metrics.RuleFailuresTotal.WithLabelValues(rule.Name()).Inc()
		e.log.Error().
			Err(err).
			Str("rule", rule.Name()).
			Msg("regla falló, la pasada continúa")
	}
}
