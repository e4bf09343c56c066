package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Métricas de pasadas del motor de alertas
	AlertPassesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stockgenius_alert_passes_total",
			Help: "Total de pasadas de evaluación ejecutadas",
		},
	)

	AlertPassDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stockgenius_alert_pass_duration_seconds",
			Help:    "Duración de una pasada completa de evaluación",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	RuleFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockgenius_alert_rule_failures_total",
			Help: "Total de fallos por regla (la pasada continúa con las demás)",
		},
		[]string{"rule"},
	)

	// Métricas del chokepoint de persistencia
	AlertsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stockgenius_alerts_created_total",
			Help: "Total de alertas persistidas",
		},
	)

	AlertsDuplicateTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stockgenius_alerts_duplicate_total",
			Help: "Total de candidatas descartadas por dedup (abiertas o carrera 23505)",
		},
	)

	AlertsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stockgenius_alerts_dropped_total",
			Help: "Total de candidatas descartadas por no poder representarse (ej. zona sin inventario)",
		},
	)
)
