package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fittrack_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"operation"})

	// PlanGenerations counts AI plan generation attempts by kind and outcome.
	// Outcomes: "ok", "fallback" (malformed model output) and "error".
	PlanGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fittrack_plan_generations_total",
		Help: "Total number of plan generation attempts by kind and outcome",
	}, []string{"kind", "outcome"})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records per-route HTTP
// metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
