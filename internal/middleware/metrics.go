package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "steamfinder_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// SchedulerRuns counts background job runs by job name and outcome.
	SchedulerRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "steamfinder_scheduler_runs_total",
		Help: "Total number of background job runs by job and outcome",
	}, []string{"job", "outcome"})

	// MessagesPurged counts messages removed by the retention purge job.
	MessagesPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "steamfinder_messages_purged_total",
		Help: "Total number of messages removed by the retention purge",
	})
)

// InitMetrics sets up the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a Fiber handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
