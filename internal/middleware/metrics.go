package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name. The cache
	// layer's client hook increments it.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qubeia_redis_errors_total",
		Help: "Total number of Redis command errors by command",
	}, []string{"command"})

	// AuthzDenials counts authorization denials by operation.
	AuthzDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qubeia_authz_denials_total",
		Help: "Total number of authorization denials by operation",
	}, []string{"operation"})

	// ActiveWebSockets tracks currently open websocket connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "qubeia_active_websockets",
		Help: "Number of currently open websocket connections",
	})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
