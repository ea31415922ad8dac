package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes the hommiefi_* collectors via a Fiber-mounted
// Prometheus scrape endpoint.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	scrape := promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		Timeout: 5 * time.Second,
	})
	return adaptor.HTTPHandler(scrape)
}
