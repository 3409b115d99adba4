// Package metrics expone contadores Prometheus de HTTP y del historial de movimientos.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/stock-tracker/internal/application/inventory"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
)

var _ inventory.MovementObserver = (*Metrics)(nil)

// Metrics colectores de la API. Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	gatherer prometheus.Gatherer

	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	movements     *prometheus.CounterVec
	movedQuantity *prometheus.CounterVec
}

// New registra los colectores en un registry propio (con colectores de proceso y Go).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registra los colectores contra registerer y expone gatherer en Handler.
func NewWithRegistry(registerer prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		gatherer: gatherer,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stock_tracker",
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP por método, ruta y status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stock_tracker",
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stock_tracker",
			Name:      "stock_movements_total",
			Help:      "Movimientos de stock registrados por tipo.",
		}, []string{"movement_type"}),
		movedQuantity: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stock_tracker",
			Name:      "stock_moved_quantity_total",
			Help:      "Cantidad acumulada movida por tipo de movimiento.",
		}, []string{"movement_type"}),
	}
	registerer.MustRegister(m.requests, m.latency, m.movements, m.movedQuantity)
	return m
}

// ObserveMovement implementa inventory.MovementObserver.
func (m *Metrics) ObserveMovement(mov *entity.StockMovement) {
	if m == nil || mov == nil {
		return
	}
	typ := string(mov.Type)
	m.movements.WithLabelValues(typ).Inc()
	m.movedQuantity.WithLabelValues(typ).Add(mov.Quantity.InexactFloat64())
}

// Middleware cuenta peticiones y mide latencia. La ruta es el patrón registrado (p. ej. /api/items/:id).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		method := c.Method()
		m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone el formato de texto de Prometheus (GET /metrics).
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
