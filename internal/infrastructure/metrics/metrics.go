// Package metrics contadores Prometheus del portal y middleware HTTP.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
)

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus implementa ports.Metrics sobre un registro propio.
type Prometheus struct {
	reg *prometheus.Registry

	transiciones *prometheus.CounterVec
	urls         *prometheus.CounterVec
	screenings   *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registra las métricas en un registro nuevo, junto con los colectores de Go y del proceso.
func New() *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Prometheus{
		reg: reg,
		transiciones: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_transiciones_total",
			Help: "Cambios de estado aplicados a empresas pagadoras",
		}, []string{"desde", "hacia"}),
		urls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_urls_firmadas_total",
			Help: "URLs prefirmadas emitidas por método y resultado",
		}, []string{"metodo", "resultado"}),
		screenings: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_sarlaft_consultas_total",
			Help: "Consultas SARLAFT por clasificación",
		}, []string{"clasificacion"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_http_requests_total",
			Help: "Peticiones HTTP atendidas",
		}, []string{"method", "path", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "onboarding_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

func (p *Prometheus) TransicionAplicada(desde, hacia string) {
	p.transiciones.WithLabelValues(desde, hacia).Inc()
}

func (p *Prometheus) URLFirmada(metodo, resultado string) {
	p.urls.WithLabelValues(metodo, resultado).Inc()
}

func (p *Prometheus) Screening(clasificacion string) {
	p.screenings.WithLabelValues(clasificacion).Inc()
}

// Registry para pruebas y para exponer el endpoint.
func (p *Prometheus) Registry() *prometheus.Registry { return p.reg }

// Handler endpoint /metrics.
func (p *Prometheus) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{}))
}

// Middleware mide cada petición. El path es la ruta registrada (/api/empresas/:id),
// no la URL concreta.
func (p *Prometheus) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else if status < 400 {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		if path == "" || (path == "/" && c.Path() != "/") {
			path = "unmatched"
		}
		p.httpRequests.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		p.httpDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}
