package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/onboarding-pagadores/internal/application/auth"
	"github.com/jhoicas/onboarding-pagadores/internal/application/backoffice"
	"github.com/jhoicas/onboarding-pagadores/internal/application/onboarding"
	"github.com/jhoicas/onboarding-pagadores/internal/application/sarlaft"
)

// MetricsExporter lo implementa *metrics.Prometheus.
type MetricsExporter interface {
	Handler() fiber.Handler
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName  string
	Onboarding   *onboarding.UseCase
	Backoffice   *backoffice.UseCase
	Sarlaft      *sarlaft.UseCase
	Auth         *auth.UseCase
	Verifier     TokenVerifier
	AdminChecker AdminChecker
	Store        Pinger
	Metrics      MetricsExporter // nil = sin /metrics
	Logger       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.ServiceName, deps.Store))
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	// Todas las rutas de /api requieren Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.Verifier))

	empresaHandler := NewEmpresaHandler(deps.Onboarding, deps.Auth)
	api.Get("/me", empresaHandler.Perfil)
	api.Post("/empresas", empresaHandler.Registrar)
	api.Get("/empresas/me", empresaHandler.Mia)

	documentoHandler := NewDocumentoHandler(deps.Onboarding)
	api.Post("/documentos/url-subida", documentoHandler.GenerarURLSubida)
	api.Post("/documentos/:id/confirmar", documentoHandler.Confirmar)
	api.Get("/documentos/:id/url", documentoHandler.ObtenerURL)

	sarlaftHandler := NewSarlaftHandler(deps.Sarlaft)
	api.Post("/sarlaft/validar", sarlaftHandler.Validar)

	// Back-office: rol admin consultado en cada petición
	admin := api.Group("/admin", RequireAdmin(deps.AdminChecker, deps.Logger))
	backofficeHandler := NewBackofficeHandler(deps.Backoffice, deps.Sarlaft)
	admin.Get("/resumen", backofficeHandler.Resumen)
	admin.Get("/empresas", backofficeHandler.Listar)
	admin.Get("/empresas/:id", backofficeHandler.Detalle)
	admin.Patch("/empresas/:id/estado", backofficeHandler.CambiarEstado)
	admin.Get("/empresas/:id/historial", backofficeHandler.Historial)
	admin.Post("/empresas/:id/comentarios", backofficeHandler.CrearComentario)
	admin.Get("/empresas/:id/comentarios", backofficeHandler.ListarComentarios)
	admin.Get("/empresas/:id/expediente.pdf", backofficeHandler.Expediente)
	admin.Get("/empresas/:id/sarlaft", backofficeHandler.Sarlaft)
}
