// Package backoffice casos de uso del equipo de revisión: listado y detalle de
// empresas, transiciones de estado con historial, comentarios internos y expediente.
package backoffice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/onboarding-pagadores/internal/application/access"
	"github.com/jhoicas/onboarding-pagadores/internal/application/dto"
	"github.com/jhoicas/onboarding-pagadores/internal/application/onboarding"
	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	domainob "github.com/jhoicas/onboarding-pagadores/internal/domain/onboarding"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/repository"
)

const maxComentario = 5000

// Deps dependencias del caso de uso.
type Deps struct {
	Repos   ports.Repos
	Tx      ports.TxRunner
	PDF     ports.ExpedientePDFGenerator
	Metrics ports.Metrics
	Logger  zerolog.Logger
	Now     func() time.Time
	NewID   func() string
}

// UseCase operaciones de back-office. Todas exigen rol admin, resuelto en cada llamada.
type UseCase struct {
	repos   ports.Repos
	tx      ports.TxRunner
	pdf     ports.ExpedientePDFGenerator
	metrics ports.Metrics
	log     zerolog.Logger
	now     func() time.Time
	newID   func() string
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	uc := &UseCase{
		repos:   d.Repos,
		tx:      d.Tx,
		pdf:     d.PDF,
		metrics: d.Metrics,
		log:     d.Logger.With().Str("component", "backoffice").Logger(),
		now:     d.Now,
		newID:   d.NewID,
	}
	if uc.metrics == nil {
		uc.metrics = ports.NopMetrics{}
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.newID == nil {
		uc.newID = uuid.NewString
	}
	return uc
}

// requireAdmin se evalúa antes de cualquier búsqueda: un no-admin recibe 403
// sin saber si la empresa existe.
func (uc *UseCase) requireAdmin(ctx context.Context, usuarioID string) error {
	if err := access.RequireUser(usuarioID); err != nil {
		return err
	}
	ok, err := access.IsAdmin(ctx, uc.repos.Usuarios, usuarioID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.Forbidden("ADMIN_REQUIRED", "Se requiere rol de administrador")
	}
	return nil
}

func (uc *UseCase) empresa(ctx context.Context, id string) (*entity.Empresa, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.InvalidInput("MISSING_FIELD", "empresa_id es requerido")
	}
	e, err := uc.repos.Empresas.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("DATABASE_ERROR", err)
	}
	if e == nil {
		return nil, domain.NotFound("EMPRESA_NOT_FOUND", "La empresa no existe")
	}
	return e, nil
}

// Resumen total de empresas y conteo por estado para el tablero.
func (uc *UseCase) Resumen(ctx context.Context, adminID string) (*dto.ResumenEmpresasResponse, error) {
	if err := uc.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	conteos, err := uc.repos.Empresas.ContarPorEstado(ctx)
	if err != nil {
		return nil, domain.Storage("DATABASE_ERROR", err)
	}
	out := &dto.ResumenEmpresasResponse{PorEstado: make(map[string]int, len(entity.EstadosEmpresa()))}
	for _, st := range entity.EstadosEmpresa() {
		out.PorEstado[string(st)] = conteos[st]
		out.Total += conteos[st]
	}
	return out, nil
}

// ListarEmpresas listado paginado con filtro opcional por estado y búsqueda.
func (uc *UseCase) ListarEmpresas(ctx context.Context, adminID, estado, search string, page dto.PageRequest) (*dto.EmpresaListResponse, error) {
	if err := uc.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	page.Normalize()
	filter := repository.EmpresaFilter{Search: strings.TrimSpace(search), Limit: page.Limit, Offset: page.Offset}
	if strings.TrimSpace(estado) != "" {
		st, err := domainob.ParseEstado(estado)
		if err != nil {
			return nil, err
		}
		filter.Estado = &st
	}
	items, total, err := uc.repos.Empresas.List(ctx, filter)
	if err != nil {
		return nil, domain.Storage("DATABASE_ERROR", err)
	}
	out := &dto.EmpresaListResponse{
		Items: make([]dto.EmpresaResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, e := range items {
		out.Items = append(out.Items, dto.FromEmpresa(e))
	}
	return out, nil
}

// DetalleEmpresa empresa con documentos vigentes y completitud.
func (uc *UseCase) DetalleEmpresa(ctx context.Context, adminID, empresaID string) (*dto.EmpresaDetalleResponse, error) {
	if err := uc.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	e, err := uc.empresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	return onboarding.Detalle(ctx, uc.repos, e)
}

// Historial entradas de la empresa, la más reciente primero.
func (uc *UseCase) Historial(ctx context.Context, adminID, empresaID string) ([]dto.HistorialEstadoResponse, error) {
	if err := uc.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	e, err := uc.empresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	hist, err := uc.repos.Historial.ListByEmpresa(ctx, e.ID)
	if err != nil {
		return nil, domain.Storage("DATABASE_ERROR", err)
	}
	out := make([]dto.HistorialEstadoResponse, 0, len(hist))
	for _, h := range hist {
		out = append(out, dto.FromHistorial(h))
	}
	return out, nil
}
