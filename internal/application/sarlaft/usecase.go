// Package sarlaft proxy hacia el proveedor de listas restrictivas: valida
// permisos, consulta, clasifica y guarda el resultado sin bloquear el flujo.
package sarlaft

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/onboarding-pagadores/internal/application/access"
	"github.com/jhoicas/onboarding-pagadores/internal/application/dto"
	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	domainsarlaft "github.com/jhoicas/onboarding-pagadores/internal/domain/sarlaft"
)

const (
	defaultProviderUserID = "agentrobust"
	defaultAutoTimeout    = 30 * time.Second
)

// Deps dependencias del caso de uso.
type Deps struct {
	Repos          ports.Repos
	Provider       ports.ScreeningProvider // nil = proveedor no configurado
	Metrics        ports.Metrics
	Logger         zerolog.Logger
	ProviderUserID string
	AutoTimeout    time.Duration
	Now            func() time.Time
	NewID          func() string
}

// UseCase validaciones SARLAFT.
type UseCase struct {
	repos          ports.Repos
	provider       ports.ScreeningProvider
	metrics        ports.Metrics
	log            zerolog.Logger
	providerUserID string
	autoTimeout    time.Duration
	now            func() time.Time
	newID          func() string
	wg             sync.WaitGroup
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	uc := &UseCase{
		repos:          d.Repos,
		provider:       d.Provider,
		metrics:        d.Metrics,
		log:            d.Logger.With().Str("component", "sarlaft").Logger(),
		providerUserID: strings.TrimSpace(d.ProviderUserID),
		autoTimeout:    d.AutoTimeout,
		now:            d.Now,
		newID:          d.NewID,
	}
	if uc.metrics == nil {
		uc.metrics = ports.NopMetrics{}
	}
	if uc.providerUserID == "" {
		uc.providerUserID = defaultProviderUserID
	}
	if uc.autoTimeout <= 0 {
		uc.autoTimeout = defaultAutoTimeout
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.newID == nil {
		uc.newID = uuid.NewString
	}
	return uc
}

// Validar consulta al proveedor para una empresa del solicitante (o cualquiera si es admin).
func (uc *UseCase) Validar(ctx context.Context, sol dto.Solicitante, in dto.ValidarSarlaftRequest) (*dto.ValidarSarlaftResponse, error) {
	if err := access.RequireUser(sol.UsuarioID); err != nil {
		return nil, err
	}
	in.EmpresaID = strings.TrimSpace(in.EmpresaID)
	in.Nombres = strings.TrimSpace(in.Nombres)
	in.Documento = strings.TrimSpace(in.Documento)
	in.TipoDocumento = strings.ToUpper(strings.TrimSpace(in.TipoDocumento))
	in.Scope = strings.TrimSpace(in.Scope)
	if in.Scope == "" {
		in.Scope = entity.ScopeRepresentante
	}
	if in.EmpresaID == "" || in.Nombres == "" || in.Documento == "" || in.TipoDocumento == "" {
		return nil, domain.InvalidInput("MISSING_FIELD", "Faltan campos requeridos: empresa_id, nombres, documento, tipo_documento")
	}
	if in.Scope != entity.ScopeEmpresa && in.Scope != entity.ScopeRepresentante {
		return nil, domain.InvalidInput("INVALID_SCOPE", "scope debe ser empresa o representante")
	}

	empresa, err := uc.repos.Empresas.GetByID(ctx, in.EmpresaID)
	if err != nil {
		return nil, domain.Storage("DATABASE_ERROR", err)
	}
	if err := access.AutorizarEmpresa(ctx, uc.repos.Usuarios, sol.UsuarioID, empresa,
		"No tienes permiso para validar SARLAFT para esta empresa"); err != nil {
		return nil, err
	}

	ip := strings.TrimSpace(in.IPAddress)
	if ip == "" {
		ip = sol.IP
	}
	req := ports.ScreeningRequest{
		Nombres:       in.Nombres,
		Documento:     in.Documento,
		TipoDocumento: in.TipoDocumento,
		UserID:        uc.providerUserID,
		IPAddress:     ip,
		ForceRefresh:  in.ForceRefresh,
	}
	resp, err := uc.consultar(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Status < 200 || resp.Status > 299 {
		uc.metrics.Screening(string(domainsarlaft.ErrorProveedor))
		return nil, domain.NewError(domain.ErrUpstream, "SARLAFT_ERROR", "Error consultando el servicio de validacion SARLAFT").
			WithDetails(map[string]any{"status": resp.Status, "body": resp.Body})
	}

	clas := domainsarlaft.Clasificar(resp.Status, resp.Body)
	uc.metrics.Screening(string(clas.Tipo))
	actor := sol.UsuarioID
	saved := uc.guardar(ctx, empresa.ID, in.Scope, req, resp, clas, &actor)

	return &dto.ValidarSarlaftResponse{
		EmpresaID:      empresa.ID,
		Scope:          in.Scope,
		Saved:          saved,
		ProviderStatus: resp.Status,
		Clasificacion:  toDTO(clas),
		Resultado:      resp.Body,
	}, nil
}

// Listar validaciones guardadas de una empresa, la más reciente primero.
func (uc *UseCase) Listar(ctx context.Context, sol dto.Solicitante, empresaID string) ([]dto.ValidacionSarlaftResponse, error) {
	if err := access.RequireUser(sol.UsuarioID); err != nil {
		return nil, err
	}
	empresa, err := uc.repos.Empresas.GetByID(ctx, strings.TrimSpace(empresaID))
	if err != nil {
		return nil, domain.Storage("DATABASE_ERROR", err)
	}
	if err := access.AutorizarEmpresa(ctx, uc.repos.Usuarios, sol.UsuarioID, empresa,
		"No tienes permiso para ver las validaciones de esta empresa"); err != nil {
		return nil, err
	}
	vs, err := uc.repos.Sarlaft.ListByEmpresa(ctx, empresa.ID)
	if err != nil {
		return nil, domain.Storage("DATABASE_ERROR", err)
	}
	out := make([]dto.ValidacionSarlaftResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, dto.FromValidacionSarlaft(v))
	}
	return out, nil
}

func (uc *UseCase) consultar(ctx context.Context, req ports.ScreeningRequest) (*ports.ScreeningResponse, error) {
	if uc.provider == nil {
		return nil, domain.NewError(domain.ErrConfig, "CONFIG_ERROR", "SARLAFT_VALIDATE_URL no configurado")
	}
	resp, err := uc.provider.Validate(ctx, req)
	if err != nil {
		uc.metrics.Screening("inalcanzable")
		return nil, domain.NewError(domain.ErrUpstream, "SARLAFT_UNREACHABLE", "No se pudo conectar al servicio de validacion SARLAFT").
			Wrap(err)
	}
	return resp, nil
}

// guardar persiste el resultado; un fallo se registra y no interrumpe la respuesta.
func (uc *UseCase) guardar(ctx context.Context, empresaID, scope string, req ports.ScreeningRequest, resp *ports.ScreeningResponse,
	clas domainsarlaft.Clasificacion, actor *string) bool {
	resultado := resp.Body
	if len(resultado) == 0 || string(resultado) == "null" {
		resultado = json.RawMessage(`{}`)
	}
	v := &entity.ValidacionSarlaft{
		ID:             uc.newID(),
		EmpresaID:      empresaID,
		Scope:          scope,
		Nombres:        req.Nombres,
		Documento:      req.Documento,
		TipoDocumento:  req.TipoDocumento,
		ProviderUserID: req.UserID,
		ForceRefresh:   req.ForceRefresh,
		ProviderStatus: resp.Status,
		Clasificacion:  string(clas.Tipo),
		Resultado:      resultado,
		ConsultadoPor:  actor,
		CreatedAt:      uc.now().UTC(),
	}
	if req.IPAddress != "" {
		ip := req.IPAddress
		v.IPAddress = &ip
	}
	if err := uc.repos.Sarlaft.Create(ctx, v); err != nil {
		uc.log.Warn().Err(err).Str("empresa_id", empresaID).Str("scope", scope).Msg("no se pudo guardar la validación SARLAFT")
		return false
	}
	return true
}

func toDTO(c domainsarlaft.Clasificacion) dto.ClasificacionResponse {
	return dto.ClasificacionResponse{Tipo: string(c.Tipo), Detalles: c.Detalles, Status: c.Status}
}
