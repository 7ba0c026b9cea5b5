package sarlaft_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/onboarding-pagadores/internal/application/dto"
	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
	"github.com/jhoicas/onboarding-pagadores/internal/application/sarlaft"
	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	"github.com/jhoicas/onboarding-pagadores/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type fakeProvider struct {
	mu     sync.Mutex
	reqs   []ports.ScreeningRequest
	status int
	body   string
	err    error
}

func (p *fakeProvider) Validate(_ context.Context, req ports.ScreeningRequest) (*ports.ScreeningResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reqs = append(p.reqs, req)
	if p.err != nil {
		return nil, p.err
	}
	return &ports.ScreeningResponse{Status: p.status, Body: json.RawMessage(p.body)}, nil
}

type repoQueFalla struct{}

func (repoQueFalla) Create(context.Context, *entity.ValidacionSarlaft) error {
	return errors.New(`relation "validaciones_sarlaft" does not exist`)
}

func (repoQueFalla) ListByEmpresa(context.Context, string) ([]*entity.ValidacionSarlaft, error) {
	return nil, nil
}

var tFijo = time.Date(2024, 7, 3, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memory.Store
	provider *fakeProvider
	uc       *sarlaft.UseCase
	empresa  *entity.Empresa
}

func newFixture(t *testing.T, repos func(ports.Repos) ports.Repos) *fixture {
	t.Helper()
	f := &fixture{
		store:    memory.NewStore(),
		provider: &fakeProvider{status: 200, body: `{"coincidencias":[]}`},
	}
	f.store.SeedUsuario(entity.Usuario{ID: "admin-1", Rol: entity.RolAdmin})
	ip := "10.1.1.1"
	f.empresa = &entity.Empresa{
		ID:          "emp-1",
		UsuarioID:   "user-1",
		NIT:         "900123456-8",
		RazonSocial: "Pagadora Andina S.A.S.",
		Representante: entity.RepresentanteLegal{
			Nombre:        "María Fernanda Ruiz",
			TipoDocumento: "CC",
			Cedula:        "52123456",
		},
		Estado:     entity.EstadoPendiente,
		IPRegistro: &ip,
	}
	require.NoError(t, f.store.Repos().Empresas.Create(context.Background(), f.empresa))

	r := f.store.Repos()
	if repos != nil {
		r = repos(r)
	}
	f.uc = sarlaft.NewUseCase(sarlaft.Deps{
		Repos:    r,
		Provider: f.provider,
		Logger:   zerolog.Nop(),
		Now:      func() time.Time { return tFijo },
	})
	return f
}

func solicitud() dto.ValidarSarlaftRequest {
	return dto.ValidarSarlaftRequest{
		EmpresaID:     "emp-1",
		Nombres:       " María Fernanda Ruiz ",
		Documento:     "52123456",
		TipoDocumento: "cc",
	}
}

func owner() dto.Solicitante {
	return dto.Solicitante{UsuarioID: "user-1", IP: "192.168.0.10"}
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	de, ok := domain.AsError(err)
	require.True(t, ok, "se esperaba domain.Error, se obtuvo %v", err)
	return de.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Validar
// ──────────────────────────────────────────────────────────────────────────────

func TestValidar_NormalizaYGuarda(t *testing.T) {
	f := newFixture(t, nil)

	out, err := f.uc.Validar(context.Background(), owner(), solicitud())
	require.NoError(t, err)
	assert.Equal(t, "representante", out.Scope)
	assert.True(t, out.Saved)
	assert.Equal(t, 200, out.ProviderStatus)
	assert.Equal(t, "limpio", out.Clasificacion.Tipo)
	assert.JSONEq(t, `{"coincidencias":[]}`, string(out.Resultado))

	require.Len(t, f.provider.reqs, 1)
	req := f.provider.reqs[0]
	assert.Equal(t, "María Fernanda Ruiz", req.Nombres)
	assert.Equal(t, "CC", req.TipoDocumento)
	assert.Equal(t, "agentrobust", req.UserID)
	assert.Equal(t, "192.168.0.10", req.IPAddress)

	vs, err := f.store.Repos().Sarlaft.ListByEmpresa(context.Background(), "emp-1")
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "limpio", vs[0].Clasificacion)
	assert.Equal(t, "user-1", *vs[0].ConsultadoPor)
}

func TestValidar_IPExplicitaYAlerta(t *testing.T) {
	f := newFixture(t, nil)
	f.provider.body = `{"data":{"matches":[{"list":"OFAC SDN"}]}}`

	in := solicitud()
	in.IPAddress = "8.8.8.8"
	in.Scope = "empresa"
	out, err := f.uc.Validar(context.Background(), dto.Solicitante{UsuarioID: "admin-1"}, in)
	require.NoError(t, err)
	assert.Equal(t, "alerta", out.Clasificacion.Tipo)
	assert.Equal(t, []string{"OFAC SDN"}, out.Clasificacion.Detalles)
	assert.Equal(t, "8.8.8.8", f.provider.reqs[0].IPAddress)
}

func TestValidar_Validaciones(t *testing.T) {
	f := newFixture(t, nil)

	in := solicitud()
	in.Documento = ""
	_, err := f.uc.Validar(context.Background(), owner(), in)
	assert.Equal(t, "MISSING_FIELD", codeOf(t, err))

	in = solicitud()
	in.Scope = "accionista"
	_, err = f.uc.Validar(context.Background(), owner(), in)
	assert.Equal(t, "INVALID_SCOPE", codeOf(t, err))

	in = solicitud()
	in.EmpresaID = "otra"
	_, err = f.uc.Validar(context.Background(), owner(), in)
	assert.Equal(t, "UNAUTHORIZED_EMPRESA", codeOf(t, err))

	_, err = f.uc.Validar(context.Background(), dto.Solicitante{UsuarioID: "admin-1"}, in)
	assert.Equal(t, "EMPRESA_NOT_FOUND", codeOf(t, err))

	_, err = f.uc.Validar(context.Background(), dto.Solicitante{UsuarioID: "intruso"}, solicitud())
	assert.Equal(t, "UNAUTHORIZED_EMPRESA", codeOf(t, err))

	_, err = f.uc.Validar(context.Background(), dto.Solicitante{}, solicitud())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	assert.Empty(t, f.provider.reqs)
}

func TestValidar_ErrorDelProveedor(t *testing.T) {
	f := newFixture(t, nil)
	f.provider.status = 500
	f.provider.body = `{"detail":"boom"}`

	_, err := f.uc.Validar(context.Background(), owner(), solicitud())
	assert.Equal(t, "SARLAFT_ERROR", codeOf(t, err))
	assert.ErrorIs(t, err, domain.ErrUpstream)
	de, _ := domain.AsError(err)
	details, ok := de.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 500, details["status"])

	vs, _ := f.store.Repos().Sarlaft.ListByEmpresa(context.Background(), "emp-1")
	assert.Empty(t, vs)
}

func TestValidar_ProveedorInalcanzable(t *testing.T) {
	f := newFixture(t, nil)
	cause := errors.New("dial tcp 10.0.0.7:443: connection refused")
	f.provider.err = cause

	_, err := f.uc.Validar(context.Background(), owner(), solicitud())
	assert.Equal(t, "SARLAFT_UNREACHABLE", codeOf(t, err))
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.ErrorIs(t, err, cause)

	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Empty(t, de.Details)
	assert.NotContains(t, de.Message, "10.0.0.7")
}

func TestValidar_SinProveedorConfigurado(t *testing.T) {
	store := memory.NewStore()
	uc := sarlaft.NewUseCase(sarlaft.Deps{Repos: store.Repos(), Logger: zerolog.Nop()})
	require.NoError(t, store.Repos().Empresas.Create(context.Background(), &entity.Empresa{ID: "emp-1", UsuarioID: "user-1", NIT: "900123456-8"}))

	_, err := uc.Validar(context.Background(), owner(), solicitud())
	assert.Equal(t, "CONFIG_ERROR", codeOf(t, err))
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestValidar_FalloAlGuardarNoBloquea(t *testing.T) {
	f := newFixture(t, func(r ports.Repos) ports.Repos {
		r.Sarlaft = repoQueFalla{}
		return r
	})

	out, err := f.uc.Validar(context.Background(), owner(), solicitud())
	require.NoError(t, err)
	assert.False(t, out.Saved)
	assert.Equal(t, "limpio", out.Clasificacion.Tipo)
}

func TestListar(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.uc.Validar(context.Background(), owner(), solicitud())
	require.NoError(t, err)

	vs, err := f.uc.Listar(context.Background(), dto.Solicitante{UsuarioID: "admin-1"}, "emp-1")
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "representante", vs[0].Scope)

	_, err = f.uc.Listar(context.Background(), dto.Solicitante{UsuarioID: "intruso"}, "emp-1")
	assert.Equal(t, "UNAUTHORIZED_EMPRESA", codeOf(t, err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tamizaje automático
// ──────────────────────────────────────────────────────────────────────────────

func TestScreenEmpresa_ConsultaEmpresaYRepresentante(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.uc.ScreenEmpresa(context.Background(), f.empresa))

	require.Len(t, f.provider.reqs, 2)
	assert.Equal(t, "900123456", f.provider.reqs[0].Documento)
	assert.Equal(t, "NIT", f.provider.reqs[0].TipoDocumento)
	assert.Equal(t, "52123456", f.provider.reqs[1].Documento)
	assert.Equal(t, "10.1.1.1", f.provider.reqs[1].IPAddress)

	vs, err := f.store.Repos().Sarlaft.ListByEmpresa(context.Background(), "emp-1")
	require.NoError(t, err)
	require.Len(t, vs, 2)
	for _, v := range vs {
		assert.Nil(t, v.ConsultadoPor)
	}
}

func TestScreenEmpresaAsync_FalloNoPropaga(t *testing.T) {
	f := newFixture(t, nil)
	f.provider.err = errors.New("timeout")

	f.uc.ScreenEmpresaAsync(f.empresa)
	f.uc.Wait()

	f.provider.mu.Lock()
	defer f.provider.mu.Unlock()
	assert.Len(t, f.provider.reqs, 2)
}

func TestScreenEmpresa_GuardaRespuestasNoExitosas(t *testing.T) {
	f := newFixture(t, nil)
	f.provider.status = 502
	f.provider.body = ``

	require.NoError(t, f.uc.ScreenEmpresa(context.Background(), f.empresa))
	vs, _ := f.store.Repos().Sarlaft.ListByEmpresa(context.Background(), "emp-1")
	require.Len(t, vs, 2)
	assert.Equal(t, "error_proveedor", vs[0].Clasificacion)
	assert.JSONEq(t, `{}`, string(vs[0].Resultado))
}
