package onboarding_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/onboarding-pagadores/internal/application/dto"
	"github.com/jhoicas/onboarding-pagadores/internal/application/onboarding"
	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/repository"
	"github.com/jhoicas/onboarding-pagadores/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type fakePresigner struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakePresigner) Bucket() string { return "test-bucket" }

func (f *fakePresigner) PresignPut(bucket, key, contentType string) (*ports.PresignedURL, error) {
	return f.sign("PUT", bucket, key, map[string]string{
		"Content-Type":                 contentType,
		"x-amz-server-side-encryption": "AES256",
	})
}

func (f *fakePresigner) PresignGet(bucket, key string) (*ports.PresignedURL, error) {
	return f.sign("GET", bucket, key, nil)
}

func (f *fakePresigner) sign(method, bucket, key string, headers map[string]string) (*ports.PresignedURL, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, method+" "+bucket+"/"+key)
	if f.err != nil {
		return nil, f.err
	}
	return &ports.PresignedURL{
		URL:       "https://" + bucket + ".s3.amazonaws.com/" + key + "?X-Amz-Signature=abc",
		Headers:   headers,
		ExpiresIn: 900,
	}, nil
}

type fakeInspector struct {
	objects map[string]int64
}

func (f *fakeInspector) Stat(_ context.Context, bucket, key string) (*ports.ObjectInfo, error) {
	size, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, nil
	}
	return &ports.ObjectInfo{Size: size}, nil
}

type fakeScreener struct {
	mu       sync.Mutex
	empresas []string
}

func (f *fakeScreener) ScreenEmpresaAsync(e *entity.Empresa) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.empresas = append(f.empresas, e.ID)
}

type fixture struct {
	store     *memory.Store
	uc        *onboarding.UseCase
	presigner *fakePresigner
	inspector *fakeInspector
	screener  *fakeScreener
}

var tFijo = time.Date(2024, 7, 1, 15, 30, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:     memory.NewStore(),
		presigner: &fakePresigner{},
		inspector: &fakeInspector{objects: map[string]int64{}},
		screener:  &fakeScreener{},
	}
	f.store.SeedUsuario(entity.Usuario{ID: "admin-1", Rol: entity.RolAdmin})
	f.uc = onboarding.NewUseCase(onboarding.Deps{
		Repos:     f.store.Repos(),
		Tx:        f.store,
		Presigner: f.presigner,
		Inspector: f.inspector,
		Screener:  f.screener,
		Logger:    zerolog.Nop(),
		KeyPrefix: "confirming",
		Now:       func() time.Time { return tFijo },
	})
	return f
}

func registroValido() dto.RegistrarEmpresaRequest {
	return dto.RegistrarEmpresaRequest{
		NIT:                             "900123456-8",
		RazonSocial:                     "Pagadora Andina S.A.S.",
		Direccion:                       "Calle 100 # 19-54 Oficina 801",
		Ciudad:                          "Bogotá",
		Departamento:                    "Cundinamarca",
		ActividadEconomica:              "Comercio al por mayor",
		CodigoCIIU:                      "4690",
		RepresentanteLegalNombre:        "María Fernanda Ruiz",
		RepresentanteLegalTipoDocumento: "CC",
		RepresentanteLegalCedula:        "52123456",
		RepresentanteLegalEmail:         "maria@andina.co",
		RepresentanteLegalTelefono:      "+573001234567",
	}
}

func owner() dto.Solicitante {
	return dto.Solicitante{UsuarioID: "user-1", Email: "maria@andina.co", IP: "10.0.0.1", UserAgent: "Mozilla/5.0"}
}

func (f *fixture) registrar(t *testing.T) *dto.EmpresaResponse {
	t.Helper()
	e, err := f.uc.Registrar(context.Background(), owner(), registroValido())
	require.NoError(t, err)
	return e
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	de, ok := domain.AsError(err)
	require.True(t, ok, "se esperaba domain.Error, se obtuvo %v", err)
	return de.Code
}

func repositoryAll() repository.EmpresaFilter {
	return repository.EmpresaFilter{Limit: 100}
}

func subida(empresaID string) dto.GenerarURLSubidaRequest {
	return dto.GenerarURLSubidaRequest{
		EmpresaID:     empresaID,
		TipoDocumento: "rut",
		NombreArchivo: "RUT Empresa.pdf",
		MimeType:      "application/pdf",
		TamanoBytes:   2048,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrar_CreaPendienteConHistorialInicial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	out := f.registrar(t)

	assert.Equal(t, "pendiente", out.Estado)
	assert.Nil(t, out.EstadoAnterior)

	e, err := f.store.Repos().Empresas.GetByID(ctx, out.ID)
	require.NoError(t, err)
	require.NotNil(t, e.IPRegistro)
	assert.Equal(t, "10.0.0.1", *e.IPRegistro)
	assert.Equal(t, "Mozilla/5.0", *e.UserAgent)

	hist, err := f.store.Repos().Historial.ListByEmpresa(ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Nil(t, hist[0].EstadoAnterior)
	assert.Equal(t, entity.EstadoPendiente, hist[0].EstadoNuevo)

	u, err := f.store.Repos().Usuarios.GetByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.RolPagador, u.Rol)

	assert.Equal(t, []string{out.ID}, f.screener.empresas)
}

func TestRegistrar_SegundaEmpresaDelUsuarioEsDuplicada(t *testing.T) {
	f := newFixture(t)
	f.registrar(t)

	otra := registroValido()
	otra.NIT = "800197268-4"
	_, err := f.uc.Registrar(context.Background(), owner(), otra)
	assert.Equal(t, "EMPRESA_DUPLICADA", codeOf(t, err))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegistrar_NITRepetidoEsDuplicado(t *testing.T) {
	f := newFixture(t)
	f.registrar(t)

	sol := owner()
	sol.UsuarioID = "user-2"
	_, err := f.uc.Registrar(context.Background(), sol, registroValido())
	assert.Equal(t, "EMPRESA_DUPLICADA", codeOf(t, err))

	_, total, err := f.store.Repos().Empresas.List(context.Background(), repositoryAll())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestRegistrar_DatosInvalidosNoCreaNada(t *testing.T) {
	f := newFixture(t)
	in := registroValido()
	in.CodigoCIIU = "12"
	_, err := f.uc.Registrar(context.Background(), owner(), in)
	assert.Equal(t, "VALIDATION_ERROR", codeOf(t, err))

	_, total, err := f.store.Repos().Empresas.List(context.Background(), repositoryAll())
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, f.screener.empresas)
}

func TestRegistrar_SinUsuario(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Registrar(context.Background(), dto.Solicitante{}, registroValido())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestObtenerMia(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ObtenerMia(context.Background(), "user-1")
	assert.Equal(t, "EMPRESA_NOT_FOUND", codeOf(t, err))

	e := f.registrar(t)
	det, err := f.uc.ObtenerMia(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, e.ID, det.Empresa.ID)
	assert.False(t, det.Completitud.Completa)
	assert.Len(t, det.Completitud.Faltantes, 6)
	assert.Empty(t, det.Documentos)
}

// ──────────────────────────────────────────────────────────────────────────────
// Subida
// ──────────────────────────────────────────────────────────────────────────────

func TestAutorizarSubida_ReservaDocumento(t *testing.T) {
	f := newFixture(t)
	e := f.registrar(t)

	out, err := f.uc.AutorizarSubida(context.Background(), owner(), subida(e.ID))
	require.NoError(t, err)

	assert.Equal(t, "test-bucket", out.S3Bucket)
	assert.True(t, strings.HasPrefix(out.S3Key, "confirming/pagadores/900123456-8/rut/20240701_153000_"), out.S3Key)
	assert.True(t, strings.HasSuffix(out.S3Key, "_rut_empresa.pdf"), out.S3Key)
	assert.Equal(t, 900, out.ExpiresIn)
	assert.Equal(t, "AES256", out.Headers["x-amz-server-side-encryption"])
	assert.Equal(t, "application/pdf", out.Headers["Content-Type"])

	doc, err := f.store.Repos().Documentos.GetByID(context.Background(), out.DocumentoID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, entity.CargaPendiente, doc.EstadoCarga)
	assert.False(t, doc.EsVersionActual)
	assert.Equal(t, "user-1", *doc.SubidoPor)
}

// Escenario: mime_type=application/zip -> error de validación, sin registro.
func TestAutorizarSubida_MimeNoPermitidoNoCreaRegistro(t *testing.T) {
	f := newFixture(t)
	e := f.registrar(t)

	in := subida(e.ID)
	in.MimeType = "application/zip"
	_, err := f.uc.AutorizarSubida(context.Background(), owner(), in)
	assert.Equal(t, "INVALID_FILE_TYPE", codeOf(t, err))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	docs, err := f.store.Repos().Documentos.ListByEmpresa(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Empty(t, f.presigner.calls)
}

func TestAutorizarSubida_Validaciones(t *testing.T) {
	f := newFixture(t)
	e := f.registrar(t)

	cases := map[string]struct {
		mutate func(*dto.GenerarURLSubidaRequest)
		code   string
	}{
		"falta nombre":  {func(r *dto.GenerarURLSubidaRequest) { r.NombreArchivo = " " }, "MISSING_FIELD"},
		"tipo invalido": {func(r *dto.GenerarURLSubidaRequest) { r.TipoDocumento = "pasaporte" }, "INVALID_TIPO_DOCUMENTO"},
		"muy grande":    {func(r *dto.GenerarURLSubidaRequest) { r.TamanoBytes = 10485761 }, "INVALID_FILE_SIZE"},
		"negativo":      {func(r *dto.GenerarURLSubidaRequest) { r.TamanoBytes = -1 }, "INVALID_FILE_SIZE"},
		"sin empresa":   {func(r *dto.GenerarURLSubidaRequest) { r.EmpresaID = "no-existe" }, "UNAUTHORIZED_EMPRESA"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := subida(e.ID)
			tc.mutate(&in)
			_, err := f.uc.AutorizarSubida(context.Background(), owner(), in)
			assert.Equal(t, tc.code, codeOf(t, err))
		})
	}
	docs, _ := f.store.Repos().Documentos.ListByEmpresa(context.Background(), e.ID)
	assert.Empty(t, docs)
}

func TestAutorizarSubida_TercerosNoAdmin(t *testing.T) {
	f := newFixture(t)
	e := f.registrar(t)

	_, err := f.uc.AutorizarSubida(context.Background(), dto.Solicitante{UsuarioID: "intruso"}, subida(e.ID))
	assert.Equal(t, "UNAUTHORIZED_EMPRESA", codeOf(t, err))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.AutorizarSubida(context.Background(), dto.Solicitante{UsuarioID: "admin-1"}, subida(e.ID))
	assert.NoError(t, err)
}

// Un tercero no distingue una empresa existente de un id desconocido.
func TestAutorizarSubida_TerceroNoDistingueEmpresaInexistente(t *testing.T) {
	f := newFixture(t)
	e := f.registrar(t)
	intruso := dto.Solicitante{UsuarioID: "intruso"}

	_, errExistente := f.uc.AutorizarSubida(context.Background(), intruso, subida(e.ID))
	_, errDesconocida := f.uc.AutorizarSubida(context.Background(), intruso, subida("00000000-0000-0000-0000-000000000000"))
	assert.Equal(t, "UNAUTHORIZED_EMPRESA", codeOf(t, errExistente))
	assert.Equal(t, "UNAUTHORIZED_EMPRESA", codeOf(t, errDesconocida))
	assert.ErrorIs(t, errDesconocida, domain.ErrForbidden)

	_, err := f.uc.AutorizarSubida(context.Background(), dto.Solicitante{UsuarioID: "admin-1"}, subida("00000000-0000-0000-0000-000000000000"))
	assert.Equal(t, "EMPRESA_NOT_FOUND", codeOf(t, err))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAutorizarSubida_ErrorDeConfiguracionNoCreaRegistro(t *testing.T) {
	f := newFixture(t)
	e := f.registrar(t)
	f.presigner.err = domain.NewError(domain.ErrConfig, "CONFIG_ERROR", "faltan credenciales")

	_, err := f.uc.AutorizarSubida(context.Background(), owner(), subida(e.ID))
	assert.Equal(t, "CONFIG_ERROR", codeOf(t, err))
	assert.ErrorIs(t, err, domain.ErrConfig)

	f.presigner.err = errors.New("fallo interno")
	_, err = f.uc.AutorizarSubida(context.Background(), owner(), subida(e.ID))
	assert.Equal(t, "S3_ERROR", codeOf(t, err))

	docs, _ := f.store.Repos().Documentos.ListByEmpresa(context.Background(), e.ID)
	assert.Empty(t, docs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirmación y reemplazo de versiones
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirmarSubida_SinObjetoEsConflicto(t *testing.T) {
	f := newFixture(t)
	e := f.registrar(t)
	up, err := f.uc.AutorizarSubida(context.Background(), owner(), subida(e.ID))
	require.NoError(t, err)

	_, err = f.uc.ConfirmarSubida(context.Background(), owner(), up.DocumentoID)
	assert.Equal(t, "OBJETO_NO_ENCONTRADO", codeOf(t, err))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestConfirmarSubida_TamanoDistinto(t *testing.T) {
	f := newFixture(t)
	e := f.registrar(t)
	up, err := f.uc.AutorizarSubida(context.Background(), owner(), subida(e.ID))
	require.NoError(t, err)
	f.inspector.objects["test-bucket/"+up.S3Key] = 99

	_, err = f.uc.ConfirmarSubida(context.Background(), owner(), up.DocumentoID)
	assert.Equal(t, "TAMANO_NO_COINCIDE", codeOf(t, err))
}

func TestConfirmarSubida_ReemplazaVersionAnterior(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.registrar(t)

	confirmar := func() *dto.DocumentoResponse {
		up, err := f.uc.AutorizarSubida(ctx, owner(), subida(e.ID))
		require.NoError(t, err)
		f.inspector.objects["test-bucket/"+up.S3Key] = 2048
		doc, err := f.uc.ConfirmarSubida(ctx, owner(), up.DocumentoID)
		require.NoError(t, err)
		return doc
	}

	v1 := confirmar()
	assert.True(t, v1.EsVersionActual)
	assert.Equal(t, "confirmado", v1.EstadoCarga)
	assert.Nil(t, v1.ReemplazaA)

	v2 := confirmar()
	require.NotNil(t, v2.ReemplazaA)
	assert.Equal(t, v1.ID, *v2.ReemplazaA)

	old, err := f.store.Repos().Documentos.GetByID(ctx, v1.ID)
	require.NoError(t, err)
	assert.False(t, old.EsVersionActual)

	vig, err := f.store.Repos().Documentos.GetVigente(ctx, e.ID, entity.TipoRUT)
	require.NoError(t, err)
	assert.Equal(t, v2.ID, vig.ID)

	again, err := f.uc.ConfirmarSubida(ctx, owner(), v2.ID)
	require.NoError(t, err)
	assert.Equal(t, v2.ID, again.ID)
}

func TestConfirmarSubida_CompletitudSoloConDocumentosConfirmados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.registrar(t)

	tipos := []string{"camara_comercio", "registro_accionistas", "rut", "cedula_representante_legal", "declaracion_renta", "estados_financieros"}
	var pendiente string
	for i, tipo := range tipos {
		in := subida(e.ID)
		in.TipoDocumento = tipo
		up, err := f.uc.AutorizarSubida(ctx, owner(), in)
		require.NoError(t, err)
		if i == len(tipos)-1 {
			pendiente = up.DocumentoID
			f.inspector.objects["test-bucket/"+up.S3Key] = 2048
			continue
		}
		f.inspector.objects["test-bucket/"+up.S3Key] = 2048
		_, err = f.uc.ConfirmarSubida(ctx, owner(), up.DocumentoID)
		require.NoError(t, err)
	}

	det, err := f.uc.ObtenerMia(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, det.Completitud.Completa)
	assert.Equal(t, []string{"estados_financieros"}, det.Completitud.Faltantes)

	_, err = f.uc.ConfirmarSubida(ctx, owner(), pendiente)
	require.NoError(t, err)
	det, err = f.uc.ObtenerMia(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, det.Completitud.Completa)
	assert.Len(t, det.Documentos, 6)
}

// ──────────────────────────────────────────────────────────────────────────────
// Descarga
// ──────────────────────────────────────────────────────────────────────────────

func TestAutorizarDescarga(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.registrar(t)
	up, err := f.uc.AutorizarSubida(ctx, owner(), subida(e.ID))
	require.NoError(t, err)

	out, err := f.uc.AutorizarDescarga(ctx, owner(), up.DocumentoID)
	require.NoError(t, err)
	assert.Equal(t, 900, out.ExpiresIn)
	assert.Equal(t, "application/pdf", out.MimeType)
	assert.Equal(t, "RUT Empresa.pdf", out.NombreOriginal)
	assert.Contains(t, out.PresignedURL, up.S3Key)

	_, err = f.uc.AutorizarDescarga(ctx, dto.Solicitante{UsuarioID: "admin-1"}, up.DocumentoID)
	assert.NoError(t, err)

	_, err = f.uc.AutorizarDescarga(ctx, dto.Solicitante{UsuarioID: "intruso"}, up.DocumentoID)
	assert.Equal(t, "UNAUTHORIZED_DOCUMENTO", codeOf(t, err))

	_, err = f.uc.AutorizarDescarga(ctx, owner(), "no-existe")
	assert.Equal(t, "UNAUTHORIZED_DOCUMENTO", codeOf(t, err))

	_, err = f.uc.AutorizarDescarga(ctx, dto.Solicitante{UsuarioID: "admin-1"}, "no-existe")
	assert.Equal(t, "DOCUMENTO_NOT_FOUND", codeOf(t, err))
}

func TestAutorizarDescarga_UbicacionVaciaNoSeFirma(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.registrar(t)
	require.NoError(t, f.store.Repos().Documentos.Create(ctx, &entity.Documento{
		ID: "doc-roto", EmpresaID: e.ID, Tipo: entity.TipoOtro, S3Bucket: "test-bucket", S3Key: " / ",
	}))
	before := len(f.presigner.calls)

	_, err := f.uc.AutorizarDescarga(ctx, owner(), "doc-roto")
	assert.Equal(t, "DOCUMENTO_SIN_UBICACION", codeOf(t, err))
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Len(t, f.presigner.calls, before)
}
