package onboarding

import (
	"context"
	"errors"

	"github.com/jhoicas/onboarding-pagadores/internal/application/access"
	"github.com/jhoicas/onboarding-pagadores/internal/application/dto"
	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	domainob "github.com/jhoicas/onboarding-pagadores/internal/domain/onboarding"
)

var errEmpresaDuplicada = domain.NewError(domain.ErrDuplicate, "EMPRESA_DUPLICADA",
	"El usuario ya tiene una empresa registrada o el NIT ya existe")

// Registrar crea la empresa del solicitante en estado pendiente junto con la
// primera entrada del historial. IP y user agent se capturan solo aquí.
func (uc *UseCase) Registrar(ctx context.Context, sol dto.Solicitante, in dto.RegistrarEmpresaRequest) (*dto.EmpresaResponse, error) {
	if err := access.RequireUser(sol.UsuarioID); err != nil {
		return nil, err
	}
	datos := domainob.DatosRegistro{
		NIT:                in.NIT,
		RazonSocial:        in.RazonSocial,
		Direccion:          in.Direccion,
		Ciudad:             in.Ciudad,
		Departamento:       in.Departamento,
		ActividadEconomica: in.ActividadEconomica,
		CodigoCIIU:         in.CodigoCIIU,
		Representante: entity.RepresentanteLegal{
			Nombre:        in.RepresentanteLegalNombre,
			TipoDocumento: in.RepresentanteLegalTipoDocumento,
			Cedula:        in.RepresentanteLegalCedula,
			Email:         in.RepresentanteLegalEmail,
			Telefono:      in.RepresentanteLegalTelefono,
		},
	}.Normalizar()
	if err := domainob.ValidarRegistro(datos); err != nil {
		return nil, err
	}

	now := uc.now()
	empresa := &entity.Empresa{
		ID:                 uc.newID(),
		UsuarioID:          sol.UsuarioID,
		NIT:                datos.NIT,
		RazonSocial:        datos.RazonSocial,
		Direccion:          datos.Direccion,
		Ciudad:             datos.Ciudad,
		Departamento:       datos.Departamento,
		ActividadEconomica: datos.ActividadEconomica,
		CodigoCIIU:         datos.CodigoCIIU,
		Representante:      datos.Representante,
		IPRegistro:         optional(sol.IP),
		UserAgent:          optional(sol.UserAgent),
	}
	hist := domainob.RegistroInicial(empresa, sol.UsuarioID, now)
	hist.ID = uc.newID()

	err := uc.tx.RunInTx(ctx, func(r ports.Repos) error {
		if err := r.Usuarios.Ensure(ctx, &entity.Usuario{
			ID:        sol.UsuarioID,
			Email:     sol.Email,
			Rol:       entity.RolPagador,
			CreatedAt: empresa.CreatedAt,
			UpdatedAt: empresa.CreatedAt,
		}); err != nil {
			return domain.Storage("DATABASE_ERROR", err)
		}
		existing, err := r.Empresas.GetByUsuarioID(ctx, sol.UsuarioID)
		if err != nil {
			return domain.Storage("DATABASE_ERROR", err)
		}
		if existing != nil {
			return errEmpresaDuplicada
		}
		if err := r.Empresas.Create(ctx, empresa); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return errEmpresaDuplicada
			}
			return domain.Storage("DATABASE_ERROR", err)
		}
		if err := r.Historial.Append(ctx, hist); err != nil {
			return domain.Storage("DATABASE_ERROR", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("empresa_id", empresa.ID).Str("nit", empresa.NIT).Msg("empresa registrada")
	if uc.screener != nil {
		uc.screener.ScreenEmpresaAsync(empresa.Clone())
	}
	out := dto.FromEmpresa(empresa)
	return &out, nil
}

// ObtenerMia empresa del solicitante con documentos vigentes y completitud.
func (uc *UseCase) ObtenerMia(ctx context.Context, usuarioID string) (*dto.EmpresaDetalleResponse, error) {
	if err := access.RequireUser(usuarioID); err != nil {
		return nil, err
	}
	empresa, err := uc.repos.Empresas.GetByUsuarioID(ctx, usuarioID)
	if err != nil {
		return nil, domain.Storage("DATABASE_ERROR", err)
	}
	if empresa == nil {
		return nil, domain.NotFound("EMPRESA_NOT_FOUND", "No tienes una empresa registrada")
	}
	return Detalle(ctx, uc.repos, empresa)
}

// Detalle arma la vista de empresa con documentos vigentes y completitud.
func Detalle(ctx context.Context, repos ports.Repos, empresa *entity.Empresa) (*dto.EmpresaDetalleResponse, error) {
	docs, err := repos.Documentos.ListByEmpresa(ctx, empresa.ID)
	if err != nil {
		return nil, domain.Storage("DATABASE_ERROR", err)
	}
	vigentes := make([]*entity.Documento, 0, len(docs))
	for _, d := range docs {
		if d.EsVersionActual {
			vigentes = append(vigentes, d)
		}
	}
	return &dto.EmpresaDetalleResponse{
		Empresa:     dto.FromEmpresa(empresa),
		Documentos:  dto.FromDocumentos(vigentes),
		Completitud: dto.FromCompletitud(domainob.EvaluarCompletitud(vigentes)),
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
