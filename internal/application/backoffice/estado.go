package backoffice

import (
	"context"
	"strings"

	"github.com/jhoicas/onboarding-pagadores/internal/application/dto"
	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	domainob "github.com/jhoicas/onboarding-pagadores/internal/domain/onboarding"
)

func errEstadoConflicto(actual entity.EstadoEmpresa) error {
	return domain.Conflict("ESTADO_CONFLICTO", "El estado de la empresa cambió; recarga e intenta de nuevo").
		WithDetails(map[string]any{"estado_actual": string(actual)})
}

// CambiarEstado aplica una transición de estado. Orden de validación: rol,
// estado destino, existencia. La actualización es un compare-and-swap sobre el
// estado leído con bloqueo de fila; el historial se escribe en la misma
// transacción solo si la actualización tuvo efecto.
func (uc *UseCase) CambiarEstado(ctx context.Context, adminID, empresaID string, in dto.CambiarEstadoRequest) (*dto.CambiarEstadoResponse, error) {
	if err := uc.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	nuevo, err := domainob.ParseEstado(in.NuevoEstado)
	if err != nil {
		return nil, err
	}
	var esperado entity.EstadoEmpresa
	if strings.TrimSpace(in.EstadoEsperado) != "" {
		if esperado, err = domainob.ParseEstado(in.EstadoEsperado); err != nil {
			return nil, err
		}
	}
	empresaID = strings.TrimSpace(empresaID)
	if empresaID == "" {
		return nil, domain.InvalidInput("MISSING_FIELD", "empresa_id es requerido")
	}

	var out *dto.CambiarEstadoResponse
	err = uc.tx.RunInTx(ctx, func(r ports.Repos) error {
		e, err := r.Empresas.GetForUpdate(ctx, empresaID)
		if err != nil {
			return domain.Storage("DATABASE_ERROR", err)
		}
		if e == nil {
			return domain.NotFound("EMPRESA_NOT_FOUND", "La empresa no existe")
		}
		leido := e.Estado
		if esperado != "" && esperado != leido {
			return errEstadoConflicto(leido)
		}

		hist, err := domainob.AplicarTransicion(e, nuevo, adminID, in.Motivo, uc.now())
		if err != nil {
			return err
		}
		hist.ID = uc.newID()

		ok, err := r.Empresas.UpdateEstado(ctx, e, leido)
		if err != nil {
			return domain.Storage("DATABASE_ERROR", err)
		}
		if !ok {
			return errEstadoConflicto(leido)
		}
		if err := r.Historial.Append(ctx, hist); err != nil {
			return domain.Storage("DATABASE_ERROR", err)
		}

		out = &dto.CambiarEstadoResponse{
			EmpresaID:      e.ID,
			EstadoAnterior: string(leido),
			EstadoNuevo:    string(e.Estado),
			CambiadoPor:    adminID,
			FechaCambio:    hist.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.TransicionAplicada(out.EstadoAnterior, out.EstadoNuevo)
	uc.log.Info().
		Str("empresa_id", out.EmpresaID).
		Str("desde", out.EstadoAnterior).
		Str("hacia", out.EstadoNuevo).
		Str("admin_id", adminID).
		Msg("estado de empresa actualizado")
	return out, nil
}
