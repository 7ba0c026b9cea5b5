package backoffice

import (
	"context"
	"fmt"

	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	domainob "github.com/jhoicas/onboarding-pagadores/internal/domain/onboarding"
)

// Expediente genera el PDF de revisión y el nombre sugerido del archivo.
func (uc *UseCase) Expediente(ctx context.Context, adminID, empresaID string) ([]byte, string, error) {
	if err := uc.requireAdmin(ctx, adminID); err != nil {
		return nil, "", err
	}
	if uc.pdf == nil {
		return nil, "", domain.NewError(domain.ErrConfig, "CONFIG_ERROR", "Generador de PDF no configurado")
	}
	e, err := uc.empresa(ctx, empresaID)
	if err != nil {
		return nil, "", err
	}
	docs, err := uc.repos.Documentos.ListByEmpresa(ctx, e.ID)
	if err != nil {
		return nil, "", domain.Storage("DATABASE_ERROR", err)
	}
	hist, err := uc.repos.Historial.ListByEmpresa(ctx, e.ID)
	if err != nil {
		return nil, "", domain.Storage("DATABASE_ERROR", err)
	}
	vigentes := make([]*entity.Documento, 0, len(docs))
	for _, d := range docs {
		if d.EsVersionActual {
			vigentes = append(vigentes, d)
		}
	}

	now := uc.now()
	pdf, err := uc.pdf.Generate(ports.Expediente{
		Empresa:     e,
		Documentos:  vigentes,
		Historial:   hist,
		Completitud: domainob.EvaluarCompletitud(vigentes),
		GeneradoPor: adminID,
		GeneradoAt:  now,
	})
	if err != nil {
		return nil, "", domain.NewError(domain.ErrStorage, "PDF_ERROR", "No se pudo generar el expediente").Wrap(err)
	}
	return pdf, fmt.Sprintf("expediente_%s_%s.pdf", e.NITBase(), now.Format("20060102")), nil
}
