package repository

import (
	"context"

	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
)

// DocumentoRepository puerto de persistencia para documentos.
type DocumentoRepository interface {
	Create(ctx context.Context, d *entity.Documento) error
	GetByID(ctx context.Context, id string) (*entity.Documento, error)
	// GetVigente documento actual de (empresa, tipo); nil si no hay.
	GetVigente(ctx context.Context, empresaID string, tipo entity.TipoDocumento) (*entity.Documento, error)
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Documento, error)
	// MarcarNoVigente apaga es_version_actual.
	MarcarNoVigente(ctx context.Context, id string) error
	// Confirmar marca el documento como vigente y confirmado.
	Confirmar(ctx context.Context, d *entity.Documento) error
}
