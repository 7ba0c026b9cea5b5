package repository

import (
	"context"

	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
)

// HistorialRepository solo inserción y lectura; las entradas no se editan ni se borran.
type HistorialRepository interface {
	Append(ctx context.Context, h *entity.HistorialEstado) error
	// ListByEmpresa más reciente primero.
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.HistorialEstado, error)
}
