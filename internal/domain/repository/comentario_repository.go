package repository

import (
	"context"

	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
)

// ComentarioRepository comentarios internos del back-office.
type ComentarioRepository interface {
	Create(ctx context.Context, c *entity.ComentarioInterno) error
	// ListByEmpresa más reciente primero.
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.ComentarioInterno, error)
}
