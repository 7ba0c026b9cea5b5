package repository

import (
	"context"

	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
)

// SarlaftRepository consultas SARLAFT persistidas.
type SarlaftRepository interface {
	Create(ctx context.Context, v *entity.ValidacionSarlaft) error
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.ValidacionSarlaft, error)
}
