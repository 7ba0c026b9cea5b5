package repository

import (
	"context"

	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
)

// UsuarioRepository usuarios locales; el rol se consulta en cada petición.
type UsuarioRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	// Ensure crea el usuario si no existe; no cambia el rol de uno existente.
	Ensure(ctx context.Context, u *entity.Usuario) error
}
