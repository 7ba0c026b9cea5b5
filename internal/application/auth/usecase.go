// Package auth perfil de la sesión. Las credenciales las emite el proveedor
// de sesión externo; aquí solo se sincroniza el usuario local.
package auth

import (
	"context"
	"time"

	"github.com/jhoicas/onboarding-pagadores/internal/application/access"
	"github.com/jhoicas/onboarding-pagadores/internal/application/dto"
	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
)

// UseCase casos de uso de la sesión.
type UseCase struct {
	repos ports.Repos
	now   func() time.Time
}

// NewUseCase now nil = time.Now.
func NewUseCase(repos ports.Repos, now func() time.Time) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{repos: repos, now: now}
}

// Perfil crea el usuario local la primera vez (rol pagador) y devuelve su rol
// y la empresa asociada, si existe.
func (uc *UseCase) Perfil(ctx context.Context, sol dto.Solicitante) (*dto.UsuarioResponse, error) {
	if err := access.RequireUser(sol.UsuarioID); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	if err := uc.repos.Usuarios.Ensure(ctx, &entity.Usuario{
		ID: sol.UsuarioID, Email: sol.Email, Rol: entity.RolPagador, CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		return nil, domain.Storage("DATABASE_ERROR", err)
	}
	u, err := uc.repos.Usuarios.GetByID(ctx, sol.UsuarioID)
	if err != nil {
		return nil, domain.Storage("DATABASE_ERROR", err)
	}
	if u == nil {
		return nil, domain.NotFound("USUARIO_NOT_FOUND", "Usuario no encontrado")
	}
	e, err := uc.repos.Empresas.GetByUsuarioID(ctx, sol.UsuarioID)
	if err != nil {
		return nil, domain.Storage("DATABASE_ERROR", err)
	}

	out := &dto.UsuarioResponse{
		ID:        u.ID,
		Email:     u.Email,
		Rol:       u.Rol,
		EsAdmin:   u.IsAdmin(),
		CreatedAt: u.CreatedAt,
	}
	if e != nil {
		out.EmpresaID = &e.ID
	}
	return out, nil
}
