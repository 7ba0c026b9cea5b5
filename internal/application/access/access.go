// Package access reglas de autorización compartidas por los casos de uso.
package access

import (
	"context"

	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/repository"
)

// IsAdmin consulta el rol en cada llamada; no se cachea.
func IsAdmin(ctx context.Context, usuarios repository.UsuarioRepository, usuarioID string) (bool, error) {
	if usuarioID == "" {
		return false, nil
	}
	u, err := usuarios.GetByID(ctx, usuarioID)
	if err != nil {
		return false, domain.Storage("DATABASE_ERROR", err)
	}
	return u.IsAdmin(), nil
}

// CanAccessEmpresa propietario o administrador.
func CanAccessEmpresa(ctx context.Context, usuarios repository.UsuarioRepository, usuarioID string, e *entity.Empresa) (bool, error) {
	if e != nil && e.UsuarioID == usuarioID && usuarioID != "" {
		return true, nil
	}
	return IsAdmin(ctx, usuarios, usuarioID)
}

// AutorizarEmpresa exige propietario o administrador antes de revelar si la empresa
// existe: un tercero recibe UNAUTHORIZED_EMPRESA tanto para ids existentes como
// desconocidos; solo un administrador ve EMPRESA_NOT_FOUND.
func AutorizarEmpresa(ctx context.Context, usuarios repository.UsuarioRepository, usuarioID string, e *entity.Empresa, mensaje string) error {
	ok, err := CanAccessEmpresa(ctx, usuarios, usuarioID, e)
	if err != nil {
		return err
	}
	if !ok {
		return domain.Forbidden("UNAUTHORIZED_EMPRESA", mensaje)
	}
	if e == nil {
		return domain.NotFound("EMPRESA_NOT_FOUND", "La empresa no existe")
	}
	return nil
}

// RequireUser falla con UNAUTHENTICATED si no hay identidad.
func RequireUser(usuarioID string) error {
	if usuarioID == "" {
		return domain.Unauthenticated("Token de autenticación requerido")
	}
	return nil
}
