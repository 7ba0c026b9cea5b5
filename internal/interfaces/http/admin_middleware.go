package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AdminChecker resuelve si un usuario tiene rol admin.
type AdminChecker interface {
	IsAdmin(ctx context.Context, usuarioID string) (bool, error)
}

// AdminCheckerFunc adapta una función a AdminChecker.
type AdminCheckerFunc func(ctx context.Context, usuarioID string) (bool, error)

func (f AdminCheckerFunc) IsAdmin(ctx context.Context, usuarioID string) (bool, error) {
	return f(ctx, usuarioID)
}

// RequireAdmin verifica el rol admin en cada petición (sin caché). Debe usarse
// DESPUÉS de AuthMiddleware.
//   - 401 si no hay identidad.
//   - 403 ADMIN_REQUIRED si el usuario no es administrador.
//   - 500 si no se pudo consultar el rol.
func RequireAdmin(checker AdminChecker, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return fail(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Token de autenticación requerido")
		}
		admin, err := checker.IsAdmin(c.UserContext(), userID)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("consultar rol")
			return fail(c, fiber.StatusInternalServerError, "DATABASE_ERROR", "No se pudo verificar el rol")
		}
		if !admin {
			return fail(c, fiber.StatusForbidden, "ADMIN_REQUIRED", "Se requiere rol de administrador")
		}
		return c.Next()
	}
}
