package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/onboarding-pagadores/internal/application/dto"
	"github.com/jhoicas/onboarding-pagadores/pkg/jwt"
)

// Locals keys para la identidad de la sesión.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
)

// TokenVerifier lo implementa *jwt.Verifier.
type TokenVerifier interface {
	Parse(ctx context.Context, token string) (*jwt.Claims, error)
}

// AuthMiddleware valida el Bearer Token del proveedor de sesión y deja sub y email en c.Locals.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Token de autenticación requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return fail(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Token vacío")
		}
		claims, err := verifier.Parse(c.UserContext(), tokenString)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Token inválido o expirado")
		}
		c.Locals(LocalUserID, claims.Subject)
		c.Locals(LocalEmail, claims.Email)
		return c.Next()
	}
}

// GetUserID devuelve el sub del token (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// solicitante identidad y origen de la petición para los casos de uso.
func solicitante(c *fiber.Ctx) dto.Solicitante {
	email, _ := c.Locals(LocalEmail).(string)
	return dto.Solicitante{
		UsuarioID: GetUserID(c),
		Email:     email,
		IP:        c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
}
