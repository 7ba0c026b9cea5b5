package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/onboarding-pagadores/internal/application/dto"
	"github.com/jhoicas/onboarding-pagadores/internal/domain"
)

// ok responde {success: true, data}.
func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.Envelope{Success: true, Data: data})
}

// fail responde {success: false, error}. Solo lo usan los middlewares; los
// handlers retornan el error y lo traduce ErrorHandler.
func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.Envelope{
		Success: false,
		Error:   &dto.ErrorResponse{Code: code, Message: message},
	})
}

// StatusFor estado HTTP para un error de dominio.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler traduce los errores que retornan los handlers al sobre uniforme.
// Los errores sin código se registran y se responden como INTERNAL_ERROR sin exponer la causa.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if de, ok := domain.AsError(err); ok {
			status := StatusFor(de)
			if status >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("code", de.Code).Str("path", c.Path()).Msg("error de servidor")
			}
			return c.Status(status).JSON(dto.Envelope{
				Success: false,
				Error:   &dto.ErrorResponse{Code: de.Code, Message: de.Message, Details: de.Details},
			})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fail(c, fe.Code, fiberCode(fe.Code), fe.Message)
		}

		log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		return fail(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Error interno del servidor")
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "ROUTE_NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return "INVALID_BODY"
	}
	return "HTTP_ERROR"
}

// invalidBody cuerpo JSON ilegible.
func invalidBody(err error) error {
	return domain.InvalidInput("INVALID_BODY", "Cuerpo de la petición inválido").Wrap(err)
}
