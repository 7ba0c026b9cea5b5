package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger lo implementan memory.Store y postgres.TxRunner.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health 200 si el almacén responde; 503 en otro caso.
func Health(service string, store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		body := fiber.Map{"status": "ok", "service": service, "timestamp": time.Now().UTC()}
		if err := store.Ping(ctx); err != nil {
			body["status"] = "degraded"
			body["database"] = "unreachable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(body)
		}
		body["database"] = "connected"
		return c.JSON(body)
	}
}
