package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/onboarding-pagadores/internal/application/dto"
	"github.com/jhoicas/onboarding-pagadores/internal/application/sarlaft"
)

// SarlaftHandler proxy del proveedor de listas restrictivas.
type SarlaftHandler struct {
	uc *sarlaft.UseCase
}

func NewSarlaftHandler(uc *sarlaft.UseCase) *SarlaftHandler {
	return &SarlaftHandler{uc: uc}
}

// Validar godoc
// @Summary      Consultar listas SARLAFT
// @Tags         sarlaft
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidarSarlaftRequest  true  "Persona o empresa a consultar"
// @Success      200   {object}  dto.Envelope
// @Failure      502   {object}  dto.Envelope
// @Router       /api/sarlaft/validar [post]
func (h *SarlaftHandler) Validar(c *fiber.Ctx) error {
	var in dto.ValidarSarlaftRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}
	out, err := h.uc.Validar(c.UserContext(), solicitante(c), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}
