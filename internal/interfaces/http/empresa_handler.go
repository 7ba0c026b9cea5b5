package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/onboarding-pagadores/internal/application/auth"
	"github.com/jhoicas/onboarding-pagadores/internal/application/dto"
	"github.com/jhoicas/onboarding-pagadores/internal/application/onboarding"
)

// EmpresaHandler registro y vista propia de la empresa pagadora.
type EmpresaHandler struct {
	uc   *onboarding.UseCase
	auth *auth.UseCase
}

// NewEmpresaHandler construye el handler inyectando los casos de uso.
func NewEmpresaHandler(uc *onboarding.UseCase, authUC *auth.UseCase) *EmpresaHandler {
	return &EmpresaHandler{uc: uc, auth: authUC}
}

// Registrar godoc
// @Summary      Registrar empresa pagadora
// @Tags         empresas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarEmpresaRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/empresas [post]
func (h *EmpresaHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}
	out, err := h.uc.Registrar(c.UserContext(), solicitante(c), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, out)
}

// Mia godoc
// @Summary      Empresa del usuario, documentos vigentes y completitud
// @Tags         empresas
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/empresas/me [get]
func (h *EmpresaHandler) Mia(c *fiber.Ctx) error {
	out, err := h.uc.ObtenerMia(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Perfil godoc
// @Summary      Perfil de la sesión (rol y empresa asociada)
// @Tags         sesion
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/me [get]
func (h *EmpresaHandler) Perfil(c *fiber.Ctx) error {
	out, err := h.auth.Perfil(c.UserContext(), solicitante(c))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}
