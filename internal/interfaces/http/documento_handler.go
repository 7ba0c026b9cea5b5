package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/onboarding-pagadores/internal/application/dto"
	"github.com/jhoicas/onboarding-pagadores/internal/application/onboarding"
)

// DocumentoHandler URLs prefirmadas de subida y descarga.
type DocumentoHandler struct {
	uc *onboarding.UseCase
}

func NewDocumentoHandler(uc *onboarding.UseCase) *DocumentoHandler {
	return &DocumentoHandler{uc: uc}
}

// GenerarURLSubida godoc
// @Summary      Reservar documento y obtener URL PUT prefirmada
// @Tags         documentos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerarURLSubidaRequest  true  "Archivo a subir"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      500   {object}  dto.Envelope
// @Router       /api/documentos/url-subida [post]
func (h *DocumentoHandler) GenerarURLSubida(c *fiber.Ctx) error {
	var in dto.GenerarURLSubidaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}
	out, err := h.uc.AutorizarSubida(c.UserContext(), solicitante(c), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, out)
}

// Confirmar godoc
// @Summary      Confirmar la carga y marcar el documento como vigente
// @Tags         documentos
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Router       /api/documentos/{id}/confirmar [post]
func (h *DocumentoHandler) Confirmar(c *fiber.Ctx) error {
	out, err := h.uc.ConfirmarSubida(c.UserContext(), solicitante(c), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// ObtenerURL godoc
// @Summary      URL GET prefirmada para ver un documento
// @Tags         documentos
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Failure      500  {object}  dto.Envelope
// @Router       /api/documentos/{id}/url [get]
func (h *DocumentoHandler) ObtenerURL(c *fiber.Ctx) error {
	out, err := h.uc.AutorizarDescarga(c.UserContext(), solicitante(c), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}
