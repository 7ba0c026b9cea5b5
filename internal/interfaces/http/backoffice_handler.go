package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/onboarding-pagadores/internal/application/backoffice"
	"github.com/jhoicas/onboarding-pagadores/internal/application/dto"
	"github.com/jhoicas/onboarding-pagadores/internal/application/sarlaft"
)

// BackofficeHandler revisión de empresas por administradores.
type BackofficeHandler struct {
	uc      *backoffice.UseCase
	sarlaft *sarlaft.UseCase
}

func NewBackofficeHandler(uc *backoffice.UseCase, sarlaftUC *sarlaft.UseCase) *BackofficeHandler {
	return &BackofficeHandler{uc: uc, sarlaft: sarlaftUC}
}

// Resumen godoc
// @Summary      Conteo de empresas por estado
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Router       /api/admin/resumen [get]
func (h *BackofficeHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.uc.Resumen(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Listar godoc
// @Summary      Listar empresas
// @Tags         admin
// @Produce      json
// @Param        estado  query  string  false  "Filtro de estado"
// @Param        search  query  string  false  "Razón social o NIT"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.Envelope
// @Router       /api/admin/empresas [get]
func (h *BackofficeHandler) Listar(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListarEmpresas(c.UserContext(), GetUserID(c), c.Query("estado"), c.Query("search"), page)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Detalle godoc
// @Summary      Detalle de empresa con documentos y completitud
// @Tags         admin
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/admin/empresas/{id} [get]
func (h *BackofficeHandler) Detalle(c *fiber.Ctx) error {
	out, err := h.uc.DetalleEmpresa(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// CambiarEstado godoc
// @Summary      Cambiar el estado de aprobación
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la empresa"
// @Param        body  body  dto.CambiarEstadoRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/admin/empresas/{id}/estado [patch]
func (h *BackofficeHandler) CambiarEstado(c *fiber.Ctx) error {
	var in dto.CambiarEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}
	out, err := h.uc.CambiarEstado(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Historial godoc
// @Summary      Historial de estados (más reciente primero)
// @Tags         admin
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.Envelope
// @Router       /api/admin/empresas/{id}/historial [get]
func (h *BackofficeHandler) Historial(c *fiber.Ctx) error {
	out, err := h.uc.Historial(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// CrearComentario godoc
// @Summary      Agregar comentario interno
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la empresa"
// @Param        body  body  dto.CrearComentarioRequest  true  "Comentario"
// @Success      201   {object}  dto.Envelope
// @Router       /api/admin/empresas/{id}/comentarios [post]
func (h *BackofficeHandler) CrearComentario(c *fiber.Ctx) error {
	var in dto.CrearComentarioRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}
	out, err := h.uc.CrearComentario(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, out)
}

// ListarComentarios godoc
// @Summary      Comentarios internos
// @Tags         admin
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.Envelope
// @Router       /api/admin/empresas/{id}/comentarios [get]
func (h *BackofficeHandler) ListarComentarios(c *fiber.Ctx) error {
	out, err := h.uc.ListarComentarios(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Expediente godoc
// @Summary      Expediente PDF de la empresa
// @Tags         admin
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {file}  binary
// @Router       /api/admin/empresas/{id}/expediente.pdf [get]
func (h *BackofficeHandler) Expediente(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Expediente(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Sarlaft godoc
// @Summary      Consultas SARLAFT guardadas
// @Tags         admin
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.Envelope
// @Router       /api/admin/empresas/{id}/sarlaft [get]
func (h *BackofficeHandler) Sarlaft(c *fiber.Ctx) error {
	out, err := h.sarlaft.Listar(c.UserContext(), solicitante(c), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}
