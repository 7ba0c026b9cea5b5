package onboarding

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	"github.com/jhoicas/onboarding-pagadores/pkg/dian"
)

var (
	reNIT      = regexp.MustCompile(`^\d{9}-\d$`)
	reCIIU     = regexp.MustCompile(`^\d{4}$`)
	reCedula   = regexp.MustCompile(`^\d{6,10}$`)
	reTelefono = regexp.MustCompile(`^\+57\d{10}$`)
)

// DatosRegistro datos del formulario de registro de la empresa.
type DatosRegistro struct {
	NIT                string
	RazonSocial        string
	Direccion          string
	Ciudad             string
	Departamento       string
	ActividadEconomica string
	CodigoCIIU         string
	Representante      entity.RepresentanteLegal
}

// Normalizar recorta espacios y pasa el tipo de documento a mayúsculas.
func (d DatosRegistro) Normalizar() DatosRegistro {
	d.NIT = strings.TrimSpace(d.NIT)
	d.RazonSocial = strings.TrimSpace(d.RazonSocial)
	d.Direccion = strings.TrimSpace(d.Direccion)
	d.Ciudad = strings.TrimSpace(d.Ciudad)
	d.Departamento = strings.TrimSpace(d.Departamento)
	d.ActividadEconomica = strings.TrimSpace(d.ActividadEconomica)
	d.CodigoCIIU = strings.TrimSpace(d.CodigoCIIU)
	d.Representante.Nombre = strings.TrimSpace(d.Representante.Nombre)
	d.Representante.TipoDocumento = strings.ToUpper(strings.TrimSpace(d.Representante.TipoDocumento))
	d.Representante.Cedula = strings.TrimSpace(d.Representante.Cedula)
	d.Representante.Email = strings.ToLower(strings.TrimSpace(d.Representante.Email))
	d.Representante.Telefono = strings.TrimSpace(d.Representante.Telefono)
	return d
}

// ValidarRegistro aplica las reglas del formulario; devuelve VALIDATION_ERROR
// con el mensaje de cada campo inválido en Details.
func ValidarRegistro(d DatosRegistro) error {
	campos := map[string]string{}

	switch {
	case !reNIT.MatchString(d.NIT):
		campos["nit"] = "Formato: 900123456-7"
	case dian.ValidateNIT(d.NIT) != nil:
		campos["nit"] = "Dígito de verificación inválido"
	}
	longitud(campos, "razon_social", d.RazonSocial, 3, 255)
	longitud(campos, "direccion", d.Direccion, 10, 500)
	longitud(campos, "ciudad", d.Ciudad, 3, 100)
	longitud(campos, "departamento", d.Departamento, 1, 100)
	longitud(campos, "actividad_economica", d.ActividadEconomica, 5, 255)
	if !reCIIU.MatchString(d.CodigoCIIU) {
		campos["codigo_ciiu"] = "Debe ser un código de 4 dígitos"
	}

	r := d.Representante
	longitud(campos, "representante_legal_nombre", r.Nombre, 5, 255)
	if r.TipoDocumento != entity.DocumentoCC && r.TipoDocumento != entity.DocumentoCE {
		campos["representante_legal_tipo_documento"] = "Valores permitidos: CC, CE"
	}
	if !reCedula.MatchString(r.Cedula) {
		campos["representante_legal_cedula"] = "Debe tener entre 6 y 10 dígitos"
	}
	if _, err := mail.ParseAddress(r.Email); err != nil || strings.ContainsAny(r.Email, "<> ") {
		campos["representante_legal_email"] = "Email inválido"
	}
	if !reTelefono.MatchString(r.Telefono) {
		campos["representante_legal_telefono"] = "Formato: +57XXXXXXXXXX"
	}

	if len(campos) == 0 {
		return nil
	}
	return domain.InvalidInput("VALIDATION_ERROR", "Datos de registro inválidos").
		WithDetails(map[string]any{"campos": campos})
}

func longitud(campos map[string]string, campo, v string, minLen, maxLen int) {
	n := utf8.RuneCountInString(v)
	if n < minLen || n > maxLen {
		campos[campo] = "Longitud inválida"
	}
}
