package entity

import "time"

// EstadoEmpresa estado de aprobación de una empresa pagadora.
type EstadoEmpresa string

const (
	EstadoPendiente             EstadoEmpresa = "pendiente"
	EstadoEnRevision            EstadoEmpresa = "en_revision"
	EstadoDocumentosIncompletos EstadoEmpresa = "documentos_incompletos"
	EstadoAprobado              EstadoEmpresa = "aprobado"
	EstadoRechazado             EstadoEmpresa = "rechazado"
)

// EstadosEmpresa devuelve los estados válidos en orden de flujo.
func EstadosEmpresa() []EstadoEmpresa {
	return []EstadoEmpresa{
		EstadoPendiente,
		EstadoEnRevision,
		EstadoDocumentosIncompletos,
		EstadoAprobado,
		EstadoRechazado,
	}
}

// Valid indica si el estado pertenece a la enumeración.
func (e EstadoEmpresa) Valid() bool {
	for _, s := range EstadosEmpresa() {
		if s == e {
			return true
		}
	}
	return false
}

// Tipos de documento de identidad del representante legal.
const (
	DocumentoCC = "CC"
	DocumentoCE = "CE"
)

// RepresentanteLegal datos del representante legal de la empresa.
type RepresentanteLegal struct {
	Nombre        string
	TipoDocumento string // CC, CE
	Cedula        string
	Email         string
	Telefono      string // +57XXXXXXXXXX
}

// Empresa empresa pagadora en proceso de vinculación. Una por usuario; NIT único.
type Empresa struct {
	ID                 string
	UsuarioID          string
	NIT                string // 900123456-7
	RazonSocial        string
	Direccion          string
	Ciudad             string
	Departamento       string
	ActividadEconomica string
	CodigoCIIU         string
	Representante      RepresentanteLegal

	Estado            EstadoEmpresa
	EstadoAnterior    *EstadoEmpresa // nil solo en el registro inicial
	FechaCambioEstado *time.Time

	AprobadoPor     *string
	FechaAprobacion *time.Time

	IPRegistro *string
	UserAgent  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NITBase devuelve el NIT sin dígito de verificación.
func (e *Empresa) NITBase() string {
	for i := 0; i < len(e.NIT); i++ {
		if e.NIT[i] == '-' {
			return e.NIT[:i]
		}
	}
	return e.NIT
}

// Clone copia la empresa incluyendo punteros.
func (e *Empresa) Clone() *Empresa {
	if e == nil {
		return nil
	}
	c := *e
	c.EstadoAnterior = clonePtr(e.EstadoAnterior)
	c.FechaCambioEstado = clonePtr(e.FechaCambioEstado)
	c.AprobadoPor = clonePtr(e.AprobadoPor)
	c.FechaAprobacion = clonePtr(e.FechaAprobacion)
	c.IPRegistro = clonePtr(e.IPRegistro)
	c.UserAgent = clonePtr(e.UserAgent)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
