package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TipoDocumento categoría del archivo soportado por la empresa.
type TipoDocumento string

const (
	TipoCamaraComercio           TipoDocumento = "camara_comercio"
	TipoRegistroAccionistas      TipoDocumento = "registro_accionistas"
	TipoRUT                      TipoDocumento = "rut"
	TipoCedulaRepresentanteLegal TipoDocumento = "cedula_representante_legal"
	TipoDeclaracionRenta         TipoDocumento = "declaracion_renta"
	TipoEstadosFinancieros       TipoDocumento = "estados_financieros"
	TipoOtro                     TipoDocumento = "otro"
)

// TiposDocumento los siete tipos admitidos.
func TiposDocumento() []TipoDocumento {
	return []TipoDocumento{
		TipoCamaraComercio,
		TipoRegistroAccionistas,
		TipoRUT,
		TipoCedulaRepresentanteLegal,
		TipoDeclaracionRenta,
		TipoEstadosFinancieros,
		TipoOtro,
	}
}

// EstadoCarga reserva (URL emitida) o confirmado (objeto verificado en el almacenamiento).
type EstadoCarga string

const (
	CargaPendiente  EstadoCarga = "pendiente_carga"
	CargaConfirmada EstadoCarga = "confirmado"
)

// Documento archivo de soporte de una empresa. A lo sumo uno vigente por (empresa, tipo).
type Documento struct {
	ID             string
	EmpresaID      string
	Tipo           TipoDocumento
	S3Bucket       string
	S3Key          string
	NombreOriginal string
	MimeType       string
	TamanoBytes    int64

	EstadoCarga     EstadoCarga
	EsVersionActual bool
	ReemplazaA      *string
	SubidoPor       *string
	ConfirmadoAt    *time.Time

	// Metadatos de extracción; los produce un proceso externo.
	ExtraccionCompleta  bool
	ExtraccionData      json.RawMessage
	ExtraccionResumen   *string
	ExtraccionConfianza *decimal.Decimal
	ExtraccionFecha     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone copia el documento incluyendo punteros y payload.
func (d *Documento) Clone() *Documento {
	if d == nil {
		return nil
	}
	c := *d
	c.ReemplazaA = clonePtr(d.ReemplazaA)
	c.SubidoPor = clonePtr(d.SubidoPor)
	c.ConfirmadoAt = clonePtr(d.ConfirmadoAt)
	c.ExtraccionResumen = clonePtr(d.ExtraccionResumen)
	c.ExtraccionConfianza = clonePtr(d.ExtraccionConfianza)
	c.ExtraccionFecha = clonePtr(d.ExtraccionFecha)
	if d.ExtraccionData != nil {
		c.ExtraccionData = append(json.RawMessage(nil), d.ExtraccionData...)
	}
	return &c
}
