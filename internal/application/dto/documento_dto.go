package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// GenerarURLSubidaRequest cuerpo de POST /api/documentos/url-subida.
type GenerarURLSubidaRequest struct {
	EmpresaID     string `json:"empresa_id"`
	TipoDocumento string `json:"tipo_documento"`
	NombreArchivo string `json:"nombre_archivo"`
	MimeType      string `json:"mime_type"`
	TamanoBytes   int64  `json:"tamano_bytes"`
}

// GenerarURLSubidaResponse URL de subida y ubicación del objeto.
type GenerarURLSubidaResponse struct {
	PresignedURL string            `json:"presigned_url"`
	S3Bucket     string            `json:"s3_bucket"`
	S3Key        string            `json:"s3_key"`
	DocumentoID  string            `json:"documento_id"`
	ExpiresIn    int               `json:"expires_in"`
	Headers      map[string]string `json:"headers"`
}

// ObtenerURLDocumentoResponse URL de descarga.
type ObtenerURLDocumentoResponse struct {
	PresignedURL   string `json:"presigned_url"`
	ExpiresIn      int    `json:"expires_in"`
	MimeType       string `json:"mime_type"`
	NombreOriginal string `json:"nombre_original"`
}

// DocumentoResponse documento serializado.
type DocumentoResponse struct {
	ID                  string           `json:"id"`
	EmpresaID           string           `json:"empresa_id"`
	TipoDocumento       string           `json:"tipo_documento"`
	S3Bucket            string           `json:"s3_bucket"`
	S3Key               string           `json:"s3_key"`
	NombreOriginal      string           `json:"nombre_original"`
	MimeType            string           `json:"mime_type"`
	TamanoBytes         int64            `json:"tamano_bytes"`
	EstadoCarga         string           `json:"estado_carga"`
	EsVersionActual     bool             `json:"es_version_actual"`
	ReemplazaA          *string          `json:"reemplaza_a"`
	ExtraccionCompleta  bool             `json:"extraccion_completa"`
	ExtraccionData      json.RawMessage  `json:"extraccion_data,omitempty"`
	ExtraccionResumen   *string          `json:"extraccion_resumen,omitempty"`
	ExtraccionConfianza *decimal.Decimal `json:"extraccion_confianza,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
}
