package dto

import (
	"encoding/json"
	"time"
)

// ValidarSarlaftRequest cuerpo de POST /api/sarlaft/validar.
type ValidarSarlaftRequest struct {
	EmpresaID     string `json:"empresa_id"`
	Scope         string `json:"scope"`
	Nombres       string `json:"nombres"`
	Documento     string `json:"documento"`
	TipoDocumento string `json:"tipo_documento"`
	IPAddress     string `json:"ip_address"`
	ForceRefresh  bool   `json:"force_refresh"`
}

// ClasificacionResponse interpretación del resultado del proveedor.
type ClasificacionResponse struct {
	Tipo     string   `json:"tipo"` // limpio | alerta | error_proveedor | pendiente
	Detalles []string `json:"detalles,omitempty"`
	Status   int      `json:"status,omitempty"`
}

// ValidarSarlaftResponse respuesta del proxy.
type ValidarSarlaftResponse struct {
	EmpresaID      string                `json:"empresa_id"`
	Scope          string                `json:"scope"`
	Saved          bool                  `json:"saved"`
	ProviderStatus int                   `json:"provider_status"`
	Clasificacion  ClasificacionResponse `json:"clasificacion"`
	Resultado      json.RawMessage       `json:"resultado"`
}

// ValidacionSarlaftResponse validación guardada.
type ValidacionSarlaftResponse struct {
	ID             string          `json:"id"`
	EmpresaID      string          `json:"empresa_id"`
	Scope          string          `json:"scope"`
	Nombres        string          `json:"nombres"`
	Documento      string          `json:"documento"`
	TipoDocumento  string          `json:"tipo_documento"`
	ProviderStatus int             `json:"provider_status"`
	Clasificacion  string          `json:"clasificacion"`
	Resultado      json.RawMessage `json:"resultado"`
	ConsultadoPor  *string         `json:"consultado_por"`
	CreatedAt      time.Time       `json:"created_at"`
}
