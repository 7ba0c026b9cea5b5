package ports

import (
	"context"
	"encoding/json"
)

// ScreeningRequest consulta al proveedor de listas SARLAFT.
type ScreeningRequest struct {
	Nombres       string `json:"nombres"`
	Documento     string `json:"documento"`
	TipoDocumento string `json:"tipo_documento"`
	UserID        string `json:"user_id"`
	IPAddress     string `json:"ip_address,omitempty"`
	ForceRefresh  bool   `json:"force_refresh"`
}

// ScreeningResponse respuesta cruda del proveedor (cualquier status HTTP).
type ScreeningResponse struct {
	Status int
	Body   json.RawMessage
}

// ScreeningProvider cliente del proveedor. err != nil solo si no hubo respuesta HTTP.
type ScreeningProvider interface {
	Validate(ctx context.Context, req ScreeningRequest) (*ScreeningResponse, error)
}
