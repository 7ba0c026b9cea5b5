package entity

import (
	"encoding/json"
	"time"
)

// Alcances de una consulta SARLAFT.
const (
	ScopeEmpresa       = "empresa"
	ScopeRepresentante = "representante"
)

// ValidacionSarlaft resultado persistido de una consulta al proveedor de listas.
type ValidacionSarlaft struct {
	ID             string
	EmpresaID      string
	Scope          string
	Nombres        string
	Documento      string
	TipoDocumento  string
	ProviderUserID string
	IPAddress      *string
	ForceRefresh   bool
	ProviderStatus int
	Clasificacion  string
	Resultado      json.RawMessage
	ConsultadoPor  *string // nil = consulta automática del sistema
	CreatedAt      time.Time
}
