package dto

import "time"

// UsuarioResponse perfil de la sesión actual.
type UsuarioResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Rol       string    `json:"rol"`
	EsAdmin   bool      `json:"es_admin"`
	EmpresaID *string   `json:"empresa_id"`
	CreatedAt time.Time `json:"created_at"`
}
