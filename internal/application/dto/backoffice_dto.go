package dto

import "time"

// CambiarEstadoRequest cuerpo de PATCH /api/admin/empresas/{id}/estado.
type CambiarEstadoRequest struct {
	NuevoEstado    string `json:"nuevo_estado"`
	Motivo         string `json:"motivo"`
	EstadoEsperado string `json:"estado_esperado"`
}

// CambiarEstadoResponse resultado de la transición.
type CambiarEstadoResponse struct {
	EmpresaID      string    `json:"empresa_id"`
	EstadoAnterior string    `json:"estado_anterior"`
	EstadoNuevo    string    `json:"estado_nuevo"`
	CambiadoPor    string    `json:"cambiado_por"`
	FechaCambio    time.Time `json:"fecha_cambio"`
}

// HistorialEstadoResponse entrada del historial.
type HistorialEstadoResponse struct {
	ID             string    `json:"id"`
	EmpresaID      string    `json:"empresa_id"`
	EstadoAnterior *string   `json:"estado_anterior"`
	EstadoNuevo    string    `json:"estado_nuevo"`
	CambiadoPor    *string   `json:"cambiado_por"`
	Motivo         *string   `json:"motivo"`
	CreatedAt      time.Time `json:"created_at"`
}

// CrearComentarioRequest cuerpo de POST /api/admin/empresas/{id}/comentarios.
type CrearComentarioRequest struct {
	Comentario string `json:"comentario"`
}

// ComentarioResponse comentario interno.
type ComentarioResponse struct {
	ID         string    `json:"id"`
	EmpresaID  string    `json:"empresa_id"`
	UsuarioID  string    `json:"usuario_id"`
	Comentario string    `json:"comentario"`
	CreatedAt  time.Time `json:"created_at"`
}

// ResumenEmpresasResponse conteos del tablero del back-office.
// PorEstado incluye los cinco estados, con cero si no hay empresas.
type ResumenEmpresasResponse struct {
	Total     int            `json:"total"`
	PorEstado map[string]int `json:"por_estado"`
}
