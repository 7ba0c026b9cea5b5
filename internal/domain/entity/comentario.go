package entity

import "time"

// ComentarioInterno nota del back-office; nunca se expone a la empresa.
type ComentarioInterno struct {
	ID         string
	EmpresaID  string
	UsuarioID  string
	Comentario string
	CreatedAt  time.Time
}
