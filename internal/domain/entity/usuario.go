package entity

import "time"

// Roles de usuario (deben coincidir con el CHECK de la tabla usuarios).
const (
	RolPagador   = "pagador"
	RolProveedor = "proveedor"
	RolAdmin     = "admin"
)

// Usuario identidad local asociada al sujeto del proveedor de sesión.
type Usuario struct {
	ID        string // sub del token
	Email     string
	Rol       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin indica si el usuario tiene capacidad de revisión.
func (u *Usuario) IsAdmin() bool {
	return u != nil && u.Rol == RolAdmin
}
