package entity

import "time"

// HistorialEstado registro inmutable de un cambio de estado.
type HistorialEstado struct {
	ID             string
	EmpresaID      string
	EstadoAnterior *EstadoEmpresa // nil solo en la primera entrada
	EstadoNuevo    EstadoEmpresa
	CambiadoPor    *string // nil = cambio del sistema
	Motivo         *string
	CreatedAt      time.Time
}
