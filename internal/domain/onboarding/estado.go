// Package onboarding contiene las reglas puras de vinculación de empresas
// pagadoras: estados, transiciones, completitud documental y nombres de objeto.
package onboarding

import (
	"strings"
	"time"

	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
)

// ParseEstado valida un estado recibido del cliente; solo acepta los valores exactos.
func ParseEstado(raw string) (entity.EstadoEmpresa, error) {
	e := entity.EstadoEmpresa(raw)
	if e.Valid() {
		return e, nil
	}
	return "", errEstadoInvalido()
}

func errEstadoInvalido() error {
	permitidos := make([]string, 0, len(entity.EstadosEmpresa()))
	for _, s := range entity.EstadosEmpresa() {
		permitidos = append(permitidos, string(s))
	}
	return domain.InvalidInput("INVALID_ESTADO",
		"Estado inválido. Valores permitidos: "+strings.Join(permitidos, ", ")).
		WithDetails(map[string]any{"permitidos": permitidos})
}

// AplicarTransicion mueve la empresa al estado nuevo y devuelve la entrada de
// historial correspondiente (sin ID). Cualquier estado puede pasar a cualquier otro.
// Solo al entrar en aprobado se sellan AprobadoPor y FechaAprobacion; ninguna otra
// transición los borra. actor vacío = cambio del sistema.
func AplicarTransicion(e *entity.Empresa, nuevo entity.EstadoEmpresa, actor, motivo string, now time.Time) (*entity.HistorialEstado, error) {
	if !nuevo.Valid() {
		return nil, errEstadoInvalido()
	}
	anterior := e.Estado
	now = now.UTC()

	e.EstadoAnterior = &anterior
	e.Estado = nuevo
	e.FechaCambioEstado = &now
	e.UpdatedAt = now

	var actorRef *string
	if actor != "" {
		a := actor
		actorRef = &a
	}
	if nuevo == entity.EstadoAprobado {
		e.AprobadoPor = actorRef
		approvedAt := now
		e.FechaAprobacion = &approvedAt
	}

	var motivoRef *string
	if m := strings.TrimSpace(motivo); m != "" {
		motivoRef = &m
	}
	prev := anterior
	return &entity.HistorialEstado{
		EmpresaID:      e.ID,
		EstadoAnterior: &prev,
		EstadoNuevo:    nuevo,
		CambiadoPor:    actorRef,
		Motivo:         motivoRef,
		CreatedAt:      now,
	}, nil
}

// RegistroInicial prepara la empresa recién creada en estado pendiente y la
// primera entrada de historial (estado anterior nulo).
func RegistroInicial(e *entity.Empresa, actor string, now time.Time) *entity.HistorialEstado {
	now = now.UTC()
	e.Estado = entity.EstadoPendiente
	e.EstadoAnterior = nil
	e.FechaCambioEstado = nil
	e.CreatedAt = now
	e.UpdatedAt = now

	var actorRef *string
	if actor != "" {
		a := actor
		actorRef = &a
	}
	motivo := "registro inicial"
	return &entity.HistorialEstado{
		EmpresaID:   e.ID,
		EstadoNuevo: entity.EstadoPendiente,
		CambiadoPor: actorRef,
		Motivo:      &motivo,
		CreatedAt:   now,
	}
}
