package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Cada Error codificado
// envuelve uno de estos tipos para que errors.Is funcione en todas las capas.
var (
	ErrUnauthenticated = errors.New("no autenticado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrConfig          = errors.New("configuración incompleta")
	ErrStorage         = errors.New("error de almacenamiento")
	ErrUpstream        = errors.New("error del proveedor externo")
)

// Error error de dominio con código legible por máquina (ej. INVALID_ESTADO).
type Error struct {
	Kind    error
	Code    string
	Message string
	Details any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return e.Code + ": " + e.Message
}

// Unwrap expone el tipo y la causa para errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

// NewError construye un error codificado.
func NewError(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// WithDetails agrega detalles serializables (campos inválidos, valores permitidos).
func (e *Error) WithDetails(d any) *Error {
	e.Details = d
	return e
}

// Wrap adjunta la causa técnica; no se expone al cliente.
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

// AsError extrae el *Error de la cadena, si existe.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Constructores de uso frecuente.

func Unauthenticated(message string) *Error {
	return NewError(ErrUnauthenticated, "UNAUTHENTICATED", message)
}

func Forbidden(code, message string) *Error {
	return NewError(ErrForbidden, code, message)
}

func InvalidInput(code, message string) *Error {
	return NewError(ErrInvalidInput, code, message)
}

func NotFound(code, message string) *Error {
	return NewError(ErrNotFound, code, message)
}

func Conflict(code, message string) *Error {
	return NewError(ErrConflict, code, message)
}

func Storage(code string, cause error) *Error {
	return NewError(ErrStorage, code, "error de almacenamiento").Wrap(cause)
}
