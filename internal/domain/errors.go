package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrInvalidReference = errors.New("referencia a entidad inexistente")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrUpstream         = errors.New("fallo en la base de datos")
)

// ValidationError agrupa los mensajes de validación de un pedido o de una fila importada.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// FormatError línea pegada (texto separado por tabulaciones) con número de columnas incorrecto.
type FormatError struct {
	Line     int
	Expected int
	Actual   int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("Linha %d: formato inválido, esperadas %d colunas, encontradas %d", e.Line, e.Expected, e.Actual)
}

func (e *FormatError) Unwrap() error { return ErrInvalidInput }

// DuplicateKeyError el número de pedido ya existe.
type DuplicateKeyError struct {
	Pedido string
}

func (e *DuplicateKeyError) Error() string {
	return "Pedido duplicado: " + e.Pedido
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicate }

// MissingRequiredFieldError nombre de entidad vacío al resolver cliente/exportador/importador.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return "campo obrigatório ausente: " + e.Field
}

func (e *MissingRequiredFieldError) Unwrap() error { return ErrInvalidInput }
