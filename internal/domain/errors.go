package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrInsufficientReserved = errors.New("stock reservado insuficiente")
	ErrInvalidKind          = errors.New("tipo de movimiento inválido")
	ErrInvalidQuantity      = errors.New("cantidad inválida")
	ErrInvalidThreshold     = errors.New("umbral inválido")
	// ErrRecordNotFound envuelve ErrNotFound para que los llamadores genéricos lo reconozcan.
	ErrRecordNotFound = fmt.Errorf("registro de stock no encontrado: %w", ErrNotFound)
)

// LedgerError describe un error de una operación del ledger con el campo causante,
// suficiente para construir un mensaje al usuario. Se compara con errors.Is contra los sentinels.
type LedgerError struct {
	Op    string // operación: apply, status, thresholds, seed...
	SKU   string
	Field string // campo ofensivo (quantity, kind, sku_id, reorder_point...)
	Err   error
}

func (e *LedgerError) Error() string {
	msg := e.Op + ": " + e.Err.Error()
	if e.SKU != "" {
		msg += " (sku=" + e.SKU + ")"
	}
	if e.Field != "" {
		msg += " [" + e.Field + "]"
	}
	return msg
}

func (e *LedgerError) Unwrap() error { return e.Err }

// NewLedgerError construye un LedgerError.
func NewLedgerError(op, sku, field string, err error) *LedgerError {
	return &LedgerError{Op: op, SKU: sku, Field: field, Err: err}
}

// FieldOf devuelve el campo ofensivo si err es (o envuelve) un LedgerError.
func FieldOf(err error) string {
	var le *LedgerError
	if errors.As(err, &le) {
		return le.Field
	}
	return ""
}

// Code devuelve un código estable (para respuestas HTTP y etiquetas de métricas) a partir del sentinel envuelto.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidKind):
		return "INVALID_KIND"
	case errors.Is(err, ErrInvalidQuantity):
		return "INVALID_QUANTITY"
	case errors.Is(err, ErrInvalidThreshold):
		return "INVALID_THRESHOLD"
	case errors.Is(err, ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, ErrInsufficientReserved):
		return "INSUFFICIENT_RESERVED"
	case errors.Is(err, ErrRecordNotFound):
		return "RECORD_NOT_FOUND"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, ErrInvalidInput):
		return "VALIDATION"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	default:
		return "INTERNAL"
	}
}
