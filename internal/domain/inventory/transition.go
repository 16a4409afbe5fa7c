// Package inventory contiene la máquina de estados de stock (servicio de dominio puro):
// validación de movimientos, transición de contadores y vistas derivadas (estado, alertas, reposición).
package inventory

import (
	"math"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Levels contadores de un SKU sobre los que opera una transición.
type Levels struct {
	Current  int64
	Reserved int64
}

// LevelsOf extrae los contadores de un registro.
func LevelsOf(r *entity.StockRecord) Levels {
	if r == nil {
		return Levels{}
	}
	return Levels{Current: r.CurrentStock, Reserved: r.ReservedStock}
}

// Transition es un movimiento validado. El conjunto de variantes es cerrado:
// Restock, Sale, Return, Adjustment, Reserve y Release.
type Transition interface {
	Kind() entity.TransitionKind
	// Quantity devuelve la magnitud pedida por el llamador (en Adjustment, el valor absoluto objetivo).
	Quantity() int64
	apply(l Levels) (Levels, error)
}

// Restock suma unidades recibidas del proveedor.
type Restock struct{ Units int64 }

// Sale descuenta unidades vendidas; exige stock suficiente.
type Sale struct{ Units int64 }

// Return suma unidades devueltas por un cliente.
type Return struct{ Units int64 }

// Adjustment fija el stock disponible a un valor absoluto (conteo físico).
type Adjustment struct{ Target int64 }

// Reserve mueve unidades de disponible a reservado.
type Reserve struct{ Units int64 }

// Release devuelve unidades reservadas a disponible.
type Release struct{ Units int64 }

func (t Restock) Kind() entity.TransitionKind    { return entity.KindRestock }
func (t Sale) Kind() entity.TransitionKind       { return entity.KindSale }
func (t Return) Kind() entity.TransitionKind     { return entity.KindReturn }
func (t Adjustment) Kind() entity.TransitionKind { return entity.KindAdjustment }
func (t Reserve) Kind() entity.TransitionKind    { return entity.KindReserve }
func (t Release) Kind() entity.TransitionKind    { return entity.KindRelease }

func (t Restock) Quantity() int64    { return t.Units }
func (t Sale) Quantity() int64       { return t.Units }
func (t Return) Quantity() int64     { return t.Units }
func (t Adjustment) Quantity() int64 { return t.Target }
func (t Reserve) Quantity() int64    { return t.Units }
func (t Release) Quantity() int64    { return t.Units }

func (t Restock) apply(l Levels) (Levels, error) {
	cur, err := add(l.Current, t.Units)
	if err != nil {
		return l, err
	}
	return Levels{Current: cur, Reserved: l.Reserved}, nil
}

func (t Sale) apply(l Levels) (Levels, error) {
	if l.Current < t.Units {
		return l, domain.ErrInsufficientStock
	}
	return Levels{Current: l.Current - t.Units, Reserved: l.Reserved}, nil
}

func (t Return) apply(l Levels) (Levels, error) {
	cur, err := add(l.Current, t.Units)
	if err != nil {
		return l, err
	}
	return Levels{Current: cur, Reserved: l.Reserved}, nil
}

func (t Adjustment) apply(l Levels) (Levels, error) {
	return Levels{Current: t.Target, Reserved: l.Reserved}, nil
}

func (t Reserve) apply(l Levels) (Levels, error) {
	if l.Current < t.Units {
		return l, domain.ErrInsufficientStock
	}
	res, err := add(l.Reserved, t.Units)
	if err != nil {
		return l, err
	}
	return Levels{Current: l.Current - t.Units, Reserved: res}, nil
}

func (t Release) apply(l Levels) (Levels, error) {
	if l.Reserved < t.Units {
		return l, domain.ErrInsufficientReserved
	}
	cur, err := add(l.Current, t.Units)
	if err != nil {
		return l, err
	}
	return Levels{Current: cur, Reserved: l.Reserved - t.Units}, nil
}

// NewTransition valida tipo y cantidad y construye la variante correspondiente.
// Adjustment acepta 0 (stock contado en cero); el resto exige cantidad positiva.
func NewTransition(kind entity.TransitionKind, quantity int64) (Transition, error) {
	if !kind.IsValid() {
		return nil, domain.ErrInvalidKind
	}
	if kind == entity.KindAdjustment {
		if quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		return Adjustment{Target: quantity}, nil
	}
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	switch kind {
	case entity.KindRestock:
		return Restock{Units: quantity}, nil
	case entity.KindSale:
		return Sale{Units: quantity}, nil
	case entity.KindReturn:
		return Return{Units: quantity}, nil
	case entity.KindReserve:
		return Reserve{Units: quantity}, nil
	default:
		return Release{Units: quantity}, nil
	}
}

// Apply ejecuta la transición sobre l. Si falla una precondición devuelve l intacto y el error.
// El resultado nunca tiene contadores negativos.
func Apply(t Transition, l Levels) (Levels, error) {
	next, err := t.apply(l)
	if err != nil {
		return l, err
	}
	if next.Current < 0 || next.Reserved < 0 {
		return l, domain.ErrInvalidQuantity
	}
	return next, nil
}

func add(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return a, domain.ErrInvalidQuantity
	}
	return a + b, nil
}
